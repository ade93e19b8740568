package main

import "github.com/ijas-muhmd/todo-app/cmd/server/cmd"

func main() {
	cmd.Execute()
}
