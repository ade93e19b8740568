package todo

import (
	"mime/multipart"

	"github.com/ijas-muhmd/todo-app/internal/domain/todo"
)

type idInput struct {
	ID string `path:"id" doc:"Todo id"`
}

type createInput struct {
	Body createRequest
}

type createRequest struct {
	Name        string `json:"name" example:"buy milk"`
	Description string `json:"description,omitempty" example:"2%"`
}

type updateInput struct {
	ID   string `path:"id" doc:"Todo id"`
	Body updateRequest
}

type updateRequest struct {
	Name        string `json:"name,omitempty" doc:"Replaces the name"`
	Description string `json:"description,omitempty" doc:"Replaces the description"`
}

type uploadInput struct {
	ID      string         `path:"id" doc:"Todo id"`
	RawBody multipart.Form `contentType:"multipart/form-data"`
}

type listOutput struct {
	Body []todo.Todo
}

type todoOutput struct {
	Body *todo.Todo
}

type statusOutput struct {
	Body StatusResponse
}

type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}
