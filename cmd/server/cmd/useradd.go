package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ijas-muhmd/todo-app/internal/app/server"
)

var useraddEmail string

var useraddCmd = &cobra.Command{
	Use:   "useradd",
	Short: "Register a user from the command line",
	Long: `Registers a user directly in the configured store.

The password is read from the terminal without echo, or from stdin when it is not a terminal.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if useraddEmail == "" {
			return errors.New("--email is required")
		}

		password, err := readPassword(cmd)
		if err != nil {
			return err
		}

		return withApp(cmd.Context(), func(app *server.App) error {
			if err := app.Migrate(cmd.Context()); err != nil {
				return err
			}
			u, err := app.Users().Register(cmd.Context(), useraddEmail, password)
			if err != nil {
				return fmt.Errorf("register %s: %w", useraddEmail, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %s created with id %s\n", u.Email, u.ID)
			return nil
		})
	},
}

func readPassword(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		b, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimRight(string(b), "\r\n"), nil
	}

	fd := int(f.Fd())
	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), "Repeat password: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return string(first), nil
}

func init() {
	useraddCmd.Flags().StringVar(&useraddEmail, "email", "", "email of the new user")
}
