package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ijas-muhmd/todo-app/internal/app/server"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply SQL migrations or create Mongo indexes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(app *server.App) error {
			if err := app.Migrate(cmd.Context()); err != nil {
				return err
			}
			log.Info("migrations applied", "driver", cfg.DB.Driver)
			return nil
		})
	},
}
