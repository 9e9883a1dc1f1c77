package cli

import (
	"errors"
	"fmt"

	"github.com/quizhub/quiz-service/internal/services"
	"github.com/spf13/cobra"
)

func newSeedAdminCmd(configPath *string) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApplication(cmd.Context(), *configPath, true)
			if err != nil {
				return err
			}
			defer app.Close()

			user, err := app.services.Auth().SeedAdmin(cmd.Context(), username, password)
			if err != nil {
				if errors.Is(err, services.ErrUsernameTaken) {
					return fmt.Errorf("admin %q already exists", username)
				}
				return err
			}

			app.logger.Info("Admin account created", "user_id", user.ID, "username", user.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "admin username")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
