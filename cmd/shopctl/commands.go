// cmd/shopctl/commands.go
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soutech/shop-backend/internal/database"
	"github.com/soutech/shop-backend/internal/services"
	"github.com/soutech/shop-backend/internal/utils"
)

const generatedPasswordLength = 16

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.RunMigrations(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func promoteAdminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote-admin <email>",
		Short: "Grant the admin flag to an existing account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.PromoteAdmin(db, args[0]); err != nil {
				if errors.Is(err, database.ErrUserNotFound) {
					return fmt.Errorf("no user with email %s", args[0])
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now an admin\n", args[0])
			return nil
		},
	}
}

func createAdminCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		Long: `Create an admin account. When --password is omitted a random
password is generated and printed once.

Examples:
  shopctl create-admin --email admin@soutech.com.br
  shopctl create-admin --email ops@soutech.com.br --name Ops --password s3cret!`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDatabase()
			if err != nil {
				return err
			}
			defer database.Close(db)

			generated := password == ""
			if generated {
				if password, err = utils.GenerateRandomString(generatedPasswordLength); err != nil {
					return fmt.Errorf("failed to generate password: %w", err)
				}
			}

			jwtManager := utils.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL)
			userService := services.NewUserService(db, services.NewAuthService(db, jwtManager))

			user, err := userService.CreateUser(&services.AdminCreateUserRequest{
				SignupRequest: services.SignupRequest{
					Name:     name,
					Email:    email,
					Password: password,
				},
				IsAdmin: true,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "created admin #%d %s\n", user.ID, user.Email)
			if generated {
				fmt.Fprintf(out, "password: %s\n", password)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email (required)")
	cmd.Flags().StringVar(&name, "name", "Administrador", "display name")
	cmd.Flags().StringVar(&password, "password", "", "password; generated when empty")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
