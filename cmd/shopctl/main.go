// cmd/shopctl/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/soutech/shop-backend/internal/config"
	"github.com/soutech/shop-backend/internal/database"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "shopctl",
		Short:         "Operator tasks for the SOUTECH shop backend",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(promoteAdminCmd())
	rootCmd.AddCommand(createAdminCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openDatabase loads configuration from the environment and connects.
func openDatabase() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	config.ConfigureLogger(cfg)

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}
