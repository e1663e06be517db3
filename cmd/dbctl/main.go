package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/promptops/promptdiff/internal/config"
	"github.com/promptops/promptdiff/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "dbctl",
	Short: "Template store schema management CLI",
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the pgvector extension and the prompt_versions table",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithDatabase(func(database *store.Database) error {
			return database.Bootstrap(cmd.Context())
		})
	},
}

var statusCmd = &cobra.Command{
	Use:           "status",
	Short:         "Check connectivity and report stored template names",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithDatabase(func(database *store.Database) error {
			if err := database.Ping(cmd.Context()); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
			repo := store.NewVersionRepository(database)
			names, err := repo.ListNames(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "connected, %d template(s) stored\n", len(names))
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		})
	},
}

var recreateCmd = &cobra.Command{
	Use:   "recreate",
	Short: "Drop and recreate the prompt_versions table (destructive)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.ToLower(os.Getenv("DB_ALLOW_DESTRUCTIVE")) != "yes" {
			return errors.New("DB_ALLOW_DESTRUCTIVE=yes must be set for recreate")
		}
		return runWithDatabase(func(database *store.Database) error {
			if _, err := database.Bun().ExecContext(cmd.Context(),
				`DROP TABLE IF EXISTS prompt_versions CASCADE`); err != nil {
				return err
			}
			return database.Bootstrap(cmd.Context())
		})
	},
}

func main() {
	config.Init(rootCmd)

	rootCmd.PersistentFlags().String("dsn", "", "PostgreSQL DSN (overrides POSTGRES_URL)")
	_ = viper.BindPFlag(config.KeyPostgresURL, rootCmd.PersistentFlags().Lookup("dsn"))

	rootCmd.AddCommand(initCmd, statusCmd, recreateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "dbctl: %v\n", err)
		os.Exit(1)
	}
}

func runWithDatabase(fn func(*store.Database) error) error {
	dsn := config.PostgresURL()
	if dsn == "" {
		return errors.New("postgres DSN must be provided via flag or environment")
	}
	database, err := store.NewDatabase(store.Config{DSN: dsn, Debug: config.DBDebug()})
	if err != nil {
		return err
	}
	defer database.Close()
	return fn(database)
}
