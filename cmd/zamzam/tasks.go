package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"zamzam/internal/database"
)

func newMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Run database migrations",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			command := "up"
			if len(args) == 1 {
				command = args[0]
			}

			db, err := a.connect()
			if err != nil {
				return err
			}
			defer db.Close()

			return database.RunMigrations(cmd.Context(), db, a.cfg.Database.Driver, command)
		},
	}
}

func newSeedCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert default categories, types, brands, settings and the admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.connect()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.Migrate(db, a.cfg.Database.Driver); err != nil {
				return err
			}
			admin := database.Admin{
				Username: a.cfg.Admin.Username,
				Email:    a.cfg.Admin.Email,
				Password: a.cfg.Admin.Password,
			}
			return database.Seed(cmd.Context(), db, admin)
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "zamzam %s (%s)\n", version, commit)
		},
	}
}
