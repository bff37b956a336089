// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 eqemu-char-import Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/jwinky/eqemu-char-import/internal/config"
	"github.com/jwinky/eqemu-char-import/internal/store"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage request queue database migrations",
		Long: `Run schema migrations against the request queue database. The game
database schema belongs to the EQEmu server and is never migrated here.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, func(m *store.Migrator) error {
				if err := m.Up(); err != nil {
					return err
				}
				cmd.Println("Migrations applied")
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, func(m *store.Migrator) error {
				if err := m.Down(); err != nil {
					return err
				}
				cmd.Println("Migration rolled back")
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show the current migration version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withMigrator(cmd, func(m *store.Migrator) error {
				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				if dirty {
					cmd.Printf("Version: %d (dirty)\n", version)
				} else {
					cmd.Printf("Version: %d\n", version)
				}
				return nil
			})
		},
	})

	return cmd
}

func withMigrator(cmd *cobra.Command, fn func(*store.Migrator) error) error {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		return err
	}

	m, err := store.NewMigrator(cfg.Queue.URL)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			cmd.PrintErrf("Warning: failed to close migrator: %v\n", err)
		}
	}()

	return fn(m)
}
