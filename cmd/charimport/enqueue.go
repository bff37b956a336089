// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 eqemu-char-import Contributors

package main

import (
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/jwinky/eqemu-char-import/internal/config"
	"github.com/jwinky/eqemu-char-import/internal/queue"
	"github.com/jwinky/eqemu-char-import/internal/store"
)

// NewEnqueueCmd creates the enqueue subcommand.
func NewEnqueueCmd() *cobra.Command {
	var (
		charName      string
		level         int
		inventoryFile string
		spellbookFile string
	)

	cmd := &cobra.Command{
		Use:   "enqueue",
		Short: "Queue an import request by hand",
		Long: `Queue an import request without going through the web form. Useful for
testing the pipeline and for one-off imports by an administrator.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := queue.Request{CharName: charName, Level: level}

			if inventoryFile != "" {
				data, err := os.ReadFile(inventoryFile)
				if err != nil {
					return oops.Code("OUTFILE_READ_FAILED").With("path", inventoryFile).Wrap(err)
				}
				req.InventoryOutfile = string(data)
			}
			if spellbookFile != "" {
				data, err := os.ReadFile(spellbookFile)
				if err != nil {
					return oops.Code("OUTFILE_READ_FAILED").With("path", spellbookFile).Wrap(err)
				}
				req.SpellbookOutfile = string(data)
			}

			cfg, err := config.Load(configFile, nil)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			pool, err := store.Connect(ctx, cfg.Queue.URL)
			if err != nil {
				return err
			}
			defer pool.Close()

			repo := queue.NewPostgresRequestRepository(pool)
			if err := repo.Enqueue(ctx, &req); err != nil {
				return err
			}

			cmd.Printf("Queued request %d for %s\n", req.ID, req.CharName)
			return nil
		},
	}

	cmd.Flags().StringVar(&charName, "name", "", "character name (must be a fresh level 1 character)")
	cmd.Flags().IntVar(&level, "level", 1, "level to grant")
	cmd.Flags().StringVar(&inventoryFile, "inventory-file", "", "path to an inventory outfile")
	cmd.Flags().StringVar(&spellbookFile, "spellbook-file", "", "path to a spellbook outfile")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
