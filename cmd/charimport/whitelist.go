// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 eqemu-char-import Contributors

package main

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/jwinky/eqemu-char-import/internal/config"
	"github.com/jwinky/eqemu-char-import/internal/queue"
	"github.com/jwinky/eqemu-char-import/internal/store"
)

// NewWhitelistCmd creates the whitelist subcommand.
func NewWhitelistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whitelist",
		Short: "Manage the item whitelist",
		Long: `Manage the whitelisted_items table. The whitelist does not yet gate
imports; entries added here take effect once whitelist filtering ships.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List whitelisted items",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withWhitelist(cmd, func(cmd *cobra.Command, repo queue.WhitelistRepository) error {
				items, err := repo.All(cmd.Context())
				if err != nil {
					return err
				}
				if len(items) == 0 {
					cmd.Println("No whitelisted items.")
					return nil
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME")
				for _, item := range items {
					fmt.Fprintf(w, "%d\t%s\n", item.ItemID, item.Name)
				}
				return w.Flush()
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "add <item-id> <name>",
		Short: "Add an item to the whitelist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := strconv.ParseInt(args[0], 10, 32)
			if err != nil {
				return oops.Code("WHITELIST_INVALID_ID").With("item_id", args[0]).Wrap(err)
			}
			return withWhitelist(cmd, func(cmd *cobra.Command, repo queue.WhitelistRepository) error {
				item := queue.WhitelistedItem{ItemID: int32(itemID), Name: args[1]}
				if err := repo.Add(cmd.Context(), item); err != nil {
					if errors.Is(err, queue.ErrDuplicateWhitelistItem) {
						cmd.PrintErrf("Item %d is already whitelisted\n", item.ItemID)
						return nil
					}
					return err
				}
				cmd.Printf("Whitelisted item %d (%s)\n", item.ItemID, item.Name)
				return nil
			})
		},
	})

	return cmd
}

func withWhitelist(cmd *cobra.Command, fn func(*cobra.Command, queue.WhitelistRepository) error) error {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		return err
	}

	pool, err := store.Connect(cmd.Context(), cfg.Queue.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(cmd, queue.NewPostgresWhitelistRepository(pool))
}
