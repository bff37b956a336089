// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 eqemu-char-import Contributors

package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jwinky/eqemu-char-import/internal/config"
	"github.com/jwinky/eqemu-char-import/internal/queue"
	"github.com/jwinky/eqemu-char-import/internal/store"
)

// NewStatusCmd creates the status subcommand.
func NewStatusCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show request queue counts by status",
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			counts, err := queue.NewPostgresRequestRepository(pool).CountByStatus(ctx)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(counts)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			for _, status := range []queue.Status{queue.StatusPending, queue.StatusComplete, queue.StatusInvalid} {
				fmt.Fprintf(w, "%s\t%d\n", status, counts[status])
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	return cmd
}
