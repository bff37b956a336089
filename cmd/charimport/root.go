// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 eqemu-char-import Contributors

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the charimport CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "charimport",
		Short: "charimport - EQEmu character import batch processor",
		Long: `charimport drains a queue of character import requests filed through a
web form and applies them to an EQEmu game database: leveling, full
inventory replacement, and full spellbook replacement.`,
		SilenceUsage: true,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default: XDG config dir)")

	// Add subcommands
	cmd.AddCommand(NewRunCmd())
	cmd.AddCommand(NewEnqueueCmd())
	cmd.AddCommand(NewStatusCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewWhitelistCmd())
	cmd.AddCommand(NewConfigCmd())

	return cmd
}
