// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 eqemu-char-import Contributors

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/jwinky/eqemu-char-import/internal/config"
	"github.com/jwinky/eqemu-char-import/internal/game"
	"github.com/jwinky/eqemu-char-import/internal/importer"
	"github.com/jwinky/eqemu-char-import/internal/lockfile"
	"github.com/jwinky/eqemu-char-import/internal/logging"
	"github.com/jwinky/eqemu-char-import/internal/queue"
	"github.com/jwinky/eqemu-char-import/internal/store"
	"github.com/jwinky/eqemu-char-import/pkg/errutil"
)

// NewRunCmd creates the run subcommand.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process all pending import requests",
		Long: `Process every pending import request in creation order. Exits with a
documented status code on startup failures so the cron wrapper can tell
them apart; per-item rejections are recorded on the request instead.`,
		RunE: runRun,
	}

	// Flag names mirror config keys so explicitly-set flags override the
	// file. Defaults must match config.Default or unset flags would
	// clobber file values.
	defaults := config.Default()
	cmd.Flags().String("queue.url", "", "request queue database URL")
	cmd.Flags().String("game.url", "", "game database URL")
	cmd.Flags().Int("max_level", defaults.MaxLevel, "maximum level an import may grant")
	cmd.Flags().String("lock_file", defaults.LockFile, "single-instance lock file path")
	cmd.Flags().String("log_format", defaults.LogFormat, "log output format (json or text)")

	return cmd
}

func runRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		if errors.Is(err, config.ErrNotFound) {
			cmd.PrintErrln("Error: database config file does not exist")
			return &ExitError{Code: exitConfigMissing, Err: err}
		}
		return err
	}

	logger := logging.Setup("charimport", version, cfg.LogFormat, cmd.ErrOrStderr())

	lock, err := lockfile.Acquire(cfg.LockFile)
	if err != nil {
		if errors.Is(err, lockfile.ErrHeld) {
			cmd.PrintErrf("Error: this program is already running.  Remove the file %s if you're sure it's not.\n", cfg.LockFile)
			return &ExitError{Code: exitLockHeld, Err: err}
		}
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			errutil.LogError(logger, "failed to release lock", err)
		}
	}()

	queuePool, err := store.Connect(ctx, cfg.Queue.URL)
	if err != nil {
		cmd.PrintErrln("Error: unable to connect to import request database")
		return &ExitError{Code: exitQueueConnect, Err: err}
	}
	defer queuePool.Close()
	if err := store.Verify(ctx, queuePool); err != nil {
		return &ExitError{Code: exitQueueUnusable, Err: err}
	}

	requests := queue.NewPostgresRequestRepository(queuePool)
	pending, err := requests.Pending(ctx)
	if err != nil {
		errutil.LogError(logger, "failed to load pending requests", err)
		return err
	}
	if len(pending) == 0 {
		cmd.Println("No pending import requests.")
		return nil
	}

	// The game database is only touched when there is work to do.
	gamePool, err := store.Connect(ctx, cfg.Game.URL)
	if err != nil {
		cmd.PrintErrln("Error: unable to connect to game database")
		return &ExitError{Code: exitGameConnect, Err: err}
	}
	defer gamePool.Close()
	if err := store.Verify(ctx, gamePool); err != nil {
		return &ExitError{Code: exitGameUnusable, Err: err}
	}

	pipeline := importer.NewPipeline(
		requests,
		queue.NewPostgresWhitelistRepository(queuePool),
		game.NewPostgresCharacterRepository(gamePool),
		importer.NewInventoryImporter(
			game.NewPostgresItemRepository(gamePool),
			game.NewPostgresInventoryRepository(gamePool),
		),
		importer.NewSpellbookImporter(game.NewPostgresSpellRepository(gamePool)),
		cfg.MaxLevel,
		logger,
	)

	runID, err := pipeline.Process(ctx, pending)
	if err != nil {
		errutil.LogError(logger, "import run aborted", err)
		return err
	}

	cmd.Printf("Processed %d request(s) in run %s\n", len(pending), runID)
	return nil
}
