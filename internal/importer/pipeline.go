// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 eqemu-char-import Contributors

package importer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/jwinky/eqemu-char-import/internal/game"
	"github.com/jwinky/eqemu-char-import/internal/leveling"
	"github.com/jwinky/eqemu-char-import/internal/queue"
)

// invalidCharacterMsg is the message written to requests whose character
// cannot be resolved. The wording and spacing are fixed: the web frontend
// matches on this string.
const invalidCharacterMsg = "Level 1 character with this name could not be found.  " +
	"Please create a level 1 character and try again."

// Pipeline drains the request queue: it resolves characters, rejects
// requests without a fresh character, and runs leveling, inventory import,
// and spellbook import for the rest.
type Pipeline struct {
	requests  queue.RequestRepository
	whitelist queue.WhitelistRepository
	chars     game.CharacterRepository
	inventory *InventoryImporter
	spellbook *SpellbookImporter
	maxLevel  int
	logger    *slog.Logger
}

// NewPipeline creates a pipeline over the given repositories. maxLevel caps
// the level any request can grant.
func NewPipeline(
	requests queue.RequestRepository,
	whitelist queue.WhitelistRepository,
	chars game.CharacterRepository,
	inventory *InventoryImporter,
	spellbook *SpellbookImporter,
	maxLevel int,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		requests:  requests,
		whitelist: whitelist,
		chars:     chars,
		inventory: inventory,
		spellbook: spellbook,
		maxLevel:  maxLevel,
		logger:    logger,
	}
}

// Process applies the given pending requests in order. Requests whose
// character is missing or not level 1 are rejected in one batch; the rest
// run to a terminal complete status carrying any rejected item names. The
// first repository error aborts the batch, leaving unprocessed requests
// pending for the next run. It returns the run id stamped on every request
// it touched.
func (p *Pipeline) Process(ctx context.Context, requests []queue.Request) (string, error) {
	runID := ulid.Make().String()
	logger := p.logger.With("run_id", runID)

	// The whitelist does not yet gate imports; it is loaded so that table
	// access problems surface here rather than after rows were mutated.
	// TODO: filter usable items through the whitelist once the web form
	// exposes whitelist management.
	whitelisted, err := p.whitelist.All(ctx)
	if err != nil {
		return runID, err
	}
	logger.Debug("loaded item whitelist", "items", len(whitelisted))

	names := make([]string, 0, len(requests))
	for _, req := range requests {
		names = append(names, req.CharName)
	}
	chars, err := p.chars.FreshByNames(ctx, names)
	if err != nil {
		return runID, err
	}

	var good []queue.Request
	var badIDs []int64
	for _, req := range requests {
		if _, ok := chars[req.CharName]; ok {
			good = append(good, req)
		} else {
			badIDs = append(badIDs, req.ID)
		}
	}

	if len(badIDs) > 0 {
		if err := p.requests.MarkInvalid(ctx, badIDs, invalidCharacterMsg, runID); err != nil {
			return runID, err
		}
		logger.Info("rejected requests without a fresh character", "count", len(badIDs))
	}

	for _, req := range good {
		if err := p.process(ctx, logger, req, chars[req.CharName], runID); err != nil {
			return runID, err
		}
	}

	logger.Info("run finished", "processed", len(good), "rejected", len(badIDs))
	return runID, nil
}

func (p *Pipeline) process(ctx context.Context, logger *slog.Logger, req queue.Request, ch game.Character, runID string) error {
	logger = logger.With("request_id", req.ID, "char_name", ch.Name)

	if ch.Level < req.Level {
		level := leveling.Clamp(req.Level, p.maxLevel)
		if err := p.chars.SetLevel(ctx, ch.ID, level, leveling.ExpForLevel(level)); err != nil {
			return err
		}
		if err := p.chars.RefreshVitals(ctx, ch.ID); err != nil {
			return err
		}
		logger.Info("leveled character", "from", ch.Level, "to", level)
	}

	rejected, err := p.inventory.Import(ctx, ch, strings.TrimSpace(req.InventoryOutfile))
	if err != nil {
		return err
	}

	if err := p.spellbook.Import(ctx, ch, strings.TrimSpace(req.SpellbookOutfile)); err != nil {
		return err
	}

	if err := p.requests.Complete(ctx, req.ID, strings.Join(rejected, ", "), runID); err != nil {
		return err
	}
	logger.Info("completed request", "rejected_items", len(rejected))
	return nil
}
