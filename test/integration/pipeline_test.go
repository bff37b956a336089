// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 eqemu-char-import Contributors

//go:build integration

package integration

import (
	"context"
	"io"
	"log/slog"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/jwinky/eqemu-char-import/internal/game"
	"github.com/jwinky/eqemu-char-import/internal/importer"
	"github.com/jwinky/eqemu-char-import/internal/queue"
)

const invHeader = "Location\tName\tID\tCount\tSlots\n"

func newPipeline(maxLevel int) (*importer.Pipeline, queue.RequestRepository) {
	requests := queue.NewPostgresRequestRepository(pool)
	p := importer.NewPipeline(
		requests,
		queue.NewPostgresWhitelistRepository(pool),
		game.NewPostgresCharacterRepository(pool),
		importer.NewInventoryImporter(
			game.NewPostgresItemRepository(pool),
			game.NewPostgresInventoryRepository(pool),
		),
		importer.NewSpellbookImporter(game.NewPostgresSpellRepository(pool)),
		maxLevel,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return p, requests
}

func seedWarrior(ctx context.Context, name string) int64 {
	var id int64
	err := pool.QueryRow(ctx, `
		INSERT INTO character_data (name, level, race, class, deity)
		VALUES ($1, 1, 2, 1, 64) RETURNING id
	`, name).Scan(&id)
	Expect(err).NotTo(HaveOccurred())
	return id
}

var _ = Describe("Import pipeline", func() {
	ctx := context.Background()

	BeforeEach(func() {
		truncateAll(ctx)
	})

	It("levels, outfits, and completes a request end to end", func() {
		charID := seedWarrior(ctx, "Tarew")

		_, err := pool.Exec(ctx, `INSERT INTO base_data (level, class, hp, mana) VALUES (10, 1, 350, 0)`)
		Expect(err).NotTo(HaveOccurred())
		_, err = pool.Exec(ctx, `
			INSERT INTO items (id, name, minstatus, classes, deity, races) VALUES
				(5001, 'Rusty Sword', 0, 1, 0, 0),
				(5002, 'Cloth Cap', 0, 0, 0, 0),
				(5003, 'Cleric Only Mace', 0, 2, 0, 0)
		`)
		Expect(err).NotTo(HaveOccurred())

		requests := queue.NewPostgresRequestRepository(pool)
		req := &queue.Request{
			CharName: "Tarew",
			Level:    10,
			InventoryOutfile: invHeader +
				"Primary\tRusty Sword\t5001\t1\t0\n" +
				"Head\tCloth Cap\t5002\t1\t0\n" +
				"Secondary\tCleric Only Mace\t5003\t1\t0\n",
		}
		Expect(requests.Enqueue(ctx, req)).To(Succeed())

		p, _ := newPipeline(55)
		pending, err := requests.Pending(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(pending).To(HaveLen(1))

		runID, err := p.Process(ctx, pending)
		Expect(err).NotTo(HaveOccurred())
		Expect(runID).NotTo(BeEmpty())

		var level int
		var exp int64
		var curHP int
		err = pool.QueryRow(ctx, `SELECT level, exp, cur_hp FROM character_data WHERE id = $1`, charID).
			Scan(&level, &exp, &curHP)
		Expect(err).NotTo(HaveOccurred())
		Expect(level).To(Equal(10))
		Expect(exp).To(Equal(int64(1000000000)))
		Expect(curHP).To(Equal(350))

		rows, err := pool.Query(ctx, `SELECT slotid, itemid FROM inventory WHERE charid = $1 ORDER BY slotid`, charID)
		Expect(err).NotTo(HaveOccurred())
		defer rows.Close()
		type slotItem struct{ slot, item int32 }
		var got []slotItem
		for rows.Next() {
			var si slotItem
			Expect(rows.Scan(&si.slot, &si.item)).To(Succeed())
			got = append(got, si)
		}
		Expect(got).To(Equal([]slotItem{{2, 5002}, {13, 5001}}))

		var status, invalidItems string
		err = pool.QueryRow(ctx, `SELECT status, COALESCE(invalid_items, '') FROM requests WHERE id = $1`, req.ID).
			Scan(&status, &invalidItems)
		Expect(err).NotTo(HaveOccurred())
		Expect(status).To(Equal("complete"))
		Expect(invalidItems).To(Equal("Cleric Only Mace"))
	})

	It("replaces the spellbook with class-valid spells only", func() {
		var charID int64
		err := pool.QueryRow(ctx, `
			INSERT INTO character_data (name, level, race, class, deity)
			VALUES ('Vox', 1, 6, 2, 64) RETURNING id
		`).Scan(&charID)
		Expect(err).NotTo(HaveOccurred())

		_, err = pool.Exec(ctx, `
			INSERT INTO spells_new (id, name, classes2) VALUES
				(200, 'Minor Healing', 1),
				(202, 'Courage', 1),
				(300, 'Shadow Step', 255)
		`)
		Expect(err).NotTo(HaveOccurred())

		// Stale spell that must be gone after the full replace.
		_, err = pool.Exec(ctx, `INSERT INTO character_spells (id, slot_id, spell_id) VALUES ($1, 40, 999)`, charID)
		Expect(err).NotTo(HaveOccurred())

		requests := queue.NewPostgresRequestRepository(pool)
		req := &queue.Request{
			CharName:         "Vox",
			Level:            1,
			SpellbookOutfile: "1\tMinor Healing\n1\tShadow Step\n1\tCourage\n",
		}
		Expect(requests.Enqueue(ctx, req)).To(Succeed())

		p, _ := newPipeline(55)
		pending, err := requests.Pending(ctx)
		Expect(err).NotTo(HaveOccurred())
		_, err = p.Process(ctx, pending)
		Expect(err).NotTo(HaveOccurred())

		rows, err := pool.Query(ctx, `SELECT slot_id, spell_id FROM character_spells WHERE id = $1 ORDER BY slot_id`, charID)
		Expect(err).NotTo(HaveOccurred())
		defer rows.Close()
		type scribed struct{ slot, spell int32 }
		var got []scribed
		for rows.Next() {
			var s scribed
			Expect(rows.Scan(&s.slot, &s.spell)).To(Succeed())
			got = append(got, s)
		}
		Expect(got).To(Equal([]scribed{{0, 200}, {1, 202}}), "slots are contiguous and invalid rows skipped")
	})

	It("batch-rejects requests without a fresh level 1 character", func() {
		// Level 5 character: not fresh, must not match.
		_, err := pool.Exec(ctx, `INSERT INTO character_data (name, level) VALUES ('Veteran', 5)`)
		Expect(err).NotTo(HaveOccurred())

		requests := queue.NewPostgresRequestRepository(pool)
		for _, name := range []string{"Veteran", "Ghost"} {
			Expect(requests.Enqueue(ctx, &queue.Request{CharName: name, Level: 10})).To(Succeed())
		}

		p, _ := newPipeline(55)
		pending, err := requests.Pending(ctx)
		Expect(err).NotTo(HaveOccurred())
		_, err = p.Process(ctx, pending)
		Expect(err).NotTo(HaveOccurred())

		rows, err := pool.Query(ctx, `SELECT status, error_msg FROM requests ORDER BY id`)
		Expect(err).NotTo(HaveOccurred())
		defer rows.Close()
		for rows.Next() {
			var status, errorMsg string
			Expect(rows.Scan(&status, &errorMsg)).To(Succeed())
			Expect(status).To(Equal("invalid"))
			Expect(errorMsg).To(ContainSubstring("Level 1 character with this name could not be found."))
		}
	})

	It("caps the granted level at the configured maximum", func() {
		charID := seedWarrior(ctx, "Tarew")
		_, err := pool.Exec(ctx, `INSERT INTO base_data (level, class, hp, mana) VALUES (5, 1, 150, 0)`)
		Expect(err).NotTo(HaveOccurred())

		requests := queue.NewPostgresRequestRepository(pool)
		Expect(requests.Enqueue(ctx, &queue.Request{CharName: "Tarew", Level: 10})).To(Succeed())

		p, _ := newPipeline(5)
		pending, err := requests.Pending(ctx)
		Expect(err).NotTo(HaveOccurred())
		_, err = p.Process(ctx, pending)
		Expect(err).NotTo(HaveOccurred())

		var level int
		var exp int64
		err = pool.QueryRow(ctx, `SELECT level, exp FROM character_data WHERE id = $1`, charID).Scan(&level, &exp)
		Expect(err).NotTo(HaveOccurred())
		Expect(level).To(Equal(5))
		Expect(exp).To(Equal(int64(125000)))
	})
})
