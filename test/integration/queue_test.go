// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 eqemu-char-import Contributors

//go:build integration

package integration

import (
	"context"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/jwinky/eqemu-char-import/internal/queue"
)

var _ = Describe("Request queue", func() {
	ctx := context.Background()

	BeforeEach(func() {
		truncateAll(ctx)
	})

	It("returns pending requests oldest first", func() {
		repo := queue.NewPostgresRequestRepository(pool)
		for _, name := range []string{"First", "Second", "Third"} {
			Expect(repo.Enqueue(ctx, &queue.Request{CharName: name, Level: 1})).To(Succeed())
		}

		pending, err := repo.Pending(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(pending).To(HaveLen(3))
		Expect(pending[0].CharName).To(Equal("First"))
		Expect(pending[2].CharName).To(Equal("Third"))
	})

	It("counts requests per status", func() {
		repo := queue.NewPostgresRequestRepository(pool)
		a := &queue.Request{CharName: "A", Level: 1}
		b := &queue.Request{CharName: "B", Level: 1}
		Expect(repo.Enqueue(ctx, a)).To(Succeed())
		Expect(repo.Enqueue(ctx, b)).To(Succeed())
		Expect(repo.Complete(ctx, a.ID, "", "run-1")).To(Succeed())

		counts, err := repo.CountByStatus(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(counts[queue.StatusPending]).To(Equal(int64(1)))
		Expect(counts[queue.StatusComplete]).To(Equal(int64(1)))
	})

	It("rejects completing a missing request", func() {
		repo := queue.NewPostgresRequestRepository(pool)
		err := repo.Complete(ctx, 424242, "", "run-1")
		Expect(err).To(MatchError(queue.ErrNotFound))
	})

	It("rejects duplicate whitelist entries", func() {
		repo := queue.NewPostgresWhitelistRepository(pool)
		item := queue.WhitelistedItem{ItemID: 5001, Name: "Rusty Sword"}
		Expect(repo.Add(ctx, item)).To(Succeed())
		Expect(repo.Add(ctx, item)).To(MatchError(queue.ErrDuplicateWhitelistItem))

		items, err := repo.All(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(items).To(HaveLen(1))
	})
})
