package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/belmobile/belmobile-backend/internal/domain"
	"github.com/belmobile/belmobile-backend/internal/notify"
	"github.com/belmobile/belmobile-backend/internal/platform"
)

// SeedIfEmpty populates the external store from the built-in sample set when
// the products collection is empty. The check-then-act has a race window
// when two first loads run concurrently; accepted as a known limitation.
func (s *Store) SeedIfEmpty(ctx context.Context) error {
	docs, err := s.db.ReadAllOnce(ctx, domain.ColProducts)
	if err != nil {
		s.log.Error("seed empty-check failed", zap.Error(err))
		s.notifier.Add(notify.SeverityError, "Failed to seed initial database.")
		return err
	}
	if len(docs) > 0 {
		return nil
	}

	s.log.Info("database empty, seeding initial data")

	var batch []platform.BatchDoc
	for _, p := range domain.SeedProducts {
		batch = append(batch, platform.BatchDoc{Collection: domain.ColProducts, ID: docID(p.ID), Record: p})
	}
	for _, sh := range domain.SeedShops {
		batch = append(batch, platform.BatchDoc{Collection: domain.ColShops, ID: docID(sh.ID), Record: sh})
	}
	for _, sv := range domain.SeedServices {
		batch = append(batch, platform.BatchDoc{Collection: domain.ColServices, ID: docID(sv.ID), Record: sv})
	}
	for _, b := range domain.SeedBlogPosts {
		batch = append(batch, platform.BatchDoc{Collection: domain.ColBlogPosts, ID: docID(b.ID), Record: b})
	}
	for _, r := range domain.SeedReservations {
		batch = append(batch, platform.BatchDoc{Collection: domain.ColReservations, ID: docID(r.ID), Record: r})
	}
	for _, q := range domain.SeedQuotes {
		batch = append(batch, platform.BatchDoc{Collection: domain.ColQuotes, ID: docID(q.ID), Record: q})
	}
	for _, f := range domain.SeedFranchiseApplications {
		batch = append(batch, platform.BatchDoc{Collection: domain.ColFranchiseApplications, ID: docID(f.ID), Record: f})
	}

	if err := s.db.BatchWrite(ctx, batch); err != nil {
		s.log.Error("seed batch write failed", zap.Error(err))
		s.notifier.Add(notify.SeverityError, "Failed to seed initial database.")
		return err
	}

	s.log.Info("database seeded", zap.Int("documents", len(batch)))
	return nil
}
