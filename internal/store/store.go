// Package store maintains live in-memory mirrors of the seven domain
// collections and the write-through operations against the external
// document store. Mirrors are refreshed only by subscription snapshots,
// never by write results, so reads right after a write may still see the
// pre-write state until the round-trip completes.
package store

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/belmobile/belmobile-backend/internal/domain"
	"github.com/belmobile/belmobile-backend/internal/notify"
	"github.com/belmobile/belmobile-backend/internal/platform"
)

type Store struct {
	log      *zap.Logger
	db       platform.DocStore
	notifier *notify.Center

	mu                    sync.RWMutex
	reservations          []domain.Reservation
	quotes                []domain.Quote
	products              []domain.Product
	services              []domain.Service
	shops                 []domain.Shop
	franchiseApplications []domain.FranchiseApplication
	blogPosts             []domain.BlogPost

	stops []func()
}

func New(log *zap.Logger, db platform.DocStore, notifier *notify.Center) *Store {
	return &Store{log: log, db: db, notifier: notifier}
}

type colBinding struct {
	name  string
	apply func(docs []platform.Document)
}

func (s *Store) bindings() []colBinding {
	return []colBinding{
		{domain.ColReservations, func(docs []platform.Document) {
			items := decodeDocs[domain.Reservation](s.log, domain.ColReservations, docs)
			s.mu.Lock()
			s.reservations = items
			s.mu.Unlock()
		}},
		{domain.ColQuotes, func(docs []platform.Document) {
			items := decodeDocs[domain.Quote](s.log, domain.ColQuotes, docs)
			s.mu.Lock()
			s.quotes = items
			s.mu.Unlock()
		}},
		{domain.ColProducts, func(docs []platform.Document) {
			items := decodeDocs[domain.Product](s.log, domain.ColProducts, docs)
			s.mu.Lock()
			s.products = items
			s.mu.Unlock()
		}},
		{domain.ColServices, func(docs []platform.Document) {
			items := decodeDocs[domain.Service](s.log, domain.ColServices, docs)
			s.mu.Lock()
			s.services = items
			s.mu.Unlock()
		}},
		{domain.ColShops, func(docs []platform.Document) {
			items := decodeDocs[domain.Shop](s.log, domain.ColShops, docs)
			s.mu.Lock()
			s.shops = items
			s.mu.Unlock()
		}},
		{domain.ColFranchiseApplications, func(docs []platform.Document) {
			items := decodeDocs[domain.FranchiseApplication](s.log, domain.ColFranchiseApplications, docs)
			s.mu.Lock()
			s.franchiseApplications = items
			s.mu.Unlock()
		}},
		{domain.ColBlogPosts, func(docs []platform.Document) {
			items := decodeDocs[domain.BlogPost](s.log, domain.ColBlogPosts, docs)
			s.mu.Lock()
			s.blogPosts = items
			s.mu.Unlock()
		}},
	}
}

// Subscribe establishes one live listener per collection. Every snapshot
// replaces the whole mirror. Permission failures surface as a notification;
// any other subscription error is logged only, the external client owns
// retry behavior.
func (s *Store) Subscribe(ctx context.Context) error {
	for _, b := range s.bindings() {
		b := b
		stop, err := s.db.Subscribe(ctx, b.name, b.apply, func(err error) {
			if platform.IsPermissionDenied(err) {
				s.notifier.Add(notify.SeverityError, "Permission denied for "+b.name)
			}
			s.log.Error("snapshot listener error",
				zap.String("collection", b.name), zap.Error(err))
		})
		if err != nil {
			s.Stop()
			return err
		}
		s.stops = append(s.stops, stop)
	}
	return nil
}

// Stop tears down every active listener.
func (s *Store) Stop() {
	for _, stop := range s.stops {
		stop()
	}
	s.stops = nil
}

// Resync replaces every mirror from a one-shot read. Used by the nightly
// job to bound drift if a listener silently died.
func (s *Store) Resync(ctx context.Context) {
	for _, b := range s.bindings() {
		docs, err := s.db.ReadAllOnce(ctx, b.name)
		if err != nil {
			s.log.Error("resync read failed", zap.String("collection", b.name), zap.Error(err))
			continue
		}
		b.apply(docs)
		s.log.Info("collection resynced", zap.String("collection", b.name), zap.Int("count", len(docs)))
	}
}

func decodeDocs[T any](log *zap.Logger, collection string, docs []platform.Document) []T {
	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		raw, err := json.Marshal(doc.Data)
		if err != nil {
			log.Warn("undecodable document", zap.String("collection", collection), zap.String("id", doc.ID), zap.Error(err))
			continue
		}
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			log.Warn("undecodable document", zap.String("collection", collection), zap.String("id", doc.ID), zap.Error(err))
			continue
		}
		items = append(items, v)
	}
	return items
}

// Mirror reads. Each returns a copy; the mirror is eventually consistent
// with the external store and never authoritative.

func (s *Store) Reservations() []domain.Reservation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]domain.Reservation, 0, len(s.reservations)), s.reservations...)
}

func (s *Store) Quotes() []domain.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]domain.Quote, 0, len(s.quotes)), s.quotes...)
}

func (s *Store) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]domain.Product, 0, len(s.products)), s.products...)
}

func (s *Store) Services() []domain.Service {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]domain.Service, 0, len(s.services)), s.services...)
}

func (s *Store) Shops() []domain.Shop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]domain.Shop, 0, len(s.shops)), s.shops...)
}

func (s *Store) FranchiseApplications() []domain.FranchiseApplication {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]domain.FranchiseApplication, 0, len(s.franchiseApplications)), s.franchiseApplications...)
}

func (s *Store) BlogPosts() []domain.BlogPost {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]domain.BlogPost, 0, len(s.blogPosts)), s.blogPosts...)
}

// Write operations. All are fire-and-forget: exactly one write call, any
// failure is logged and converted into an error notification, never
// re-thrown and never retried.

func newID() int64 { return time.Now().UnixMilli() }

func docID(id int64) string { return strconv.FormatInt(id, 10) }

func today() string { return time.Now().Format("2006-01-02") }

func fieldsOf(record interface{}) map[string]interface{} {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}
	return fields
}

func (s *Store) finishWrite(op string, err error, successMsg, errorMsg string) {
	if err != nil {
		s.log.Error(op+" failed", zap.Error(err))
		s.notifier.Add(notify.SeverityError, errorMsg)
		return
	}
	s.notifier.Add(notify.SeveritySuccess, successMsg)
}

// AddReservation stores a new reservation with a timestamp id, today's date
// and pending status. The returned record reflects what was submitted, not
// the mirror.
func (s *Store) AddReservation(ctx context.Context, r domain.Reservation) domain.Reservation {
	r.ID = newID()
	r.Date = today()
	r.Status = domain.ReservationPending

	err := s.db.Write(ctx, domain.ColReservations, docID(r.ID), r)
	s.finishWrite("add reservation", err,
		"Reservation submitted successfully!", "Failed to submit reservation.")
	return r
}

func (s *Store) AddQuote(ctx context.Context, q domain.Quote) domain.Quote {
	q.ID = newID()
	q.Date = today()
	q.Status = domain.QuoteNew

	err := s.db.Write(ctx, domain.ColQuotes, docID(q.ID), q)
	s.finishWrite("add quote", err,
		"Quote request sent successfully!", "Failed to send quote request.")
	return q
}

func (s *Store) AddFranchiseApplication(ctx context.Context, a domain.FranchiseApplication) domain.FranchiseApplication {
	a.ID = newID()
	a.Date = today()
	a.Status = domain.FranchiseNew

	err := s.db.Write(ctx, domain.ColFranchiseApplications, docID(a.ID), a)
	s.finishWrite("add franchise application", err,
		"Application submitted successfully!", "Failed to submit application.")
	return a
}

// Status transitions are not validated; the enums are documentation only.

func (s *Store) UpdateReservationStatus(ctx context.Context, id int64, status domain.ReservationStatus) {
	err := s.db.Update(ctx, domain.ColReservations, docID(id), map[string]interface{}{"status": status})
	s.finishWrite("update reservation status", err,
		"Reservation status updated.", "Failed to update status.")
}

func (s *Store) UpdateQuoteStatus(ctx context.Context, id int64, status domain.QuoteStatus) {
	err := s.db.Update(ctx, domain.ColQuotes, docID(id), map[string]interface{}{"status": status})
	s.finishWrite("update quote status", err,
		"Quote status updated.", "Failed to update status.")
}

func (s *Store) UpdateFranchiseApplicationStatus(ctx context.Context, id int64, status domain.FranchiseApplicationStatus) {
	err := s.db.Update(ctx, domain.ColFranchiseApplications, docID(id), map[string]interface{}{"status": status})
	s.finishWrite("update franchise application status", err,
		"Application status updated.", "Failed to update status.")
}

func (s *Store) AddProduct(ctx context.Context, p domain.Product) domain.Product {
	p.ID = newID()

	err := s.db.Write(ctx, domain.ColProducts, docID(p.ID), p)
	s.finishWrite("add product", err,
		"Product added successfully.", "Failed to add product.")
	return p
}

func (s *Store) UpdateProduct(ctx context.Context, p domain.Product) {
	err := s.db.Update(ctx, domain.ColProducts, docID(p.ID), fieldsOf(p))
	s.finishWrite("update product", err,
		"Product updated successfully.", "Failed to update product.")
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) {
	err := s.db.Delete(ctx, domain.ColProducts, docID(id))
	s.finishWrite("delete product", err,
		"Product deleted.", "Failed to delete product.")
}

// UpdateShop is the only shop mutation; shops are never created or deleted
// here.
func (s *Store) UpdateShop(ctx context.Context, shop domain.Shop) {
	err := s.db.Update(ctx, domain.ColShops, docID(shop.ID), fieldsOf(shop))
	s.finishWrite("update shop", err,
		"Shop details updated.", "Failed to update shop.")
}

func (s *Store) AddBlogPost(ctx context.Context, post domain.BlogPost) domain.BlogPost {
	post.ID = newID()
	post.Date = today()

	err := s.db.Write(ctx, domain.ColBlogPosts, docID(post.ID), post)
	s.finishWrite("add blog post", err,
		"Article published.", "Failed to publish article.")
	return post
}

func (s *Store) UpdateBlogPost(ctx context.Context, post domain.BlogPost) {
	err := s.db.Update(ctx, domain.ColBlogPosts, docID(post.ID), fieldsOf(post))
	s.finishWrite("update blog post", err,
		"Article updated.", "Failed to update article.")
}

func (s *Store) DeleteBlogPost(ctx context.Context, id int64) {
	err := s.db.Delete(ctx, domain.ColBlogPosts, docID(id))
	s.finishWrite("delete blog post", err,
		"Article deleted.", "Failed to delete article.")
}
