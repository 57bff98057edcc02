package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/belmobile/belmobile-backend/internal/domain"
	"github.com/belmobile/belmobile-backend/internal/logger"
	"github.com/belmobile/belmobile-backend/internal/notify"
	"github.com/belmobile/belmobile-backend/internal/platform"
	"github.com/belmobile/belmobile-backend/internal/platform/platformtest"
)

func newTestStore(t *testing.T) (*Store, *platformtest.FakeDocStore, *notify.Center) {
	t.Helper()
	db := platformtest.NewFakeDocStore()
	center := notify.NewWithTTL(logger.NewTestLogger(t), time.Minute)
	s := New(logger.NewTestLogger(t), db, center)
	return s, db, center
}

func TestAddReservationWritesThrough(t *testing.T) {
	s, db, center := newTestStore(t)
	require.NoError(t, s.Subscribe(context.Background()))
	defer s.Stop()

	created := s.AddReservation(context.Background(), domain.Reservation{
		Name:    "Maya Peeters",
		Email:   "maya@example.com",
		Device:  "iPhone 12",
		Service: "Screen replacement",
	})

	assert.NotZero(t, created.ID)
	assert.Equal(t, domain.ReservationPending, created.Status)
	assert.Equal(t, time.Now().Format("2006-01-02"), created.Date)

	// The fake delivers snapshots synchronously, so the mirror caught up.
	mirror := s.Reservations()
	require.Len(t, mirror, 1)
	assert.Equal(t, created.ID, mirror[0].ID)

	msgs := center.Active()
	require.Len(t, msgs, 1)
	assert.Equal(t, notify.SeveritySuccess, msgs[0].Severity)
	assert.Equal(t, "Reservation submitted successfully!", msgs[0].Message)
	assert.Equal(t, 1, db.WriteCalls)
}

func TestWriteFailureNotifiesOnceAndLeavesMirror(t *testing.T) {
	s, db, center := newTestStore(t)
	require.NoError(t, s.Subscribe(context.Background()))
	defer s.Stop()

	seeded := s.AddProduct(context.Background(), domain.Product{Name: "iPhone 13", Price: 549})
	require.Len(t, s.Products(), 1)
	center.Dismiss(center.Active()[0].ID)

	db.WriteErr = platform.NewError(platform.KindUnavailable, "UNAVAILABLE", errors.New("backend rejected"))
	s.UpdateProduct(context.Background(), domain.Product{ID: seeded.ID, Name: "iPhone 13", Price: 499})

	msgs := center.Active()
	require.Len(t, msgs, 1, "exactly one error notification")
	assert.Equal(t, notify.SeverityError, msgs[0].Severity)
	assert.Equal(t, "Failed to update product.", msgs[0].Message)

	mirror := s.Products()
	require.Len(t, mirror, 1)
	assert.Equal(t, float64(549), mirror[0].Price, "mirror unchanged until a successful snapshot")
}

func TestExternalDeleteDisappearsFromMirror(t *testing.T) {
	s, db, _ := newTestStore(t)
	require.NoError(t, s.Subscribe(context.Background()))
	defer s.Stop()

	p := s.AddProduct(context.Background(), domain.Product{Name: "Pixel 7"})
	require.Len(t, s.Products(), 1)

	db.DeleteExternally(domain.ColProducts, docID(p.ID))

	assert.Empty(t, s.Products())
}

func TestSnapshotReplacesWholeMirror(t *testing.T) {
	s, db, _ := newTestStore(t)
	require.NoError(t, s.Subscribe(context.Background()))
	defer s.Stop()

	require.NoError(t, db.Write(context.Background(), domain.ColShops, "1",
		domain.Shop{ID: 1, Name: "Belmobile Ghent", City: "Ghent"}))
	require.NoError(t, db.Write(context.Background(), domain.ColShops, "2",
		domain.Shop{ID: 2, Name: "Belmobile Antwerp", City: "Antwerp"}))

	require.Len(t, s.Shops(), 2)

	db.DeleteExternally(domain.ColShops, "1")
	shops := s.Shops()
	require.Len(t, shops, 1)
	assert.Equal(t, int64(2), shops[0].ID)
}

func TestPermissionDeniedSubscriptionNotifies(t *testing.T) {
	s, db, center := newTestStore(t)
	require.NoError(t, s.Subscribe(context.Background()))
	defer s.Stop()

	db.FailSubscription(domain.ColQuotes,
		platform.NewError(platform.KindPermissionDenied, "PERMISSION_DENIED", errors.New("rules")))

	msgs := center.Active()
	require.Len(t, msgs, 1)
	assert.Equal(t, "Permission denied for quotes", msgs[0].Message)
}

func TestOtherSubscriptionErrorsAreSwallowed(t *testing.T) {
	s, db, center := newTestStore(t)
	require.NoError(t, s.Subscribe(context.Background()))
	defer s.Stop()

	db.FailSubscription(domain.ColQuotes,
		platform.NewError(platform.KindUnavailable, "UNAVAILABLE", errors.New("transient")))

	assert.Empty(t, center.Active(), "non-permission errors are logged only")
}

func TestStatusUpdateIsNotValidated(t *testing.T) {
	s, _, center := newTestStore(t)
	require.NoError(t, s.Subscribe(context.Background()))
	defer s.Stop()

	r := s.AddReservation(context.Background(), domain.Reservation{Name: "Jonas"})
	center.Dismiss(center.Active()[0].ID)

	// cancelled -> approved is accepted; the enum is documentation only.
	s.UpdateReservationStatus(context.Background(), r.ID, domain.ReservationCancelled)
	s.UpdateReservationStatus(context.Background(), r.ID, domain.ReservationApproved)

	mirror := s.Reservations()
	require.Len(t, mirror, 1)
	assert.Equal(t, domain.ReservationApproved, mirror[0].Status)
}

func TestSeedIfEmptyPopulatesAllCollections(t *testing.T) {
	s, db, _ := newTestStore(t)

	require.NoError(t, s.SeedIfEmpty(context.Background()))

	assert.Equal(t, len(domain.SeedProducts), db.Count(domain.ColProducts))
	assert.Equal(t, len(domain.SeedShops), db.Count(domain.ColShops))
	assert.Equal(t, len(domain.SeedServices), db.Count(domain.ColServices))
	assert.Equal(t, len(domain.SeedBlogPosts), db.Count(domain.ColBlogPosts))
	assert.Equal(t, len(domain.SeedReservations), db.Count(domain.ColReservations))
	assert.Equal(t, len(domain.SeedQuotes), db.Count(domain.ColQuotes))
	assert.Equal(t, len(domain.SeedFranchiseApplications), db.Count(domain.ColFranchiseApplications))
	assert.Equal(t, 1, db.BatchCalls)
}

func TestSeedIfEmptyRunsAtMostOnce(t *testing.T) {
	s, db, _ := newTestStore(t)

	require.NoError(t, s.SeedIfEmpty(context.Background()))
	require.NoError(t, s.SeedIfEmpty(context.Background()))

	assert.Equal(t, 1, db.BatchCalls, "repeated empty-check must observe a non-empty products collection")
	assert.Equal(t, len(domain.SeedProducts), db.Count(domain.ColProducts))
}

func TestSeedFailureNotifies(t *testing.T) {
	s, db, center := newTestStore(t)
	db.WriteErr = platform.NewError(platform.KindPermissionDenied, "PERMISSION_DENIED", errors.New("rules"))

	err := s.SeedIfEmpty(context.Background())
	require.Error(t, err)

	msgs := center.Active()
	require.Len(t, msgs, 1)
	assert.Equal(t, "Failed to seed initial database.", msgs[0].Message)
}

func TestResyncRefreshesMirrors(t *testing.T) {
	s, db, _ := newTestStore(t)

	// No live subscription: simulate a dead listener by writing directly.
	require.NoError(t, db.Write(context.Background(), domain.ColBlogPosts, "1",
		domain.BlogPost{ID: 1, Title: "Battery signs"}))
	assert.Empty(t, s.BlogPosts())

	s.Resync(context.Background())

	posts := s.BlogPosts()
	require.Len(t, posts, 1)
	assert.Equal(t, "Battery signs", posts[0].Title)
}

func TestStopTearsDownListeners(t *testing.T) {
	s, db, _ := newTestStore(t)
	require.NoError(t, s.Subscribe(context.Background()))

	s.AddProduct(context.Background(), domain.Product{Name: "iPad Air"})
	require.Len(t, s.Products(), 1)

	s.Stop()

	db.DeleteExternally(domain.ColProducts, docID(s.Products()[0].ID))
	assert.Len(t, s.Products(), 1, "snapshots after Stop must not land")
}
