package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/belmobile/belmobile-backend/internal/domain"
)

func TestCreateReservation(t *testing.T) {
	e := newEnv(t)
	r := e.publicRouter()

	rr := doJSON(t, r, "POST", "/api/v1/reservations", map[string]interface{}{
		"name":     "Alice Martin",
		"email":    "alice@example.com",
		"phone":    "+32 470 11 22 33",
		"device":   "iPhone 13",
		"service":  "Screen replacement",
		"shop":     "Brussels Center",
		"timeSlot": "10:00",
	}, nil)
	require.Equal(t, http.StatusAccepted, rr.Code)

	var created domain.Reservation
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, domain.ReservationPending, created.Status)
	assert.NotEmpty(t, created.Date)

	assert.Equal(t, 1, e.db.Count(domain.ColReservations))
	assert.Contains(t, notificationMessages(e), "Reservation submitted successfully!")
}

func TestCreateReservation_MissingFields(t *testing.T) {
	e := newEnv(t)
	r := e.publicRouter()

	rr := doJSON(t, r, "POST", "/api/v1/reservations", map[string]interface{}{
		"name":  "Alice Martin",
		"email": "not-an-email",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 0, e.db.Count(domain.ColReservations))
	assert.Empty(t, e.notifier.Active())
}

func TestCreateQuote(t *testing.T) {
	e := newEnv(t)
	r := e.publicRouter()

	rr := doJSON(t, r, "POST", "/api/v1/quotes", map[string]interface{}{
		"name":      "Bob Peeters",
		"email":     "bob@example.com",
		"device":    "Galaxy S21",
		"condition": "Good",
	}, nil)
	require.Equal(t, http.StatusAccepted, rr.Code)

	var created domain.Quote
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, domain.QuoteNew, created.Status)

	assert.Contains(t, notificationMessages(e), "Quote request sent successfully!")
}

func TestCreateFranchiseApplication(t *testing.T) {
	e := newEnv(t)
	r := e.publicRouter()

	rr := doJSON(t, r, "POST", "/api/v1/franchise-applications", map[string]interface{}{
		"name":   "Carla Janssens",
		"email":  "carla@example.com",
		"city":   "Antwerp",
		"budget": "50k-100k",
	}, nil)
	require.Equal(t, http.StatusAccepted, rr.Code)

	assert.Equal(t, 1, e.db.Count(domain.ColFranchiseApplications))
	assert.Contains(t, notificationMessages(e), "Application submitted successfully!")
}

func TestCreateReservation_WriteFailureStillAccepted(t *testing.T) {
	e := newEnv(t)
	r := e.publicRouter()

	e.db.WriteErr = assert.AnError
	rr := doJSON(t, r, "POST", "/api/v1/reservations", map[string]interface{}{
		"name":    "Alice Martin",
		"email":   "alice@example.com",
		"phone":   "+32 470 11 22 33",
		"device":  "iPhone 13",
		"service": "Screen replacement",
	}, nil)

	// Fire-and-forget: the request itself does not fail, the outcome lands
	// in the notification center.
	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.Contains(t, notificationMessages(e), "Failed to submit reservation.")
}

func TestListProducts_ReadsMirror(t *testing.T) {
	e := newEnv(t)
	r := e.publicRouter()

	e.store.AddProduct(context.Background(), domain.Product{
		Name: "iPhone 12", Category: "Smartphones", Price: 549, InStock: true,
	})

	rr := doJSON(t, r, "GET", "/api/v1/products", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var products []domain.Product
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "iPhone 12", products[0].Name)
}

func TestListEndpointsEmptyMirrors(t *testing.T) {
	e := newEnv(t)
	r := e.publicRouter()

	for _, path := range []string{
		"/api/v1/products",
		"/api/v1/services",
		"/api/v1/shops",
		"/api/v1/blog-posts",
	} {
		rr := doJSON(t, r, "GET", path, nil, nil)
		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.Equal(t, "[]", rr.Body.String(), path)
	}
}
