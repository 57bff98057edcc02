package bootstrap_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/belmobile/belmobile-backend/internal/bootstrap"
	"github.com/belmobile/belmobile-backend/internal/identity"
	"github.com/belmobile/belmobile-backend/internal/logger"
	"github.com/belmobile/belmobile-backend/internal/notify"
	"github.com/belmobile/belmobile-backend/internal/platform/platformtest"
	"github.com/belmobile/belmobile-backend/internal/session"
	"github.com/belmobile/belmobile-backend/internal/store"
)

func buildTestRouter(t *testing.T) (*gin.Engine, *platformtest.FakeIdentity) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewTestLogger(t)
	db := platformtest.NewFakeDocStore()
	idp := platformtest.NewFakeIdentity(&platformtest.FakeUser{UID: "admin", Password: "secret123", Verified: true})
	blobs := platformtest.NewFakeBlob()
	notifier := notify.NewWithTTL(log, time.Minute)

	st := store.New(log, db, notifier)
	require.NoError(t, st.Subscribe(context.Background()))
	t.Cleanup(st.Stop)

	tracker := session.NewTracker(log)
	tracker.Watch(idp)
	t.Cleanup(tracker.Stop)
	idp.ResolveInitialSession()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "belmobile-backend",
		Version:     "test",
		Log:         log,
		DB:          db,
		Store:       st,
		Notifier:    notifier,
		Auth:        identity.NewService(log, idp, blobs, nil),
		Provider:    idp,
		Tracker:     tracker,
		CORSOrigins: []string{"*"},
		FormRate:    rate.Inf,
		FormBurst:   100,
	})
	return r, idp
}

func TestRouter_PublicAndGuardedRoutes(t *testing.T) {
	r, _ := buildTestRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/products", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/admin/reservations", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRouter_LoginThenAdminAccess(t *testing.T) {
	r, _ := buildTestRouter(t)

	body, _ := json.Marshal(map[string]string{
		"email": "admin@example.com", "password": "secret123",
	})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/v1/admin/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	token, _ := resp["token"].(string)
	require.NotEmpty(t, token)

	rr = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/api/v1/admin/reservations", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_SetsRequestID(t *testing.T) {
	r, _ := buildTestRouter(t)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/health", nil))
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
}
