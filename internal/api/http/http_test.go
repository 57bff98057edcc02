package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httpapi "github.com/belmobile/belmobile-backend/internal/api/http"
	"github.com/belmobile/belmobile-backend/internal/api/http/middleware"
	"github.com/belmobile/belmobile-backend/internal/identity"
	"github.com/belmobile/belmobile-backend/internal/logger"
	"github.com/belmobile/belmobile-backend/internal/notify"
	"github.com/belmobile/belmobile-backend/internal/platform/platformtest"
	"github.com/belmobile/belmobile-backend/internal/session"
	"github.com/belmobile/belmobile-backend/internal/store"
)

type env struct {
	log      *zap.Logger
	db       *platformtest.FakeDocStore
	idp      *platformtest.FakeIdentity
	blobs    *platformtest.FakeBlob
	notifier *notify.Center
	store    *store.Store
	tracker  *session.Tracker
	auth     *identity.Service
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	e := &env{
		log:   logger.NewTestLogger(t),
		db:    platformtest.NewFakeDocStore(),
		idp:   platformtest.NewFakeIdentity(),
		blobs: platformtest.NewFakeBlob(),
	}
	e.notifier = notify.NewWithTTL(e.log, time.Minute)
	e.store = store.New(e.log, e.db, e.notifier)
	require.NoError(t, e.store.Subscribe(context.Background()))
	t.Cleanup(e.store.Stop)

	e.tracker = session.NewTracker(e.log)
	e.tracker.Watch(e.idp)
	t.Cleanup(e.tracker.Stop)

	e.auth = identity.NewService(e.log, e.idp, e.blobs, nil)
	return e
}

func (e *env) publicRouter() *gin.Engine {
	r := gin.New()
	httpapi.NewPublicHandler(e.log, e.store).Register(r.Group("/api/v1"), nil)
	return r
}

func (e *env) authRouter() *gin.Engine {
	r := gin.New()
	httpapi.NewAuthHandler(e.log, e.auth, e.idp, e.tracker).Register(r.Group("/api/v1"))
	return r
}

func (e *env) adminRouter() *gin.Engine {
	r := gin.New()
	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.AdminGuard(e.idp))
	httpapi.NewAdminHandler(e.log, e.store).Register(admin)
	httpapi.NewNotificationHandler(e.notifier).Register(admin)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func notificationMessages(e *env) []string {
	active := e.notifier.Active()
	msgs := make([]string, 0, len(active))
	for _, n := range active {
		msgs = append(msgs, n.Message)
	}
	return msgs
}

// bearer builds the header map for a token the fake provider accepts.
func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}
