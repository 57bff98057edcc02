package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	httpapi "github.com/belmobile/belmobile-backend/internal/api/http"
	"github.com/belmobile/belmobile-backend/internal/api/http/middleware"
	"github.com/belmobile/belmobile-backend/internal/identity"
	"github.com/belmobile/belmobile-backend/internal/notify"
	"github.com/belmobile/belmobile-backend/internal/platform"
	"github.com/belmobile/belmobile-backend/internal/session"
	"github.com/belmobile/belmobile-backend/internal/store"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Log         *zap.Logger

	DB       platform.DocStore
	Redis    *redis.Client
	Store    *store.Store
	Notifier *notify.Center
	Auth     *identity.Service
	Provider platform.IdentityProvider
	Tracker  *session.Tracker

	CORSOrigins []string
	FormRate    rate.Limit
	FormBurst   int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(dep.Log))
	r.Use(middleware.RequestID(dep.Log))

	corsCfg := cors.DefaultConfig()
	if len(dep.CORSOrigins) == 1 && dep.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = dep.CORSOrigins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Request-Id")
	corsCfg.AllowMethods = append(corsCfg.AllowMethods, "PATCH")
	r.Use(cors.New(corsCfg))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")

	if dep.FormRate == 0 {
		dep.FormRate = rate.Every(time.Second)
	}
	if dep.FormBurst == 0 {
		dep.FormBurst = 5
	}

	public := httpapi.NewPublicHandler(dep.Log, dep.Store)
	public.Register(api, middleware.RateLimit(dep.FormRate, dep.FormBurst))

	authHandler := httpapi.NewAuthHandler(dep.Log, dep.Auth, dep.Provider, dep.Tracker)
	authHandler.Register(api)

	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AdminGuard(dep.Provider))

	adminHandler := httpapi.NewAdminHandler(dep.Log, dep.Store)
	adminHandler.Register(adminGroup)

	notificationHandler := httpapi.NewNotificationHandler(dep.Notifier)
	notificationHandler.Register(adminGroup)

	return r
}
