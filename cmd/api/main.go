package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/belmobile/belmobile-backend/config"
	"github.com/belmobile/belmobile-backend/internal/bootstrap"
	cronjob "github.com/belmobile/belmobile-backend/internal/cron"
	"github.com/belmobile/belmobile-backend/internal/identity"
	"github.com/belmobile/belmobile-backend/internal/logger"
	"github.com/belmobile/belmobile-backend/internal/notify"
	"github.com/belmobile/belmobile-backend/internal/platform"
	"github.com/belmobile/belmobile-backend/internal/session"
	"github.com/belmobile/belmobile-backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.App.LogLevel, cfg.App.LogFormat)
	defer log.Sync()

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fb, err := bootstrap.InitFirebase(ctx, &cfg.Firebase)
	if err != nil {
		log.Fatal("firebase init failed", zap.Error(err))
	}
	defer fb.Firestore.Close()

	rdb, err := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		log.Fatal("redis connect failed", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
	} else {
		log.Info("redis not configured, login throttle disabled")
	}

	db := platform.NewFirestoreStore(fb.Firestore)
	provider := platform.NewFirebaseIdentity(fb.Auth, cfg.Firebase.WebAPIKey)
	blobs := platform.NewCloudStorage(fb.Bucket, cfg.Firebase.StorageBucket)

	notifier := notify.New(log)

	tracker := session.NewTracker(log)
	tracker.Watch(provider)
	defer tracker.Stop()
	provider.ResolveInitialSession()

	st := store.New(log, db, notifier)
	if cfg.App.SeedOnStart {
		if err := st.SeedIfEmpty(ctx); err != nil {
			log.Error("seeding failed, continuing with live data", zap.Error(err))
		}
	}
	if err := st.Subscribe(ctx); err != nil {
		log.Fatal("collection subscriptions failed", zap.Error(err))
	}
	defer st.Stop()

	authService := identity.NewService(log, provider, blobs, identity.NewThrottle(rdb))

	scheduler := cronjob.NewScheduler(log, st)
	scheduler.Start()
	defer scheduler.Stop()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "belmobile-backend",
		Version:     cfg.App.Version,
		Log:         log,
		DB:          db,
		Redis:       rdb,
		Store:       st,
		Notifier:    notifier,
		Auth:        authService,
		Provider:    provider,
		Tracker:     tracker,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Info("listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
