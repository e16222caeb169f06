package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/jobboard/config"
	"github.com/yoockh/jobboard/internal/api/handlers"
	"github.com/yoockh/jobboard/internal/api/middleware"
	"github.com/yoockh/jobboard/internal/api/routes"
	"github.com/yoockh/jobboard/internal/identity"
	"github.com/yoockh/jobboard/internal/logger"
	"github.com/yoockh/jobboard/internal/repositories/kvstore"
	mongorepo "github.com/yoockh/jobboard/internal/repositories/mongo"
	pgrepo "github.com/yoockh/jobboard/internal/repositories/postgres"
	"github.com/yoockh/jobboard/internal/services"
	"github.com/yoockh/jobboard/internal/storage"
	"github.com/yoockh/jobboard/internal/views"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.New(cfg.LogLevel)
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := config.NewKVStore(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("kv store init failed")
	}
	defer closeStore()

	profiles, closeProfiles := openProfiles(cfg, log)
	defer closeProfiles()

	var uploader storage.Uploader
	if cfg.ResumeBucket != "" {
		gcs, err := storage.NewGCSUploader(ctx, cfg.ResumeBucket, cfg.ResumeCredentials)
		if err != nil {
			log.WithError(err).Warn("resume archive unavailable")
		} else {
			defer gcs.Close()
			uploader = gcs
		}
	}

	provider := identity.Setup(ctx, identity.SetupOptions{
		Backend:   cfg.IdentityBackend,
		ConfigURL: cfg.IdentityConfigURL,
		BaseURL:   cfg.IdentityBaseURL,
	}, log)

	var progress services.Progress = services.NoProgress{}
	if cfg.ApplyProgressDelays {
		progress = services.NewDelayProgress()
	}

	jobSvc := services.NewJobService(kvstore.NewJobRepo(store, log), log)
	appSvc := services.NewApplicationService(kvstore.NewApplicationRepo(store, log), uploader, progress, log)
	authSvc := services.NewAuthService(provider, profiles, log)

	sessions := middleware.NewSessions(cfg.SessionSecret, gin.Mode() == gin.ReleaseMode)
	if !sessions.Enabled() {
		log.Info("SESSION_SECRET not set; sign-in is not remembered")
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	routes.RegisterRoutes(r, routes.Deps{
		Templates:        views.MustParse(),
		Sessions:         sessions,
		Jobs:             handlers.NewJobHandler(jobSvc, cfg.LogoToken),
		Live:             handlers.NewLiveHandler(jobSvc, cfg.LogoToken, log),
		Apply:            handlers.NewApplyHandler(appSvc, cfg.LogoToken, cfg.ApplyConfetti),
		Auth:             handlers.NewAuthHandler(authSvc, sessions, log),
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("shutdown")
	}
}

// openProfiles picks the store for signup profile documents. Profiles are
// optional; any failure leaves signup working without them.
func openProfiles(cfg config.Config, log *logrus.Logger) (services.ProfileStore, func()) {
	noop := func() {}
	store := cfg.ProfileStore
	if store == "" && cfg.MongoURI != "" {
		store = "mongo"
	}

	switch store {
	case "mongo":
		client, err := config.InitMongo(cfg.MongoURI)
		if err != nil {
			log.WithError(err).Warn("MongoDB unavailable; profiles will not be written")
			return nil, noop
		}
		db := client.Database(cfg.MongoDB)
		if err := config.EnsureMongoIndexes(db); err != nil {
			log.WithError(err).Warn("mongo index setup failed")
		}
		log.Info("MongoDB connected")
		return mongorepo.NewProfileRepo(db), func() { _ = client.Disconnect(context.Background()) }

	case "postgres":
		db, err := config.InitPostgres(cfg.PostgresURI)
		if err != nil {
			log.WithError(err).Warn("PostgreSQL unavailable; profiles will not be written")
			return nil, noop
		}
		repo, err := pgrepo.NewProfileRepo(db)
		if err != nil {
			log.WithError(err).Warn("profiles table migration failed")
			return nil, noop
		}
		log.Info("PostgreSQL connected for profiles")
		return repo, func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}

	case "":
		return nil, noop
	default:
		log.WithField("store", store).Warn("unknown PROFILE_STORE; profiles will not be written")
		return nil, noop
	}
}
