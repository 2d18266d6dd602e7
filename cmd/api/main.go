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
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-scheduler/internal/db"
	"github.com/BruksfildServices01/clinic-scheduler/internal/logger"
	"github.com/BruksfildServices01/clinic-scheduler/internal/msgcache"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
	"github.com/BruksfildServices01/clinic-scheduler/internal/routes"
	"github.com/BruksfildServices01/clinic-scheduler/internal/storage"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()

	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		if cfg.JWTSecret == "changeme" {
			return errors.New("JWT_SECRET must be set in production")
		}
	}

	db, err := dbpkg.NewDB(ctx, cfg, log)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	// ======================================================
	// AUDIT
	// ======================================================
	auditDispatcher := audit.NewDispatcher(audit.New(db), log)
	defer auditDispatcher.Close()

	// ======================================================
	// NOTIFICATIONS
	// ======================================================
	cache, closeCache, err := messageCache(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeCache()

	notifier, err := notifiers(cfg, cache, log)
	if err != nil {
		return err
	}
	notifyDispatcher := notify.NewDispatcher(notifier, log)
	defer notifyDispatcher.Close()

	// ======================================================
	// MEDIA
	// ======================================================
	var uploader storage.Uploader
	if cfg.S3Enabled() {
		uploader = storage.NewS3Uploader(storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.MediaPublicURL,
		})
	} else {
		log.Warn("S3 not configured, media uploads disabled")
	}

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	routes.RegisterRoutes(r, routes.Dependencies{
		DB:       db,
		Config:   cfg,
		Log:      log,
		Audit:    auditDispatcher,
		Notifier: notifyDispatcher,
		Uploader: uploader,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           http.TimeoutHandler(r, cfg.RequestTimeout, `{"error":"request_timeout"}`),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.RequestTimeout,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// messageCache prefers Redis so chat message ids survive restarts; the
// in-memory store is swept by a cron janitor.
func messageCache(ctx context.Context, cfg *config.Config, log *zap.Logger) (msgcache.Store, func(), error) {
	if cfg.RedisURL != "" {
		client, err := msgcache.DialRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		log.Info("message cache: redis")
		return msgcache.NewRedisStore(client, cfg.MessageCacheTTL), func() { _ = client.Close() }, nil
	}

	mem := msgcache.NewMemoryStore(cfg.MessageCacheTTL)
	janitor, err := msgcache.StartJanitor(mem, log)
	if err != nil {
		return nil, nil, err
	}
	log.Info("message cache: memory")
	return mem, func() { <-janitor.Stop().Done() }, nil
}

func notifiers(cfg *config.Config, cache msgcache.Store, log *zap.Logger) (notify.NotificationSender, error) {
	var senders notify.Multi

	if cfg.TelegramEnabled() {
		tg, err := notify.NewTelegramSender(cfg.TelegramToken, cfg.TelegramChatID, cache, log)
		if err != nil {
			return nil, err
		}
		senders = append(senders, tg)
	}

	if cfg.SMSEnabled() {
		senders = append(senders, notify.NewSMSSender(
			cfg.TwilioAccountSID,
			cfg.TwilioAuthToken,
			cfg.TwilioFrom,
			cfg.TwilioTo,
		))
	}

	if len(senders) == 0 {
		log.Warn("no notification channel configured")
		return notify.Noop{}, nil
	}
	return senders, nil
}
