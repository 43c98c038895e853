// Package main is the entry point for the newsdesk server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"newsdesk/internal/acl"
	"newsdesk/internal/auth"
	"newsdesk/internal/cache"
	"newsdesk/internal/config"
	"newsdesk/internal/database"
	"newsdesk/internal/handlers"
	"newsdesk/internal/middleware"
	"newsdesk/internal/newsroom"
	"newsdesk/internal/render"
	"newsdesk/internal/router"
	"newsdesk/internal/session"
	"newsdesk/internal/storage"
	"newsdesk/internal/store"
	"newsdesk/internal/store/memstore"
)

// backend is the storage the newsroom runs on.
type backend struct {
	repo   newsroom.Repositories
	users  auth.UserDirectory
	perms  acl.Repository
	health handlers.Pinger // nil when there is nothing to ping
	close  func()
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"storage", cfg.StorageDriver,
	)

	ctx := context.Background()

	// Every seeded account shares one password.
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.MockPassword), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash seed password", "error", err)
		os.Exit(1)
	}

	be, err := openBackend(ctx, cfg, string(hash))
	if err != nil {
		slog.Error("failed to open storage", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}
	defer be.close()

	// Connect to Valkey (sessions + page cache).
	valkeyClient, err := cache.ConnectValkey(ctx, cfg.ValkeyAddr(), cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Session cookies are HTTPS-only outside development.
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	matrix := acl.New(be.perms)
	if err := matrix.Load(ctx); err != nil {
		slog.Error("failed to load permissions", "error", err)
		os.Exit(1)
	}

	news := newsroom.New(be.repo, matrix)
	manager := auth.NewManager(sessionStore, be.users, be.repo.Logs)

	renderer, err := render.New(news)
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	// Uploads go to S3 when configured, otherwise to placeholder URLs.
	var media storage.Store = storage.NewMock()
	s3Client, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicURL)
	switch {
	case err != nil:
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	case s3Client != nil:
		media = s3Client
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	default:
		slog.Warn("s3 storage not configured, uploads return placeholder URLs")
	}

	pageCache := cache.NewPageCache(valkeyClient, cfg.PageCacheTTL)

	authLimiter := middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)
	defer authLimiter.Stop()

	backends := map[string]handlers.Pinger{
		"valkey": handlers.PingFunc(func(ctx context.Context) error { return valkeyClient.Ping(ctx).Err() }),
	}
	if be.health != nil {
		backends["database"] = be.health
	}

	r := router.New(router.Deps{
		Sessions:      manager,
		Matrix:        matrix,
		Admin:         handlers.NewAdmin(renderer, news, matrix, media, pageCache),
		Auth:          handlers.NewAuth(renderer, manager),
		Public:        handlers.NewPublic(renderer, news, pageCache),
		Health:        handlers.Health(backends),
		AuthLimiter:   authLimiter,
		SecureCookies: secureCookies,
	})

	// WriteTimeout covers media uploads on slow links.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// openBackend builds the repositories for the configured driver. The
// memory driver starts from the seeded dataset on every boot; postgres is
// migrated and seeded once.
func openBackend(ctx context.Context, cfg *config.Config, passwordHash string) (*backend, error) {
	if cfg.StorageDriver != config.StoragePostgres {
		mem := memstore.New(passwordHash)
		return &backend{
			repo: newsroom.Repositories{
				Users:    mem.Users,
				Posts:    mem.Posts,
				Comments: mem.Comments,
				Likes:    mem.Likes,
				Logs:     mem.Logs,
				Settings: mem.Settings,
			},
			users: mem.Users,
			perms: mem.Permissions,
			close: func() {},
		}, nil
	}

	db, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	if err := database.Seed(ctx, db, passwordHash); err != nil {
		db.Close()
		return nil, err
	}

	users := store.NewUserStore(db)
	return &backend{
		repo: newsroom.Repositories{
			Users:    users,
			Posts:    store.NewPostStore(db),
			Comments: store.NewCommentStore(db),
			Likes:    store.NewLikeStore(db),
			Logs:     store.NewActivityLogStore(db),
			Settings: store.NewSiteSettingStore(db),
		},
		users:  users,
		perms:  store.NewPermissionStore(db),
		health: handlers.PingFunc(db.PingContext),
		close:  func() { db.Close() },
	}, nil
}
