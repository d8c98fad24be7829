// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command osite runs the site content API server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/term"

	"github.com/olegiv/osite-go/internal/auth"
	"github.com/olegiv/osite-go/internal/config"
	"github.com/olegiv/osite-go/internal/content"
	"github.com/olegiv/osite-go/internal/handler/api"
	"github.com/olegiv/osite-go/internal/logging"
	"github.com/olegiv/osite-go/internal/media"
	"github.com/olegiv/osite-go/internal/middleware"
	"github.com/olegiv/osite-go/internal/session"
	"github.com/olegiv/osite-go/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")
	hashPassword := flag.Bool("hash-password", false, "Read a password from stdin and print its argon2id hash")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "oSite - site content API server\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OSITE_SESSION_SECRET       Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OSITE_SERVER_PORT          Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OSITE_ENV                  Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OSITE_REDIS_URL            Redis URL for the content store (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OSITE_ADMIN_EMAIL          Admin login email\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OSITE_ADMIN_PASSWORD_HASH  Admin password hash (see -hash-password)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OSITE_MEDIA_ENDPOINT       S3-compatible media store endpoint (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("osite %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if *hashPassword {
		if err := runHashPassword(); err != nil {
			_, _ = fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

// runHashPassword prompts for a password and prints its argon2id hash,
// for use as OSITE_ADMIN_PASSWORD_HASH.
func runHashPassword() error {
	_, _ = fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	_, _ = fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	if len(raw) == 0 {
		return errors.New("empty password")
	}

	hash, err := auth.HashPassword(string(raw))
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	// WARN and above are also retained in memory for the admin events view.
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	recentHandler := logging.NewRecentHandler(textHandler)
	logger := slog.New(recentHandler)
	slog.SetDefault(logger)

	// Content backend. A nil client keeps the server in backend-absent
	// mode: reads serve bundled defaults, writes are accepted with a
	// warning but not persisted.
	var redisClient redis.UniversalClient
	if cfg.UseRedis() {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parsing OSITE_REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		defer func() { _ = client.Close() }()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return fmt.Errorf("connecting to content backend: %w", err)
		}
		redisClient = client
		slog.Info("content backend connected", "key", cfg.ContentKey)
	} else {
		slog.Warn("no content backend configured, writes will not be persisted",
			"category", "content")
	}

	docCache := content.NewDocumentCache(cfg.CacheTTL())
	store := content.NewStore(redisClient, cfg.ContentKey, docCache, logger)
	repos := content.NewRepositories(store)

	if store.Available() {
		if err := store.Seed(context.Background()); err != nil {
			return fmt.Errorf("seeding content: %w", err)
		}
	}

	// Media object store, optional
	var mediaStore media.ObjectStore
	if cfg.UseMediaStore() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		mediaStore, err = media.NewStore(ctx, media.StoreConfig{
			Endpoint:  cfg.MediaEndpoint,
			AccessKey: cfg.MediaAccessKey,
			SecretKey: cfg.MediaSecretKey,
			Bucket:    cfg.MediaBucket,
			UseSSL:    cfg.MediaUseSSL,
		})
		cancel()
		if err != nil {
			return fmt.Errorf("initializing media store: %w", err)
		}
		slog.Info("media store connected", "endpoint", cfg.MediaEndpoint, "bucket", cfg.MediaBucket)
	} else {
		slog.Info("no media store configured, uploads disabled")
	}
	mediaService := media.NewService(mediaStore, logger)

	if cfg.AdminPasswordHash == "" {
		slog.Warn("OSITE_ADMIN_PASSWORD_HASH not set, admin login disabled", "category", "auth")
	}

	sessions := session.New(cfg.IsDevelopment())
	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	contactLimiter := middleware.NewGlobalRateLimiter(1, 5)

	apiHandler := api.NewHandler(api.Config{
		Repos:    repos,
		Store:    store,
		Cache:    docCache,
		Sessions: sessions,
		Admin: auth.Admin{
			Email:        cfg.AdminEmail,
			PasswordHash: cfg.AdminPasswordHash,
		},
		LoginLog: loginProtection,
		Media:    mediaService,
		Events:   recentHandler,
		Version:  versionInfo,
		Logger:   logger,
	})

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(sessions.LoadAndSave)
	r.Use(middleware.SkipCSRF("/api/contact", "/api/login"))
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig(
		[]byte(cfg.SessionSecret)[:32],
		cfg.IsDevelopment(),
		fmt.Sprintf("%d", cfg.ServerPort),
	)))

	r.Mount("/api", apiHandler.Routes(cfg.ContentCacheTTL, contactLimiter))
	r.Mount("/media", apiHandler.MediaRoutes(86400))

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // allow for media uploads on slow links
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server",
			"addr", cfg.ServerAddr(), "env", cfg.Env, "version", versionInfo.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
