// Copyright (c) 2025-2026 Fedele Penna
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pennaFedele/gambarie-summer-events/internal/cache"
	"github.com/pennaFedele/gambarie-summer-events/internal/captcha"
	"github.com/pennaFedele/gambarie-summer-events/internal/config"
	"github.com/pennaFedele/gambarie-summer-events/internal/handler"
	"github.com/pennaFedele/gambarie-summer-events/internal/importer"
	"github.com/pennaFedele/gambarie-summer-events/internal/logging"
	"github.com/pennaFedele/gambarie-summer-events/internal/middleware"
	"github.com/pennaFedele/gambarie-summer-events/internal/scheduler"
	"github.com/pennaFedele/gambarie-summer-events/internal/service"
	"github.com/pennaFedele/gambarie-summer-events/internal/session"
	"github.com/pennaFedele/gambarie-summer-events/internal/storage"
	"github.com/pennaFedele/gambarie-summer-events/internal/store"
	"github.com/pennaFedele/gambarie-summer-events/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Gambarie Summer Events - community events API\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GAMBARIE_SESSION_SECRET       Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GAMBARIE_DB_PATH              SQLite database path (default: ./data/gambarie.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GAMBARIE_SERVER_PORT          Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GAMBARIE_ENV                  Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GAMBARIE_UPLOADS_DIR          Image uploads directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GAMBARIE_REDIS_URL            Redis URL for the settings cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GAMBARIE_HCAPTCHA_SITE_KEY    hCaptcha site key (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GAMBARIE_HCAPTCHA_SECRET_KEY  hCaptcha secret key (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "\nFor more information, see: https://github.com/pennaFedele/gambarie-summer-events\n")
	}

	flag.Parse()

	// Handle -h/-help flag
	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	// Handle -v/-version flag
	if *showVersion {
		info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
		_, _ = fmt.Println(info.String())
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Initialize database
	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		err = db.Close()
		if err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	// Run migrations
	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also mirror WARN and ERROR logs into the audit log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	auditLogHandler := logging.NewAuditLogHandler(textHandler, db)
	logger = slog.New(auditLogHandler)
	slog.SetDefault(logger)
	slog.Info("audit log integration enabled", "min_level", "warn")

	// Initialize session manager
	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	// Initialize the settings cache backend
	appCache := cache.New(cfg)
	defer func() {
		if err := appCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	// Services
	auditService := service.NewAuditService(db)
	settingsService := service.NewSettingsService(db, appCache, auditService)
	bootstrapService := service.NewBootstrapService(db, auditService)
	csvImporter := importer.New(db, auditService)

	// Image upload storage
	files, err := storage.NewFileStore(cfg.UploadsDir, "/uploads")
	if err != nil {
		return fmt.Errorf("initializing upload storage: %w", err)
	}
	slog.Info("upload storage initialized", "dir", files.BaseDir())

	// hCaptcha verification
	verifier := captcha.NewVerifier(cfg.HCaptchaSecretKey, cfg.HCaptchaEnabled())
	if verifier.Enabled() {
		slog.Info("captcha verification enabled")
	} else {
		slog.Warn("captcha verification disabled")
	}

	// Login brute-force protection
	loginGate := middleware.NewLoginProtection()

	// Nightly audit log pruning
	jobs := scheduler.New(auditService, logger)
	if err := jobs.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer jobs.Stop()

	h := handler.NewHandler(handler.Deps{
		DB:        db,
		Config:    cfg,
		Sessions:  sessionManager,
		Settings:  settingsService,
		Audit:     auditService,
		Bootstrap: bootstrapService,
		Importer:  csvImporter,
		Files:     files,
		Captcha:   verifier,
		LoginGate: loginGate,
	})

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           h.Router(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for large uploads and slow connections
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
