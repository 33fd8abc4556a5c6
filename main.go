package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msomdec/fitme-accounts/internal/config"
	"github.com/msomdec/fitme-accounts/internal/domain"
	"github.com/msomdec/fitme-accounts/internal/handler"
	"github.com/msomdec/fitme-accounts/internal/repository/postgres"
	"github.com/msomdec/fitme-accounts/internal/repository/sqlite"
	"github.com/msomdec/fitme-accounts/internal/service"
	"github.com/msomdec/fitme-accounts/internal/storage/localfs"
	"github.com/msomdec/fitme-accounts/internal/storage/s3store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logOpts := &slog.HandlerOptions{Level: cfg.LogLevel}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	ctx := context.Background()

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied", "postgres", cfg.IsPostgres())

	files, err := openFileStore(ctx, cfg, db)
	if err != nil {
		slog.Error("failed to open upload store", "error", err)
		os.Exit(1)
	}
	slog.Info("upload store ready", "backend", cfg.UploadBackend)

	accountService := service.NewAccountService(db.Users(), service.NewBcryptHasher(cfg.BcryptCost))
	profileService := service.NewProfileService(db.Users(), files)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, accountService, profileService, cfg.MaxUploadBytes)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.Wrap(mux, cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "cors_origins", cfg.CORSOrigins)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-sigCtx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func openDatabase(ctx context.Context, cfg *config.Config) (domain.Database, error) {
	if cfg.IsPostgres() {
		db, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return db, nil
	}
	db, err := sqlite.New(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func openFileStore(ctx context.Context, cfg *config.Config, db domain.Database) (domain.FileStore, error) {
	switch cfg.UploadBackend {
	case config.UploadBackendS3:
		client, err := s3store.NewClient(ctx, s3store.Options{
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		})
		if err != nil {
			return nil, err
		}
		return s3store.New(client, cfg.S3.Bucket), nil
	case config.UploadBackendDB:
		sdb, ok := db.(*sqlite.DB)
		if !ok {
			return nil, fmt.Errorf("upload backend %q requires the SQLite database", cfg.UploadBackend)
		}
		return sdb.FileStore(), nil
	default:
		return localfs.New(cfg.UploadDir), nil
	}
}
