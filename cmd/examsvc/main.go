package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	api "github.com/MahmoudMoheyEldeen/examsApi/internal/api/http"
	"github.com/MahmoudMoheyEldeen/examsApi/internal/config"
	"github.com/MahmoudMoheyEldeen/examsApi/internal/db"
	"github.com/MahmoudMoheyEldeen/examsApi/internal/exam"
	"github.com/MahmoudMoheyEldeen/examsApi/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.FromEnv()

	// Connect before accepting traffic; a failed connect is fatal.
	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := openStore(connectCtx, cfg)
	cancel()
	if err != nil {
		logrus.WithError(err).Fatal("store connect failed")
	}

	blobs, err := storage.NewFSStore(cfg.UploadDir)
	if err != nil {
		logrus.WithError(err).Fatal("upload dir init failed")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(corsOptions(cfg)))
	r.Mount("/", api.NewRouter(store, blobs, cfg.MaxUploadBytes))

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logrus.WithFields(logrus.Fields{
			"addr":  cfg.HTTPAddr,
			"store": cfg.StoreDriver,
		}).Info("exams API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server stopped")
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("server shutdown")
	}
	if err := store.Close(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("store close")
	}
}

func openStore(ctx context.Context, cfg config.Config) (exam.Store, error) {
	switch cfg.StoreDriver {
	case "mongo":
		client, err := db.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		return exam.NewMongoStore(ctx, client, cfg.MongoDB)
	case "sqlite", "postgres":
		dbh, err := db.Open(ctx, db.Driver(cfg.StoreDriver), cfg.DBDSN)
		if err != nil {
			return nil, err
		}
		return exam.NewSQLStore(dbh, cfg.StoreDriver), nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

// corsOptions builds the single runtime-configurable policy: either a
// credentialed allow-list or fully open without credentials.
func corsOptions(cfg config.Config) cors.Options {
	if cfg.AllowAllOrigins() {
		return cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"*"},
			MaxAge:         300,
		}
	}
	return cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}
}
