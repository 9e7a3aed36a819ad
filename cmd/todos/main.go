package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sun1tar/todo-web/internal/config"
	handlers "github.com/sun1tar/todo-web/internal/http"
	customMiddleware "github.com/sun1tar/todo-web/internal/middleware"
	"github.com/sun1tar/todo-web/internal/repository"
	"github.com/sun1tar/todo-web/internal/service"
	"github.com/sun1tar/todo-web/shared/logger"
	"github.com/sun1tar/todo-web/shared/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Logger.WithError(err).Fatal("failed to load config")
	}

	log, err := logger.Init("todos", cfg.LogLevel)
	if err != nil {
		logger.Logger.WithError(err).Fatal("failed to init logger")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := openRepository(ctx, cfg.DB, log)
	if err != nil {
		log.WithError(err).Fatal("failed to open task store")
	}
	defer repo.Close()

	views, err := handlers.NewViews()
	if err != nil {
		log.WithError(err).Fatal("failed to parse templates")
	}

	taskService := service.NewTaskService(repo)
	taskHandler := handlers.NewTaskHandler(taskService, views, log)
	mux := handlers.NewRouter(taskHandler, repo)

	// Wrapped inside out, so RequestIDMiddleware runs first.
	handler := customMiddleware.CSRFMiddleware(mux)
	handler = customMiddleware.SecurityHeadersMiddleware(handler)
	handler = customMiddleware.MetricsMiddleware(handler)
	handler = middleware.LoggingMiddleware(log)(handler)
	handler = middleware.RequestIDMiddleware(handler)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.WithFields(logrus.Fields{"addr": srv.Addr, "db_driver": cfg.DB.Driver}).Info("todos service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("http shutdown error")
	}
	log.Info("bye")
}

func openRepository(ctx context.Context, db config.DatabaseConfig, log *logrus.Logger) (repository.TaskRepository, error) {
	if db.Driver == config.DriverMemory {
		log.Warn("using in-memory task store, data is lost on restart")
		return repository.NewMemoryTaskRepository(), nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	repo, err := repository.NewPostgresTaskRepository(connectCtx, db.Driver, db.DSN())
	if err != nil {
		return nil, err
	}
	if err := repository.Migrate(connectCtx, repo.DB()); err != nil {
		repo.Close()
		return nil, err
	}
	return repo, nil
}
