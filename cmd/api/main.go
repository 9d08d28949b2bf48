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

	_ "github.com/lib/pq"

	"github.com/jaekwang-park/todo-lite/internal/config"
	todohttp "github.com/jaekwang-park/todo-lite/internal/http"
	"github.com/jaekwang-park/todo-lite/internal/repository"
	"github.com/jaekwang-park/todo-lite/internal/service"
)

func main() {
	// Initial logger at info level; reconfigured after config load
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(context.Background()); err != nil {
		logger.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.ParseLogLevel(),
	}))
	slog.SetDefault(logger)

	logger.Info("config loaded",
		"env", cfg.AppEnv,
		"port", cfg.ServerPort,
		"storage_backend", cfg.Storage.Backend,
		"log_level", cfg.LogLevel,
	)

	// Storage
	todoRepo, closeRepo, err := openRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	// Services
	todoSvc := service.NewTodoService(todoRepo)

	// HTTP Server
	srv := todohttp.NewServer(cfg.ServerPort, logger, todoSvc)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	logger.Info("server starting", "port", cfg.ServerPort)

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped gracefully")
	return nil
}

// openRepository builds the configured storage backend. The returned func
// releases whatever handle the backend holds.
func openRepository(ctx context.Context, cfg config.Config, logger *slog.Logger) (repository.TodoRepository, func(), error) {
	noop := func() {}
	st := cfg.Storage

	switch st.Backend {
	case config.BackendFile:
		logger.Info("using file storage", "path", st.Path)
		return repository.NewFileTodo(st.Path), noop, nil

	case config.BackendBolt:
		db, err := repository.OpenBolt(st.BoltPath)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("using bolt storage", "path", st.BoltPath, "document", st.DocumentName)
		return repository.NewBoltTodo(db, st.DocumentName), func() { _ = db.Close() }, nil

	case config.BackendPostgres:
		db, err := repository.NewDB(cfg.DB.DSN())
		if err != nil {
			return nil, noop, err
		}
		repo := repository.NewPostgresTodo(db, st.DocumentName)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		logger.Info("database connected", "host", cfg.DB.Host, "document", st.DocumentName)
		return repo, func() { _ = db.Close() }, nil

	case config.BackendS3:
		client, err := repository.NewS3Client(ctx, st.S3.Region, st.S3.Endpoint)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("using s3 storage", "bucket", st.S3.Bucket, "key", st.S3.Key, "region", st.S3.Region)
		return repository.NewS3Todo(client, st.S3.Bucket, st.S3.Key), noop, nil
	}

	return nil, noop, fmt.Errorf("unsupported storage backend %q", st.Backend)
}
