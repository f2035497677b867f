package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"gorm.io/gorm"

	"github.com/watchlist-kata/showtracker/api/handlers"
	"github.com/watchlist-kata/showtracker/internal/config"
	"github.com/watchlist-kata/showtracker/internal/metrics"
	"github.com/watchlist-kata/showtracker/internal/repository"
	"github.com/watchlist-kata/showtracker/internal/service"
	"github.com/watchlist-kata/showtracker/pkg/utils"
)

const shutdownTimeout = 10 * time.Second

// RunServer запускает HTTP сервер API и, если задан GRPC_PORT, gRPC health сервис.
// Возвращает управление после SIGINT/SIGTERM или ошибки listener.
func RunServer(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Подключение к базе данных
	db, err := utils.ConnectToDatabase(cfg, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := utils.CloseDatabase(db); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	// gRPC health сервис
	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	var grpcServer *grpc.Server
	if addr := cfg.GRPCAddr(); addr != "" {
		lis, err := net.Listen("tcp", addr)
		if err != nil {
			logger.Error("failed to listen", slog.Any("error", err))
			return fmt.Errorf("failed to listen: %w", err)
		}
		grpcServer = grpc.NewServer()
		healthpb.RegisterHealthServer(grpcServer, healthServer)

		logger.Info("starting gRPC health server", slog.String("addr", addr))
		go func() {
			if err := grpcServer.Serve(lis); err != nil {
				logger.Error("gRPC health server stopped", slog.Any("error", err))
			}
		}()
		defer grpcServer.Stop()
	}

	// Создание таблиц не блокирует запуск listener
	go InitSchema(ctx, db, healthServer, logger)

	// Создание репозитория и сервисов
	repo := repository.NewPostgresRepository(db, logger)
	h := handlers.NewHandler(
		service.NewShowService(repo, logger),
		service.NewWatchedService(repo, logger),
		service.NewWatchlistService(repo, logger),
		service.NewUserService(repo, logger),
		logger,
	)

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New(cfg.ServiceName)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           NewRouter(h, m, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server is running on port %s", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("failed to serve", slog.Any("error", err))
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	healthServer.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shut down HTTP server", slog.Any("error", err))
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

// InitSchema создает таблицы и переводит health статус в SERVING.
// Ошибка только логируется: сервер продолжает работу.
func InitSchema(ctx context.Context, db *gorm.DB, hs *health.Server, logger *slog.Logger) {
	if err := repository.EnsureSchema(ctx, db); err != nil {
		logger.ErrorContext(ctx, "Error creating tables", slog.Any("error", err))
		return
	}
	logger.InfoContext(ctx, "All tables created or already exist")
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
}
