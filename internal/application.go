package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rocketplay/tictactoe-league/internal/config"
	"github.com/rocketplay/tictactoe-league/internal/metrics"
	"github.com/rocketplay/tictactoe-league/internal/repository"
	"github.com/rocketplay/tictactoe-league/internal/repository/storage"
	"github.com/rocketplay/tictactoe-league/internal/service"
	"github.com/rocketplay/tictactoe-league/transport/rest"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisClient, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisClient.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	userRepo := repository.NewUserRepository(sqliteStorage.Connection)
	gameRepo := repository.NewGameRepository(redisClient)
	historyRepo := repository.NewHistoryRepository(redisClient, conf.HistoryTTL)

	userService := service.NewUserService(userRepo)
	gameService := service.NewGameService(gameRepo, userService)
	gamePlayService := service.NewGamePlayService(logger, gameService, userService, historyRepo, collector, conf.StrictTurnAuth)

	notifier := newNotifier(logger, conf)
	reminderService := service.NewReminderService(logger, gameRepo, userService, notifier)

	go runReminderSweep(ctx, log, reminderService, conf.Reminder.SweepInterval)

	handlers := rest.NewHandlers(userService, gameService, gamePlayService, collector)
	router := rest.NewRouter(handlers, metrics.Handler(registry))

	log.Info("Starting HTTP server", "port", conf.HTTPPort)

	if err = rest.Start(ctx, conf.HTTPPort, router); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

func newNotifier(logger *slog.Logger, conf *config.Config) service.Notifier {
	if conf.Reminder.SMTP.Host == "" {
		return service.NewLogNotifier(logger)
	}

	return service.NewSMTPNotifier(conf.Reminder.SMTP.GetSMTPAddr(), conf.Reminder.SMTP.From)
}

func runReminderSweep(ctx context.Context, log *slog.Logger, reminderService service.ReminderService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := reminderService.SweepCancelledGames(ctx); err != nil {
				log.Error("reminder sweep failed", "error", err)
			}
		}
	}
}
