package service

import (
	"context"
	"fmt"
	"log/slog"
)

const reminderSubject = "This is a reminder!"

// Notifier - delivers a reminder to one user. Implementations live next to the
// service; delivery failures skip the game so the next sweep retries it.
type Notifier interface {
	Notify(ctx context.Context, email, subject, body string) error
}

type ReminderService interface {
	SweepCancelledGames(ctx context.Context) error
}

type reminderService struct {
	logger *slog.Logger

	gameRepo    gameRepo
	userService userFinder
	notifier    Notifier
}

func NewReminderService(logger *slog.Logger, gameRepo gameRepo, userService userFinder, notifier Notifier) ReminderService {
	return &reminderService{
		logger:      logger,
		gameRepo:    gameRepo,
		userService: userService,
		notifier:    notifier,
	}
}

// SweepCancelledGames - notifies both players of every cancelled game that has
// not been notified yet, then marks the game so each reminder goes out once.
func (that *reminderService) SweepCancelledGames(ctx context.Context) error {
	log := that.logger.With("method", "SweepCancelledGames")

	games, err := that.gameRepo.CancelledUnnotified(ctx)
	if err != nil {
		return fmt.Errorf("failed to list cancelled games: %w", err)
	}

	for _, game := range games {
		if err = that.remindPlayers(ctx, game.Player1, game.Player2); err != nil {
			log.Error("failed to send reminder", "gameID", game.ID, "error", err)
			continue
		}

		game.ReminderSent = true
		if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
			log.Error("failed to mark reminder sent", "gameID", game.ID, "error", err)
		}
	}

	return nil
}

func (that *reminderService) remindPlayers(ctx context.Context, player1, player2 string) error {
	if err := that.remindPlayer(ctx, player1, player2); err != nil {
		return err
	}

	return that.remindPlayer(ctx, player2, player1)
}

func (that *reminderService) remindPlayer(ctx context.Context, name, opponent string) error {
	user, err := that.userService.GetUserByName(ctx, name)
	if err != nil {
		return fmt.Errorf("could not resolve player %s: %w", name, err)
	}

	body := fmt.Sprintf(
		"Hello %s, your Tic Tac Toe game with %s has been cancelled. Please send a reply if you want to continue this game!",
		user.Name, opponent,
	)

	if err = that.notifier.Notify(ctx, user.Email, reminderSubject, body); err != nil {
		return fmt.Errorf("could not notify %s: %w", name, err)
	}

	return nil
}
