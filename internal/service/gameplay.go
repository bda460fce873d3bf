package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketplay/tictactoe-league/internal/apperror"
	"github.com/rocketplay/tictactoe-league/internal/entity"
	"github.com/rocketplay/tictactoe-league/internal/tictactoe"
)

type GamePlayService interface {
	MakeMove(ctx context.Context, gameID string, cell int, claimedMarker string) (*entity.Game, string, error)
	CancelGame(ctx context.Context, gameID string) (*entity.Game, string, error)
	GameHistory(ctx context.Context, gameID string) ([]entity.MoveRecord, error)
}

type historyRepo interface {
	Append(ctx context.Context, gameID string, record *entity.MoveRecord) error
	ListByGameID(ctx context.Context, gameID string) ([]entity.MoveRecord, error)
}

type scoreLedger interface {
	RecordOutcome(ctx context.Context, winner, loser string) error
	RecordDraw(ctx context.Context, player1, player2 string) error
}

type gameplayMetrics interface {
	RecordMove()
	RecordGameFinished(outcome string)
}

type gamePlayService struct {
	logger *slog.Logger

	gameService GameService
	scoreLedger scoreLedger
	historyRepo historyRepo
	metrics     gameplayMetrics

	// strictTurnAuth makes a supplied marker claim binding; by default the
	// mover is implied by game state, as the wire format carries no identity.
	strictTurnAuth bool
}

func NewGamePlayService(logger *slog.Logger, gameService GameService, scoreLedger scoreLedger, historyRepo historyRepo, metrics gameplayMetrics, strictTurnAuth bool) GamePlayService {
	return &gamePlayService{
		logger:         logger,
		gameService:    gameService,
		scoreLedger:    scoreLedger,
		historyRepo:    historyRepo,
		metrics:        metrics,
		strictTurnAuth: strictTurnAuth,
	}
}

// MakeMove - resolves one candidate move: the engine validates and mutates the
// game, then the score ledger and the history log are updated and the game is
// persisted. Terminal no-op answers leave everything untouched.
func (that *gamePlayService) MakeMove(ctx context.Context, gameID string, cell int, claimedMarker string) (*entity.Game, string, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get game by id: %w", err)
	}

	if that.strictTurnAuth && claimedMarker != "" && claimedMarker != game.CurrentPlayer {
		return nil, "", fmt.Errorf("%w: %s claimed, %s expected", apperror.ErrNotYourTurn, claimedMarker, game.CurrentPlayer)
	}

	result, err := tictactoe.ApplyMove(game, cell)
	if err != nil {
		return nil, "", fmt.Errorf("failed to make turn: %w", err)
	}

	if !result.Moved {
		return game, result.Message, nil
	}

	switch {
	case result.Winner != "":
		winner, loser := game.PlayersByMarker(result.Winner)
		if err = that.scoreLedger.RecordOutcome(ctx, winner, loser); err != nil {
			return nil, "", fmt.Errorf("failed to record outcome: %w", err)
		}
	case result.Draw:
		if err = that.scoreLedger.RecordDraw(ctx, game.Player1, game.Player2); err != nil {
			return nil, "", fmt.Errorf("failed to record draw: %w", err)
		}
	}

	that.appendHistory(ctx, game.ID, result.Record)

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, "", fmt.Errorf("failed to update game: %w", err)
	}

	that.metrics.RecordMove()
	if result.Finished {
		that.metrics.RecordGameFinished(finishedOutcome(result))
	}

	return game, result.Message, nil
}

// CancelGame - marks the game cancelled unless it already reached a terminal
// state. Scores are never touched on this path.
func (that *gamePlayService) CancelGame(ctx context.Context, gameID string) (*entity.Game, string, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get game by id: %w", err)
	}

	result := tictactoe.CancelGame(game)
	if !result.Moved {
		return game, result.Message, nil
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, "", fmt.Errorf("failed to update game: %w", err)
	}

	that.metrics.RecordGameFinished("cancelled")

	return game, result.Message, nil
}

func (that *gamePlayService) GameHistory(ctx context.Context, gameID string) ([]entity.MoveRecord, error) {
	records, err := that.historyRepo.ListByGameID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to read game history: %w", err)
	}

	return records, nil
}

// appendHistory - the side-store is best-effort: a failed append is logged and
// never fails the move.
func (that *gamePlayService) appendHistory(ctx context.Context, gameID string, record *entity.MoveRecord) {
	if err := that.historyRepo.Append(ctx, gameID, record); err != nil {
		that.logger.Warn("failed to append move history", "gameID", gameID, "error", err)
	}
}

func finishedOutcome(result *tictactoe.TurnResult) string {
	if result.Draw {
		return "draw"
	}

	return "won"
}
