package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rocketplay/tictactoe-league/internal/apperror"
	"github.com/rocketplay/tictactoe-league/internal/entity"
)

type GameService interface {
	CreateGame(ctx context.Context, player1, player2 string) (*entity.Game, error)
	UpdateGame(ctx context.Context, game *entity.Game) error

	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	ActiveGamesByUser(ctx context.Context, name string) ([]*entity.Game, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)

	ActiveByPlayer(ctx context.Context, name string) ([]*entity.Game, error)
	CancelledUnnotified(ctx context.Context) ([]*entity.Game, error)
}

type userFinder interface {
	GetUserByName(ctx context.Context, name string) (*entity.User, error)
}

type gameService struct {
	gameRepo    gameRepo
	userService userFinder
}

func NewGameService(gameRepo gameRepo, userService userFinder) GameService {
	return &gameService{
		gameRepo:    gameRepo,
		userService: userService,
	}
}

// CreateGame - starts a new game between two existing, distinct users.
// Player1 takes PLAYER_X and moves first.
func (that *gameService) CreateGame(ctx context.Context, player1, player2 string) (*entity.Game, error) {
	if player1 == player2 {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSamePlayers, player1)
	}

	if _, err := that.userService.GetUserByName(ctx, player1); err != nil {
		return nil, fmt.Errorf("could not resolve player1: %w", err)
	}

	if _, err := that.userService.GetUserByName(ctx, player2); err != nil {
		return nil, fmt.Errorf("could not resolve player2: %w", err)
	}

	game := entity.NewGame(uuid.NewString(), player1, player2)

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game from storage: %w", err)
	}

	return game, nil
}

func (that *gameService) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve game from storage: %w", err)
	}

	return game, nil
}

func (that *gameService) UpdateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

// ActiveGamesByUser - games the user takes part in that are still playable.
func (that *gameService) ActiveGamesByUser(ctx context.Context, name string) ([]*entity.Game, error) {
	if _, err := that.userService.GetUserByName(ctx, name); err != nil {
		return nil, fmt.Errorf("could not resolve user: %w", err)
	}

	games, err := that.gameRepo.ActiveByPlayer(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to list active games: %w", err)
	}

	return games, nil
}
