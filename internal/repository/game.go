package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketplay/tictactoe-league/internal/apperror"
	"github.com/rocketplay/tictactoe-league/internal/entity"
)

const gameKeyPrefix = "game:"

const scanBatchSize = 100

type GameRepository interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)

	ActiveByPlayer(ctx context.Context, name string) ([]*entity.Game, error)
	CancelledUnnotified(ctx context.Context) ([]*entity.Game, error)
}

type dbGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

func (that *dbGame) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	gameKey := gameKeyPrefix + game.ID
	err = that.client.Set(ctx, gameKey, gameJSON, 0).Err()
	if err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	gameKey := gameKeyPrefix + id

	response, err := that.client.Get(ctx, gameKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal([]byte(response), &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

// ActiveByPlayer - games where the user plays either side and that are neither
// finished nor cancelled.
func (that *dbGame) ActiveByPlayer(ctx context.Context, name string) ([]*entity.Game, error) {
	return that.scanGames(ctx, func(game *entity.Game) bool {
		return game.HasPlayer(name) && game.IsActive()
	})
}

// CancelledUnnotified - cancelled games whose reminder has not gone out yet.
func (that *dbGame) CancelledUnnotified(ctx context.Context) ([]*entity.Game, error) {
	return that.scanGames(ctx, func(game *entity.Game) bool {
		return game.Cancelled && !game.ReminderSent
	})
}

func (that *dbGame) scanGames(ctx context.Context, keep func(*entity.Game) bool) ([]*entity.Game, error) {
	var games []*entity.Game

	iter := that.client.Scan(ctx, 0, gameKeyPrefix+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		response, err := that.client.Get(ctx, iter.Val()).Result()
		if errors.Is(err, redis.Nil) {
			// key vanished between SCAN and GET
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("failed to get game: %w", err)
		}

		var game entity.Game
		if err = json.Unmarshal([]byte(response), &game); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game: %w", err)
		}

		if keep(&game) {
			games = append(games, &game)
		}
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan games: %w", err)
	}

	return games, nil
}
