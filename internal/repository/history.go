package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketplay/tictactoe-league/internal/entity"
)

const historyKeyPrefix = "history:"

// HistoryRepository - the volatile per-game move log. Entries expire with the
// configured TTL and the store is not authoritative: a missing key just reads
// back as an empty history.
type HistoryRepository interface {
	Append(ctx context.Context, gameID string, record *entity.MoveRecord) error
	ListByGameID(ctx context.Context, gameID string) ([]entity.MoveRecord, error)
}

type dbHistory struct {
	client *redis.Client
	ttl    time.Duration
}

func NewHistoryRepository(client *redis.Client, ttl time.Duration) HistoryRepository {
	return &dbHistory{
		client: client,
		ttl:    ttl,
	}
}

func (that *dbHistory) Append(ctx context.Context, gameID string, record *entity.MoveRecord) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal move record: %w", err)
	}

	historyKey := historyKeyPrefix + gameID

	if err = that.client.RPush(ctx, historyKey, recordJSON).Err(); err != nil {
		return fmt.Errorf("failed to append move record: %w", err)
	}

	// every append refreshes the whole log's lifetime
	if err = that.client.Expire(ctx, historyKey, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set history ttl: %w", err)
	}

	return nil
}

func (that *dbHistory) ListByGameID(ctx context.Context, gameID string) ([]entity.MoveRecord, error) {
	historyKey := historyKeyPrefix + gameID

	response, err := that.client.LRange(ctx, historyKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	records := make([]entity.MoveRecord, 0, len(response))

	for _, item := range response {
		var record entity.MoveRecord
		if err = json.Unmarshal([]byte(item), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal move record: %w", err)
		}

		records = append(records, record)
	}

	return records, nil
}
