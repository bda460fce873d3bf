package repository

import (
	"testing"
	"time"

	"github.com/rocketplay/tictactoe-league/internal/entity"
	"github.com/rocketplay/tictactoe-league/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHistoryTTL = time.Hour

func TestHistoryRepository_AppendAndList(t *testing.T) {
	ctx, st := suite.New(t)

	historyRepo := NewHistoryRepository(st.Storage, testHistoryTTL)

	// Given: two appended move records
	first := &entity.MoveRecord{PlayerMarker: entity.PlayerX, CellPosition: 0, Message: "Next move"}
	second := &entity.MoveRecord{PlayerMarker: entity.PlayerO, CellPosition: 4, Message: "Next move"}

	require.NoError(t, historyRepo.Append(ctx, "game-1", first))
	require.NoError(t, historyRepo.Append(ctx, "game-1", second))

	// When: reading the history back
	records, err := historyRepo.ListByGameID(ctx, "game-1")

	// Then: records come back in insertion order
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, *first, records[0])
	assert.Equal(t, *second, records[1])
}

func TestHistoryRepository_ListByGameID_Empty(t *testing.T) {
	ctx, st := suite.New(t)

	historyRepo := NewHistoryRepository(st.Storage, testHistoryTTL)

	// When: reading history for a game without any records
	records, err := historyRepo.ListByGameID(ctx, "unknown")

	// Then: an empty sequence is returned, not an error
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestHistoryRepository_Append_SetsTTL(t *testing.T) {
	ctx, st := suite.New(t)

	historyRepo := NewHistoryRepository(st.Storage, testHistoryTTL)

	// Given: one appended record
	record := &entity.MoveRecord{PlayerMarker: entity.PlayerX, CellPosition: 0, Message: "Next move"}
	require.NoError(t, historyRepo.Append(ctx, "game-1", record))

	// When: inspecting the key's TTL
	ttl, err := st.Storage.TTL(ctx, "history:game-1").Result()

	// Then: the log expires
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, testHistoryTTL)
}
