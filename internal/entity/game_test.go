package entity

import (
	"testing"

	"github.com/rocketplay/tictactoe-league/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	// Given: two registered players
	// When: creating a new game
	game := NewGame("123", "alice", "bob")

	// Then: the game state should correspond to the expected initial state
	expectedGame := &Game{
		ID:            "123",
		Player1:       "alice",
		Player2:       "bob",
		Board:         [9]string{"", "", "", "", "", "", "", "", ""},
		CurrentPlayer: PlayerX,
	}

	require.Equal(t, expectedGame, game)
}

func TestGame_IsCellEmpty(t *testing.T) {
	t.Run("Returns true for an unoccupied cell", func(t *testing.T) {
		// Given: a fresh board
		game := NewGame("123", "alice", "bob")

		// When: checking any cell
		empty, err := game.IsCellEmpty(4)

		// Then: the cell is empty
		require.NoError(t, err)
		assert.True(t, empty)
	})

	t.Run("Returns false for an occupied cell", func(t *testing.T) {
		// Given: a board with a marker at cell 4
		game := NewGame("123", "alice", "bob")
		game.Place(4, PlayerX)

		// When: checking that cell
		empty, err := game.IsCellEmpty(4)

		// Then: the cell is occupied
		require.NoError(t, err)
		assert.False(t, empty)
	})

	t.Run("Returns ErrInvalidCell for out-of-range positions", func(t *testing.T) {
		game := NewGame("123", "alice", "bob")

		for _, cell := range []int{-1, 9, 100} {
			_, err := game.IsCellEmpty(cell)
			assert.ErrorIs(t, err, apperror.ErrInvalidCell)
		}
	})
}

func TestGame_IsFull(t *testing.T) {
	t.Run("Returns false while any cell is empty", func(t *testing.T) {
		game := NewGame("123", "alice", "bob")
		game.Place(0, PlayerX)

		assert.False(t, game.IsFull())
	})

	t.Run("Returns true when every cell holds a marker", func(t *testing.T) {
		game := NewGame("123", "alice", "bob")
		game.Board = [9]string{
			PlayerX, PlayerO, PlayerX,
			PlayerO, PlayerX, PlayerO,
			PlayerO, PlayerX, PlayerO,
		}

		assert.True(t, game.IsFull())
	})
}

func TestGame_DetermineGameResult(t *testing.T) {
	t.Run("Returns PlayerX when Player X wins", func(t *testing.T) {
		// Given: a game where Player X has a winning combination
		game := &Game{
			Board: [9]string{
				PlayerX, PlayerX, PlayerX,
				EmptyCell, EmptyCell, EmptyCell,
				EmptyCell, EmptyCell, EmptyCell,
			},
		}

		// When: determining the game result
		result := game.DetermineGameResult()

		// Then: it should return PlayerX as the winner
		assert.Equal(t, PlayerX, result)
	})

	t.Run("Returns PlayerO when Player O wins on a column", func(t *testing.T) {
		// Given: a game where Player O holds the first column
		game := &Game{
			Board: [9]string{
				PlayerO, EmptyCell, EmptyCell,
				PlayerO, EmptyCell, EmptyCell,
				PlayerO, EmptyCell, EmptyCell,
			},
		}

		// When: determining the game result
		result := game.DetermineGameResult()

		// Then: it should return PlayerO as the winner
		assert.Equal(t, PlayerO, result)
	})

	t.Run("Detects a win on every fixed triple", func(t *testing.T) {
		for _, combo := range WinCombos {
			game := &Game{}
			for _, cell := range combo {
				game.Board[cell] = PlayerX
			}

			assert.Equal(t, PlayerX, game.DetermineGameResult(), "combo %v", combo)
		}
	})

	t.Run("Returns PlayerTie when the board is full without a winner", func(t *testing.T) {
		// Given: a full board with no three-in-a-row
		game := &Game{
			Board: [9]string{
				PlayerX, PlayerO, PlayerX,
				PlayerO, PlayerX, PlayerO,
				PlayerO, PlayerX, PlayerO,
			},
		}

		// When: determining the game result
		result := game.DetermineGameResult()

		// Then: it should return PlayerTie
		assert.Equal(t, PlayerTie, result)
	})

	t.Run("Returns EmptyCell when the game is ongoing", func(t *testing.T) {
		// Given: a game that is still ongoing
		game := &Game{
			Board: [9]string{
				PlayerX, PlayerO, EmptyCell,
				EmptyCell, PlayerX, EmptyCell,
				EmptyCell, EmptyCell, PlayerO,
			},
		}

		// When: determining the game result
		result := game.DetermineGameResult()

		// Then: it should return EmptyCell (game continues)
		assert.Equal(t, EmptyCell, result)
	})
}

func TestGame_IsActive(t *testing.T) {
	t.Run("Active while neither terminal flag is set", func(t *testing.T) {
		game := NewGame("123", "alice", "bob")
		assert.True(t, game.IsActive())
	})

	t.Run("Inactive once finished", func(t *testing.T) {
		game := NewGame("123", "alice", "bob")
		game.GameOver = true
		assert.False(t, game.IsActive())
	})

	t.Run("Inactive once cancelled", func(t *testing.T) {
		game := NewGame("123", "alice", "bob")
		game.Cancelled = true
		assert.False(t, game.IsActive())
	})
}

func TestGame_PlayersByMarker(t *testing.T) {
	game := NewGame("123", "alice", "bob")

	t.Run("PlayerX win maps to player1", func(t *testing.T) {
		winner, loser := game.PlayersByMarker(PlayerX)

		assert.Equal(t, "alice", winner)
		assert.Equal(t, "bob", loser)
	})

	t.Run("PlayerO win maps to player2", func(t *testing.T) {
		winner, loser := game.PlayersByMarker(PlayerO)

		assert.Equal(t, "bob", winner)
		assert.Equal(t, "alice", loser)
	})
}

func TestGame_HasPlayer(t *testing.T) {
	game := NewGame("123", "alice", "bob")

	assert.True(t, game.HasPlayer("alice"))
	assert.True(t, game.HasPlayer("bob"))
	assert.False(t, game.HasPlayer("carol"))
}
