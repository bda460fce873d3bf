package entity

import (
	"fmt"

	"github.com/rocketplay/tictactoe-league/internal/apperror"
)

const (
	PlayerX   = "PLAYER_X"
	PlayerO   = "PLAYER_O"
	PlayerTie = "-"

	EmptyCell = ""
)

// WinCombos - the 8 fixed winning triples, evaluated in this order:
// rows, columns, right diagonal, left diagonal.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Game - a two-player match. Player1 always holds PLAYER_X, Player2 PLAYER_O.
// GameOver and Cancelled only ever go false -> true; a non-empty cell never
// changes.
type Game struct {
	ID            string    `json:"id"`
	Player1       string    `json:"player1"`
	Player2       string    `json:"player2"`
	Board         [9]string `json:"board"`
	CurrentPlayer string    `json:"current_player"`
	GameOver      bool      `json:"game_over"`
	Cancelled     bool      `json:"cancelled"`
	ReminderSent  bool      `json:"reminder_sent"`
}

func NewGame(id, player1, player2 string) *Game {
	return &Game{
		ID:            id,
		Player1:       player1,
		Player2:       player2,
		Board:         [9]string{EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell},
		CurrentPlayer: PlayerX,
	}
}

// IsCellEmpty - reports whether the cell is unoccupied.
func (that *Game) IsCellEmpty(cell int) (bool, error) {
	if cell < 0 || cell >= len(that.Board) {
		return false, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	return that.Board[cell] == EmptyCell, nil
}

// Place - puts a marker into a cell. Legality is the caller's job.
func (that *Game) Place(cell int, marker string) {
	that.Board[cell] = marker
}

func (that *Game) IsFull() bool {
	for _, cell := range that.Board {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// DetermineGameResult - returns the winning marker, PlayerTie when the board
// is full without a winner, or EmptyCell while the game continues.
func (that *Game) DetermineGameResult() string {
	for _, combo := range WinCombos {
		a, b, c := that.Board[combo[0]], that.Board[combo[1]], that.Board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	if that.IsFull() {
		return PlayerTie
	}

	return EmptyCell
}

// IsActive - neither finished nor cancelled.
func (that *Game) IsActive() bool {
	return !that.GameOver && !that.Cancelled
}

func (that *Game) HasPlayer(name string) bool {
	return that.Player1 == name || that.Player2 == name
}

// PlayersByMarker - maps a winning marker to (winner, loser) user names.
func (that *Game) PlayersByMarker(marker string) (string, string) {
	if marker == PlayerX {
		return that.Player1, that.Player2
	}

	return that.Player2, that.Player1
}
