package tictactoe

import (
	"fmt"

	"github.com/rocketplay/tictactoe-league/internal/apperror"
	"github.com/rocketplay/tictactoe-league/internal/entity"
)

const (
	MsgGameCancelled   = "Game is cancelled"
	MsgGameAlreadyOver = "Game already over!"
	MsgGameCancelNow   = "Game has been cancelled!"
	MsgNextMove        = "Next move"
	MsgTableFull       = "Table Full"
	MsgDraw            = "Table full! It's a draw!"
)

// TurnResult - the outcome of one engine call. Moved reports whether a marker
// was actually placed; on the terminal no-op paths it stays false, Record is
// nil and the game is untouched.
type TurnResult struct {
	Message  string
	Moved    bool
	Finished bool
	Winner   string
	Draw     bool
	Record   *entity.MoveRecord
}

// ApplyMove - plays the current player's marker into a cell. The checks run in
// a fixed order: cancelled game (no-op), occupied or invalid cell (error),
// finished game (no-op). Only then the marker is placed and the board is
// evaluated for a terminal condition.
func ApplyMove(game *entity.Game, cell int) (*TurnResult, error) {
	if game.Cancelled {
		return &TurnResult{Message: MsgGameCancelled}, nil
	}

	empty, err := game.IsCellEmpty(cell)
	if err != nil {
		return nil, err
	}

	if !empty {
		return nil, fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	if game.GameOver {
		return &TurnResult{Message: MsgGameAlreadyOver}, nil
	}

	marker := game.CurrentPlayer
	game.Place(cell, marker)

	record := &entity.MoveRecord{
		PlayerMarker: marker,
		CellPosition: cell,
	}

	switch result := game.DetermineGameResult(); result {
	case entity.PlayerX, entity.PlayerO:
		game.GameOver = true
		record.Message = result + " wins!"

		return &TurnResult{
			Message:  record.Message,
			Moved:    true,
			Finished: true,
			Winner:   result,
			Record:   record,
		}, nil
	case entity.PlayerTie:
		game.GameOver = true
		record.Message = MsgTableFull

		return &TurnResult{
			Message:  MsgDraw,
			Moved:    true,
			Finished: true,
			Draw:     true,
			Record:   record,
		}, nil
	default:
		record.Message = MsgNextMove
		game.CurrentPlayer = toggleMark(marker)

		return &TurnResult{
			Message: MsgNextMove,
			Moved:   true,
			Record:  record,
		}, nil
	}
}

// CancelGame - marks the game cancelled. Terminal games are left untouched and
// answered with a no-op message; cancellation never changes any score.
func CancelGame(game *entity.Game) *TurnResult {
	if game.GameOver {
		return &TurnResult{Message: MsgGameAlreadyOver}
	}

	if game.Cancelled {
		return &TurnResult{Message: MsgGameCancelled}
	}

	game.Cancelled = true

	return &TurnResult{Message: MsgGameCancelNow, Moved: true}
}

func toggleMark(currentMark string) string {
	if currentMark == entity.PlayerX {
		return entity.PlayerO
	}

	return entity.PlayerX
}
