package apperror

import "errors"

var (
	ErrUserConflict = errors.New("user with that name or email already exists")
	ErrUserNotFound = errors.New("user not found")
	ErrGameNotFound = errors.New("game not found")
	ErrSamePlayers  = errors.New("a game needs two different players")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrNotYourTurn  = errors.New("it's not your turn")
)
