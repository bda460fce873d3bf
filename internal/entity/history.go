package entity

// MoveRecord - one entry of a game's append-only move history. Records live in
// a volatile side-store; losing them never affects the game itself.
type MoveRecord struct {
	PlayerMarker string `json:"player_marker"`
	CellPosition int    `json:"cell_position"`
	Message      string `json:"message"`
}
