package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rocketplay/tictactoe-league/internal/apperror"
	"github.com/rocketplay/tictactoe-league/internal/entity"
)

const (
	msgNewGame    = "Good luck playing Tic Tac Toe!"
	msgTimeToMove = "Time to make a move!"
)

type userService interface {
	CreateUser(ctx context.Context, name, email string) (*entity.User, error)
	Rankings(ctx context.Context) ([]entity.User, error)
}

type gameService interface {
	CreateGame(ctx context.Context, player1, player2 string) (*entity.Game, error)
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	ActiveGamesByUser(ctx context.Context, name string) ([]*entity.Game, error)
}

type gamePlayService interface {
	MakeMove(ctx context.Context, gameID string, cell int, claimedMarker string) (*entity.Game, string, error)
	CancelGame(ctx context.Context, gameID string) (*entity.Game, string, error)
	GameHistory(ctx context.Context, gameID string) ([]entity.MoveRecord, error)
}

type gameMetrics interface {
	RecordGameCreated()
}

type Handlers struct {
	userService     userService
	gameService     gameService
	gamePlayService gamePlayService
	metrics         gameMetrics
}

func NewHandlers(userService userService, gameService gameService, gamePlayService gamePlayService, metrics gameMetrics) *Handlers {
	return &Handlers{
		userService:     userService,
		gameService:     gameService,
		gamePlayService: gamePlayService,
		metrics:         metrics,
	}
}

// GameForm - outbound game state, mirrored after the original wire shape.
type GameForm struct {
	ID            string    `json:"id"`
	UserName1     string    `json:"user_name1"`
	UserName2     string    `json:"user_name2"`
	CurrentPlayer string    `json:"current_player"`
	Board         [9]string `json:"board"`
	GameOver      bool      `json:"game_over"`
	Cancelled     bool      `json:"cancelled"`
	Message       string    `json:"message"`
}

type rankingForm struct {
	UserName string `json:"user_name"`
	Score    int    `json:"score"`
}

type createUserRequest struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
}

type newGameRequest struct {
	UserName1 string `json:"user_name1"`
	UserName2 string `json:"user_name2"`
}

type makeMoveRequest struct {
	Position int `json:"position"`
	// Player is optional; when strict turn auth is on it must match the
	// current player's marker.
	Player string `json:"player,omitempty"`
}

func newGameForm(game *entity.Game, message string) GameForm {
	return GameForm{
		ID:            game.ID,
		UserName1:     game.Player1,
		UserName2:     game.Player2,
		CurrentPlayer: game.CurrentPlayer,
		Board:         game.Board,
		GameOver:      game.GameOver,
		Cancelled:     game.Cancelled,
		Message:       message,
	}
}

func (that *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.UserName == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "user_name and email are required")
		return
	}

	user, err := that.userService.CreateUser(r.Context(), req.UserName, req.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": fmt.Sprintf("User %s created!", user.Name),
	})
}

func (that *Handlers) NewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	game, err := that.gameService.CreateGame(r.Context(), req.UserName1, req.UserName2)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	that.metrics.RecordGameCreated()

	writeJSON(w, http.StatusCreated, newGameForm(game, msgNewGame))
}

func (that *Handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameService.GetGameByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newGameForm(game, msgTimeToMove))
}

func (that *Handlers) MakeMove(w http.ResponseWriter, r *http.Request) {
	var req makeMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	game, message, err := that.gamePlayService.MakeMove(r.Context(), r.PathValue("id"), req.Position, req.Player)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newGameForm(game, message))
}

func (that *Handlers) CancelGame(w http.ResponseWriter, r *http.Request) {
	game, message, err := that.gamePlayService.CancelGame(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newGameForm(game, message))
}

func (that *Handlers) GetUserGames(w http.ResponseWriter, r *http.Request) {
	games, err := that.gameService.ActiveGamesByUser(r.Context(), r.PathValue("name"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	forms := make([]GameForm, 0, len(games))
	for _, game := range games {
		forms = append(forms, newGameForm(game, ""))
	}

	writeJSON(w, http.StatusOK, map[string][]GameForm{"items": forms})
}

func (that *Handlers) GetGameHistory(w http.ResponseWriter, r *http.Request) {
	records, err := that.gamePlayService.GameHistory(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]entity.MoveRecord{"items": records})
}

func (that *Handlers) GetRankings(w http.ResponseWriter, r *http.Request) {
	users, err := that.userService.Rankings(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	forms := make([]rankingForm, 0, len(users))
	for _, user := range users {
		forms = append(forms, rankingForm{UserName: user.Name, Score: user.Score})
	}

	writeJSON(w, http.StatusOK, map[string][]rankingForm{"items": forms})
}

// writeServiceError - maps the error taxonomy onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperror.ErrUserNotFound), errors.Is(err, apperror.ErrGameNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperror.ErrUserConflict),
		errors.Is(err, apperror.ErrSamePlayers),
		errors.Is(err, apperror.ErrCellOccupied):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, apperror.ErrInvalidCell):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperror.ErrNotYourTurn):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
