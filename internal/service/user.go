package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketplay/tictactoe-league/internal/apperror"
	"github.com/rocketplay/tictactoe-league/internal/entity"
)

type UserService interface {
	CreateUser(ctx context.Context, name, email string) (*entity.User, error)
	GetUserByName(ctx context.Context, name string) (*entity.User, error)
	Rankings(ctx context.Context) ([]entity.User, error)

	RecordOutcome(ctx context.Context, winner, loser string) error
	RecordDraw(ctx context.Context, player1, player2 string) error
}

type userRepo interface {
	Save(ctx context.Context, user *entity.User) error

	FindByName(ctx context.Context, name string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	AdjustScore(ctx context.Context, name string, delta int) error
	Rankings(ctx context.Context) ([]entity.User, error)
}

type userService struct {
	userRepo userRepo
}

func NewUserService(userRepo userRepo) UserService {
	return &userService{
		userRepo: userRepo,
	}
}

// CreateUser - registers a new user; both name and email must be unused.
func (that *userService) CreateUser(ctx context.Context, name, email string) (*entity.User, error) {
	if _, err := that.userRepo.FindByName(ctx, name); err == nil {
		return nil, fmt.Errorf("%w: name %s", apperror.ErrUserConflict, name)
	} else if !errors.Is(err, apperror.ErrUserNotFound) {
		return nil, fmt.Errorf("could not check name: %w", err)
	}

	if _, err := that.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email %s", apperror.ErrUserConflict, email)
	} else if !errors.Is(err, apperror.ErrUserNotFound) {
		return nil, fmt.Errorf("could not check email: %w", err)
	}

	user := &entity.User{
		Name:  name,
		Email: email,
	}

	if err := that.userRepo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("could not save user: %w", err)
	}

	return user, nil
}

func (that *userService) GetUserByName(ctx context.Context, name string) (*entity.User, error) {
	user, err := that.userRepo.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("could not get user by name: %w", err)
	}

	return user, nil
}

func (that *userService) Rankings(ctx context.Context) ([]entity.User, error) {
	users, err := that.userRepo.Rankings(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get rankings: %w", err)
	}

	return users, nil
}

// RecordOutcome - the score ledger for a decided game: winner +1, loser -1,
// each in its own atomic update. No other user is touched.
func (that *userService) RecordOutcome(ctx context.Context, winner, loser string) error {
	if err := that.userRepo.AdjustScore(ctx, winner, 1); err != nil {
		return fmt.Errorf("could not credit winner: %w", err)
	}

	if err := that.userRepo.AdjustScore(ctx, loser, -1); err != nil {
		return fmt.Errorf("could not debit loser: %w", err)
	}

	return nil
}

// RecordDraw - a draw changes no score. The ledger keeps the method so the
// rule is explicit, not an accident of omission.
func (that *userService) RecordDraw(_ context.Context, _, _ string) error {
	return nil
}
