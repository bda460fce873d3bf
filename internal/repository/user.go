package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketplay/tictactoe-league/internal/apperror"
	"github.com/rocketplay/tictactoe-league/internal/entity"
)

type UserRepository interface {
	Save(ctx context.Context, user *entity.User) error

	FindByName(ctx context.Context, name string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	AdjustScore(ctx context.Context, name string, delta int) error
	Rankings(ctx context.Context) ([]entity.User, error)
}

type userRepository struct {
	conn *sql.DB
}

func NewUserRepository(conn *sql.DB) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

func (that *userRepository) Save(ctx context.Context, user *entity.User) error {
	query := `INSERT INTO users (name, email, score) VALUES (?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query, user.Name, user.Email, user.Score)
	if err != nil {
		return fmt.Errorf("can't save user: %w", err)
	}

	return nil
}

func (that *userRepository) FindByName(ctx context.Context, name string) (*entity.User, error) {
	query := `SELECT name, email, score FROM users WHERE name = ?`

	return that.findOne(ctx, query, name)
}

func (that *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT name, email, score FROM users WHERE email = ?`

	return that.findOne(ctx, query, email)
}

func (that *userRepository) findOne(ctx context.Context, query, arg string) (*entity.User, error) {
	var user entity.User

	err := that.conn.QueryRowContext(ctx, query, arg).Scan(&user.Name, &user.Email, &user.Score)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("can't find user: %w", err)
	}

	return &user, nil
}

// AdjustScore - applies a signed delta to one user's score in a single
// statement, so each ledger update is atomic per user record.
func (that *userRepository) AdjustScore(ctx context.Context, name string, delta int) error {
	query := `UPDATE users SET score = score + ? WHERE name = ?`

	result, err := that.conn.ExecContext(ctx, query, delta, name)
	if err != nil {
		return fmt.Errorf("can't update score: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't read affected rows: %w", err)
	}

	if affected == 0 {
		return apperror.ErrUserNotFound
	}

	return nil
}

// Rankings - all users ordered by score descending. Tie order among equal
// scores is whatever the storage returns.
func (that *userRepository) Rankings(ctx context.Context) ([]entity.User, error) {
	query := `SELECT name, email, score FROM users ORDER BY score DESC`

	rows, err := that.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("can't query rankings: %w", err)
	}
	defer rows.Close()

	var users []entity.User

	for rows.Next() {
		var user entity.User
		if err = rows.Scan(&user.Name, &user.Email, &user.Score); err != nil {
			return nil, fmt.Errorf("can't scan user: %w", err)
		}

		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't iterate users: %w", err)
	}

	return users, nil
}
