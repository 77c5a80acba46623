package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"leettrack/internal/common"
	"leettrack/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.TrackedUser) error
	FindByUsername(ctx context.Context, username string) (*model.TrackedUser, error)
	FindAll(ctx context.Context) ([]model.TrackedUser, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.TrackedUser) error {
	query := `INSERT INTO users (id, username, name, email, created_at)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Username, user.Name, user.Email, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("user %q already exists: %w", user.Username, common.ErrBadRequest)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByUsername(ctx context.Context, username string) (*model.TrackedUser, error) {
	query := `SELECT id, username, name, email, created_at
	          FROM users WHERE username = $1`
	user := &model.TrackedUser{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.Name, &user.Email, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByUsername: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindAll(ctx context.Context) ([]model.TrackedUser, error) {
	query := `SELECT id, username, name, email, created_at
	          FROM users ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.FindAll: %w", err)
	}
	defer rows.Close()

	var users []model.TrackedUser
	for rows.Next() {
		var user model.TrackedUser
		if err := rows.Scan(&user.ID, &user.Username, &user.Name, &user.Email, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgUserRepository.FindAll scan: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
