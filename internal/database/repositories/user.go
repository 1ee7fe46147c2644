package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"scribe/internal/common"
	"scribe/internal/database/models"

	"github.com/google/uuid"
)

type userRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewUserRepository(db *sql.DB, dialect Dialect) UserRepository {
	return &userRepository{db: db, dialect: dialect}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := r.dialect.rebind(`
		INSERT INTO users (id, email, password, created_at)
		VALUES (?, ?, ?, ?)`)
	id, createdAt := uuid.New(), now()
	_, err := r.db.ExecContext(ctx, query, id, user.Email, user.Password, createdAt)
	if r.dialect.isUniqueViolation(err) {
		return common.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}
	user.ID, user.CreatedAt = id, createdAt
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := r.dialect.rebind(`SELECT id, email, password, created_at FROM users WHERE email = ?`)
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) scanOne(row *sql.Row) (*models.User, error) {
	user := models.User{}
	err := row.Scan(&user.ID, &user.Email, &user.Password, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return &user, nil
}
