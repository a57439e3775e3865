package repository

import (
	"context"
	"database/sql"

	"travelapp/internal/database"
	"travelapp/internal/models"
)

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password_hash, first_name, surname, phone, is_active, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING user_id, registered_at`

	return r.db.QueryRowContext(ctx, query,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.Surname,
		user.Phone,
		user.IsActive,
		user.IsAdmin,
	).Scan(&user.UserID, &user.RegisteredAt)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT user_id, email, password_hash, first_name, surname, phone,
		       registered_at, is_active, is_admin
		FROM users
		WHERE user_id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.UserID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.Surname,
		&user.Phone,
		&user.RegisteredAt,
		&user.IsActive,
		&user.IsAdmin,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return user, err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT user_id, email, password_hash, first_name, surname, phone,
		       registered_at, is_active, is_admin
		FROM users
		WHERE email = $1`

	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.UserID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.Surname,
		&user.Phone,
		&user.RegisteredAt,
		&user.IsActive,
		&user.IsAdmin,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return user, err
}
