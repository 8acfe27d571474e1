package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"notely/internal/database"
	"notely/internal/database/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Exists(ctx context.Context, username string) (bool, error)
	GetProfile(ctx context.Context, id int64) (*models.Profile, error)
	UpdateImage(ctx context.Context, id int64, image string) (*models.User, error)
}

type userRepository struct {
	db database.Service
}

func NewUserRepository(db database.Service) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, password, image, created_at`

func scanUser(row rowScanner) (*models.User, error) {
	user := models.User{}
	var image sql.NullString
	if err := row.Scan(&user.ID, &user.Username, &user.Password, &image, timestamp{&user.CreatedAt}); err != nil {
		return nil, err
	}
	if image.Valid {
		user.Image = &image.String
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.CreatedAt = now()
	query := r.db.Rebind(`
		INSERT INTO users (username, password, image, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id`)
	err := r.db.DB().QueryRowContext(ctx, query, user.Username, user.Password, user.Image, user.CreatedAt).Scan(&user.ID)
	if database.IsUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE id = ?`)
	user, err := scanUser(r.db.DB().QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE username = ?`)
	user, err := scanUser(r.db.DB().QueryRowContext(ctx, query, username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return user, nil
}

func (r *userRepository) Exists(ctx context.Context, username string) (bool, error) {
	var count int
	query := r.db.Rebind(`SELECT COUNT(1) FROM users WHERE username = ?`)
	if err := r.db.DB().QueryRowContext(ctx, query, username).Scan(&count); err != nil {
		return false, fmt.Errorf("error checking user: %w", err)
	}
	return count > 0, nil
}

func (r *userRepository) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	profile := models.Profile{}
	var image sql.NullString
	query := r.db.Rebind(`SELECT username, image FROM users WHERE id = ?`)
	err := r.db.DB().QueryRowContext(ctx, query, id).Scan(&profile.Username, &image)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting profile: %w", err)
	}
	if image.Valid {
		profile.Image = &image.String
	}
	return &profile, nil
}

func (r *userRepository) UpdateImage(ctx context.Context, id int64, image string) (*models.User, error) {
	query := r.db.Rebind(`UPDATE users SET image = ? WHERE id = ?`)
	result, err := r.db.DB().ExecContext(ctx, query, image, id)
	if err != nil {
		return nil, fmt.Errorf("error updating user image: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("error getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}
