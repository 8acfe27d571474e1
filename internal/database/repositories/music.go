package repositories

import (
	"context"
	"fmt"
	"notely/internal/database"
	"notely/internal/database/models"
)

type MusicRepository interface {
	Create(ctx context.Context, music *models.Music) error
	GetAll(ctx context.Context, userID int64) ([]models.Music, error)
}

type musicRepository struct {
	db database.Service
}

func NewMusicRepository(db database.Service) MusicRepository {
	return &musicRepository{db: db}
}

func (r *musicRepository) Create(ctx context.Context, music *models.Music) error {
	music.CreatedAt = now()
	query := r.db.Rebind(`
		INSERT INTO musics (user_id, file_name, created_at)
		VALUES (?, ?, ?)
		RETURNING id`)
	err := r.db.DB().QueryRowContext(ctx, query, music.UserID, music.FileName, music.CreatedAt).Scan(&music.ID)
	if err != nil {
		return fmt.Errorf("error creating music: %w", err)
	}
	return nil
}

func (r *musicRepository) GetAll(ctx context.Context, userID int64) ([]models.Music, error) {
	query := r.db.Rebind(`
		SELECT id, user_id, file_name, created_at
		FROM musics
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`)
	rows, err := r.db.DB().QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying music: %w", err)
	}
	defer rows.Close()

	musics := []models.Music{}
	for rows.Next() {
		var music models.Music
		if err := rows.Scan(&music.ID, &music.UserID, &music.FileName, timestamp{&music.CreatedAt}); err != nil {
			return nil, fmt.Errorf("error scanning music: %w", err)
		}
		musics = append(musics, music)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating music: %w", err)
	}
	return musics, nil
}
