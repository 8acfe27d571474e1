package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"notely/internal/database"
	"notely/internal/database/models"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	GetByNote(ctx context.Context, noteID int64) ([]models.Comment, error)
	Delete(ctx context.Context, id int64) error
}

type commentRepository struct {
	db database.Service
}

func NewCommentRepository(db database.Service) CommentRepository {
	return &commentRepository{db: db}
}

func scanComment(row rowScanner) (*models.Comment, error) {
	comment := models.Comment{}
	if err := row.Scan(&comment.ID, &comment.NoteID, &comment.Content, timestamp{&comment.CreatedAt}); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	comment.CreatedAt = now()
	query := r.db.Rebind(`
		INSERT INTO comments (note_id, content, created_at)
		VALUES (?, ?, ?)
		RETURNING id`)
	err := r.db.DB().QueryRowContext(ctx, query, comment.NoteID, comment.Content, comment.CreatedAt).Scan(&comment.ID)
	if err != nil {
		return fmt.Errorf("error creating comment: %w", err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	query := r.db.Rebind(`SELECT id, note_id, content, created_at FROM comments WHERE id = ?`)
	comment, err := scanComment(r.db.DB().QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting comment: %w", err)
	}
	return comment, nil
}

// GetByNote lists a note's comments, newest first.
func (r *commentRepository) GetByNote(ctx context.Context, noteID int64) ([]models.Comment, error) {
	query := r.db.Rebind(`
		SELECT id, note_id, content, created_at
		FROM comments
		WHERE note_id = ?
		ORDER BY created_at DESC, id DESC`)
	rows, err := r.db.DB().QueryContext(ctx, query, noteID)
	if err != nil {
		return nil, fmt.Errorf("error querying comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning comment: %w", err)
		}
		comments = append(comments, *comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}
	return comments, nil
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	query := r.db.Rebind(`DELETE FROM comments WHERE id = ?`)
	result, err := r.db.DB().ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error deleting comment: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
