package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"notely/internal/database"
	"notely/internal/database/models"
	"strings"
)

// NotePatch lists the fields a partial update writes. Nil means untouched.
type NotePatch struct {
	Title        *string
	ContentValue *string
	IsFavorite   *bool
}

func (p NotePatch) empty() bool {
	return p.Title == nil && p.ContentValue == nil && p.IsFavorite == nil
}

type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	GetByID(ctx context.Context, id int64) (*models.Note, error)
	GetAll(ctx context.Context, userID int64) ([]models.Note, error)
	Update(ctx context.Context, id int64, patch NotePatch) (*models.Note, error)
	Delete(ctx context.Context, id int64) error
}

type noteRepository struct {
	db database.Service
}

func NewNoteRepository(db database.Service) NoteRepository {
	return &noteRepository{db: db}
}

const noteSelect = `
	SELECT n.id, n.title, n.is_favorite, n.user_id, n.created_at, n.updated_at,
	       COALESCE(c.id, 0), COALESCE(c.type, 'text'), COALESCE(c.value, '')
	FROM notes n
	LEFT JOIN contents c ON c.note_id = n.id`

func scanNote(row rowScanner) (*models.Note, error) {
	note := models.Note{}
	err := row.Scan(
		&note.ID,
		&note.Title,
		&note.IsFavorite,
		&note.UserID,
		timestamp{&note.CreatedAt},
		timestamp{&note.UpdatedAt},
		&note.Content.ID,
		&note.Content.Type,
		&note.Content.Value,
	)
	if err != nil {
		return nil, err
	}
	note.Content.NoteID = note.ID
	return &note, nil
}

func scanNotes(rows *sql.Rows) ([]models.Note, error) {
	defer rows.Close()
	notes := []models.Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning note: %w", err)
		}
		notes = append(notes, *note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}
	return notes, nil
}

// Create inserts the note and its content in one transaction.
func (r *noteRepository) Create(ctx context.Context, note *models.Note) error {
	if note.Title == "" {
		note.Title = models.DefaultNoteTitle
	}
	if note.Content.Type == "" {
		note.Content.Type = models.DefaultContentType
	}
	note.CreatedAt = now()
	note.UpdatedAt = note.CreatedAt

	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error creating note: %w", err)
	}
	defer tx.Rollback()

	noteQuery := r.db.Rebind(`
		INSERT INTO notes (title, is_favorite, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`)
	err = tx.QueryRowContext(ctx, noteQuery, note.Title, note.IsFavorite, note.UserID, note.CreatedAt, note.UpdatedAt).Scan(&note.ID)
	if err != nil {
		return fmt.Errorf("error creating note: %w", err)
	}

	contentQuery := r.db.Rebind(`
		INSERT INTO contents (note_id, type, value)
		VALUES (?, ?, ?)
		RETURNING id`)
	err = tx.QueryRowContext(ctx, contentQuery, note.ID, note.Content.Type, note.Content.Value).Scan(&note.Content.ID)
	if err != nil {
		return fmt.Errorf("error creating note content: %w", err)
	}
	note.Content.NoteID = note.ID

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing note: %w", err)
	}
	return nil
}

func (r *noteRepository) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	query := r.db.Rebind(noteSelect + ` WHERE n.id = ?`)
	note, err := scanNote(r.db.DB().QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting note: %w", err)
	}
	return note, nil
}

func (r *noteRepository) GetAll(ctx context.Context, userID int64) ([]models.Note, error) {
	query := r.db.Rebind(noteSelect + ` WHERE n.user_id = ? ORDER BY n.updated_at DESC, n.id DESC`)
	rows, err := r.db.DB().QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying notes: %w", err)
	}
	return scanNotes(rows)
}

func (r *noteRepository) Update(ctx context.Context, id int64, patch NotePatch) (*models.Note, error) {
	if patch.empty() {
		return r.GetByID(ctx, id)
	}

	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error updating note: %w", err)
	}
	defer tx.Rollback()

	sets := []string{"updated_at = ?"}
	args := []any{now()}
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.IsFavorite != nil {
		sets = append(sets, "is_favorite = ?")
		args = append(args, *patch.IsFavorite)
	}
	args = append(args, id)

	query := r.db.Rebind(`UPDATE notes SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`)
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error updating note: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("error getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	if patch.ContentValue != nil {
		contentQuery := r.db.Rebind(`UPDATE contents SET value = ? WHERE note_id = ?`)
		if _, err := tx.ExecContext(ctx, contentQuery, *patch.ContentValue, id); err != nil {
			return nil, fmt.Errorf("error updating note content: %w", err)
		}
	}

	note, err := scanNote(tx.QueryRowContext(ctx, r.db.Rebind(noteSelect+` WHERE n.id = ?`), id))
	if err != nil {
		return nil, fmt.Errorf("error reloading note: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing note: %w", err)
	}
	return note, nil
}

// Delete removes the note; contents and comments go with it via cascade.
func (r *noteRepository) Delete(ctx context.Context, id int64) error {
	query := r.db.Rebind(`DELETE FROM notes WHERE id = ?`)
	result, err := r.db.DB().ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error deleting note: %w", err)
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
