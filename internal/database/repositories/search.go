package repositories

import (
	"context"
	"notely/internal/database"
	"notely/internal/database/models"
	"strings"
)

type SearchRepository interface {
	SearchNotes(ctx context.Context, userID int64, query string) ([]models.Note, error)
}

type searchRepository struct {
	db database.Service
}

func NewSearchRepository(db database.Service) SearchRepository {
	return &searchRepository{db: db}
}

// SearchNotes returns the user's notes whose title or content contains
// query, ignoring case.
func (s *searchRepository) SearchNotes(ctx context.Context, userID int64, query string) ([]models.Note, error) {
	notesQuery := s.db.Rebind(noteSelect + `
		WHERE n.user_id = ?
		  AND (LOWER(n.title) LIKE ? ESCAPE '\' OR LOWER(COALESCE(c.value, '')) LIKE ? ESCAPE '\')
		ORDER BY n.updated_at DESC, n.id DESC`)

	pattern := containsPattern(query)
	rows, err := s.db.DB().QueryContext(ctx, notesQuery, userID, pattern, pattern)
	if err != nil {
		return nil, err
	}
	return scanNotes(rows)
}

// containsPattern folds query the same way LOWER() does, escapes LIKE
// metacharacters and wraps it for substring matching.
func containsPattern(query string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(database.Fold(query)) + "%"
}
