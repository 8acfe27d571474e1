package repositories_test

import (
	"context"
	"errors"
	"testing"

	"notely/internal/database"
	"notely/internal/database/models"
	"notely/internal/database/repositories"
	"notely/internal/testsupport"
)

func mustCreateUser(t *testing.T, db database.Service, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Password: "hash"}
	if err := repositories.NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func mustCreateNote(t *testing.T, db database.Service, userID int64, title, value string) *models.Note {
	t.Helper()
	note := &models.Note{Title: title, UserID: userID, Content: models.Content{Value: value}}
	if err := repositories.NewNoteRepository(db).Create(context.Background(), note); err != nil {
		t.Fatalf("create note: %v", err)
	}
	return note
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	db := testsupport.MustOpenSQLite(t)
	repo := repositories.NewUserRepository(db)

	alice := mustCreateUser(t, db, "alice")
	if alice.ID == 0 {
		t.Fatal("expected generated id")
	}

	if err := repo.Create(ctx, &models.User{Username: "alice", Password: "x"}); !errors.Is(err, repositories.ErrConflict) {
		t.Fatalf("duplicate username: got %v, want ErrConflict", err)
	}

	exists, err := repo.Exists(ctx, "alice")
	if err != nil || !exists {
		t.Fatalf("Exists(alice) = %v, %v", exists, err)
	}
	exists, err = repo.Exists(ctx, "bob")
	if err != nil || exists {
		t.Fatalf("Exists(bob) = %v, %v", exists, err)
	}

	got, err := repo.GetByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if got.ID != alice.ID || got.Password != "hash" || got.Image != nil {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, err := repo.GetByID(ctx, 999); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("GetByID missing: got %v", err)
	}

	updated, err := repo.UpdateImage(ctx, alice.ID, "avatar.png")
	if err != nil {
		t.Fatalf("UpdateImage: %v", err)
	}
	if updated.Image == nil || *updated.Image != "avatar.png" {
		t.Fatalf("unexpected image: %v", updated.Image)
	}

	profile, err := repo.GetProfile(ctx, alice.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if profile.Username != "alice" || profile.Image == nil || *profile.Image != "avatar.png" {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	if _, err := repo.UpdateImage(ctx, 999, "x.png"); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("UpdateImage missing: got %v", err)
	}
}

func TestNoteRepositoryCreateAppliesDefaults(t *testing.T) {
	ctx := context.Background()
	db := testsupport.MustOpenSQLite(t)
	user := mustCreateUser(t, db, "alice")
	repo := repositories.NewNoteRepository(db)

	note := &models.Note{UserID: user.ID}
	if err := repo.Create(ctx, note); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, note.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != models.DefaultNoteTitle {
		t.Fatalf("title = %q", got.Title)
	}
	if got.Content.Type != models.DefaultContentType || got.Content.Value != "" {
		t.Fatalf("unexpected content: %+v", got.Content)
	}
	if got.Content.NoteID != note.ID || got.Content.ID == 0 {
		t.Fatalf("content not linked: %+v", got.Content)
	}
	if got.IsFavorite {
		t.Fatal("new notes are not favorites")
	}
}

func TestNoteRepositoryUpdateIsPartial(t *testing.T) {
	ctx := context.Background()
	db := testsupport.MustOpenSQLite(t)
	user := mustCreateUser(t, db, "alice")
	repo := repositories.NewNoteRepository(db)
	note := mustCreateNote(t, db, user.ID, "A", "x")

	favorite := true
	got, err := repo.Update(ctx, note.ID, repositories.NotePatch{IsFavorite: &favorite})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !got.IsFavorite || got.Title != "A" || got.Content.Value != "x" {
		t.Fatalf("unexpected note after favorite update: %+v", got)
	}
	if got.UpdatedAt.Before(note.UpdatedAt) {
		t.Fatalf("updatedAt went backwards: %v < %v", got.UpdatedAt, note.UpdatedAt)
	}

	value := "y"
	got, err = repo.Update(ctx, note.ID, repositories.NotePatch{ContentValue: &value})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Content.Value != "y" || !got.IsFavorite || got.Title != "A" {
		t.Fatalf("unexpected note after content update: %+v", got)
	}

	title := "B"
	if _, err := repo.Update(ctx, 999, repositories.NotePatch{Title: &title}); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("Update missing: got %v", err)
	}
}

func TestNoteRepositoryDeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := testsupport.MustOpenSQLite(t)
	user := mustCreateUser(t, db, "alice")
	note := mustCreateNote(t, db, user.ID, "A", "x")

	comments := repositories.NewCommentRepository(db)
	comment := &models.Comment{NoteID: note.ID, Content: "hi"}
	if err := comments.Create(ctx, comment); err != nil {
		t.Fatalf("create comment: %v", err)
	}

	notes := repositories.NewNoteRepository(db)
	if err := notes.Delete(ctx, note.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := notes.GetByID(ctx, note.ID); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("note still present: %v", err)
	}
	if _, err := comments.GetByID(ctx, comment.ID); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("comment survived note delete: %v", err)
	}

	var contents int
	if err := db.DB().QueryRow(`SELECT COUNT(1) FROM contents WHERE note_id = ?`, note.ID).Scan(&contents); err != nil {
		t.Fatalf("count contents: %v", err)
	}
	if contents != 0 {
		t.Fatalf("content rows left behind: %d", contents)
	}

	if err := notes.Delete(ctx, note.ID); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("second delete: got %v", err)
	}
}

func TestNoteRepositoryGetAllScopedToUser(t *testing.T) {
	ctx := context.Background()
	db := testsupport.MustOpenSQLite(t)
	alice := mustCreateUser(t, db, "alice")
	bob := mustCreateUser(t, db, "bob")
	mustCreateNote(t, db, alice.ID, "first", "")
	second := mustCreateNote(t, db, alice.ID, "second", "")
	mustCreateNote(t, db, bob.ID, "bob's", "")

	notes, err := repositories.NewNoteRepository(db).GetAll(ctx, alice.ID)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(notes))
	}
	if notes[0].ID != second.ID {
		t.Fatalf("expected most recent note first, got %+v", notes[0])
	}
	for _, note := range notes {
		if note.UserID != alice.ID {
			t.Fatalf("foreign note returned: %+v", note)
		}
	}
}

func TestSearchNotes(t *testing.T) {
	ctx := context.Background()
	db := testsupport.MustOpenSQLite(t)
	alice := mustCreateUser(t, db, "alice")
	bob := mustCreateUser(t, db, "bob")
	groceries := mustCreateNote(t, db, alice.ID, "Groceries", "milk, eggs")
	recipe := mustCreateNote(t, db, alice.ID, "Recipe", "add MILK slowly")
	discount := mustCreateNote(t, db, alice.ID, "Discount", "50% off")
	office := mustCreateNote(t, db, alice.ID, "Ärger im Büro", "Straße gesperrt")
	mustCreateNote(t, db, bob.ID, "milk run", "")

	repo := repositories.NewSearchRepository(db)

	cases := []struct {
		name  string
		query string
		want  []int64
	}{
		{name: "content match ignores case", query: "milk", want: []int64{recipe.ID, groceries.ID}},
		{name: "title match", query: "GROC", want: []int64{groceries.ID}},
		{name: "no match", query: "zzz", want: nil},
		{name: "percent is literal", query: "%", want: []int64{discount.ID}},
		{name: "underscore is literal", query: "_", want: nil},
		{name: "non-ascii exact case", query: "Ärger", want: []int64{office.ID}},
		{name: "non-ascii lower query", query: "ärger", want: []int64{office.ID}},
		{name: "non-ascii upper query", query: "ÄRGER", want: []int64{office.ID}},
		{name: "non-ascii content", query: "STRASSE", want: nil},
		{name: "non-ascii content mixed case", query: "straße", want: []int64{office.ID}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			notes, err := repo.SearchNotes(ctx, alice.ID, tc.query)
			if err != nil {
				t.Fatalf("SearchNotes: %v", err)
			}
			if len(notes) != len(tc.want) {
				t.Fatalf("got %d notes, want %d", len(notes), len(tc.want))
			}
			for i, id := range tc.want {
				if notes[i].ID != id {
					t.Fatalf("notes[%d].ID = %d, want %d", i, notes[i].ID, id)
				}
			}
		})
	}
}

func TestCommentRepositoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := testsupport.MustOpenSQLite(t)
	user := mustCreateUser(t, db, "alice")
	note := mustCreateNote(t, db, user.ID, "A", "")
	repo := repositories.NewCommentRepository(db)

	first := &models.Comment{NoteID: note.ID, Content: "first"}
	second := &models.Comment{NoteID: note.ID, Content: "second"}
	for _, c := range []*models.Comment{first, second} {
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	comments, err := repo.GetByNote(ctx, note.ID)
	if err != nil {
		t.Fatalf("GetByNote: %v", err)
	}
	if len(comments) != 2 || comments[0].ID != second.ID {
		t.Fatalf("expected newest first, got %+v", comments)
	}

	if err := repo.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, first.ID); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("Delete missing: got %v", err)
	}
}

func TestMusicRepository(t *testing.T) {
	ctx := context.Background()
	db := testsupport.MustOpenSQLite(t)
	alice := mustCreateUser(t, db, "alice")
	bob := mustCreateUser(t, db, "bob")
	repo := repositories.NewMusicRepository(db)

	for _, m := range []*models.Music{
		{UserID: alice.ID, FileName: "1-a.mp3"},
		{UserID: alice.ID, FileName: "2-b.mp3"},
		{UserID: bob.ID, FileName: "3-c.mp3"},
	} {
		if err := repo.Create(ctx, m); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	musics, err := repo.GetAll(ctx, alice.ID)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(musics) != 2 || musics[0].FileName != "2-b.mp3" {
		t.Fatalf("unexpected music list: %+v", musics)
	}
}
