package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"notely/internal/config"
	"notely/internal/database"
	"notely/internal/database/models"
	"notely/internal/database/repositories"
)

func mustStartPostgres(t *testing.T) database.Service {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("notely"),
		postgres.WithUsername("notely"),
		postgres.WithPassword("notely"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	cfg := config.Default().Database
	cfg.Driver = config.DriverPostgres
	cfg.URL = dsn
	db, err := database.New(cfg)
	if err != nil {
		t.Fatalf("database.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

func TestPostgresRepositories(t *testing.T) {
	db := mustStartPostgres(t)
	ctx := context.Background()

	if db.Dialect() != database.Postgres {
		t.Fatalf("dialect = %s", db.Dialect())
	}

	users := repositories.NewUserRepository(db)
	alice := &models.User{Username: "alice", Password: "hash"}
	if err := users.Create(ctx, alice); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := users.Create(ctx, &models.User{Username: "alice", Password: "x"}); !errors.Is(err, repositories.ErrConflict) {
		t.Fatalf("duplicate user: got %v, want ErrConflict", err)
	}

	notes := repositories.NewNoteRepository(db)
	note := &models.Note{Title: "Groceries", UserID: alice.ID, Content: models.Content{Value: "Milk and eggs"}}
	if err := notes.Create(ctx, note); err != nil {
		t.Fatalf("create note: %v", err)
	}

	favorite := true
	updated, err := notes.Update(ctx, note.ID, repositories.NotePatch{IsFavorite: &favorite})
	if err != nil {
		t.Fatalf("update note: %v", err)
	}
	if !updated.IsFavorite || updated.Content.Value != "Milk and eggs" {
		t.Fatalf("unexpected note: %+v", updated)
	}

	found, err := repositories.NewSearchRepository(db).SearchNotes(ctx, alice.ID, "MILK")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 1 || found[0].ID != note.ID {
		t.Fatalf("unexpected search result: %+v", found)
	}

	comments := repositories.NewCommentRepository(db)
	if err := comments.Create(ctx, &models.Comment{NoteID: note.ID, Content: "hi"}); err != nil {
		t.Fatalf("create comment: %v", err)
	}
	if err := notes.Delete(ctx, note.ID); err != nil {
		t.Fatalf("delete note: %v", err)
	}
	remaining, err := comments.GetByNote(ctx, note.ID)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("comments survived note delete: %+v", remaining)
	}

	version, dirty, err := db.MigrationVersion()
	if err != nil || dirty || version != 4 {
		t.Fatalf("MigrationVersion = %d, %t, %v", version, dirty, err)
	}
}
