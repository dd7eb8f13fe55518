//go:build integration && postgres

package postgres

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/agendalabs/meetingd/internal/domain/account"
	"github.com/agendalabs/meetingd/internal/domain/meeting"
	"github.com/agendalabs/meetingd/internal/domain/note"
	"github.com/agendalabs/meetingd/internal/domain/task"
)

// Integration test against Postgres to ensure migrations and the core CRUD
// round trips work with persistence.
func TestIntegrationPostgres(t *testing.T) {
	_ = godotenv.Load() // allow .env for local runs
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set; skipping Postgres integration")
	}

	ctx := context.Background()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := Apply(ctx, db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	store := New(db)

	owner, err := store.CreateAccount(ctx, account.Account{Name: "pg-owner", Email: "pg-owner@example.com"})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	t.Cleanup(func() {
		_, _ = db.ExecContext(ctx, "DELETE FROM tasks WHERE owner_id = $1", owner.ID)
		_, _ = db.ExecContext(ctx, "DELETE FROM meetings WHERE owner_id = $1", owner.ID)
		_, _ = db.ExecContext(ctx, "DELETE FROM accounts WHERE id = $1", owner.ID)
	})
	if owner, err = store.SetAccountOwner(ctx, owner.ID, owner.ID); err != nil {
		t.Fatalf("set owner: %v", err)
	}

	m, err := store.CreateMeeting(ctx, meeting.Meeting{
		Title:         "pg meeting",
		ScheduledTime: time.Now().Add(time.Hour),
		OwnerID:       owner.ID,
	})
	if err != nil {
		t.Fatalf("create meeting: %v", err)
	}

	if _, err := store.CreateNote(ctx, note.Note{Content: "pg note", MeetingID: m.ID, OwnerID: owner.ID}); err != nil {
		t.Fatalf("create note: %v", err)
	}
	created, err := store.CreateTask(ctx, task.Task{Title: "pg task", Status: task.StatusPending, DueMeetingID: m.ID, OwnerID: owner.ID})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := store.DeleteMeeting(ctx, owner.ID, m.ID); err != nil {
		t.Fatalf("delete meeting: %v", err)
	}

	notes, err := store.ListNotes(ctx, owner.ID, nil)
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(notes) != 0 {
		t.Fatalf("expected notes cascaded, got %v", notes)
	}

	got, err := store.GetTask(ctx, owner.ID, created.ID)
	if err != nil {
		t.Fatalf("get task after meeting delete: %v", err)
	}
	if got.DueMeetingID != m.ID {
		t.Fatalf("expected dangling meeting reference, got %d", got.DueMeetingID)
	}
}
