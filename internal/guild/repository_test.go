package guild

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo, err := NewRepositoryWithDB(db, logger)
	if err != nil {
		t.Fatalf("create repository: %v", err)
	}
	return repo
}

func TestRegisterAndIsActive(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	active, err := repo.IsActive(ctx, "g1")
	if err != nil {
		t.Fatalf("is active: %v", err)
	}
	if active {
		t.Fatalf("expected unknown guild to be inactive")
	}

	if err := repo.Register(ctx, "g1", "u1", "c1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	active, err = repo.IsActive(ctx, "g1")
	if err != nil {
		t.Fatalf("is active: %v", err)
	}
	if !active {
		t.Fatalf("expected guild to be active after registration")
	}
}

func TestRegisterTwiceOverwritesRegistrant(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.Register(ctx, "g1", "u1", "c1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := repo.Register(ctx, "g1", "u2", "c2"); err != nil {
		t.Fatalf("register again: %v", err)
	}

	var rows []Guild
	if err := repo.db.Find(&rows).Error; err != nil {
		t.Fatalf("list rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected a single row per guild, got %d", len(rows))
	}
	row := rows[0]
	if !row.IsActive {
		t.Fatalf("expected guild to stay active, got %+v", row)
	}
	if row.RegisteredByUserID != "u2" || row.RegisteredChannelID != "c2" {
		t.Fatalf("expected registrant fields overwritten by latest call, got %+v", row)
	}
}

func TestUnregisterDeactivatesRow(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.Register(ctx, "g1", "u1", "c1"); err != nil {
		t.Fatalf("register: %v", err)
	}

	unregistered, err := repo.Unregister(ctx, "g1", "u2")
	if err != nil {
		t.Fatalf("unregister: %v", err)
	}
	if !unregistered {
		t.Fatalf("expected unregister to succeed")
	}

	active, err := repo.IsActive(ctx, "g1")
	if err != nil {
		t.Fatalf("is active: %v", err)
	}
	if active {
		t.Fatalf("expected guild to be inactive after unregister")
	}

	var row Guild
	if err := repo.db.Where("guild_id = ?", "g1").First(&row).Error; err != nil {
		t.Fatalf("expected row to survive unregister: %v", err)
	}
	if row.UnregisteredAt == nil || row.UnregisteredByUserID == nil || *row.UnregisteredByUserID != "u2" {
		t.Fatalf("expected unregister audit fields, got %+v", row)
	}
}

func TestUnregisterInactiveGuild(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	unregistered, err := repo.Unregister(ctx, "missing", "u1")
	if err != nil {
		t.Fatalf("unregister: %v", err)
	}
	if unregistered {
		t.Fatalf("expected unregister of unknown guild to report inactive")
	}
}

func TestReregisterReactivatesSameRow(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.Register(ctx, "g1", "u1", "c1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := repo.Unregister(ctx, "g1", "u1"); err != nil {
		t.Fatalf("unregister: %v", err)
	}

	if err := repo.Register(ctx, "g1", "u3", "c3"); err != nil {
		t.Fatalf("re-register: %v", err)
	}

	var rows []Guild
	if err := repo.db.Find(&rows).Error; err != nil {
		t.Fatalf("list rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected a single row per guild, got %d", len(rows))
	}
	row := rows[0]
	if !row.IsActive || row.RegisteredByUserID != "u3" || row.RegisteredChannelID != "c3" {
		t.Fatalf("expected reactivated row with fresh registration fields, got %+v", row)
	}
	if row.UnregisteredAt != nil || row.UnregisteredByUserID != nil {
		t.Fatalf("expected unregister fields cleared on re-registration, got %+v", row)
	}
}
