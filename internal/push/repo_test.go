package push

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/aurenecom/storefront-backend/pkg/enums"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	schema := `
CREATE TABLE IF NOT EXISTS push_tokens (
  id TEXT PRIMARY KEY,
  token TEXT NOT NULL UNIQUE,
  platform TEXT NOT NULL,
  user_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);
`
	if err := conn.Exec(schema).Error; err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	if err := conn.Exec(`DELETE FROM push_tokens`).Error; err != nil {
		t.Fatalf("failed to reset tables: %v", err)
	}
	return conn
}

func TestUpsertRefreshesExistingToken(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	first, err := repo.Upsert(ctx, "device-1", enums.PushPlatformWeb, nil)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if first.UserID != nil {
		t.Fatalf("expected anonymous token, got user %v", first.UserID)
	}

	userID := uuid.New()
	second, err := repo.Upsert(ctx, "device-1", enums.PushPlatformAndroid, &userID)
	if err != nil {
		t.Fatalf("upsert again: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected the same row, got %s and %s", first.ID, second.ID)
	}
	if second.Platform != enums.PushPlatformAndroid {
		t.Fatalf("expected refreshed platform, got %s", second.Platform)
	}
	if second.UserID == nil || *second.UserID != userID {
		t.Fatalf("expected claimed user, got %v", second.UserID)
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected one row, got %d", len(all))
	}
}

func TestClaimAttachesUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	if _, err := repo.Upsert(ctx, "device-2", enums.PushPlatformIOS, nil); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	userID := uuid.New()
	if err := repo.Claim(ctx, "device-2", userID); err != nil {
		t.Fatalf("claim: %v", err)
	}

	rows, err := repo.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(rows) != 1 || rows[0].Token != "device-2" {
		t.Fatalf("expected claimed token, got %v", rows)
	}
}

func TestDeleteByToken(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	if _, err := repo.Upsert(ctx, "device-3", enums.PushPlatformWeb, nil); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.DeleteByToken(ctx, "device-3"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected no rows, got %d", len(all))
	}
}
