package repositories

import (
	"context"
	"testing"

	"github.com/desertthunder/ytspin/internal/models"
	"github.com/desertthunder/ytspin/internal/services"
)

var _ services.TextFileStore = (*TextStoreAdapter)(nil)

func TestTextStoreAdapter(t *testing.T) {
	ctx := context.Background()

	t.Run("missing profile reads as empty", func(t *testing.T) {
		store := NewTextStoreAdapter(NewTextFileRepository(setupTestDB(t)))

		content, err := store.GetTextFile(ctx, "nobody", models.Titles)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if content != "" {
			t.Errorf("expected empty content, got %q", content)
		}
	})

	t.Run("save then get", func(t *testing.T) {
		store := NewTextStoreAdapter(NewTextFileRepository(setupTestDB(t)))

		if err := store.SaveTextFile(ctx, "Tech", models.Titles, "Top {5|10} Tips"); err != nil {
			t.Fatalf("failed to save: %v", err)
		}
		if err := store.SaveTextFile(ctx, "Tech", models.Titles, "Best {A|B}"); err != nil {
			t.Fatalf("failed to overwrite: %v", err)
		}

		content, err := store.GetTextFile(ctx, "Tech", models.Titles)
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if content != "Best {A|B}" {
			t.Errorf("expected overwritten content, got %q", content)
		}

		other, err := store.GetTextFile(ctx, "Tech", models.Descriptions)
		if err != nil {
			t.Fatalf("failed to get descriptions: %v", err)
		}
		if other != "" {
			t.Errorf("expected kinds to be stored separately, got %q", other)
		}
	})

	t.Run("closed database", func(t *testing.T) {
		db := setupTestDB(t)
		store := NewTextStoreAdapter(NewTextFileRepository(db))
		db.Close()

		if _, err := store.GetTextFile(ctx, "Tech", models.Titles); err == nil {
			t.Error("expected error from closed database")
		}
		if err := store.SaveTextFile(ctx, "Tech", models.Titles, "x"); err == nil {
			t.Error("expected error from closed database")
		}
	})
}
