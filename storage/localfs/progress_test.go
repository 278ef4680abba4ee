package localfs

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/progress"
)

func TestProgressStore(t *testing.T) {
	dir := t.TempDir()
	store := NewProgressStore(dir)
	ctx := context.Background()

	t.Run("missing file is not found", func(t *testing.T) {
		if _, err := store.GetProgress(ctx, "ignored"); errors.Cause(err) != progress.ErrNotFound {
			t.Errorf("GetProgress() error = %v; want ErrNotFound", err)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		if err := store.UpsertProgress(ctx, "ignored", []string{"a", "b"}); err != nil {
			t.Fatalf("UpsertProgress() failed: %v", err)
		}
		ids, err := store.GetProgress(ctx, "ignored")
		if err != nil {
			t.Fatalf("GetProgress() failed: %v", err)
		}
		if want := []string{"a", "b"}; !reflect.DeepEqual(ids, want) {
			t.Errorf("GetProgress() = %v; want %v", ids, want)
		}
	})

	t.Run("user id does not shard the file", func(t *testing.T) {
		ids, err := store.GetProgress(ctx, "someone-else")
		if err != nil {
			t.Fatalf("GetProgress() failed: %v", err)
		}
		if want := []string{"a", "b"}; !reflect.DeepEqual(ids, want) {
			t.Errorf("GetProgress() = %v; want %v", ids, want)
		}
	})

	t.Run("upsert replaces the whole set", func(t *testing.T) {
		if err := store.UpsertProgress(ctx, "ignored", []string{"c"}); err != nil {
			t.Fatalf("UpsertProgress() failed: %v", err)
		}
		ids, err := store.GetProgress(ctx, "ignored")
		if err != nil {
			t.Fatalf("GetProgress() failed: %v", err)
		}
		if want := []string{"c"}; !reflect.DeepEqual(ids, want) {
			t.Errorf("GetProgress() = %v; want %v", ids, want)
		}
	})

	t.Run("corrupt file errors", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(dir, "classroomProgress.json"), []byte("lol"), 0644); err != nil {
			t.Fatalf("os.WriteFile() failed: %v", err)
		}
		if _, err := store.GetProgress(ctx, "ignored"); err == nil {
			t.Error("GetProgress() expected an error for a corrupt file")
		}
	})
}
