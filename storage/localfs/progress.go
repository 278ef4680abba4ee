package localfs

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/progress"
)

// storageKey names the single progress file, matching the storage key of the
// browser-local variant of the dashboard.
const storageKey = "classroomProgress"

// progressStore keeps one serialized id array on disk. It backs the
// local-only mode for single-user installs: the user id is not part of the
// key, every session reads and writes the same file.
type progressStore struct {
	path string
	mu   sync.Mutex
}

var _ progress.Repository = (*progressStore)(nil)

func NewProgressStore(dir string) progress.Repository {
	return &progressStore{path: filepath.Join(dir, storageKey+".json")}
}

func (s *progressStore) GetProgress(_ context.Context, _ string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := ioutil.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, progress.ErrNotFound
		}
		return nil, errors.Wrapf(err, "reading %s", s.path)
	}

	var ids []string
	if err = json.Unmarshal(data, &ids); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", s.path)
	}
	return ids, nil
}

func (s *progressStore) UpsertProgress(_ context.Context, _ string, itemIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(itemIDs)
	if err != nil {
		return errors.Wrap(err, "serializing progress")
	}
	if err = ioutil.WriteFile(s.path, data, 0644); err != nil {
		return errors.Wrapf(err, "writing %s", s.path)
	}
	return nil
}
