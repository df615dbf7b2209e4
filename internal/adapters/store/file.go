package store

import (
	"cybot/internal/core/domain"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// FileStore persists the subscription table as one indented JSON object
// keyed by subscriber id. Every save rewrites the whole snapshot; the file
// stays human-inspectable.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load() (map[string]domain.SubscriptionRecord, error) {
	buf, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("path", f.path).Msg("no subscription file yet, starting empty")
			return make(map[string]domain.SubscriptionRecord), nil
		}
		return nil, fmt.Errorf("error reading subscription file: %w", err)
	}

	var records map[string]domain.SubscriptionRecord
	if err := json.Unmarshal(buf, &records); err != nil {
		return nil, fmt.Errorf("error parsing subscription file: %w", err)
	}

	log.Debug().Int("records", len(records)).Str("path", f.path).Msg("loaded subscriptions")
	return records, nil
}

// Save writes the snapshot to a temp file and renames it into place, so the
// file on disk is always a complete parseable snapshot.
func (f *FileStore) Save(records map[string]domain.SubscriptionRecord) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("error creating data directory: %w", err)
	}

	buf, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding subscriptions: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, buf, 0o644); err != nil {
		return fmt.Errorf("error writing subscription file: %w", err)
	}

	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("error replacing subscription file: %w", err)
	}

	log.Debug().Int("records", len(records)).Str("path", f.path).Msg("saved subscriptions")
	return nil
}
