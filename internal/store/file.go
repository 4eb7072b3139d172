package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/karanpandatyxz-bot/CAMPUS-EVENT-TRACKER/internal/model"
)

// FilePersistence stores the collection as a JSON array in a single file.
//
// State mapping for Load:
//   - file missing        -> absent (seed on next Load)
//   - file zero-length    -> present, empty (an explicit Clear happened)
//   - file with bad JSON  -> present, malformed
//   - file with an array  -> present, records
//
// Erase truncates the file to zero bytes rather than unlinking it, so a
// cleared collection is distinguishable from one that never existed.
type FilePersistence struct {
	path string
}

// NewFilePersistence stores the collection at the given path.
func NewFilePersistence(path string) *FilePersistence {
	return &FilePersistence{path: path}
}

func (f *FilePersistence) Load() ([]model.EventRecord, bool, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if len(data) == 0 {
		return nil, true, nil
	}

	var records []model.EventRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, true, err
	}
	return records, true, nil
}

// Save writes the collection atomically: temp file in the same directory,
// fsync, chmod 0600, rename over the target.
func (f *FilePersistence) Save(records []model.EventRecord) error {
	if records == nil {
		records = []model.EventRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".cetrack-events-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, f.path)
}

// Erase removes all persisted data but leaves the cleared marker (a
// zero-byte file) behind.
func (f *FilePersistence) Erase() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.path, nil, 0o600)
}

// Reset unlinks the data file entirely. The next Load sees absent state
// and reseeds the samples.
func (f *FilePersistence) Reset() error {
	err := os.Remove(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Size reports the persisted data size in bytes, zero when nothing is
// stored yet.
func (f *FilePersistence) Size() int64 {
	info, err := os.Stat(f.path)
	if err != nil {
		return 0
	}
	return info.Size()
}
