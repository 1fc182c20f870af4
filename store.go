package stockbook

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// DefaultSlot is the name of the slot used when none is given.
const DefaultSlot = "stockbook"

// Store persists a whole Snapshot in a single slot.
//
// Load returns the raw decoded content of the slot, or nil when the slot is
// missing or cannot be parsed: a parse failure is never returned to the
// caller. Save replaces the whole slot, failures wrap ErrStoreWrite.
type Store interface {
	Load() (any, error)
	Save(s *Snapshot) error
}

// Open loads the snapshot from st, normalizes it and saves it back so that
// generated ids and defaults are stable across loads.
//
// When the save fails the normalized snapshot is still returned, together
// with the error.
func Open(st Store) (*Snapshot, error) {
	raw, err := st.Load()
	if err != nil {
		return nil, err
	}
	s := Normalize(raw)
	if err := st.Save(s); err != nil {
		return s, err
	}
	return s, nil
}

// encodeSnapshot is the persisted form of a snapshot: indented JSON.
func encodeSnapshot(s *Snapshot) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// FileStore stores a snapshot in the file <Dir>/<Slot>.json.
type FileStore struct {
	Dir  string
	Slot string
}

// NewFileStore returns a FileStore, slot defaults to DefaultSlot.
func NewFileStore(dir, slot string) *FileStore {
	if slot == "" {
		slot = DefaultSlot
	}
	return &FileStore{Dir: dir, Slot: slot}
}

// Path returns the file the snapshot is stored in.
func (f *FileStore) Path() string {
	slot := f.Slot
	if slot == "" {
		slot = DefaultSlot
	}
	return filepath.Join(f.Dir, slot+".json")
}

// Load reads the slot file. An unparsable file is moved aside to
// <slot>.json.corrupt, so that the next Save does not destroy it.
func (f *FileStore) Load() (any, error) {
	path := f.Path()
	log := logrus.WithField("path", path)

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info("no snapshot yet, starting empty")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read snapshot %q: %w", path, err)
	}
	raw, err := decodeJSON(b)
	if err != nil {
		log.WithError(err).Warn("snapshot is not valid JSON, starting empty")
		if err := os.Rename(path, path+".corrupt"); err != nil {
			log.WithError(err).Warn("cannot move corrupt snapshot aside")
		}
		return nil, nil
	}
	log.Debug("snapshot loaded")
	return raw, nil
}

// Save writes the snapshot to a temporary file and renames it over the slot
// file, so that the slot always holds a complete snapshot.
func (f *FileStore) Save(s *Snapshot) error {
	path := f.Path()
	b, err := encodeSnapshot(s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %q: %v", ErrStoreWrite, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrStoreWrite, path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrStoreWrite, path, err)
	}
	logrus.WithFields(logrus.Fields{
		"path":     path,
		"lots":     len(s.Lots),
		"items":    len(s.Items),
		"expenses": len(s.Expenses),
	}).Debug("snapshot saved")
	return nil
}

// MemoryStore keeps the encoded snapshot in memory.
type MemoryStore struct {
	Data []byte
	// Err, when set, makes every Save fail with it, like a full disk would.
	Err error
}

func (m *MemoryStore) Load() (any, error) {
	if len(m.Data) == 0 {
		return nil, nil
	}
	raw, err := decodeJSON(m.Data)
	if err != nil {
		logrus.WithError(err).Warn("snapshot is not valid JSON, starting empty")
		return nil, nil
	}
	return raw, nil
}

func (m *MemoryStore) Save(s *Snapshot) error {
	if m.Err != nil {
		return fmt.Errorf("%w: %v", ErrStoreWrite, m.Err)
	}
	b, err := encodeSnapshot(s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}
	m.Data = b
	return nil
}
