// Package storage persists the address book as a JSON or YAML snapshot file.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/username/assistant-bot/internal/contacts"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Supported snapshot formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

const snapshotVersion = 1

// Snapshot is the on-disk form of the address book
type Snapshot struct {
	Version  int               `json:"version" yaml:"version"`
	SavedAt  time.Time         `json:"saved_at" yaml:"saved_at"`
	Contacts []ContactSnapshot `json:"contacts" yaml:"contacts"`
}

// ContactSnapshot is the on-disk form of one record
type ContactSnapshot struct {
	Name     string   `json:"name" yaml:"name"`
	Phones   []string `json:"phones" yaml:"phones"`
	Birthday *string  `json:"birthday,omitempty" yaml:"birthday,omitempty"`
}

// FileStore loads and saves the address book at a single path
type FileStore struct {
	path   string
	format string
	logger *zap.Logger
	now    func() time.Time
}

// NewFileStore creates a store. An empty format is inferred from the file
// extension: .yaml and .yml select YAML, anything else JSON.
func NewFileStore(path, format string, logger *zap.Logger) (*FileStore, error) {
	if format == "" {
		format = FormatFromPath(path)
	}
	if format != FormatJSON && format != FormatYAML {
		return nil, fmt.Errorf("unknown storage format: %s", format)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{
		path:   path,
		format: format,
		logger: logger,
		now:    time.Now,
	}, nil
}

// FormatFromPath returns the snapshot format implied by the file extension
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Path returns the snapshot file path
func (fs *FileStore) Path() string {
	return fs.path
}

// Load reads the address book. A missing or empty file yields an empty book.
// A file that cannot be decoded is moved aside to <path>.corrupt and an empty
// book is returned. Invalid phones and birthdays are dropped from their
// contact, contacts with an invalid or repeated name are skipped, and in both
// cases the original file is copied to <path>.corrupt.
func (fs *FileStore) Load() (*contacts.AddressBook, error) {
	book := contacts.NewAddressBook(fs.logger)

	data, err := os.ReadFile(fs.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fs.logger.Info("Address book file not found, starting empty",
				zap.String("file", fs.path))
			return book, nil
		}
		return nil, fmt.Errorf("failed to read address book: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		fs.logger.Warn("Address book file is empty, starting empty",
			zap.String("file", fs.path))
		return book, nil
	}

	var snap Snapshot
	if err := fs.decode(data, &snap); err != nil {
		backup := fs.path + ".corrupt"
		fs.logger.Warn("Failed to parse address book, starting empty",
			zap.String("file", fs.path),
			zap.String("backup", backup),
			zap.Error(err))
		if err := os.Rename(fs.path, backup); err != nil {
			return nil, fmt.Errorf("failed to move unreadable address book aside: %w", err)
		}
		return book, nil
	}

	skipped := 0
	for _, c := range snap.Contacts {
		record, fieldErrs, err := c.toRecord()
		if err == nil {
			err = book.Add(record)
		}
		if err != nil {
			fs.logger.Warn("Skipping invalid contact",
				zap.String("name", c.Name),
				zap.Error(err))
			skipped++
			continue
		}
		for _, fe := range fieldErrs {
			fs.logger.Warn("Skipping invalid field",
				zap.String("name", c.Name),
				zap.Error(fe))
		}
		skipped += len(fieldErrs)
	}

	if skipped > 0 {
		backup := fs.path + ".corrupt"
		if err := os.WriteFile(backup, data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to back up address book: %w", err)
		}
		fs.logger.Warn("Address book had invalid entries, original kept",
			zap.String("backup", backup),
			zap.Int("skipped", skipped))
	}

	fs.logger.Info("Address book loaded",
		zap.String("file", fs.path),
		zap.Int("contacts", book.Len()))

	return book, nil
}

// Save writes the full address book. The snapshot is written to a temporary
// file in the same directory and renamed over the old one.
func (fs *FileStore) Save(book *contacts.AddressBook) error {
	snap := Snapshot{
		Version:  snapshotVersion,
		SavedAt:  fs.now().UTC(),
		Contacts: make([]ContactSnapshot, 0, book.Len()),
	}
	for record := range book.All() {
		snap.Contacts = append(snap.Contacts, fromRecord(record))
	}

	data, err := fs.encode(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal address book: %w", err)
	}

	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(fs.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write address book: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync address book: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close address book: %w", err)
	}
	if err := os.Rename(tmpName, fs.path); err != nil {
		return fmt.Errorf("failed to replace address book: %w", err)
	}

	fs.logger.Info("Address book saved",
		zap.String("file", fs.path),
		zap.Int("contacts", len(snap.Contacts)))

	return nil
}

func (fs *FileStore) encode(snap Snapshot) ([]byte, error) {
	if fs.format == FormatYAML {
		return yaml.Marshal(snap)
	}
	return json.MarshalIndent(snap, "", "  ")
}

func (fs *FileStore) decode(data []byte, snap *Snapshot) error {
	if fs.format == FormatYAML {
		return yaml.Unmarshal(data, snap)
	}
	return json.Unmarshal(data, snap)
}

func fromRecord(r *contacts.Record) ContactSnapshot {
	c := ContactSnapshot{
		Name:   r.Name(),
		Phones: r.Phones(),
	}
	if b, ok := r.Birthday(); ok {
		s := b.String()
		c.Birthday = &s
	}
	return c
}

// toRecord rebuilds a record. err is set only when the name is invalid;
// invalid phones and birthdays are left out and reported in fieldErrs.
func (c ContactSnapshot) toRecord() (record *contacts.Record, fieldErrs []error, err error) {
	record, err = contacts.NewRecord(c.Name)
	if err != nil {
		return nil, nil, err
	}
	for _, p := range c.Phones {
		if err := record.AddPhone(p); err != nil {
			fieldErrs = append(fieldErrs, err)
		}
	}
	if c.Birthday != nil {
		if err := record.SetBirthday(*c.Birthday); err != nil {
			fieldErrs = append(fieldErrs, err)
		}
	}
	return record, fieldErrs, nil
}
