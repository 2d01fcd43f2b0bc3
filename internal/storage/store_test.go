package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/assistant-bot/internal/contacts"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type contactView struct {
	Name     string
	Phones   []string
	Birthday string
}

func viewOf(book *contacts.AddressBook) []contactView {
	var out []contactView
	for r := range book.All() {
		v := contactView{Name: r.Name(), Phones: r.Phones()}
		if b, ok := r.Birthday(); ok {
			v.Birthday = b.String()
		}
		out = append(out, v)
	}
	return out
}

func sampleBook(t *testing.T, n, m int) *contacts.AddressBook {
	t.Helper()
	book := contacts.NewAddressBook(nil)
	for i := 0; i < n; i++ {
		r, err := contacts.NewRecord(fmt.Sprintf("Contact %02d", i))
		require.NoError(t, err)
		for j := 0; j < m; j++ {
			require.NoError(t, r.AddPhone(fmt.Sprintf("%05d%05d", i, j)))
		}
		if i%2 == 0 {
			require.NoError(t, r.SetBirthday(fmt.Sprintf("%02d.03.1990", i+1)))
		}
		require.NoError(t, book.Add(r))
	}
	return book
}

func newStore(t *testing.T, name, format string) *FileStore {
	t.Helper()
	fs, err := NewFileStore(filepath.Join(t.TempDir(), name), format, nil)
	require.NoError(t, err)
	return fs
}

func TestFileStore_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		format string
	}{
		{"json by extension", "book.json", ""},
		{"yaml by extension", "book.yaml", ""},
		{"yml by extension", "book.yml", ""},
		{"explicit yaml", "book.dat", FormatYAML},
		{"unknown extension defaults to json", "address_book", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newStore(t, tt.file, tt.format)
			book := sampleBook(t, 5, 3)

			require.NoError(t, fs.Save(book))

			loaded, err := fs.Load()
			require.NoError(t, err)

			if diff := cmp.Diff(viewOf(book), viewOf(loaded)); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFileStore_RoundTripEmpty(t *testing.T) {
	fs := newStore(t, "book.json", "")
	require.NoError(t, fs.Save(contacts.NewAddressBook(nil)))

	loaded, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Len())
}

func TestFileStore_RoundTripNoPhonesNoBirthday(t *testing.T) {
	fs := newStore(t, "book.json", "")
	book := contacts.NewAddressBook(nil)
	r, err := contacts.NewRecord("Lonely")
	require.NoError(t, err)
	require.NoError(t, book.Add(r))

	require.NoError(t, fs.Save(book))
	loaded, err := fs.Load()
	require.NoError(t, err)

	got, ok := loaded.Find("Lonely")
	require.True(t, ok)
	assert.Empty(t, got.Phones())
	_, hasBirthday := got.Birthday()
	assert.False(t, hasBirthday)

	data, err := os.ReadFile(fs.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "birthday")
}

func TestFileStore_LoadMissingFile(t *testing.T) {
	fs := newStore(t, "missing.json", "")

	book, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, book.Len())
}

func TestFileStore_LoadEmptyFile(t *testing.T) {
	fs := newStore(t, "book.json", "")
	require.NoError(t, os.WriteFile(fs.Path(), []byte("  \n"), 0o644))

	book, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, book.Len())
}

func TestFileStore_LoadTruncatedFile(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "book.json"), "", zap.New(core))
	require.NoError(t, err)

	require.NoError(t, fs.Save(sampleBook(t, 2, 1)))
	data, err := os.ReadFile(fs.Path())
	require.NoError(t, err)
	truncated := data[:len(data)/2]
	require.NoError(t, os.WriteFile(fs.Path(), truncated, 0o644))

	book, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, book.Len())

	backup, err := os.ReadFile(fs.Path() + ".corrupt")
	require.NoError(t, err, "unreadable file must be kept aside")
	assert.Equal(t, truncated, backup)
	assert.NoFileExists(t, fs.Path())
	assert.Equal(t, 1, logs.FilterMessage("Failed to parse address book, starting empty").Len())
}

func TestFileStore_LoadSkipsInvalidEntries(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "book.json"), "", zap.New(core))
	require.NoError(t, err)

	raw := `{
  "version": 1,
  "contacts": [
    {"name": "Good", "phones": ["1234567890"], "birthday": "01.01.1990"},
    {"name": "BadPhone", "phones": ["123"]},
    {"name": "BadBirthday", "phones": [], "birthday": "31.02.1990"},
    {"name": "Mixed", "phones": ["1111111111", "12ab", "2222222222"], "birthday": "15.13.1990"},
    {"name": "", "phones": ["3333333333"]},
    {"name": "Good", "phones": ["5555555555"]}
  ]
}`
	require.NoError(t, os.WriteFile(fs.Path(), []byte(raw), 0o644))

	book, err := fs.Load()
	require.NoError(t, err)

	want := []contactView{
		{Name: "BadBirthday", Phones: []string{}},
		{Name: "BadPhone", Phones: []string{}},
		{Name: "Good", Phones: []string{"1234567890"}, Birthday: "01.01.1990"},
		{Name: "Mixed", Phones: []string{"1111111111", "2222222222"}},
	}
	if diff := cmp.Diff(want, viewOf(book)); diff != "" {
		t.Errorf("loaded contacts mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 2, logs.FilterMessage("Skipping invalid contact").Len())
	assert.Equal(t, 4, logs.FilterMessage("Skipping invalid field").Len())

	backup, err := os.ReadFile(fs.Path() + ".corrupt")
	require.NoError(t, err, "file with dropped entries must be kept aside")
	assert.Equal(t, raw, string(backup))
	assert.FileExists(t, fs.Path())
}

func TestFileStore_LoadValidFileKeepsNoBackup(t *testing.T) {
	fs := newStore(t, "book.json", "")
	require.NoError(t, fs.Save(sampleBook(t, 2, 2)))

	_, err := fs.Load()
	require.NoError(t, err)
	assert.NoFileExists(t, fs.Path()+".corrupt")
}

func TestFileStore_SaveOverwritesAndLeavesNoTempFiles(t *testing.T) {
	fs := newStore(t, "book.json", "")
	fs.now = func() time.Time { return time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC) }

	require.NoError(t, fs.Save(sampleBook(t, 3, 1)))
	require.NoError(t, fs.Save(sampleBook(t, 1, 1)))

	loaded, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Len())

	entries, err := os.ReadDir(filepath.Dir(fs.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "book.json", entries[0].Name())

	data, err := os.ReadFile(fs.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"saved_at": "2024-06-10T12:00:00Z"`)
}

func TestFileStore_SaveFailureLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.json")
	// A non-empty directory in place of the file makes the final rename fail
	require.NoError(t, os.MkdirAll(filepath.Join(path, "occupied"), 0o755))

	fs, err := NewFileStore(path, "", nil)
	require.NoError(t, err)

	err = fs.Save(sampleBook(t, 1, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to replace address book")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "book.json", entries[0].Name())
}

func TestFileStore_SaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "book.json")
	fs, err := NewFileStore(path, "", nil)
	require.NoError(t, err)

	require.NoError(t, fs.Save(sampleBook(t, 1, 1)))
	assert.FileExists(t, path)
}

func TestNewFileStore_UnknownFormat(t *testing.T) {
	_, err := NewFileStore("book.json", "xml", nil)
	assert.Error(t, err)
}
