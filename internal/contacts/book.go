package contacts

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// AddressBook is the registry of contact records keyed by name
type AddressBook struct {
	records map[string]*Record
	logger  *zap.Logger
}

// NewAddressBook creates an empty address book
func NewAddressBook(logger *zap.Logger) *AddressBook {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AddressBook{
		records: make(map[string]*Record),
		logger:  logger,
	}
}

// Add inserts record, rejecting a name that is already present
func (ab *AddressBook) Add(record *Record) error {
	name := record.Name()
	if _, ok := ab.records[name]; ok {
		return fmt.Errorf("contact %s: %w", name, ErrDuplicate)
	}
	ab.records[name] = record

	ab.logger.Debug("Contact added",
		zap.String("name", name),
		zap.Int("phones", len(record.phones)))

	return nil
}

// Find returns the record stored under the exact (trimmed) name
func (ab *AddressBook) Find(name string) (*Record, bool) {
	record, ok := ab.records[strings.TrimSpace(name)]
	return record, ok
}

// Get is like Find but reports a missing contact as ErrNotFound
func (ab *AddressBook) Get(name string) (*Record, error) {
	record, ok := ab.Find(name)
	if !ok {
		return nil, fmt.Errorf("contact %s: %w", strings.TrimSpace(name), ErrNotFound)
	}
	return record, nil
}

// Delete removes the record stored under name
func (ab *AddressBook) Delete(name string) error {
	key := strings.TrimSpace(name)
	if _, ok := ab.records[key]; !ok {
		return fmt.Errorf("contact %s: %w", key, ErrNotFound)
	}
	delete(ab.records, key)

	ab.logger.Debug("Contact deleted", zap.String("name", key))

	return nil
}

// Len returns the number of records
func (ab *AddressBook) Len() int {
	return len(ab.records)
}

// All yields the records ordered by name. Each call iterates over a fresh
// snapshot of the keys, so the sequence can be restarted and tolerates
// deletes made while ranging over it.
func (ab *AddressBook) All() iter.Seq[*Record] {
	return func(yield func(*Record) bool) {
		names := make([]string, 0, len(ab.records))
		for name := range ab.records {
			names = append(names, name)
		}
		slices.Sort(names)

		for _, name := range names {
			record, ok := ab.records[name]
			if !ok {
				continue
			}
			if !yield(record) {
				return
			}
		}
	}
}

// String renders every record on its own line
func (ab *AddressBook) String() string {
	lines := make([]string, 0, len(ab.records))
	for record := range ab.All() {
		lines = append(lines, record.String())
	}
	return strings.Join(lines, "\n")
}
