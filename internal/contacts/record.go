package contacts

import (
	"fmt"
	"strings"
)

// Record holds one contact: a name, its phone numbers in insertion order and
// an optional birthday. Phone numbers are unique within a record.
type Record struct {
	name     Name
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates a record with no phones and no birthday
func NewRecord(name string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

// Name returns the contact name
func (r *Record) Name() string {
	return r.name.String()
}

// Phones returns a copy of the phone numbers in insertion order
func (r *Record) Phones() []string {
	phones := make([]string, len(r.phones))
	for i, p := range r.phones {
		phones[i] = p.String()
	}
	return phones
}

// Birthday returns the birthday and whether one is set
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// AddPhone validates raw and appends it
func (r *Record) AddPhone(raw string) error {
	phone, err := NewPhone(raw)
	if err != nil {
		return err
	}
	if r.FindPhone(raw) {
		return fmt.Errorf("phone %s for %s: %w", raw, r.Name(), ErrDuplicate)
	}
	r.phones = append(r.phones, phone)
	return nil
}

// RemovePhone removes the phone equal to raw
func (r *Record) RemovePhone(raw string) error {
	i := r.indexOf(raw)
	if i < 0 {
		return fmt.Errorf("phone %s for %s: %w", raw, r.Name(), ErrNotFound)
	}
	r.phones = append(r.phones[:i], r.phones[i+1:]...)
	return nil
}

// EditPhone replaces oldRaw with a validated newRaw, keeping its position
func (r *Record) EditPhone(oldRaw, newRaw string) error {
	i := r.indexOf(oldRaw)
	if i < 0 {
		return fmt.Errorf("phone %s for %s: %w", oldRaw, r.Name(), ErrNotFound)
	}
	phone, err := NewPhone(newRaw)
	if err != nil {
		return err
	}
	if oldRaw == newRaw {
		return nil
	}
	if r.FindPhone(newRaw) {
		return fmt.Errorf("phone %s for %s: %w", newRaw, r.Name(), ErrDuplicate)
	}
	r.phones[i] = phone
	return nil
}

// FindPhone reports whether the record holds raw
func (r *Record) FindPhone(raw string) bool {
	return r.indexOf(raw) >= 0
}

// SetBirthday validates raw and overwrites any existing birthday
func (r *Record) SetBirthday(raw string) error {
	b, err := NewBirthday(raw)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// String renders the record as a single human-readable line
func (r *Record) String() string {
	var sb strings.Builder
	sb.WriteString("Contact name: ")
	sb.WriteString(r.Name())
	sb.WriteString(", phones: ")
	sb.WriteString(strings.Join(r.Phones(), "; "))
	if r.birthday != nil {
		sb.WriteString(", birthday: ")
		sb.WriteString(r.birthday.String())
	}
	return sb.String()
}

func (r *Record) indexOf(raw string) int {
	for i, p := range r.phones {
		if p.value == raw {
			return i
		}
	}
	return -1
}
