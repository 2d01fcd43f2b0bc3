// Package assistant implements the console front end of the address book:
// the operations a user can run, the command parser and the interactive
// session loops.
package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/username/assistant-bot/internal/contacts"
	"github.com/username/assistant-bot/pkg/dateutil"
	"go.uber.org/zap"
)

// Bot exposes the address book operations available to a console session.
// Every method returns the message to show or an error for Describe.
type Bot struct {
	book   *contacts.AddressBook
	now    func() time.Time
	logger *zap.Logger
}

// NewBot creates a bot operating on book
func NewBot(book *contacts.AddressBook, logger *zap.Logger) *Bot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bot{
		book:   book,
		now:    time.Now,
		logger: logger,
	}
}

// AddContact adds phone to an existing contact, or creates the contact
func (b *Bot) AddContact(name, phone string) (string, error) {
	if record, ok := b.book.Find(name); ok {
		if err := record.AddPhone(phone); err != nil {
			return "", err
		}
		return "Phone added.", nil
	}

	record, err := contacts.NewRecord(name)
	if err != nil {
		return "", err
	}
	if err := record.AddPhone(phone); err != nil {
		return "", err
	}
	if err := b.book.Add(record); err != nil {
		return "", err
	}
	return "Contact added.", nil
}

// ChangeContact replaces oldPhone with newPhone on the named contact
func (b *Bot) ChangeContact(name, oldPhone, newPhone string) (string, error) {
	record, err := b.book.Get(name)
	if err != nil {
		return "", err
	}
	if err := record.EditPhone(oldPhone, newPhone); err != nil {
		return "", err
	}
	return "Phone updated.", nil
}

// ShowPhones returns the contact's phone numbers joined with "; "
func (b *Bot) ShowPhones(name string) (string, error) {
	record, err := b.book.Get(name)
	if err != nil {
		return "", err
	}
	phones := record.Phones()
	if len(phones) == 0 {
		return fmt.Sprintf("%s has no phone numbers.", record.Name()), nil
	}
	return strings.Join(phones, "; "), nil
}

// ListAll returns one line per contact
func (b *Bot) ListAll() string {
	if b.book.Len() == 0 {
		return "No contacts saved."
	}
	return b.book.String()
}

// SetBirthday sets or replaces the contact's birthday
func (b *Bot) SetBirthday(name, date string) (string, error) {
	record, err := b.book.Get(name)
	if err != nil {
		return "", err
	}
	if err := record.SetBirthday(date); err != nil {
		return "", err
	}
	return "Birthday added.", nil
}

// ShowBirthday returns the contact's birthday
func (b *Bot) ShowBirthday(name string) (string, error) {
	record, err := b.book.Get(name)
	if err != nil {
		return "", err
	}
	birthday, ok := record.Birthday()
	if !ok {
		return fmt.Sprintf("%s has no birthday set.", record.Name()), nil
	}
	return fmt.Sprintf("%s's birthday: %s", record.Name(), birthday), nil
}

// UpcomingBirthdays returns birthdays in the coming week
func (b *Bot) UpcomingBirthdays() []contacts.Upcoming {
	return b.book.UpcomingBirthdays(b.now())
}

// CreateRecord creates a contact with an optional phone and birthday.
// Empty phone or birthday strings are skipped. Existing names are rejected.
func (b *Bot) CreateRecord(name, phone, birthday string) (string, error) {
	record, err := contacts.NewRecord(name)
	if err != nil {
		return "", err
	}
	if birthday != "" {
		if err := record.SetBirthday(birthday); err != nil {
			return "", err
		}
	}
	if phone != "" {
		if err := record.AddPhone(phone); err != nil {
			return "", err
		}
	}
	if err := b.book.Add(record); err != nil {
		return "", err
	}
	return fmt.Sprintf("Contact %s added.", record.Name()), nil
}

// AddPhoneTo appends phone to an existing contact
func (b *Bot) AddPhoneTo(name, phone string) (string, error) {
	record, err := b.book.Get(name)
	if err != nil {
		return "", err
	}
	if err := record.AddPhone(phone); err != nil {
		return "", err
	}
	return fmt.Sprintf("Phone %s added to contact %s.", phone, record.Name()), nil
}

// EditPhoneOf replaces oldPhone with newPhone on an existing contact
func (b *Bot) EditPhoneOf(name, oldPhone, newPhone string) (string, error) {
	record, err := b.book.Get(name)
	if err != nil {
		return "", err
	}
	if err := record.EditPhone(oldPhone, newPhone); err != nil {
		return "", err
	}
	return fmt.Sprintf("Phone number changed to %s.", newPhone), nil
}

// RemovePhoneFrom removes phone from an existing contact
func (b *Bot) RemovePhoneFrom(name, phone string) (string, error) {
	record, err := b.book.Get(name)
	if err != nil {
		return "", err
	}
	if err := record.RemovePhone(phone); err != nil {
		return "", err
	}
	return fmt.Sprintf("Phone %s removed.", phone), nil
}

// DeleteRecord removes a contact
func (b *Bot) DeleteRecord(name string) (string, error) {
	if err := b.book.Delete(name); err != nil {
		return "", err
	}
	return fmt.Sprintf("Contact %s deleted.", strings.TrimSpace(name)), nil
}

// FormatUpcoming renders upcoming birthdays one per line as "name: YYYY.MM.DD"
func FormatUpcoming(upcoming []contacts.Upcoming, windowDays int) string {
	if len(upcoming) == 0 {
		if windowDays == contacts.DefaultWindowDays {
			return "No upcoming birthdays in the next week."
		}
		return fmt.Sprintf("No upcoming birthdays in the next %d days.", windowDays)
	}

	lines := make([]string, len(upcoming))
	for i, u := range upcoming {
		lines[i] = fmt.Sprintf("%s: %s", u.Name, dateutil.FormatCongratulation(u.CongratulationDate))
	}
	return strings.Join(lines, "\n")
}
