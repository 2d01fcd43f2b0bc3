package contacts

import (
	"strings"
	"time"

	"github.com/username/assistant-bot/pkg/dateutil"
)

const (
	phoneLength = 10

	expectName     = "name must not be empty"
	expectPhone    = "should be exactly 10 digits"
	expectBirthday = "use DD.MM.YYYY"
)

// Name is a non-empty, trimmed contact name
type Name struct {
	value string
}

// NewName validates raw and returns a Name
func NewName(raw string) (Name, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return Name{}, &ValidationError{Field: "name", Value: raw, Expected: expectName}
	}
	return Name{value: value}, nil
}

func (n Name) String() string { return n.value }

// Phone is a phone number of exactly 10 decimal digits
type Phone struct {
	value string
}

// NewPhone validates raw and returns a Phone
func NewPhone(raw string) (Phone, error) {
	if !isPhone(raw) {
		return Phone{}, &ValidationError{Field: "phone number", Value: raw, Expected: expectPhone}
	}
	return Phone{value: raw}, nil
}

func (p Phone) String() string { return p.value }

func isPhone(s string) bool {
	if len(s) != phoneLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Birthday is a calendar-valid date kept in its DD.MM.YYYY form
type Birthday struct {
	value string
	date  time.Time
}

// NewBirthday validates raw and returns a Birthday
func NewBirthday(raw string) (Birthday, error) {
	date, err := dateutil.ParseDate(raw)
	if err != nil {
		return Birthday{}, &ValidationError{Field: "birthday", Value: raw, Expected: expectBirthday}
	}
	return Birthday{value: dateutil.FormatDate(date), date: date}, nil
}

func (b Birthday) String() string { return b.value }

// Date returns the birthday as a UTC date
func (b Birthday) Date() time.Time { return b.date }
