package assistant

import (
	"errors"
	"unicode"
	"unicode/utf8"

	"github.com/username/assistant-bot/internal/contacts"
)

// ArityError reports a command called with the wrong number of arguments
type ArityError struct {
	Usage string
}

func (e *ArityError) Error() string {
	return e.Usage
}

// Describe turns an error returned by a Bot entry point into the message
// shown to the user
func Describe(err error) string {
	var arity *ArityError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &arity):
		return arity.Usage
	case errors.Is(err, contacts.ErrValidation),
		errors.Is(err, contacts.ErrNotFound),
		errors.Is(err, contacts.ErrDuplicate):
		return sentence(err.Error())
	default:
		return "An error occurred: " + err.Error()
	}
}

func sentence(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:] + "."
}
