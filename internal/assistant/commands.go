package assistant

import (
	"fmt"
	"sort"
	"strings"

	"github.com/username/assistant-bot/internal/contacts"
	"go.uber.org/zap"
)

// Replies that do not come from a Bot operation
const (
	WelcomeMessage        = "Welcome to the assistant bot!"
	GreetingMessage       = "How can I help you?"
	GoodbyeMessage        = "Good bye!"
	InvalidCommandMessage = "Invalid command."
)

type command struct {
	usage string
	arity int
	run   func(b *Bot, args []string) (string, error)
}

var commands = map[string]command{
	"hello": {
		arity: -1,
		run:   func(b *Bot, args []string) (string, error) { return GreetingMessage, nil },
	},
	"add": {
		usage: "Give me name and phone please.",
		arity: 2,
		run:   func(b *Bot, args []string) (string, error) { return b.AddContact(args[0], args[1]) },
	},
	"change": {
		usage: "Give me name, old phone and new phone please.",
		arity: 3,
		run:   func(b *Bot, args []string) (string, error) { return b.ChangeContact(args[0], args[1], args[2]) },
	},
	"phone": {
		usage: "Enter user name",
		arity: 1,
		run:   func(b *Bot, args []string) (string, error) { return b.ShowPhones(args[0]) },
	},
	"all": {
		arity: 0,
		run:   func(b *Bot, args []string) (string, error) { return b.ListAll(), nil },
	},
	"add-birthday": {
		usage: "Give me name and birthday please.",
		arity: 2,
		run:   func(b *Bot, args []string) (string, error) { return b.SetBirthday(args[0], args[1]) },
	},
	"show-birthday": {
		usage: "Enter user name",
		arity: 1,
		run:   func(b *Bot, args []string) (string, error) { return b.ShowBirthday(args[0]) },
	},
	"birthdays": {
		arity: 0,
		run: func(b *Bot, args []string) (string, error) {
			return FormatUpcoming(b.UpcomingBirthdays(), contacts.DefaultWindowDays), nil
		},
	},
	"remove-phone": {
		usage: "Give me name and phone please.",
		arity: 2,
		run:   func(b *Bot, args []string) (string, error) { return b.RemovePhoneFrom(args[0], args[1]) },
	},
	"delete": {
		usage: "Enter user name",
		arity: 1,
		run:   func(b *Bot, args []string) (string, error) { return b.DeleteRecord(args[0]) },
	},
}

var exitCommands = map[string]bool{"close": true, "exit": true}

// ParseInput splits a line into a lower-cased command and its arguments
func ParseInput(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return strings.ToLower(fields[0]), fields[1:]
}

// Execute runs one command line and returns the reply. exit is true for
// close/exit; saving is left to the caller. Errors never escape: they are
// rendered with Describe.
func (b *Bot) Execute(line string) (reply string, exit bool) {
	name, args := ParseInput(line)
	if exitCommands[name] {
		return GoodbyeMessage, true
	}
	if name == "help" {
		return helpText(), false
	}

	cmd, ok := commands[name]
	if !ok {
		return InvalidCommandMessage, false
	}
	if cmd.arity >= 0 && len(args) != cmd.arity {
		return Describe(&ArityError{Usage: cmd.usage}), false
	}

	reply, err := cmd.run(b, args)
	if err != nil {
		b.logger.Debug("Command failed",
			zap.String("command", name),
			zap.Strings("args", args),
			zap.Error(err))
		return Describe(err), false
	}
	return reply, false
}

func helpText() string {
	names := []string{"help"}
	for name := range commands {
		names = append(names, name)
	}
	for name := range exitCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("Commands: %s", strings.Join(names, ", "))
}
