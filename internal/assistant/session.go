package assistant

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

const (
	commandPrompt = "Enter a command: "
	menuPrompt    = "Enter command (name, show_all, add_phone, edit_phone, remove_phone, delete, exit): "

	unknownMenuCommand = "Unknown command. Try again."
)

// Session reads user input line by line and writes replies. Prompts are
// written only when interactive is set.
type Session struct {
	bot         *Bot
	in          *bufio.Scanner
	out         io.Writer
	interactive bool
	logger      *zap.Logger
}

// NewSession creates a session for bot reading from in and writing to out
func NewSession(bot *Bot, in io.Reader, out io.Writer, interactive bool, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		bot:         bot,
		in:          bufio.NewScanner(in),
		out:         out,
		interactive: interactive,
		logger:      logger,
	}
}

// RunCommands runs the one-line command loop until close/exit or end of
// input. The caller persists the book afterwards.
func (s *Session) RunCommands() error {
	s.println(WelcomeMessage)

	for {
		line, ok := s.ask(commandPrompt)
		if !ok {
			s.logger.Info("Input closed, ending session")
			return s.in.Err()
		}

		reply, exit := s.bot.Execute(line)
		s.println(reply)
		if exit {
			return nil
		}
	}
}

// RunMenu runs the prompt-driven menu loop until exit or end of input
func (s *Session) RunMenu() error {
	for {
		line, ok := s.ask("\n" + menuPrompt)
		if !ok {
			s.logger.Info("Input closed, ending session")
			return s.in.Err()
		}

		cmd := strings.ToLower(strings.TrimSpace(line))
		if cmd == "exit" {
			s.println(GoodbyeMessage)
			return nil
		}

		if !s.runMenuCommand(cmd) {
			return s.in.Err()
		}
	}
}

// runMenuCommand returns false when input ended while prompting for fields
func (s *Session) runMenuCommand(cmd string) bool {
	var fields []string
	var op func(f []string) (string, error)

	switch cmd {
	case "name":
		fields = []string{
			"Enter name: ",
			"Enter phone number (10 digits, or leave empty): ",
			"Enter birthday (DD.MM.YYYY, or leave empty): ",
		}
		op = func(f []string) (string, error) { return s.bot.CreateRecord(f[0], f[1], f[2]) }
	case "add_phone":
		fields = []string{"Enter name: ", "Enter new phone number: "}
		op = func(f []string) (string, error) { return s.bot.AddPhoneTo(f[0], f[1]) }
	case "edit_phone":
		fields = []string{"Enter name: ", "Enter old phone number: ", "Enter new phone number: "}
		op = func(f []string) (string, error) { return s.bot.EditPhoneOf(f[0], f[1], f[2]) }
	case "remove_phone":
		fields = []string{"Enter name: ", "Enter phone number to remove: "}
		op = func(f []string) (string, error) { return s.bot.RemovePhoneFrom(f[0], f[1]) }
	case "delete":
		fields = []string{"Enter contact name to delete: "}
		op = func(f []string) (string, error) { return s.bot.DeleteRecord(f[0]) }
	case "show_all":
		s.println("Address book:")
		s.println(s.bot.ListAll())
		return true
	default:
		s.println(unknownMenuCommand)
		return true
	}

	values := make([]string, len(fields))
	for i, prompt := range fields {
		value, ok := s.ask(prompt)
		if !ok {
			return false
		}
		values[i] = strings.TrimSpace(value)
	}

	reply, err := op(values)
	if err != nil {
		s.logger.Debug("Menu command failed", zap.String("command", cmd), zap.Error(err))
		s.println("Error: " + Describe(err))
		return true
	}
	s.println(reply)
	return true
}

func (s *Session) ask(prompt string) (string, bool) {
	if s.interactive {
		fmt.Fprint(s.out, prompt)
	}
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

func (s *Session) println(a ...interface{}) {
	fmt.Fprintln(s.out, a...)
}
