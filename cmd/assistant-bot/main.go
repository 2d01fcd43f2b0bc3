package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/username/assistant-bot/internal/assistant"
	"github.com/username/assistant-bot/internal/config"
	"github.com/username/assistant-bot/internal/storage"
	"github.com/username/assistant-bot/pkg/dateutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	cfg        *config.Config
	logger     *zap.Logger

	todayFunc = dateutil.Today
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "assistant-bot",
		Short: "Personal address book with birthday reminders",
		Long:  "Keep contacts with phone numbers and birthdays in a local file and see whose birthday is coming up this week",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}

			if cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger() // Fallback to console
				}
			} else {
				initLogger()
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd.InOrStdin(), cmd.OutOrStdout(), false)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Config file path")

	rootCmd.AddCommand(chatCmd())
	rootCmd.AddCommand(menuCmd())
	rootCmd.AddCommand(birthdaysCmd())
	rootCmd.AddCommand(remindCmd())

	return rootCmd
}

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Interactive command session (add, change, phone, all, birthdays, ...)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd.InOrStdin(), cmd.OutOrStdout(), false)
		},
	}
}

func menuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive menu session with step-by-step prompts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd.InOrStdin(), cmd.OutOrStdout(), true)
		},
	}
}

func birthdaysCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "birthdays",
		Short: "Print upcoming birthdays and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 0 || days > 365 {
				return fmt.Errorf("--days must be between 0 and 365")
			}

			store, err := newStore()
			if err != nil {
				return err
			}
			book, err := store.Load()
			if err != nil {
				return err
			}

			upcoming := book.UpcomingWithin(todayFunc(), days)
			fmt.Fprintln(cmd.OutOrStdout(), assistant.FormatUpcoming(upcoming, days))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Look-ahead window in days")

	return cmd
}

// runSession loads the address book, runs one console session and saves the
// book when the session ends
func runSession(in io.Reader, out io.Writer, menu bool) error {
	store, err := newStore()
	if err != nil {
		return err
	}

	book, err := store.Load()
	if err != nil {
		return err
	}

	bot := assistant.NewBot(book, logger)
	session := assistant.NewSession(bot, in, out, isInteractive(in), logger)

	logger.Info("Session started",
		zap.Bool("menu", menu),
		zap.String("file", store.Path()),
		zap.Int("contacts", book.Len()))

	if menu {
		err = session.RunMenu()
	} else {
		err = session.RunCommands()
	}
	if err != nil {
		logger.Warn("Input error, saving and exiting", zap.Error(err))
	}

	if err := store.Save(book); err != nil {
		return fmt.Errorf("failed to save address book: %w", err)
	}
	return nil
}

func newStore() (*storage.FileStore, error) {
	return storage.NewFileStore(cfg.Storage.File, cfg.Storage.Format, logger)
}

func isInteractive(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	// Console sessions share stderr with the user; keep it quiet
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
