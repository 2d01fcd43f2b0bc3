package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/username/assistant-bot/internal/daemon"
	"go.uber.org/zap"
)

func remindCmd() *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Run the daily birthday reminder",
		Long:  "Check upcoming birthdays every day at reminder.daily_time. The address book file is re-read on every check.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hour, minute, err := cfg.Reminder.ParseDailyTime()
			if err != nil {
				return err
			}

			store, err := newStore()
			if err != nil {
				return err
			}

			d := daemon.NewDaemon(store, cfg.Reminder.WindowDays, hour, minute,
				cfg.Reminder.SystemTray, cmd.OutOrStdout(), logger)

			if once {
				if _, err := d.CheckNow(); err != nil {
					return fmt.Errorf("birthday check failed: %w", err)
				}
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("Starting reminder daemon",
				zap.String("daily_time", cfg.Reminder.DailyTime),
				zap.String("file", store.Path()))

			return d.Run(ctx)
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "Run a single check now and exit")

	return cmd
}
