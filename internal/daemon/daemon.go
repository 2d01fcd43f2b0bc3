package daemon

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/username/assistant-bot/internal/contacts"
	"github.com/username/assistant-bot/pkg/dateutil"
	"go.uber.org/zap"
)

// BookLoader loads a fresh copy of the address book
type BookLoader interface {
	Load() (*contacts.AddressBook, error)
}

// Daemon reports upcoming birthdays once a day at a fixed local time
type Daemon struct {
	loader       BookLoader
	windowDays   int
	dailyHour    int  // Hour to run the daily check (0-23)
	dailyMinute  int  // Minute to run the daily check (0-59)
	systemTray   bool // Show system tray icon
	out          io.Writer
	logger       *zap.Logger
	ctx          context.Context
	cancel       context.CancelFunc
	trayApp      *TrayApp
	now          func() time.Time
	tick         time.Duration
	lastRunDate  string     // Date of the last successful check
	lastUpcoming []contacts.Upcoming
	mu           sync.Mutex // Serializes checks from the scheduler and the tray
}

// NewDaemon creates a reminder daemon
func NewDaemon(loader BookLoader, windowDays, dailyHour, dailyMinute int, systemTray bool, out io.Writer, logger *zap.Logger) *Daemon {
	return &Daemon{
		loader:      loader,
		windowDays:  windowDays,
		dailyHour:   dailyHour,
		dailyMinute: dailyMinute,
		systemTray:  systemTray,
		out:         out,
		logger:      logger,
		now:         time.Now,
		tick:        time.Minute,
	}
}

// Run runs the daemon until ctx is cancelled or Stop is called
func (d *Daemon) Run(ctx context.Context) error {
	d.ctx, d.cancel = context.WithCancel(ctx)
	defer d.cancel()

	if d.systemTray {
		d.logger.Info("Initializing system tray")
		trayApp, err := NewTrayApp(d, d.logger)
		if err != nil {
			d.logger.Warn("Failed to initialize system tray", zap.Error(err))
			d.runScheduledLogic()
			return nil
		}
		d.trayApp = trayApp
		// Blocks until Quit
		d.trayApp.Run()
		return nil
	}

	d.logger.Info("Running without system tray")
	d.runScheduledLogic()
	return nil
}

// runScheduledLogic runs the daily check loop (called from tray or standalone)
func (d *Daemon) runScheduledLogic() {
	d.logger.Info("Reminder daemon started",
		zap.Int("daily_hour", d.dailyHour),
		zap.Int("daily_minute", d.dailyMinute),
		zap.Int("window_days", d.windowDays))

	d.runIfDue(d.now())

	d.logger.Info("Next check scheduled", zap.Time("next_run", d.calculateNextRun()))

	ticker := time.NewTicker(d.tick)
	defer ticker.Stop()

	for {
		select {
		case <-d.ctx.Done():
			d.logger.Info("Reminder daemon stopped")
			if d.trayApp != nil {
				d.trayApp.Stop()
			}
			return

		case <-ticker.C:
			d.runIfDue(d.now())
		}
	}
}

// Stop stops the daemon
func (d *Daemon) Stop() {
	if d.cancel != nil {
		d.cancel()
	}
}

func (d *Daemon) runIfDue(now time.Time) {
	if !d.isDue(now) {
		return
	}

	if _, err := d.CheckNow(); err != nil {
		d.logger.Error("Birthday check failed", zap.Error(err))
		if d.trayApp != nil {
			d.trayApp.ShowNotification("Birthday check failed", fmt.Sprintf("Error: %v", err))
		}
		return
	}

	d.logger.Info("Next check scheduled", zap.Time("next_run", d.calculateNextRun()))
}

// isDue reports whether the daily time has passed today and no check ran yet
func (d *Daemon) isDue(now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.lastRunDate == now.Format("2006-01-02") {
		return false
	}
	scheduled := time.Date(now.Year(), now.Month(), now.Day(), d.dailyHour, d.dailyMinute, 0, 0, now.Location())
	return !now.Before(scheduled)
}

// calculateNextRun returns the next scheduled check time
func (d *Daemon) calculateNextRun() time.Time {
	now := d.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), d.dailyHour, d.dailyMinute, 0, 0, now.Location())

	d.mu.Lock()
	ranToday := d.lastRunDate == now.Format("2006-01-02")
	d.mu.Unlock()

	if ranToday || now.After(today) {
		return today.AddDate(0, 0, 1)
	}
	return today
}

// CheckNow reloads the address book and reports upcoming birthdays.
// Concurrent calls are serialized.
func (d *Daemon) CheckNow() ([]contacts.Upcoming, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	book, err := d.loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load address book: %w", err)
	}

	now := d.now()
	upcoming := book.UpcomingWithin(now, d.windowDays)

	names := make([]string, len(upcoming))
	for i, u := range upcoming {
		names[i] = u.Name
	}
	d.logger.Info("Birthday check completed",
		zap.Time("date", dateutil.StartOfDay(now)),
		zap.Int("contacts", book.Len()),
		zap.Strings("upcoming", names))

	fmt.Fprint(d.out, FormatReport(now, d.windowDays, upcoming))

	if d.trayApp != nil && len(upcoming) > 0 {
		d.trayApp.ShowNotification("Upcoming birthdays", strings.Join(names, ", "))
	}

	d.lastRunDate = now.Format("2006-01-02")
	d.lastUpcoming = upcoming

	return upcoming, nil
}

// LastUpcoming returns the result of the most recent check
func (d *Daemon) LastUpcoming() []contacts.Upcoming {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastUpcoming
}

// FormatReport renders the console report of one check
func FormatReport(now time.Time, windowDays int, upcoming []contacts.Upcoming) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🎂 Birthdays from %s (next %d days)\n",
		dateutil.FormatCongratulation(now), windowDays)

	if len(upcoming) == 0 {
		sb.WriteString("   • none\n")
		return sb.String()
	}

	for _, u := range upcoming {
		fmt.Fprintf(&sb, "   • %s: congratulate on %s (%s)",
			u.Name,
			dateutil.FormatCongratulation(u.CongratulationDate),
			u.CongratulationDate.Weekday())
		if !dateutil.IsSameDay(u.Birthday, u.CongratulationDate) {
			fmt.Fprintf(&sb, ", birthday %s", dateutil.FormatCongratulation(u.Birthday))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
