//go:build windows

package daemon

import (
	"sync"
	"syscall"
	"time"
	"unsafe"

	"fyne.io/systray"
	"go.uber.org/zap"
)

var (
	user32      = syscall.NewLazyDLL("user32.dll")
	messageBoxW = user32.NewProc("MessageBoxW")
)

const (
	MB_OK              = 0x00000000
	MB_ICONINFORMATION = 0x00000040
)

// TrayApp represents system tray application
type TrayApp struct {
	daemon   *Daemon
	logger   *zap.Logger
	quit     chan struct{}
	quitOnce sync.Once
}

// NewTrayApp creates a new system tray application
func NewTrayApp(daemon *Daemon, logger *zap.Logger) (*TrayApp, error) {
	return &TrayApp{
		daemon: daemon,
		logger: logger,
		quit:   make(chan struct{}),
	}, nil
}

// Run starts the system tray application (blocks until Quit)
func (t *TrayApp) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *TrayApp) onReady() {
	systray.SetIcon(getCakeIcon())
	systray.SetTitle("AB")
	systray.SetTooltip("Assistant bot: birthday reminders")

	mCheckNow := systray.AddMenuItem("Check now", "Check upcoming birthdays immediately")
	systray.AddSeparator()
	mUpcoming := systray.AddMenuItem("Upcoming", "Show upcoming birthdays")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Exit the application")

	go t.daemon.runScheduledLogic()

	go func() {
		for {
			select {
			case <-mCheckNow.ClickedCh:
				t.logger.Info("Check now clicked from tray")
				go func() {
					if _, err := t.daemon.CheckNow(); err != nil {
						t.logger.Error("Manual birthday check failed", zap.Error(err))
					}
				}()
			case <-mUpcoming.ClickedCh:
				t.logger.Info("Upcoming clicked from tray")
				t.showUpcoming()
			case <-mQuit.ClickedCh:
				t.logger.Info("Quit clicked from tray")
				t.daemon.Stop()
				systray.Quit()
				return
			case <-t.quit:
				systray.Quit()
				return
			}
		}
	}()
}

func (t *TrayApp) onExit() {
	t.logger.Info("System tray exited")
}

// Stop stops the system tray application
func (t *TrayApp) Stop() {
	t.quitOnce.Do(func() { close(t.quit) })
}

// ShowNotification updates the tray tooltip and logs the notification
func (t *TrayApp) ShowNotification(title, message string) {
	// fyne.io/systray has no balloon notifications
	systray.SetTooltip(title + ": " + message)
	t.logger.Info("Notification", zap.String("title", title), zap.String("message", message))
}

func (t *TrayApp) showUpcoming() {
	report := FormatReport(time.Now(), t.daemon.windowDays, t.daemon.LastUpcoming())
	showMessageBox("Upcoming birthdays", report)
}

func showMessageBox(title, message string) {
	titlePtr, _ := syscall.UTF16PtrFromString(title)
	messagePtr, _ := syscall.UTF16PtrFromString(message)
	messageBoxW.Call(
		0,
		uintptr(unsafe.Pointer(messagePtr)),
		uintptr(unsafe.Pointer(titlePtr)),
		uintptr(MB_OK|MB_ICONINFORMATION),
	)
}
