// ABOUTME: Desktop notification shown after the default output device changed.

package notify

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/gen2brain/beeep"

	"github.com/777genius/audio-device-manager/internal/logging"
	"github.com/777genius/audio-device-manager/internal/platform"
)

// appName is fixed so Windows registers a single notification source
const appName = "Audio Device Manager"

// maxMessageRunes caps the notification body
const maxMessageRunes = 200

// appNameMu serializes access to the global beeep.AppName; switches
// finish on background goroutines and may notify concurrently.
var appNameMu sync.Mutex

// sender is replaced in tests
var sender = func(title, message, icon string) error {
	return beeep.Notify(title, message, icon)
}

// Notifier sends switch notifications
type Notifier struct {
	enabled bool
	icon    string
}

// New creates a notifier; a disabled notifier drops every message
func New(enabled bool, icon string) *Notifier {
	if icon != "" && !platform.FileExists(icon) {
		logging.Warn("Notification icon not found: %s, using default", icon)
		icon = ""
	}
	return &Notifier{enabled: enabled, icon: icon}
}

// DeviceSwitched announces that deviceName is now the default output
func (n *Notifier) DeviceSwitched(deviceName string) {
	if !n.enabled {
		return
	}

	title, message := switchMessage(deviceName)

	appNameMu.Lock()
	defer appNameMu.Unlock()

	original := beeep.AppName
	beeep.AppName = appName
	defer func() {
		beeep.AppName = original
	}()

	if err := sender(title, message, n.icon); err != nil {
		logging.Warn("Failed to send desktop notification: %v", err)
		return
	}
	logging.Debug("Desktop notification sent: %s", message)
}

func switchMessage(deviceName string) (title, message string) {
	title = "🔊 Audio output changed"
	message = fmt.Sprintf("Now playing through %s", deviceName)
	if utf8.RuneCountInString(message) > maxMessageRunes {
		runes := []rune(message)
		message = string(runes[:maxMessageRunes-3]) + "..."
	}
	return title, message
}
