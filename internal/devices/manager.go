// ABOUTME: Enumerates and switches the default audio output device by driving
// ABOUTME: SoundVolumeView on Windows and SwitchAudioSource on macOS.

package devices

import (
	"context"
	"fmt"

	"github.com/777genius/audio-device-manager/internal/commands"
	"github.com/777genius/audio-device-manager/internal/logging"
	"github.com/777genius/audio-device-manager/internal/platform"
)

// ErrUnsupportedPlatform is returned on platforms without a switching tool
var ErrUnsupportedPlatform = commands.ErrUnsupportedPlatform

// unsupportedMessage is logged whenever an operation is attempted on another platform
const unsupportedMessage = "AudioDeviceManager is only available for Windows and macOS!"

// executor is the part of commands.Executor the manager needs
type executor interface {
	GOOS() string
	Execute(ctx context.Context, args []string, handler commands.OutputHandler) error
	ExecuteAsync(args []string, handler commands.OutputHandler) string
}

// SwitchListener is told about every device switch the tool accepted
type SwitchListener func(device Device)

// Manager shows and switches audio output devices
type Manager struct {
	exec     executor
	onSwitch SwitchListener
}

// Option customizes a Manager
type Option func(*Manager)

// WithSwitchListener registers a callback for accepted switches
func WithSwitchListener(fn SwitchListener) Option {
	return func(m *Manager) {
		m.onSwitch = fn
	}
}

// NewManager creates a manager on top of an executor
func NewManager(exec executor, opts ...Option) *Manager {
	m := &Manager{exec: exec}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// GetCurrentDevice returns the default output device for role.
// Returns nil without error when the tool reports no default.
// The role only matters on Windows.
func (m *Manager) GetCurrentDevice(ctx context.Context, role Role) (*Device, error) {
	var (
		args  []string
		parse func([]string) *Device
	)

	switch m.exec.GOOS() {
	case platform.Windows:
		args, parse = windowsCurrentDeviceArgs(role), parseWindowsCurrentDevice
	case platform.MacOS:
		args, parse = macOSCurrentDeviceArgs(), parseMacOSCurrentDevice
	default:
		logging.Error(unsupportedMessage)
		return nil, ErrUnsupportedPlatform
	}

	var current *Device
	err := m.exec.Execute(ctx, args, func(lines []string) {
		current = parse(lines)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get current device: %w", err)
	}

	if current == nil {
		logging.Debug("No current %s output device reported", role)
	}
	return current, nil
}

// GetAllDevices returns every available audio output device
func (m *Manager) GetAllDevices(ctx context.Context) ([]Device, error) {
	var (
		args  []string
		parse func([]string) []Device
	)

	switch m.exec.GOOS() {
	case platform.Windows:
		args, parse = windowsAllDevicesArgs(), parseWindowsAllDevices
	case platform.MacOS:
		args, parse = macOSAllDevicesArgs(), parseMacOSAllDevices
	default:
		logging.Error(unsupportedMessage)
		return nil, ErrUnsupportedPlatform
	}

	devices := []Device{}
	err := m.exec.Execute(ctx, args, func(lines []string) {
		devices = parse(lines)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	return devices, nil
}

// SetDefaultDevice asynchronously makes name the default output device.
// A nil role switches every role. The call does not wait for the tool.
func (m *Manager) SetDefaultDevice(name string, role *Role) error {
	args, err := m.setDefaultArgs(name, role)
	if err != nil {
		return err
	}

	var handler commands.OutputHandler
	if m.onSwitch != nil {
		handler = func([]string) {
			m.onSwitch(NewDevice(name))
		}
	}

	requestID := m.exec.ExecuteAsync(args, handler)
	logging.Info("[%s] Switching default output device to %q (%s)", requestID, name, describeRole(role))
	return nil
}

// SetDefaultDeviceSync makes name the default output device and waits for the tool
func (m *Manager) SetDefaultDeviceSync(ctx context.Context, name string, role *Role) error {
	args, err := m.setDefaultArgs(name, role)
	if err != nil {
		return err
	}

	if err := m.exec.Execute(ctx, args, nil); err != nil {
		return fmt.Errorf("failed to set default device %q: %w", name, err)
	}

	logging.Info("Default output device set to %q (%s)", name, describeRole(role))
	if m.onSwitch != nil {
		m.onSwitch(NewDevice(name))
	}
	return nil
}

func (m *Manager) setDefaultArgs(name string, role *Role) ([]string, error) {
	switch m.exec.GOOS() {
	case platform.Windows:
		return windowsSetDefaultArgs(name, role)
	case platform.MacOS:
		return macOSSetDefaultArgs(name), nil
	default:
		logging.Error(unsupportedMessage)
		return nil, ErrUnsupportedPlatform
	}
}

func describeRole(role *Role) string {
	if role == nil {
		return "all roles"
	}
	return role.String()
}
