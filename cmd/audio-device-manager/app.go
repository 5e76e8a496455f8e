package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/777genius/audio-device-manager/internal/commands"
	"github.com/777genius/audio-device-manager/internal/config"
	"github.com/777genius/audio-device-manager/internal/devices"
	"github.com/777genius/audio-device-manager/internal/logging"
	"github.com/777genius/audio-device-manager/internal/notify"
)

// app carries what every subcommand needs once flags are parsed
type app struct {
	out      io.Writer
	root     string
	logDir   string
	logLevel string

	cfg      *config.Config
	executor *commands.Executor
	manager  *devices.Manager

	// executorOptions lets tests swap the process runner and platform
	executorOptions []commands.Option
}

func newApp(out io.Writer) *app {
	return &app{out: out}
}

// setup loads configuration and builds the device manager
func (a *app) setup(cmd *cobra.Command) error {
	if a.root == "" {
		a.root = config.ResolveRoot()
	}

	cfg, err := config.LoadFromRoot(a.root)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	a.cfg = cfg

	logging.SetLevel(logging.ParseLevel(cfg.LogLevel))
	logging.SetPrefix(cmd.Name())
	if a.logDir != "" {
		dir := a.logDir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(a.root, dir)
		}
		if _, err := logging.InitLogger(dir); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	notifier := notify.New(cfg.Notifications.NotifyOnSwitch, "")
	a.executor = commands.New(cfg, a.executorOptions...)
	a.manager = devices.NewManager(a.executor, devices.WithSwitchListener(func(d devices.Device) {
		notifier.DeviceSwitched(d.Name)
	}))

	logging.Debug("Using tools from %s (platform %s)", cfg.Tools.Dir, a.executor.GOOS())
	return nil
}

// teardown waits for background switches and closes the log file
func (a *app) teardown() {
	if a.executor != nil {
		a.executor.Wait()
	}
	if a.logDir != "" {
		_ = logging.Close()
	}
}

// role resolves --role, falling back to the configured default role
func (a *app) role(flag string) (devices.Role, error) {
	if flag == "" {
		flag = a.cfg.DefaultRole
	}
	return devices.ParseRole(flag)
}
