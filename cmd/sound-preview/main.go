// ABOUTME: CLI tool that plays a sound on an output device, by default the one the switching tool reports as current.
// ABOUTME: Tool-reported names are resolved against the malgo backend before playback.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/777genius/audio-device-manager/internal/audio"
	"github.com/777genius/audio-device-manager/internal/commands"
	"github.com/777genius/audio-device-manager/internal/config"
	"github.com/777genius/audio-device-manager/internal/devices"
	"github.com/777genius/audio-device-manager/internal/logging"
)

type previewOptions struct {
	device string
	volume float64
	sound  string
}

// currentDeviceGetter is the part of devices.Manager this tool uses
type currentDeviceGetter interface {
	GetCurrentDevice(ctx context.Context, role devices.Role) (*devices.Device, error)
}

// playFunc plays soundPath on the backend device named deviceName ("" = system default)
type playFunc func(deviceName string, volume float64, soundPath string) error

func main() {
	volumeFlag := flag.Float64("volume", -1, "Volume level 0.0 to 1.0 (default: notifications.volume)")
	deviceFlag := flag.String("device", "", "Output device name as printed by list-devices (default: current console device)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sound-preview [options] [path-to-audio-file]\n\n")
		fmt.Fprintf(os.Stderr, "Without a path, notifications.previewSound from the config is played.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nSupported formats: %s\n\n", strings.Join(audio.SupportedExtensions, ", "))
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  sound-preview --volume 0.3 /System/Library/Sounds/Glass.aiff\n")
		fmt.Fprintf(os.Stderr, "  sound-preview --device \"Speakers (Realtek(R) Audio)\" chime.wav\n")
	}
	flag.Parse()

	cfg, err := config.LoadFromRoot(config.ResolveRoot())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logging.SetLevel(logging.ParseLevel(cfg.LogLevel))

	opts := previewOptions{
		device: *deviceFlag,
		volume: *volumeFlag,
		sound:  flag.Arg(0),
	}
	if opts.volume < 0 && !flagSet("volume") {
		opts.volume = cfg.PreviewVolume()
	}
	if opts.sound == "" {
		opts.sound = cfg.Notifications.PreviewSound
	}
	if opts.sound == "" {
		flag.Usage()
		os.Exit(1)
	}

	manager := devices.NewManager(commands.New(cfg))
	if err := run(context.Background(), os.Stdout, opts, manager, audio.ListDevices, playSound); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func run(ctx context.Context, out io.Writer, opts previewOptions, manager currentDeviceGetter, native func() ([]audio.DeviceInfo, error), play playFunc) error {
	if opts.volume < 0.0 || opts.volume > 1.0 {
		return fmt.Errorf("volume must be between 0.0 and 1.0 (got %.2f)", opts.volume)
	}
	if _, err := os.Stat(opts.sound); os.IsNotExist(err) {
		return fmt.Errorf("sound file not found: %s", opts.sound)
	}

	device, err := resolveDevice(ctx, opts.device, manager, native)
	if err != nil {
		return err
	}

	label := device
	if label == "" {
		label = "system default"
	}
	fmt.Fprintf(out, "🔊 Playing: %s (volume: %d%%, device: %s)\n", filepath.Base(opts.sound), int(opts.volume*100), label)

	if err := play(device, opts.volume, opts.sound); err != nil {
		return err
	}
	fmt.Fprintln(out, "✓ Playback completed")
	return nil
}

// resolveDevice maps a tool-reported display name to the backend's name for it.
// An empty name means the switching tool's current console device; "" is
// returned (system default) when no tool exists for this platform or none is set.
func resolveDevice(ctx context.Context, name string, manager currentDeviceGetter, native func() ([]audio.DeviceInfo, error)) (string, error) {
	if name == "" {
		current, err := manager.GetCurrentDevice(ctx, devices.RoleConsole)
		switch {
		case errors.Is(err, devices.ErrUnsupportedPlatform):
			return "", nil
		case err != nil:
			return "", fmt.Errorf("failed to query current device: %w", err)
		case current == nil:
			return "", nil
		}
		name = current.Name
	}

	infos, err := native()
	if err != nil {
		return "", err
	}
	match, ok := audio.MatchDevice(infos, name)
	if !ok {
		return "", fmt.Errorf("audio device not found: %s", name)
	}
	logging.Debug("Preview device %q resolved to %q", name, match.Name)
	return match.Name, nil
}

func playSound(deviceName string, volume float64, soundPath string) error {
	player, err := audio.NewPlayer(deviceName, volume)
	if err != nil {
		return fmt.Errorf("failed to create audio player: %w", err)
	}
	defer player.Close()

	if err := player.Play(soundPath); err != nil {
		return fmt.Errorf("failed to play sound: %w", err)
	}
	return nil
}
