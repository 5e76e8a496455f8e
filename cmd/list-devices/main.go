// ABOUTME: CLI tool to list audio output devices and mark the current default.
// ABOUTME: Falls back to the native audio backend where no switching tool exists.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/777genius/audio-device-manager/internal/audio"
	"github.com/777genius/audio-device-manager/internal/commands"
	"github.com/777genius/audio-device-manager/internal/config"
	"github.com/777genius/audio-device-manager/internal/devices"
)

func main() {
	cfg, err := config.LoadFromRoot(config.ResolveRoot())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	manager := devices.NewManager(commands.New(cfg))
	if err := run(context.Background(), os.Stdout, manager, audio.ListDevices); err != nil {
		fmt.Fprintf(os.Stderr, "Error listing audio devices: %v\n", err)
		os.Exit(1)
	}
}

// deviceLister is the part of devices.Manager this tool uses
type deviceLister interface {
	GetAllDevices(ctx context.Context) ([]devices.Device, error)
	GetCurrentDevice(ctx context.Context, role devices.Role) (*devices.Device, error)
}

func run(ctx context.Context, out io.Writer, manager deviceLister, native func() ([]audio.DeviceInfo, error)) error {
	all, err := manager.GetAllDevices(ctx)
	if errors.Is(err, devices.ErrUnsupportedPlatform) {
		return listNative(out, native)
	}
	if err != nil {
		return err
	}

	current, err := manager.GetCurrentDevice(ctx, devices.RoleConsole)
	if err != nil {
		return err
	}

	infos := make([]audio.DeviceInfo, len(all))
	for i, dev := range all {
		infos[i] = audio.DeviceInfo{
			Name:      dev.Name,
			IsDefault: current != nil && current.Name == dev.Name,
		}
	}
	printDevices(out, infos)
	return nil
}

func listNative(out io.Writer, native func() ([]audio.DeviceInfo, error)) error {
	infos, err := native()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "No switching tool for this platform; devices reported by the audio backend:")
	printDevices(out, infos)
	return nil
}

func printDevices(out io.Writer, infos []audio.DeviceInfo) {
	if len(infos) == 0 {
		fmt.Fprintln(out, "No audio output devices found.")
		return
	}

	fmt.Fprintln(out, "Available audio output devices:")
	fmt.Fprintln(out)

	for i, dev := range infos {
		defaultMarker := ""
		if dev.IsDefault {
			defaultMarker = " (default)"
		}
		fmt.Fprintf(out, "  %d: %s%s\n", i, dev.Name, defaultMarker)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "To switch, run:")
	fmt.Fprintln(out, `  audio-device-manager set "DEVICE_NAME"`)
}
