package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/777genius/audio-device-manager/internal/audio"
	"github.com/777genius/audio-device-manager/internal/devices"
	"github.com/777genius/audio-device-manager/internal/logging"
)

type setOptions struct {
	role    string
	async   bool
	preview bool
	sound   string
}

func newSetCommand(a *app) *cobra.Command {
	var opts setOptions

	cmd := &cobra.Command{
		Use:   "set <device name>",
		Short: "Make a device the default output",
		Long: `Make a device the default output.

The name must be spelled as "list" prints it. On Windows that is
"Name (Manufacturer)"; without --role every role is switched.
With --async the switch runs in the background and failures are only logged.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")

			role, err := parseOptionalRole(opts.role)
			if err != nil {
				return err
			}

			if opts.async {
				if err := a.manager.SetDefaultDevice(name, role); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Switching to %s\n", name)
				if opts.preview {
					a.executor.Wait()
				}
			} else {
				if err := a.manager.SetDefaultDeviceSync(cmd.Context(), name, role); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Default output device set to %s\n", name)
			}

			if opts.preview {
				return playPreview(a, name, opts.sound)
			}
			return nil
		},
	}

	addSwitchFlags(cmd, &opts)
	cmd.Flags().BoolVar(&opts.async, "async", false, "Return without waiting for the switching tool to finish")
	return cmd
}

func newNextCommand(a *app) *cobra.Command {
	var opts setOptions

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Switch to the next output device in list order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := parseOptionalRole(opts.role)
			if err != nil {
				return err
			}

			next, err := nextDevice(cmd.Context(), a, role)
			if err != nil {
				return err
			}

			// Fire-and-forget switch; teardown waits before the process exits
			if err := a.manager.SetDefaultDevice(next.Name, role); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Switching to %s\n", next.Name)

			if opts.preview {
				a.executor.Wait()
				return playPreview(a, next.Name, opts.sound)
			}
			return nil
		},
	}

	addSwitchFlags(cmd, &opts)
	return cmd
}

func addSwitchFlags(cmd *cobra.Command, opts *setOptions) {
	cmd.Flags().StringVarP(&opts.role, "role", "r", "", "Only switch this role: console, multimedia, communications (Windows only)")
	cmd.Flags().BoolVarP(&opts.preview, "preview", "p", false, "Play a sound on the device after switching")
	cmd.Flags().StringVar(&opts.sound, "sound", "", "Sound file for --preview (default: notifications.previewSound)")
}

// parseOptionalRole returns nil for an empty flag, meaning all roles
func parseOptionalRole(flag string) (*devices.Role, error) {
	if flag == "" {
		return nil, nil
	}
	role, err := devices.ParseRole(flag)
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// nextDevice picks the device after the current one, wrapping around
func nextDevice(ctx context.Context, a *app, role *devices.Role) (devices.Device, error) {
	all, err := a.manager.GetAllDevices(ctx)
	if err != nil {
		return devices.Device{}, err
	}
	if len(all) == 0 {
		return devices.Device{}, fmt.Errorf("no audio output devices found")
	}

	queryRole := devices.RoleConsole
	if role != nil {
		queryRole = *role
	}
	current, err := a.manager.GetCurrentDevice(ctx, queryRole)
	if err != nil {
		return devices.Device{}, err
	}
	if current == nil {
		return all[0], nil
	}

	for i, dev := range all {
		if dev.Name == current.Name {
			return all[(i+1)%len(all)], nil
		}
	}
	logging.Debug("Current device %q not in list, using first device", current.Name)
	return all[0], nil
}

func playPreview(a *app, deviceName, sound string) error {
	if sound == "" {
		sound = a.cfg.Notifications.PreviewSound
	}
	if sound == "" {
		return fmt.Errorf("no preview sound: pass --sound or set notifications.previewSound")
	}

	player, err := audio.NewPlayer(deviceName, a.cfg.PreviewVolume())
	if err != nil {
		return fmt.Errorf("failed to create preview player: %w", err)
	}
	defer player.Close()

	return player.Play(sound)
}
