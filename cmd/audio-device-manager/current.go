package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/777genius/audio-device-manager/internal/devices"
)

func newCurrentCommand(a *app) *cobra.Command {
	var roleFlag string

	cmd := &cobra.Command{
		Use:   "current",
		Short: "Print the current default output device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			role, err := a.role(roleFlag)
			if err != nil {
				return err
			}

			device, err := a.manager.GetCurrentDevice(cmd.Context(), role)
			if err != nil {
				return err
			}
			if device == nil {
				return fmt.Errorf("no default %s output device reported", role)
			}

			fmt.Fprintln(a.out, device.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&roleFlag, "role", "r", "", "Device role: console, multimedia, communications (Windows only)")
	return cmd
}

func newRolesCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "roles",
		Short: "Print the default output device of every role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			entries := make([]roleEntry, len(devices.Roles))

			// Query all roles in parallel
			g, ctx := errgroup.WithContext(cmd.Context())
			for i, role := range devices.Roles {
				i, role := i, role
				g.Go(func() error {
					device, err := a.manager.GetCurrentDevice(ctx, role)
					if err != nil {
						return fmt.Errorf("%s: %w", role, err)
					}
					entry := roleEntry{Role: role.String()}
					if device != nil {
						entry.Device = device.Name
					}
					entries[i] = entry
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			if format != formatText {
				return writeStructured(a.out, format, entries)
			}
			for _, e := range entries {
				device := e.Device
				if device == "" {
					device = "-"
				}
				fmt.Fprintf(a.out, "%-15s %s\n", e.Role, device)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", formatText, "Output format: text, json, yaml")
	return cmd
}
