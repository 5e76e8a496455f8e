package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/777genius/audio-device-manager/internal/devices"
	"github.com/777genius/audio-device-manager/internal/logging"
)

func newListCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available audio output devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			all, err := a.manager.GetAllDevices(cmd.Context())
			if err != nil {
				return err
			}

			role, err := a.role("")
			if err != nil {
				return err
			}
			current, err := a.manager.GetCurrentDevice(cmd.Context(), role)
			if err != nil && !errors.Is(err, devices.ErrUnsupportedPlatform) {
				// The list is still useful without the marker
				logging.Warn("Could not determine current device: %v", err)
			}

			entries := make([]deviceEntry, len(all))
			for i, dev := range all {
				entries[i] = deviceEntry{
					Index:   i,
					Name:    dev.Name,
					Current: current != nil && current.Name == dev.Name,
				}
			}

			if format != formatText {
				return writeStructured(a.out, format, entries)
			}
			return printDeviceList(a, entries)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", formatText, "Output format: text, json, yaml")
	return cmd
}

func printDeviceList(a *app, entries []deviceEntry) error {
	if !isTerminal(a.out) {
		for _, e := range entries {
			fmt.Fprintln(a.out, e.Name)
		}
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No audio output devices found.")
		return nil
	}

	fmt.Fprintln(a.out, "Available audio output devices:")
	fmt.Fprintln(a.out)
	for _, e := range entries {
		marker := ""
		if e.Current {
			marker = " (default)"
		}
		fmt.Fprintf(a.out, "  %d: %s%s\n", e.Index, e.Name, marker)
	}
	return nil
}
