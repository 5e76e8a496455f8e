package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/777genius/audio-device-manager/internal/audio"
)

func newProbeCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "List playback devices seen by the native audio backend",
		Long: `List playback devices seen by the native audio backend (miniaudio).

Works on every platform, including those without a switching tool, and
helps when a name reported by the tool does not match the backend.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}

			infos, err := audio.ListDevices()
			if err != nil {
				return fmt.Errorf("error listing audio devices: %w", err)
			}

			if format != formatText {
				return writeStructured(a.out, format, infos)
			}
			if len(infos) == 0 {
				fmt.Fprintln(a.out, "No audio output devices found.")
				return nil
			}
			for i, dev := range infos {
				marker := ""
				if dev.IsDefault {
					marker = " (default)"
				}
				fmt.Fprintf(a.out, "  %d: %s%s\n", i, dev.Name, marker)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", formatText, "Output format: text, json, yaml")
	return cmd
}

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.out, "audio-device-manager v%s\n", version)
		},
	}
}
