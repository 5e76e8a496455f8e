package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "audio-device-manager",
		Short: "Show and switch the default audio output device",
		Long: `audio-device-manager lists audio output devices and changes the system default
by driving SoundVolumeView (Windows) or SwitchAudioSource (macOS).

The tools are looked up in <root>/AudioDeviceManager/{win64,win32,macOS}/ unless
config/config.json overrides them. <root> defaults to the executable's directory
or $AUDIO_DEVICE_MANAGER_ROOT.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.teardown()
		},
	}
	root.SetOut(a.out)

	root.PersistentFlags().StringVar(&a.root, "root", "", "Directory holding config/ and the bundled tools")
	root.PersistentFlags().StringVar(&a.logDir, "log-dir", "", "Write a rotating log file to this directory")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	root.AddCommand(
		newListCommand(a),
		newCurrentCommand(a),
		newRolesCommand(a),
		newSetCommand(a),
		newNextCommand(a),
		newProbeCommand(a),
		newVersionCommand(a),
	)
	return root
}
