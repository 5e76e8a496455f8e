package main

import (
	"os"

	"github.com/777genius/audio-device-manager/internal/errorhandler"
)

const version = "1.0.0"

func main() {
	// logToConsole=false: cobra already prints returned errors
	// exitOnCritical=false: exit codes are decided here
	// recoveryEnabled=true: recover from panics
	errorhandler.Init(false, false, true)
	defer errorhandler.HandlePanic()

	if err := newRootCommand(newApp(os.Stdout)).Execute(); err != nil {
		os.Exit(1)
	}
}
