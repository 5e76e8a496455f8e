// ABOUTME: Runs the bundled audio switching tools (SoundVolumeView, SwitchAudioSource)
// ABOUTME: and hands their standard output back line by line.

package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/777genius/audio-device-manager/internal/config"
	"github.com/777genius/audio-device-manager/internal/errorhandler"
	"github.com/777genius/audio-device-manager/internal/logging"
	"github.com/777genius/audio-device-manager/internal/platform"
)

// ErrUnsupportedPlatform is returned on platforms without a bundled tool
var ErrUnsupportedPlatform = errors.New("audio device manager is only available for Windows and macOS")

// ErrToolNotFound is returned when the resolved executable does not exist
var ErrToolNotFound = errors.New("audio tool executable not found")

// Bundled executable locations relative to the tools directory
const (
	windows64Executable = "win64/SoundVolumeView.exe"
	windows32Executable = "win32/SoundVolumeView.exe"
	macOSExecutable     = "macOS/SwitchAudioSource"
)

// OutputHandler receives every line the tool wrote to stdout
type OutputHandler func(lines []string)

// Executor resolves the platform's tool and runs it
type Executor struct {
	goos    string
	is64Bit bool
	tools   config.ToolsConfig
	timeout time.Duration
	runner  Runner
	wg      sync.WaitGroup
}

// Option customizes an Executor
type Option func(*Executor)

// WithRunner replaces the process runner
func WithRunner(r Runner) Option {
	return func(e *Executor) {
		e.runner = r
	}
}

// WithPlatform pretends to run on the given OS and pointer size
func WithPlatform(goos string, is64Bit bool) Option {
	return func(e *Executor) {
		e.goos = goos
		e.is64Bit = is64Bit
	}
}

// New creates an executor for the current platform
func New(cfg *config.Config, opts ...Option) *Executor {
	e := &Executor{
		goos:    platform.GOOS(),
		is64Bit: platform.Is64Bit(),
		tools:   cfg.Tools,
		timeout: cfg.CommandTimeout(),
		runner:  ExecRunner{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GOOS returns the operating system the executor targets
func (e *Executor) GOOS() string {
	return e.goos
}

// ExecutablePath returns the tool for the executor's platform
func (e *Executor) ExecutablePath() (string, error) {
	return ExecutablePath(e.goos, e.is64Bit, e.tools)
}

// ExecutablePath returns the bundled tool for goos, honoring configured overrides
func ExecutablePath(goos string, is64Bit bool, tools config.ToolsConfig) (string, error) {
	switch goos {
	case platform.Windows:
		if tools.WindowsExecutable != "" {
			return tools.WindowsExecutable, nil
		}
		// Check if the build is 64bit or 32bit
		if is64Bit {
			return filepath.Join(tools.Dir, filepath.FromSlash(windows64Executable)), nil
		}
		return filepath.Join(tools.Dir, filepath.FromSlash(windows32Executable)), nil
	case platform.MacOS:
		if tools.MacOSExecutable != "" {
			return tools.MacOSExecutable, nil
		}
		return filepath.Join(tools.Dir, filepath.FromSlash(macOSExecutable)), nil
	default:
		return "", ErrUnsupportedPlatform
	}
}

// Execute runs the tool with args and blocks until it exits.
// With a nil handler stdout is not captured.
func (e *Executor) Execute(ctx context.Context, args []string, handler OutputHandler) error {
	path, err := e.ExecutablePath()
	if err != nil {
		return err
	}
	return e.command(ctx, path, args, handler)
}

// ExecuteAsync runs the tool on a background goroutine and returns immediately.
// The returned ID tags the command's log lines. Failures are only logged.
func (e *Executor) ExecuteAsync(args []string, handler OutputHandler) string {
	requestID := uuid.NewString()

	// Resolve on the caller's goroutine so the platform check is synchronous
	path, err := e.ExecutablePath()
	if err != nil {
		logging.Error("[%s] async command not started: %v", requestID, err)
		return requestID
	}

	logging.Debug("[%s] async command queued: %s %v", requestID, filepath.Base(path), args)

	e.wg.Add(1)
	errorhandler.SafeGo(func() {
		defer e.wg.Done()

		ctx := context.Background()
		if err := e.command(ctx, path, args, handler); err != nil {
			errorhandler.HandleError(err, fmt.Sprintf("async command %s", requestID))
			return
		}
		logging.Debug("[%s] async command finished", requestID)
	})

	return requestID
}

// Wait blocks until every command started by ExecuteAsync has finished
func (e *Executor) Wait() {
	e.wg.Wait()
}

func (e *Executor) command(ctx context.Context, path string, args []string, handler OutputHandler) error {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	lines, err := e.runner.Run(ctx, path, args, handler != nil)
	if err != nil {
		return fmt.Errorf("failed to run %s: %w", filepath.Base(path), err)
	}
	logging.Debug("%s %v finished in %s (%d lines)", filepath.Base(path), args, time.Since(start).Round(time.Millisecond), len(lines))

	if handler != nil {
		handler(lines)
	}
	return nil
}
