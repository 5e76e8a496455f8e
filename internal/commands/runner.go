package commands

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/777genius/audio-device-manager/internal/logging"
	"github.com/777genius/audio-device-manager/internal/platform"
)

// Runner starts a process and optionally collects its stdout lines
type Runner interface {
	Run(ctx context.Context, path string, args []string, captureOutput bool) ([]string, error)
}

// ExecRunner runs real processes via os/exec
type ExecRunner struct{}

// pipeDrainDelay bounds how long Run waits for stdout/stderr to close once the
// tool exited or the context expired; a child left behind by the tool may
// otherwise hold the pipes open indefinitely.
const pipeDrainDelay = time.Second

// Run starts path with args, without a shell or a console window
func (ExecRunner) Run(ctx context.Context, path string, args []string, captureOutput bool) ([]string, error) {
	resolved, err := lookupExecutable(path)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, resolved, args...)
	cmd.WaitDelay = pipeDrainDelay
	hideWindow(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stderr = &stderr
	if captureOutput {
		cmd.Stdout = &stdout
	}

	if err := cmd.Run(); err != nil {
		if !errors.Is(err, exec.ErrWaitDelay) {
			return nil, exitError(err, &stderr)
		}
		logging.Warn("%s exited but left its output open, using what was read", filepath.Base(resolved))
	}
	if !captureOutput {
		return nil, nil
	}

	lines, err := ReadLines(&stdout)
	if err != nil {
		return nil, fmt.Errorf("failed to read output: %w", err)
	}
	return lines, nil
}

// ReadLines reads r to EOF, stripping line terminators (\n and \r\n)
func ReadLines(r io.Reader) ([]string, error) {
	lines := []string{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	return lines, scanner.Err()
}

func lookupExecutable(path string) (string, error) {
	if platform.FileExists(path) {
		return path, nil
	}
	// Overrides may name a tool on PATH
	if resolved, err := exec.LookPath(path); err == nil {
		return resolved, nil
	}
	return "", fmt.Errorf("%w: %s", ErrToolNotFound, path)
}

func exitError(err error, stderr *bytes.Buffer) error {
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return fmt.Errorf("%w, stderr: %s", err, msg)
	}
	return err
}
