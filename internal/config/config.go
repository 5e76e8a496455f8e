package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/777genius/audio-device-manager/internal/platform"
)

// EnvRoot points at the directory holding config/ and the bundled tools
const EnvRoot = "AUDIO_DEVICE_MANAGER_ROOT"

// Default values
const (
	DefaultCommandTimeout = "10s"
	DefaultRole           = "console"
	DefaultLogLevel       = "info"
	DefaultVolume         = 1.0
	toolsDirName          = "AudioDeviceManager"
)

// Config represents the device manager configuration
type Config struct {
	Tools         ToolsConfig         `json:"tools" yaml:"tools"`
	DefaultRole   string              `json:"defaultRole" yaml:"defaultRole"` // Role used by "current" when none is given
	Notifications NotificationsConfig `json:"notifications" yaml:"notifications"`
	LogLevel      string              `json:"logLevel" yaml:"logLevel"` // debug, info, warn, error
}

// ToolsConfig locates the bundled command-line tools
type ToolsConfig struct {
	Dir               string `json:"dir" yaml:"dir"`                             // Root containing win64/, win32/ and macOS/
	WindowsExecutable string `json:"windowsExecutable" yaml:"windowsExecutable"` // Overrides the bundled SoundVolumeView.exe
	MacOSExecutable   string `json:"macosExecutable" yaml:"macosExecutable"`     // Overrides the bundled SwitchAudioSource
	CommandTimeout    string `json:"commandTimeout" yaml:"commandTimeout"`       // e.g. "10s"
}

// NotificationsConfig controls feedback after switching devices
type NotificationsConfig struct {
	NotifyOnSwitch bool     `json:"notifyOnSwitch" yaml:"notifyOnSwitch"`     // Desktop notification after a successful switch
	PreviewSound   string   `json:"previewSound" yaml:"previewSound"`         // Sound played on the new device by "set --preview"
	Volume         *float64 `json:"volume,omitempty" yaml:"volume,omitempty"` // Preview volume 0.0-1.0; unset means DefaultVolume
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	root := platform.ExpandEnv("${" + EnvRoot + "}")
	if root == "" || strings.HasPrefix(root, "${") {
		root = "."
	}

	return &Config{
		Tools: ToolsConfig{
			Dir:            filepath.Join(root, toolsDirName),
			CommandTimeout: DefaultCommandTimeout,
		},
		DefaultRole: DefaultRole,
		Notifications: NotificationsConfig{
			NotifyOnSwitch: false,
			Volume:         volume(DefaultVolume),
		},
		LogLevel: DefaultLogLevel,
	}
}

// Load loads configuration from a JSON or YAML file.
// If the file doesn't exist, returns default config.
func Load(path string) (*Config, error) {
	if !platform.FileExists(path) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	default:
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Expand environment variables in paths
	config.Tools.Dir = platform.ExpandEnv(config.Tools.Dir)
	config.Tools.WindowsExecutable = platform.ExpandEnv(config.Tools.WindowsExecutable)
	config.Tools.MacOSExecutable = platform.ExpandEnv(config.Tools.MacOSExecutable)
	config.Notifications.PreviewSound = platform.ExpandEnv(config.Notifications.PreviewSound)

	config.ApplyDefaults()

	return config, nil
}

// LoadFromRoot loads config/config.json, or config/config.yaml when only that exists.
// A relative or unset tools dir is resolved against root.
func LoadFromRoot(root string) (*Config, error) {
	path := filepath.Join(root, "config", "config.json")
	if yamlPath := filepath.Join(root, "config", "config.yaml"); !platform.FileExists(path) && platform.FileExists(yamlPath) {
		path = yamlPath
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if cfg.Tools.Dir == DefaultConfig().Tools.Dir {
		cfg.Tools.Dir = filepath.Join(root, toolsDirName)
	} else if !filepath.IsAbs(cfg.Tools.Dir) {
		cfg.Tools.Dir = filepath.Join(root, cfg.Tools.Dir)
	}
	return cfg, nil
}

// ApplyDefaults fills in missing fields with default values
func (c *Config) ApplyDefaults() {
	if c.Tools.Dir == "" {
		c.Tools.Dir = DefaultConfig().Tools.Dir
	}
	if c.Tools.CommandTimeout == "" {
		c.Tools.CommandTimeout = DefaultCommandTimeout
	}
	if c.DefaultRole == "" {
		c.DefaultRole = DefaultRole
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Notifications.Volume == nil {
		c.Notifications.Volume = volume(DefaultVolume)
	}
}

// PreviewVolume returns the configured preview volume.
// An explicit 0 is kept so previews can be muted.
func (c *Config) PreviewVolume() float64 {
	if c.Notifications.Volume == nil {
		return DefaultVolume
	}
	return *c.Notifications.Volume
}

func volume(v float64) *float64 {
	return &v
}

// Validate validates the configuration
func (c *Config) Validate() error {
	timeout, err := time.ParseDuration(c.Tools.CommandTimeout)
	if err != nil {
		return fmt.Errorf("invalid commandTimeout %q: %w", c.Tools.CommandTimeout, err)
	}
	if timeout <= 0 {
		return fmt.Errorf("commandTimeout must be positive (got %s)", c.Tools.CommandTimeout)
	}

	validRoles := map[string]bool{
		"console":        true,
		"multimedia":     true,
		"communications": true,
	}
	if !validRoles[strings.ToLower(c.DefaultRole)] {
		return fmt.Errorf("invalid defaultRole: %s (must be one of: console, multimedia, communications)", c.DefaultRole)
	}

	validLevels := map[string]bool{
		"debug":   true,
		"info":    true,
		"warn":    true,
		"warning": true,
		"error":   true,
	}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid logLevel: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	if v := c.PreviewVolume(); v < 0.0 || v > 1.0 {
		return fmt.Errorf("preview volume must be between 0.0 and 1.0 (got %.2f)", v)
	}

	return nil
}

// CommandTimeout returns the parsed per-command timeout.
// Falls back to the default when the value does not parse.
func (c *Config) CommandTimeout() time.Duration {
	d, err := time.ParseDuration(c.Tools.CommandTimeout)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultCommandTimeout)
	}
	return d
}

// ResolveRoot returns the directory holding config/ and the bundled tools.
// Checks AUDIO_DEVICE_MANAGER_ROOT, then the executable's directory, then the cwd.
func ResolveRoot() string {
	if root := os.Getenv(EnvRoot); root != "" {
		return root
	}

	exe, err := os.Executable()
	if err == nil {
		// Executable is in bin/, so root is parent directory
		exeDir := filepath.Dir(exe)
		if filepath.Base(exeDir) == "bin" {
			return filepath.Dir(exeDir)
		}
		return exeDir
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}
