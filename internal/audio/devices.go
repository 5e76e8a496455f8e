// ABOUTME: Native playback-device enumeration through miniaudio (malgo).
// ABOUTME: Cross-checks the tool-reported devices and covers platforms without a switching tool.

package audio

import (
	"fmt"
	"strings"

	"github.com/gen2brain/malgo"
)

// DeviceInfo represents a playback device as seen by the audio backend
type DeviceInfo struct {
	Name      string `json:"name" yaml:"name"`
	IsDefault bool   `json:"isDefault" yaml:"isDefault"`
}

// ListDevices returns the playback devices known to the native audio backend
func ListDevices() ([]DeviceInfo, error) {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to init audio context: %w", err)
	}
	defer func() {
		_ = ctx.Uninit()
		ctx.Free()
	}()

	devices, err := ctx.Devices(malgo.Playback)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate devices: %w", err)
	}

	result := make([]DeviceInfo, 0, len(devices))
	for _, dev := range devices {
		result = append(result, DeviceInfo{
			Name:      dev.Name(),
			IsDefault: dev.IsDefault != 0,
		})
	}
	return result, nil
}

// MatchDevice finds the backend device for a tool-reported display name.
// Windows display names carry a " (Manufacturer)" suffix that the backend may
// or may not include, so an exact match is tried first, then a prefix match.
func MatchDevice(devices []DeviceInfo, displayName string) (DeviceInfo, bool) {
	for _, dev := range devices {
		if dev.Name == displayName {
			return dev, true
		}
	}
	for _, dev := range devices {
		if strings.HasPrefix(displayName, dev.Name+" (") || strings.HasPrefix(dev.Name, displayName+" (") {
			return dev, true
		}
	}
	return DeviceInfo{}, false
}
