package devices

import (
	"encoding/csv"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/777genius/audio-device-manager/internal/logging"
)

// ErrInvalidDeviceName is returned when a display name lacks the "name (manufacturer)" form
var ErrInvalidDeviceName = errors.New(`device name must look like "Name (Manufacturer)"`)

// SoundVolumeView values used when filtering rows
const (
	renderDirection = "Render"
	deviceType      = "Device"
	defaultMarker   = "(default)"
)

// deviceNamePattern splits "Speakers (Realtek High Definition Audio)" into name and manufacturer
var deviceNamePattern = regexp.MustCompile(`([^)(]+)\((.+)\)`)

// Windows (SoundVolumeView) argument builders

func windowsCurrentDeviceArgs(role Role) []string {
	return []string{"/scomma", "", "/Columns", "Name,Device Name," + role.Column()}
}

func windowsAllDevicesArgs() []string {
	return []string{"/scomma", "", "/Columns", "Name,Type,Direction,Device Name"}
}

// windowsSetDefaultArgs builds "/SetDefault <Manufacturer\Device\Name\Render> <role|all>"
func windowsSetDefaultArgs(displayName string, role *Role) ([]string, error) {
	id, err := windowsDeviceID(displayName)
	if err != nil {
		return nil, err
	}
	roleArg := "all"
	if role != nil {
		roleArg = strconv.Itoa(int(*role))
	}
	return []string{"/SetDefault", id, roleArg}, nil
}

// windowsDeviceID turns a display name into SoundVolumeView's command-line friendly ID
func windowsDeviceID(displayName string) (string, error) {
	name, manufacturer, err := SplitDisplayName(displayName)
	if err != nil {
		return "", err
	}
	return manufacturer + `\Device\` + name + `\` + renderDirection, nil
}

// SplitDisplayName extracts name and manufacturer from "Name (Manufacturer)".
// A "(default)" marker anywhere in the name is ignored.
func SplitDisplayName(displayName string) (name, manufacturer string, err error) {
	cleaned := strings.ReplaceAll(displayName, defaultMarker, "")
	m := deviceNamePattern.FindStringSubmatch(cleaned)
	if m == nil {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidDeviceName, displayName)
	}
	name = strings.TrimSpace(m[1])
	manufacturer = strings.TrimSpace(m[2])
	if name == "" || manufacturer == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidDeviceName, displayName)
	}
	return name, manufacturer, nil
}

// parseWindowsCurrentDevice returns the first row whose role column reads "Render".
// Columns: Name, Device Name, <role column>.
func parseWindowsCurrentDevice(lines []string) *Device {
	for _, row := range parseCSVRows(lines) {
		if len(row) < 3 {
			continue
		}
		if row[2] == renderDirection {
			device := NewDeviceWithManufacturer(row[0], row[1])
			return &device
		}
	}
	return nil
}

// parseWindowsAllDevices keeps render endpoints.
// Columns: Name, Type, Direction, Device Name.
func parseWindowsAllDevices(lines []string) []Device {
	devices := []Device{}
	for _, row := range parseCSVRows(lines) {
		if len(row) < 4 {
			continue
		}
		if row[1] == deviceType && row[2] == renderDirection {
			devices = append(devices, NewDeviceWithManufacturer(row[0], row[3]))
		}
	}
	return devices
}

// parseCSVRows parses each line independently so one malformed line does not drop the rest
func parseCSVRows(lines []string) [][]string {
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		r := csv.NewReader(strings.NewReader(line))
		r.FieldsPerRecord = -1
		r.LazyQuotes = true
		row, err := r.Read()
		if err != nil {
			logging.Debug("Skipping malformed SoundVolumeView row %q: %v", line, err)
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// macOS (SwitchAudioSource) argument builders

func macOSCurrentDeviceArgs() []string {
	return []string{"-c", "-t", "output"}
}

func macOSAllDevicesArgs() []string {
	return []string{"-a", "-t", "output"}
}

func macOSSetDefaultArgs(name string) []string {
	return []string{"-t", "output", "-s", name}
}

// parseMacOSCurrentDevice returns the first line as the current device
func parseMacOSCurrentDevice(lines []string) *Device {
	for _, line := range lines {
		if name := strings.TrimSpace(line); name != "" {
			device := NewDevice(name)
			return &device
		}
	}
	return nil
}

// parseMacOSAllDevices returns one device per output line
func parseMacOSAllDevices(lines []string) []Device {
	devices := make([]Device, 0, len(lines))
	for _, line := range lines {
		if name := strings.TrimSpace(line); name != "" {
			devices = append(devices, NewDevice(name))
		}
	}
	return devices
}
