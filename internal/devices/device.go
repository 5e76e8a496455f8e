package devices

import (
	"fmt"
	"strconv"
	"strings"
)

// Device represents an audio output endpoint by its display name
type Device struct {
	Name string `json:"name" yaml:"name"`
}

// NewDevice creates a device from a plain name
func NewDevice(name string) Device {
	return Device{Name: name}
}

// NewDeviceWithManufacturer creates a device named "name (manufacturer)"
func NewDeviceWithManufacturer(name, manufacturer string) Device {
	return Device{Name: fmt.Sprintf("%s (%s)", name, manufacturer)}
}

func (d Device) String() string {
	return d.Name
}

// Role is the Windows default-endpoint role. Values are passed to SoundVolumeView as-is.
type Role int

const (
	RoleConsole Role = iota
	RoleMultimedia
	RoleCommunications
)

// Roles lists every role in command-line order
var Roles = []Role{RoleConsole, RoleMultimedia, RoleCommunications}

func (r Role) String() string {
	switch r {
	case RoleConsole:
		return "console"
	case RoleMultimedia:
		return "multimedia"
	case RoleCommunications:
		return "communications"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Column returns the SoundVolumeView column reporting the default device for r.
// Unknown roles fall back to the console column.
func (r Role) Column() string {
	switch r {
	case RoleMultimedia:
		return "Default Multimedia"
	case RoleCommunications:
		return "Default Communications"
	default:
		return "Default"
	}
}

// ParseRole accepts a role name or its numeric value
func ParseRole(s string) (Role, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "console":
		return RoleConsole, nil
	case "multimedia":
		return RoleMultimedia, nil
	case "communications":
		return RoleCommunications, nil
	}
	if n, err := strconv.Atoi(s); err == nil && n >= int(RoleConsole) && n <= int(RoleCommunications) {
		return Role(n), nil
	}
	return RoleConsole, fmt.Errorf("unknown device role %q (must be one of: console, multimedia, communications)", s)
}
