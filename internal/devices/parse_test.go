package devices

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Output of: SoundVolumeView.exe /scomma "" /Columns "Name,Type,Direction,Device Name"
var windowsAllDevicesOutput = []string{
	"Name,Type,Direction,Device Name",
	"Speakers,Device,Render,Realtek(R) Audio",
	"Microphone,Device,Capture,Realtek(R) Audio",
	"Headphones,Device,Render,USB Audio Device",
	"Speakers,Subunit,Render,Realtek(R) Audio",
	"Discord,Application,Render,Realtek(R) Audio",
	`"LG ULTRAGEAR, HDMI",Device,Render,NVIDIA High Definition Audio`,
	"truncated,Device",
	"",
}

// Output of: SoundVolumeView.exe /scomma "" /Columns "Name,Device Name,Default"
var windowsCurrentDeviceOutput = []string{
	"Name,Device Name,Default",
	"Microphone,Realtek(R) Audio,Capture",
	"Speakers,Realtek(R) Audio,",
	"Headphones,USB Audio Device,Render",
	"Speakers,Realtek(R) Audio,Render",
}

func TestParseWindowsAllDevices(t *testing.T) {
	got := parseWindowsAllDevices(windowsAllDevicesOutput)

	assert.Equal(t, []Device{
		{Name: "Speakers (Realtek(R) Audio)"},
		{Name: "Headphones (USB Audio Device)"},
		{Name: "LG ULTRAGEAR, HDMI (NVIDIA High Definition Audio)"},
	}, got)
}

func TestParseWindowsAllDevicesEmpty(t *testing.T) {
	got := parseWindowsAllDevices(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParseWindowsCurrentDevice(t *testing.T) {
	got := parseWindowsCurrentDevice(windowsCurrentDeviceOutput)
	require.NotNil(t, got)
	assert.Equal(t, "Headphones (USB Audio Device)", got.Name)
}

func TestParseWindowsCurrentDeviceNone(t *testing.T) {
	got := parseWindowsCurrentDevice([]string{
		"Name,Device Name,Default",
		"Speakers,Realtek(R) Audio,",
		"short",
	})
	assert.Nil(t, got)
}

func TestParseMacOSDevices(t *testing.T) {
	lines := []string{"MacBook Pro Speakers", "  External Headphones  ", "", "LG UltraFine Display Audio"}

	assert.Equal(t, []Device{
		{Name: "MacBook Pro Speakers"},
		{Name: "External Headphones"},
		{Name: "LG UltraFine Display Audio"},
	}, parseMacOSAllDevices(lines))

	current := parseMacOSCurrentDevice(lines)
	require.NotNil(t, current)
	assert.Equal(t, "MacBook Pro Speakers", current.Name)

	assert.Nil(t, parseMacOSCurrentDevice(nil))
	assert.Nil(t, parseMacOSCurrentDevice([]string{"", "  "}))
}

func TestSplitDisplayName(t *testing.T) {
	tests := []struct {
		display      string
		name         string
		manufacturer string
		wantErr      bool
	}{
		{"Speakers (Realtek High Definition Audio)", "Speakers", "Realtek High Definition Audio", false},
		{"Speakers (Realtek(R) Audio)", "Speakers", "Realtek(R) Audio", false},
		{"Headphones (USB Audio Device) (default)", "Headphones", "USB Audio Device", false},
		{"(default) Headphones (USB Audio Device)", "Headphones", "USB Audio Device", false},
		{"  Speakers   ( Realtek )  ", "Speakers", "Realtek", false},
		{"Speakers", "", "", true},
		{"(Realtek)", "", "", true},
		{"", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.display, func(t *testing.T) {
			name, manufacturer, err := SplitDisplayName(tt.display)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDeviceName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.manufacturer, manufacturer)
		})
	}
}

func TestWindowsArgs(t *testing.T) {
	assert.Equal(t, []string{"/scomma", "", "/Columns", "Name,Device Name,Default"}, windowsCurrentDeviceArgs(RoleConsole))
	assert.Equal(t, []string{"/scomma", "", "/Columns", "Name,Device Name,Default Multimedia"}, windowsCurrentDeviceArgs(RoleMultimedia))
	assert.Equal(t, []string{"/scomma", "", "/Columns", "Name,Device Name,Default Communications"}, windowsCurrentDeviceArgs(RoleCommunications))
	assert.Equal(t, []string{"/scomma", "", "/Columns", "Name,Type,Direction,Device Name"}, windowsAllDevicesArgs())
}

func TestWindowsSetDefaultArgs(t *testing.T) {
	communications := RoleCommunications

	args, err := windowsSetDefaultArgs("Speakers (Realtek(R) Audio) (default)", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"/SetDefault", `Realtek(R) Audio\Device\Speakers\Render`, "all"}, args)

	args, err = windowsSetDefaultArgs("Headphones (USB Audio Device)", &communications)
	require.NoError(t, err)
	assert.Equal(t, []string{"/SetDefault", `USB Audio Device\Device\Headphones\Render`, "2"}, args)

	_, err = windowsSetDefaultArgs("Headphones", nil)
	assert.ErrorIs(t, err, ErrInvalidDeviceName)
}

func TestMacOSArgs(t *testing.T) {
	assert.Equal(t, []string{"-c", "-t", "output"}, macOSCurrentDeviceArgs())
	assert.Equal(t, []string{"-a", "-t", "output"}, macOSAllDevicesArgs())
	assert.Equal(t, []string{"-t", "output", "-s", "Rick's AirPods"}, macOSSetDefaultArgs("Rick's AirPods"))
}
