package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/777genius/audio-device-manager/internal/audio"
	"github.com/777genius/audio-device-manager/internal/devices"
)

type stubLister struct {
	all     []devices.Device
	current *devices.Device
	err     error
}

func (s stubLister) GetAllDevices(ctx context.Context) ([]devices.Device, error) {
	return s.all, s.err
}

func (s stubLister) GetCurrentDevice(ctx context.Context, role devices.Role) (*devices.Device, error) {
	return s.current, nil
}

func noNative() ([]audio.DeviceInfo, error) {
	return nil, errors.New("native listing must not be used")
}

func TestRunMarksCurrentDevice(t *testing.T) {
	current := devices.NewDevice("AirPods")
	lister := stubLister{
		all:     []devices.Device{devices.NewDevice("MacBook Pro Speakers"), current},
		current: &current,
	}

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, lister, noNative))

	assert.Contains(t, out.String(), "  0: MacBook Pro Speakers\n")
	assert.Contains(t, out.String(), "  1: AirPods (default)\n")
}

func TestRunNoDevices(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, stubLister{all: []devices.Device{}}, noNative))
	assert.Contains(t, out.String(), "No audio output devices found.")
}

func TestRunFallsBackToNativeBackend(t *testing.T) {
	lister := stubLister{err: devices.ErrUnsupportedPlatform}
	native := func() ([]audio.DeviceInfo, error) {
		return []audio.DeviceInfo{{Name: "Built-in Audio Analog Stereo", IsDefault: true}}, nil
	}

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, lister, native))
	assert.Contains(t, out.String(), "No switching tool for this platform")
	assert.Contains(t, out.String(), "  0: Built-in Audio Analog Stereo (default)")
}

func TestRunToolError(t *testing.T) {
	lister := stubLister{err: errors.New("exit status 1")}

	var out bytes.Buffer
	assert.Error(t, run(context.Background(), &out, lister, noNative))
}
