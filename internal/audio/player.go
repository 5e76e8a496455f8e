package audio

import (
	"fmt"
	"os"
	"sync"
	"time"
	"unsafe"

	"github.com/gen2brain/malgo"

	"github.com/777genius/audio-device-manager/internal/logging"
)

// playbackTimeout bounds a single preview; previews are short chimes
const playbackTimeout = 15 * time.Second

// Player plays preview sounds on a specific device
type Player struct {
	ctx        *malgo.AllocatedContext
	deviceID   unsafe.Pointer
	deviceName string
	volume     float64
	mu         sync.Mutex
}

// NewPlayer creates a player for deviceName.
// An empty name plays on whatever the system default currently is.
func NewPlayer(deviceName string, volume float64) (*Player, error) {
	if volume < 0 || volume > 1 {
		return nil, fmt.Errorf("volume must be between 0.0 and 1.0 (got %.2f)", volume)
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to init audio context: %w", err)
	}

	player := &Player{
		ctx:        ctx,
		deviceName: deviceName,
		volume:     volume,
	}

	if deviceName == "" {
		return player, nil
	}

	devices, err := ctx.Devices(malgo.Playback)
	if err != nil {
		player.release()
		return nil, fmt.Errorf("failed to enumerate devices: %w", err)
	}

	infos := make([]DeviceInfo, len(devices))
	for i, dev := range devices {
		infos[i] = DeviceInfo{Name: dev.Name(), IsDefault: dev.IsDefault != 0}
	}
	match, ok := MatchDevice(infos, deviceName)
	if !ok {
		player.release()
		return nil, fmt.Errorf("audio device not found: %s", deviceName)
	}
	for _, dev := range devices {
		if dev.Name() == match.Name {
			player.deviceID = dev.ID.Pointer()
			break
		}
	}
	logging.Debug("Preview device resolved: %q -> %q", deviceName, match.Name)

	return player, nil
}

// Play decodes soundPath and blocks until it has been played
func (p *Player) Play(soundPath string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctx == nil {
		return fmt.Errorf("player is closed")
	}
	if _, err := os.Stat(soundPath); os.IsNotExist(err) {
		return fmt.Errorf("sound file not found: %s", soundPath)
	}

	clip, err := Decode(soundPath)
	if err != nil {
		return fmt.Errorf("failed to decode audio: %w", err)
	}
	clip.ApplyVolume(p.volume)
	data := clip.Bytes()

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.Playback.Format = malgo.FormatS16
	deviceConfig.Playback.Channels = uint32(clip.Channels)
	deviceConfig.SampleRate = clip.SampleRate
	deviceConfig.PeriodSizeInFrames = 4096
	deviceConfig.Periods = 4
	deviceConfig.Alsa.NoMMap = 1
	if p.deviceID != nil {
		deviceConfig.Playback.DeviceID = p.deviceID
	}

	var pos int
	done := make(chan struct{})
	var doneOnce sync.Once
	frameBytes := clip.Channels * 2

	onData := func(out, _ []byte, frameCount uint32) {
		n := copy(out[:min(len(out), int(frameCount)*frameBytes)], data[pos:])
		pos += n
		for i := n; i < len(out); i++ {
			out[i] = 0
		}
		if pos >= len(data) {
			doneOnce.Do(func() { close(done) })
		}
	}

	device, err := malgo.InitDevice(p.ctx.Context, deviceConfig, malgo.DeviceCallbacks{Data: onData})
	if err != nil {
		return fmt.Errorf("failed to init audio device: %w", err)
	}
	defer device.Uninit()

	if err := device.Start(); err != nil {
		return fmt.Errorf("failed to start audio device: %w", err)
	}

	select {
	case <-done:
		// Let the device drain its last period
		time.Sleep(200 * time.Millisecond)
		logging.Debug("Preview played: %s", soundPath)
	case <-time.After(playbackTimeout):
		logging.Warn("Preview playback timeout: %s", soundPath)
	}

	_ = device.Stop()
	return nil
}

// Close releases the audio context
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.release()
	return nil
}

func (p *Player) release() {
	if p.ctx != nil {
		_ = p.ctx.Uninit()
		p.ctx.Free()
		p.ctx = nil
	}
}
