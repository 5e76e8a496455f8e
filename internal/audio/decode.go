package audio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"
)

// Clip is decoded interleaved 16-bit PCM
type Clip struct {
	Samples    []int16
	SampleRate uint32
	Channels   int
}

// SupportedExtensions lists the preview formats Decode understands
var SupportedExtensions = []string{".wav", ".mp3", ".aiff", ".aif"}

// Decode reads a WAV, MP3 or AIFF file
func Decode(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		return decodeWAV(f)
	case ".mp3":
		streamer, format, err := mp3.Decode(f)
		return decodeBeep(streamer, format, err, 1)
	case ".aiff", ".aif":
		return decodeAIFF(f)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", ext)
	}
}

// decodeWAV compensates for beep's wav decoder dividing 16 and 24-bit samples
// by 2^bits-1 instead of 2^(bits-1)-1, which yields half-amplitude floats.
func decodeWAV(r io.Reader) (*Clip, error) {
	streamer, format, err := wav.Decode(r)
	gain := 1.0
	if err == nil && format.Precision >= 2 {
		gain = 2
	}
	return decodeBeep(streamer, format, err, gain)
}

func decodeBeep(streamer beep.StreamSeekCloser, format beep.Format, err error, gain float64) (*Clip, error) {
	if err != nil {
		return nil, err
	}
	defer streamer.Close()

	clip := &Clip{SampleRate: uint32(format.SampleRate), Channels: format.NumChannels}
	if clip.Channels > 2 {
		clip.Channels = 2
	}

	buf := make([][2]float64, 512)
	for {
		n, ok := streamer.Stream(buf)
		for i := 0; i < n; i++ {
			clip.Samples = append(clip.Samples, floatToPCM(buf[i][0]*gain))
			if clip.Channels == 2 {
				clip.Samples = append(clip.Samples, floatToPCM(buf[i][1]*gain))
			}
		}
		if !ok || n == 0 {
			break
		}
	}
	return clip, streamer.Err()
}

func decodeAIFF(r io.ReadSeeker) (*Clip, error) {
	decoder := aiff.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid AIFF file")
	}
	decoder.ReadInfo()

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read AIFF data: %w", err)
	}
	return &Clip{
		Samples:    intBufferToPCM(buf, int(decoder.BitDepth)),
		SampleRate: uint32(decoder.SampleRate),
		Channels:   int(decoder.NumChans),
	}, nil
}

func floatToPCM(v float64) int16 {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int16(v * 32767)
}

// intBufferToPCM rescales samples of the given bit depth to 16 bits
func intBufferToPCM(buf *goaudio.IntBuffer, bitDepth int) []int16 {
	shift := 0
	switch bitDepth {
	case 8:
		shift = -8
	case 24:
		shift = 8
	case 32:
		shift = 16
	}

	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		switch {
		case shift > 0:
			samples[i] = int16(v >> shift)
		case shift < 0:
			samples[i] = int16(v << -shift)
		default:
			samples[i] = int16(v)
		}
	}
	return samples
}

// ApplyVolume scales samples in place; 1.0 leaves them untouched
func (c *Clip) ApplyVolume(volume float64) {
	if volume >= 1.0 {
		return
	}
	for i := range c.Samples {
		c.Samples[i] = int16(float64(c.Samples[i]) * volume)
	}
}

// Bytes returns little-endian PCM
func (c *Clip) Bytes() []byte {
	out := make([]byte, len(c.Samples)*2)
	for i, s := range c.Samples {
		out[i*2] = byte(s)
		out[i*2+1] = byte(s >> 8)
	}
	return out
}

// Duration returns the clip length in seconds
func (c *Clip) Duration() float64 {
	if c.SampleRate == 0 || c.Channels == 0 {
		return 0
	}
	return float64(len(c.Samples)/c.Channels) / float64(c.SampleRate)
}
