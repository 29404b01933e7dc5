package decoder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
)

var (
	// ErrUnsupported is returned when the container or encoding cannot be
	// decoded by this decoder (or ffmpeg is unavailable).
	ErrUnsupported = errors.New("decoder: unsupported audio")

	// ErrInvalid is returned when the data claims a container but is malformed.
	ErrInvalid = errors.New("decoder: invalid audio data")
)

// Container identifies an audio file container.
type Container string

const (
	ContainerUnknown Container = "unknown"
	ContainerWAV     Container = "wav"
	ContainerMP3     Container = "mp3"
	ContainerWebM    Container = "webm"
	ContainerOgg     Container = "ogg"
)

// Audio is decoded mono audio. Samples are normalized to [-1, 1].
type Audio struct {
	Samples    []float64
	SampleRate int
	// Channels is the channel count of the source before downmixing.
	Channels int
}

// Decoder decodes raw audio bytes.
type Decoder interface {
	Decode(ctx context.Context, data []byte) (*Audio, error)
}

// Func adapts a function to the Decoder interface.
type Func func(ctx context.Context, data []byte) (*Audio, error)

// Decode calls f.
func (f Func) Decode(ctx context.Context, data []byte) (*Audio, error) {
	return f(ctx, data)
}

var (
	magicRIFF = []byte("RIFF")
	magicWAVE = []byte("WAVE")
	magicID3  = []byte("ID3")
	magicEBML = []byte{0x1A, 0x45, 0xDF, 0xA3}
	magicOgg  = []byte("OggS")
)

// Sniff detects the container of data from its leading bytes.
func Sniff(data []byte) Container {
	switch {
	case len(data) >= 12 && bytes.Equal(data[0:4], magicRIFF) && bytes.Equal(data[8:12], magicWAVE):
		return ContainerWAV
	case bytes.HasPrefix(data, magicID3):
		return ContainerMP3
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return ContainerMP3
	case bytes.HasPrefix(data, magicEBML):
		return ContainerWebM
	case bytes.HasPrefix(data, magicOgg):
		return ContainerOgg
	}
	return ContainerUnknown
}

// AutoDecoder decodes integer PCM WAV natively and hands every other
// container, and WAV encodings the native path rejects, to ffmpeg.
type AutoDecoder struct {
	WAV    *WAV
	FFmpeg *FFmpeg
}

// Auto returns an AutoDecoder with default settings.
func Auto() *AutoDecoder {
	return &AutoDecoder{WAV: &WAV{}, FFmpeg: &FFmpeg{}}
}

// Decode implements Decoder.
func (d *AutoDecoder) Decode(ctx context.Context, data []byte) (*Audio, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty data", ErrInvalid)
	}
	if Sniff(data) == ContainerWAV && d.WAV != nil {
		a, err := d.WAV.Decode(ctx, data)
		if err == nil || !errors.Is(err, ErrUnsupported) || d.FFmpeg == nil {
			return a, err
		}
	}
	if d.FFmpeg == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, Sniff(data))
	}
	return d.FFmpeg.Decode(ctx, data)
}
