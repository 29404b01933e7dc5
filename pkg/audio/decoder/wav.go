package decoder

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/Mer315/AuralDine/pkg/audio/resampler"
)

// WAVE format tags.
const (
	wavFormatPCM        = 0x0001
	wavFormatFloat      = 0x0003
	wavFormatExtensible = 0xFFFE
)

// WAV decodes integer PCM RIFF/WAVE data of 8, 16, 24 or 32 bits. Float,
// companded and other encodings fail with ErrUnsupported.
type WAV struct{}

// Decode implements Decoder.
func (WAV) Decode(_ context.Context, data []byte) (*Audio, error) {
	return decodeWAV(bytes.NewReader(data))
}

func decodeWAV(r io.ReadSeeker) (*Audio, error) {
	tag, err := formatTag(r)
	if err != nil {
		return nil, err
	}
	if tag != wavFormatPCM {
		return nil, fmt.Errorf("%w: wav format tag %#x", ErrUnsupported, tag)
	}

	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a valid wav file", ErrInvalid)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decoder: read pcm: %w", err)
	}

	bitDepth := int(dec.BitDepth)
	channels := int(dec.NumChans)
	rate := int(dec.SampleRate)
	if buf.Format != nil {
		if buf.Format.NumChannels > 0 {
			channels = buf.Format.NumChannels
		}
		if buf.Format.SampleRate > 0 {
			rate = buf.Format.SampleRate
		}
	}
	if channels <= 0 || rate <= 0 {
		return nil, fmt.Errorf("%w: channels=%d rate=%d", ErrInvalid, channels, rate)
	}

	interleaved, err := normalize(buf, bitDepth)
	if err != nil {
		return nil, err
	}
	return &Audio{
		Samples:    resampler.Downmix(interleaved, channels),
		SampleRate: rate,
		Channels:   channels,
	}, nil
}

// formatTag walks the RIFF chunks to the fmt chunk and returns its format
// tag, resolving WAVE_FORMAT_EXTENSIBLE to the sub-format. r is rewound
// before returning.
func formatTag(r io.ReadSeeker) (uint16, error) {
	defer r.Seek(0, io.SeekStart)

	var hdr [12]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return 0, fmt.Errorf("%w: short riff header", ErrInvalid)
	}
	if !bytes.Equal(hdr[0:4], magicRIFF) || !bytes.Equal(hdr[8:12], magicWAVE) {
		return 0, fmt.Errorf("%w: not a riff/wave file", ErrInvalid)
	}

	var ch [8]byte
	for {
		if _, err := io.ReadFull(r, ch[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return 0, fmt.Errorf("%w: no fmt chunk", ErrInvalid)
			}
			return 0, fmt.Errorf("decoder: read chunk: %w", err)
		}
		size := binary.LittleEndian.Uint32(ch[4:8])
		if string(ch[0:4]) != "fmt " {
			if _, err := r.Seek(int64(size)+int64(size&1), io.SeekCurrent); err != nil {
				return 0, fmt.Errorf("decoder: skip chunk: %w", err)
			}
			continue
		}
		if size < 16 {
			return 0, fmt.Errorf("%w: fmt chunk of %d bytes", ErrInvalid, size)
		}
		body := make([]byte, min(int(size), 40))
		if _, err := io.ReadFull(r, body); err != nil {
			return 0, fmt.Errorf("%w: truncated fmt chunk", ErrInvalid)
		}
		tag := binary.LittleEndian.Uint16(body[0:2])
		if tag != wavFormatExtensible {
			return tag, nil
		}
		// The sub-format GUID starts at offset 24; its first two bytes are
		// the effective format tag.
		if len(body) < 26 {
			return 0, fmt.Errorf("%w: short extensible fmt chunk", ErrInvalid)
		}
		return binary.LittleEndian.Uint16(body[24:26]), nil
	}
}

// normalize scales integer samples to [-1, 1]. 8-bit WAV is unsigned.
func normalize(buf *goaudio.IntBuffer, bitDepth int) ([]float64, error) {
	out := make([]float64, len(buf.Data))
	switch bitDepth {
	case 8:
		for i, v := range buf.Data {
			out[i] = float64(v-128) / 128
		}
	case 16, 24, 32:
		scale := float64(int64(1) << (bitDepth - 1))
		for i, v := range buf.Data {
			out[i] = float64(v) / scale
		}
	default:
		return nil, fmt.Errorf("%w: %d-bit pcm", ErrUnsupported, bitDepth)
	}
	return out, nil
}
