package pcm

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV writes the chunk as a 16-bit PCM WAV file.
func (c *DataChunk) WriteWAV(ws io.WriteSeeker) error {
	samples := c.Samples()
	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}

	enc := wav.NewEncoder(ws, c.fmt.SampleRate(), c.fmt.Depth(), c.fmt.Channels(), 1)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: c.fmt.Channels(),
			SampleRate:  c.fmt.SampleRate(),
		},
		Data:           data,
		SourceBitDepth: c.fmt.Depth(),
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("pcm: write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("pcm: close wav: %w", err)
	}
	return nil
}
