package pcm

import (
	"fmt"
	"io"
	"math"
	"time"
)

// Common formats.
var (
	// L16Mono16K represents audio/L16; rate=16000; channels=1
	L16Mono16K = L16Mono(16000)
	// L16Mono24K represents audio/L16; rate=24000; channels=1
	L16Mono24K = L16Mono(24000)
	// L16Mono48K represents audio/L16; rate=48000; channels=1
	L16Mono48K = L16Mono(48000)
)

// Format is signed 16-bit little-endian mono PCM at a sample rate.
type Format struct {
	rate int
}

// L16Mono returns the 16-bit mono format at the given sample rate in Hz.
func L16Mono(sampleRate int) Format {
	return Format{rate: sampleRate}
}

// SampleRate returns the sample rate in Hz for this format.
func (f Format) SampleRate() int {
	return f.rate
}

// Channels returns the number of audio channels for this format.
func (f Format) Channels() int {
	return 1
}

// Depth returns the bit depth for this format.
func (f Format) Depth() int {
	return 16
}

// Samples returns the number of samples in the given number of bytes.
func (f Format) Samples(bytes int64) int64 {
	return bytes * 8 / int64(f.Channels()) / int64(f.Depth())
}

// SamplesInDuration returns the number of samples in the given duration.
func (f Format) SamplesInDuration(d time.Duration) int64 {
	return int64(time.Duration(f.rate) * d / time.Second)
}

// BytesInDuration returns the number of bytes in the given duration.
func (f Format) BytesInDuration(d time.Duration) int64 {
	return f.SamplesInDuration(d) * int64(f.Channels()) * int64(f.Depth()) / 8
}

// Duration returns the duration of the given number of bytes.
func (f Format) Duration(bytes int64) time.Duration {
	if f.rate <= 0 {
		return 0
	}
	return time.Duration(f.Samples(bytes)) * time.Second / time.Duration(f.rate)
}

// String returns a human-readable string representation of the format.
func (f Format) String() string {
	return fmt.Sprintf("audio/L16; rate=%d; channels=1", f.rate)
}

// Encode scales float samples in [-1, 1] to int16 and returns them as a
// little-endian DataChunk. Values outside the range are clipped.
func (f Format) Encode(samples []float64) *DataChunk {
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		v := ToInt16(s)
		data[i*2] = byte(v)
		data[i*2+1] = byte(v >> 8)
	}
	return &DataChunk{Data: data, fmt: f}
}

// Decode converts little-endian int16 bytes into float samples in [-1, 1). A
// trailing odd byte is ignored.
func (f Format) Decode(data []byte) []float64 {
	n := len(data) / 2
	out := make([]float64, n)
	for i := range n {
		s := int16(data[i*2]) | int16(data[i*2+1])<<8
		out[i] = float64(s) / 32768.0
	}
	return out
}

// DataChunk returns a chunk of audio data.
func (f Format) DataChunk(data []byte) *DataChunk {
	return &DataChunk{
		Data: data,
		fmt:  f,
	}
}

// ToInt16 scales a normalized sample to the int16 range with clipping.
func ToInt16(s float64) int16 {
	if math.IsNaN(s) {
		return 0
	}
	switch {
	case s >= 1:
		return math.MaxInt16
	case s <= -1:
		return math.MinInt16
	}
	return int16(math.Round(s * math.MaxInt16))
}

// DataChunk is a chunk of audio data.
type DataChunk struct {
	Data []byte
	fmt  Format
}

// Len returns the length of the audio data in bytes.
func (c *DataChunk) Len() int64 {
	return int64(len(c.Data))
}

// Format returns the audio format of this chunk.
func (c *DataChunk) Format() Format {
	return c.fmt
}

// Samples returns the chunk as int16 samples.
func (c *DataChunk) Samples() []int16 {
	out := make([]int16, len(c.Data)/2)
	for i := range out {
		out[i] = int16(c.Data[i*2]) | int16(c.Data[i*2+1])<<8
	}
	return out
}

// WriteTo writes the audio data to the writer.
func (c *DataChunk) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(c.Data)
	return int64(n), err
}
