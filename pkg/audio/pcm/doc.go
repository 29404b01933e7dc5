// Package pcm provides types and utilities for working with 16-bit linear PCM
// (audio/L16) mono audio.
//
// The package converts between normalized float samples in [-1, 1] and signed
// 16-bit little-endian bytes, and computes sizes and durations for a given
// sample rate.
//
// Key types:
//   - Format: L16 mono at a sample rate
//   - DataChunk: encoded bytes, writable raw or as a WAV file
//
// Example usage:
//
//	format := pcm.L16Mono(16000)
//
//	// Bytes needed for one second of audio
//	n := format.BytesInDuration(time.Second)
//
//	// Encode a float window for a debugging UI
//	chunk := format.Encode(window)
//	err := chunk.WriteWAV(f)
package pcm
