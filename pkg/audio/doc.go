// Package audio provides audio processing utilities.
//
// This package serves as an umbrella for audio-related sub-packages:
//
//   - pcm: 16-bit linear PCM format and float conversion
//   - resampler: sample rate conversion and channel downmix
//   - decoder: container sniffing and decoding of uploaded recordings
//   - fbank: log mel filterbank front-end
//   - mfcc: cepstral coefficients pooled into fixed-size window features
//
// The feature-extraction pipeline that ties them together lives in
// github.com/Mer315/AuralDine/pkg/preproc.
//
// Example usage:
//
//	import (
//	    "github.com/Mer315/AuralDine/pkg/audio/mfcc"
//	    "github.com/Mer315/AuralDine/pkg/audio/resampler"
//	)
//
//	samples16k, err := resampler.Resample(samples, 44100, 16000)
//	ext, err := mfcc.New(mfcc.DefaultConfig(16000))
//	vec, ok := ext.Feature(samples16k)
package audio
