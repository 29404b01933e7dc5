// Package resampler converts mono float audio between sample rates using the
// pure Go soxr port github.com/tphakala/go-audio-resampling, and folds
// multi-channel audio down to mono.
//
// It supports:
//   - One-shot sample rate conversion (e.g., 44100Hz to 16000Hz)
//   - Fractional rates, used for speed and pitch changes
//   - Exact-length fitting (crop or zero-pad)
//   - Channel downmix of interleaved samples
//
// Example usage:
//
//	mono := resampler.Downmix(interleaved, 2)
//	out, err := resampler.Resample(mono, 44100, 16000)
//	if err != nil {
//	    log.Fatal(err)
//	}
package resampler
