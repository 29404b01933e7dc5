package preproc

import "math"

// Samples converts a duration in seconds to a sample count at rate. The
// result is at least 1.
func Samples(seconds float64, rate int) int {
	n := int(math.Round(seconds * float64(rate)))
	return max(n, 1)
}

// SplitSegments tiles samples into non-overlapping chunks of seconds, zero
// padding the last one. Input shorter than one chunk, including empty input,
// yields exactly one padded chunk.
func SplitSegments(samples []float64, rate int, seconds float64) [][]float64 {
	return tile(samples, Samples(seconds, rate))
}

// FixedWindows tiles samples into non-overlapping windows of seconds, the
// way model-ready frames are prepared. Never returns an empty list.
func FixedWindows(samples []float64, rate int, seconds float64) [][]float64 {
	return tile(samples, Samples(seconds, rate))
}

// RollingWindows slides windows of seconds over samples, starting at 0, hop,
// 2*hop and so on. The last window is the first one that reaches the end of
// the input; windows running past the end are zero padded. Input no longer
// than one window yields one padded window.
func RollingWindows(samples []float64, rate int, seconds, hopSeconds float64) [][]float64 {
	n := Samples(seconds, rate)
	hop := Samples(hopSeconds, rate)
	if len(samples) <= n {
		return [][]float64{padded(samples, 0, n)}
	}
	var out [][]float64
	for start := 0; ; start += hop {
		out = append(out, padded(samples, start, n))
		if start+n >= len(samples) {
			break
		}
	}
	return out
}

func tile(samples []float64, n int) [][]float64 {
	if len(samples) == 0 {
		return [][]float64{make([]float64, n)}
	}
	out := make([][]float64, 0, (len(samples)+n-1)/n)
	for start := 0; start < len(samples); start += n {
		out = append(out, padded(samples, start, n))
	}
	return out
}

// padded copies samples[start:start+n] into a new slice of exactly n,
// zero filling past the end.
func padded(samples []float64, start, n int) []float64 {
	out := make([]float64, n)
	if start < len(samples) {
		copy(out, samples[start:])
	}
	return out
}
