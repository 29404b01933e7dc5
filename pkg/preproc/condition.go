package preproc

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Trim framing, matching the common librosa layout.
const (
	trimFrameLength = 2048
	trimHopLength   = 512
)

// normalizeEpsilon keeps Normalize finite on near-silent input.
const normalizeEpsilon = 1e-9

// Trim removes leading and trailing audio quieter than topDB below the
// loudest frame. Frame energy is the mean square over centered frames of
// 2048 samples every 512. The kept range is [first*512, (last+1)*512) clipped
// to the input.
//
// Empty, silent or non-finite input, or a trim that keeps nothing, returns a
// copy of the original as a fallback.
func Trim(samples []float64, topDB float64) Outcome[[]float64] {
	if len(samples) == 0 {
		return Fallback(clone(samples), ErrEmptyInput)
	}
	if !finite(samples) {
		return Fallback(clone(samples), errNotFinite)
	}

	mse := frameMeanSquare(samples, trimFrameLength, trimHopLength)
	peak := floats.Max(mse)
	if peak <= 0 {
		return Fallback(clone(samples), errSilent)
	}

	first, last := -1, -1
	for i, v := range mse {
		db := 10 * math.Log10(math.Max(v, 1e-10)/peak)
		if db > -topDB {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return Fallback(clone(samples), errTrimmedOut)
	}

	start := first * trimHopLength
	end := min(len(samples), (last+1)*trimHopLength)
	if start >= end {
		return Fallback(clone(samples), errTrimmedOut)
	}
	return Done(clone(samples[start:end]))
}

// frameMeanSquare returns the mean square of every centered frame. Frames
// are zero padded by frameLength/2 on both sides, giving 1 + n/hop frames.
func frameMeanSquare(samples []float64, frameLength, hop int) []float64 {
	numFrames := 1 + len(samples)/hop
	pad := frameLength / 2
	out := make([]float64, numFrames)
	for t := range numFrames {
		start := t*hop - pad
		lo := max(start, 0)
		hi := min(start+frameLength, len(samples))
		var sum float64
		for _, s := range samples[lo:max(lo, hi)] {
			sum += s * s
		}
		out[t] = sum / float64(frameLength)
	}
	return out
}

// Normalize divides every sample by (peak + 1e-9). A signal whose peak is
// not positive is returned unchanged.
func Normalize(samples []float64) Outcome[[]float64] {
	if !finite(samples) {
		return Fallback(clone(samples), errNotFinite)
	}
	peak := peakAbs(samples)
	if peak <= 0 {
		return Done(clone(samples))
	}
	out := clone(samples)
	floats.Scale(1/(peak+normalizeEpsilon), out)
	return Done(out)
}

// PreEmphasize applies y'[0] = y[0], y'[t] = y[t] - coef*y[t-1].
func PreEmphasize(samples []float64, coef float64) Outcome[[]float64] {
	if len(samples) == 0 {
		return Done(clone(samples))
	}
	if !finite(samples) || math.IsNaN(coef) || math.IsInf(coef, 0) {
		return Fallback(clone(samples), errNotFinite)
	}
	out := make([]float64, len(samples))
	out[0] = samples[0]
	for t := 1; t < len(samples); t++ {
		out[t] = samples[t] - coef*samples[t-1]
	}
	return Done(out)
}

// Conditioned is the output of Condition.
type Conditioned struct {
	Samples []float64
	// Degraded names the steps that fell back, in order.
	Degraded []string
}

// Condition runs Trim, Normalize and PreEmphasize in order. A failing step
// passes its input through.
func Condition(samples []float64, topDB, preEmphasis float64) Conditioned {
	var c Conditioned
	steps := []struct {
		name string
		run  func([]float64) Outcome[[]float64]
	}{
		{"trim", func(s []float64) Outcome[[]float64] { return Trim(s, topDB) }},
		{"normalize", Normalize},
		{"pre_emphasis", func(s []float64) Outcome[[]float64] { return PreEmphasize(s, preEmphasis) }},
	}
	cur := samples
	for _, step := range steps {
		o := step.run(cur)
		if o.Fallback {
			c.Degraded = append(c.Degraded, step.name)
		}
		cur = o.Value
	}
	c.Samples = cur
	return c
}

func peakAbs(samples []float64) float64 {
	var peak float64
	for _, s := range samples {
		peak = math.Max(peak, math.Abs(s))
	}
	return peak
}

func finite(samples []float64) bool {
	for _, s := range samples {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return false
		}
	}
	return true
}

func clone(samples []float64) []float64 {
	out := make([]float64, len(samples))
	copy(out, samples)
	return out
}
