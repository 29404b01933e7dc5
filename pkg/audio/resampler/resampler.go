package resampler

import (
	"errors"
	"fmt"
	"math"

	resampling "github.com/tphakala/go-audio-resampling"
)

// ErrInvalidRate is returned when a source or destination rate is not a
// positive finite number.
var ErrInvalidRate = errors.New("resampler: invalid sample rate")

// Resample converts mono samples from rate `from` to rate `to` (both in Hz,
// fractional rates allowed). The output holds exactly
// round(len(samples) * to / from) samples. When the rates are equal the
// result is an unmodified copy.
func Resample(samples []float64, from, to float64) ([]float64, error) {
	if !validRate(from) || !validRate(to) {
		return nil, fmt.Errorf("%w: %v -> %v", ErrInvalidRate, from, to)
	}
	if from == to {
		out := make([]float64, len(samples))
		copy(out, samples)
		return out, nil
	}
	want := OutputLength(len(samples), from, to)
	if len(samples) == 0 {
		return []float64{}, nil
	}

	r, err := resampling.New(&resampling.Config{
		InputRate:  from,
		OutputRate: to,
		Channels:   1,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	})
	if err != nil {
		return nil, fmt.Errorf("resampler: failed to create resampler: %w", err)
	}

	output, err := r.Process(samples)
	if err != nil {
		return nil, fmt.Errorf("resampler: resample error: %w", err)
	}
	tail, err := r.Flush()
	if err != nil {
		return nil, fmt.Errorf("resampler: flush error: %w", err)
	}
	output = append(output, tail...)

	for _, s := range output {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, errors.New("resampler: non-finite output")
		}
	}
	return Fit(output, want), nil
}

// OutputLength returns the number of samples Resample produces for n input
// samples.
func OutputLength(n int, from, to float64) int {
	if n <= 0 || !validRate(from) || !validRate(to) {
		return 0
	}
	return int(math.Round(float64(n) * to / from))
}

// Fit crops or zero-pads samples to exactly n samples. The input is never
// modified; the result always has its own backing array.
func Fit(samples []float64, n int) []float64 {
	if n < 0 {
		n = 0
	}
	out := make([]float64, n)
	copy(out, samples)
	return out
}

func validRate(r float64) bool {
	return r > 0 && !math.IsInf(r, 0) && !math.IsNaN(r)
}
