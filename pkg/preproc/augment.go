package preproc

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/Mer315/AuralDine/pkg/audio/resampler"
)

// Augmentation ranges.
const (
	minSpeed     = 0.9
	maxSpeed     = 1.1
	maxSemitones = 1.0
	noiseScale   = 1e-4
)

// Variant is one version of a segment.
type Variant struct {
	// Kind is "original", "speed", "pitch" or "noise".
	Kind    string
	Samples []float64
}

// Augmenter produces stochastic variants of a segment. Rand must not be
// shared between concurrent callers.
type Augmenter struct {
	Rand   *rand.Rand
	Logger *slog.Logger
}

// Jitter returns the unmodified segment followed by a speed, a pitch and a
// noise variant, each the same length as segment. A transform that fails is
// logged and skipped. Bit-identical variants are dropped, keeping the first.
func (a *Augmenter) Jitter(segment []float64, rate int) []Variant {
	log := a.Logger
	if log == nil {
		log = slog.Default()
	}
	if a.Rand == nil {
		a = &Augmenter{Rand: newRand(), Logger: log}
	}
	variants := []Variant{{Kind: "original", Samples: clone(segment)}}

	transforms := []struct {
		kind string
		run  func([]float64, int) ([]float64, error)
	}{
		{"speed", a.speed},
		{"pitch", a.pitch},
		{"noise", a.noise},
	}
	for _, tr := range transforms {
		out, err := tr.run(segment, rate)
		if err != nil {
			log.Debug("augmentation skipped", "kind", tr.kind, "error", err)
			continue
		}
		if len(out) != len(segment) || !finite(out) {
			log.Debug("augmentation skipped", "kind", tr.kind, "error", errNotFinite)
			continue
		}
		variants = append(variants, Variant{Kind: tr.kind, Samples: out})
	}
	return dedupe(variants)
}

// speed changes playback rate by a factor in [0.9, 1.1].
func (a *Augmenter) speed(segment []float64, rate int) ([]float64, error) {
	factor := minSpeed + (maxSpeed-minSpeed)*a.Rand.Float64()
	out, err := resampler.Resample(segment, float64(rate)*factor, float64(rate))
	if err != nil {
		return nil, fmt.Errorf("speed %.3f: %w", factor, err)
	}
	return resampler.Fit(out, len(segment)), nil
}

// pitch shifts by up to one semitone while keeping the duration: stretch by
// the pitch ratio, then play the stretched signal back faster by that ratio.
func (a *Augmenter) pitch(segment []float64, rate int) ([]float64, error) {
	steps := maxSemitones * (2*a.Rand.Float64() - 1)
	ratio := math.Pow(2, steps/12)
	stretched := timeStretch(segment, ratio)
	out, err := resampler.Resample(stretched, float64(rate)*ratio, float64(rate))
	if err != nil {
		return nil, fmt.Errorf("pitch %.3f semitones: %w", steps, err)
	}
	return resampler.Fit(out, len(segment)), nil
}

// noise adds zero-mean gaussian noise with sigma 1e-4 * peak.
func (a *Augmenter) noise(segment []float64, _ int) ([]float64, error) {
	sigma := noiseScale * peakAbs(segment)
	if sigma == 0 {
		sigma = noiseScale
	}
	out := make([]float64, len(segment))
	for i, s := range segment {
		out[i] = s + sigma*a.Rand.NormFloat64()
	}
	return out, nil
}

func dedupe(variants []Variant) []Variant {
	out := variants[:0:0]
	for _, v := range variants {
		if slices.ContainsFunc(out, func(seen Variant) bool {
			return slices.Equal(seen.Samples, v.Samples)
		}) {
			continue
		}
		out = append(out, v)
	}
	return out
}
