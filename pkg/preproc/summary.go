package preproc

import (
	"slices"

	"github.com/Mer315/AuralDine/pkg/audio/pcm"
)

// Summary is the diagnostic record of one run. It is never used for
// inference.
type Summary struct {
	RequestID string `json:"request_id" yaml:"request_id" msgpack:"request_id"`
	Mode      Mode   `json:"mode" yaml:"mode" msgpack:"mode"`

	// SampleRate is the working rate; SourceSampleRate is the decoded rate.
	SampleRate       int `json:"sample_rate" yaml:"sample_rate" msgpack:"sample_rate"`
	SourceSampleRate int `json:"source_sample_rate" yaml:"source_sample_rate" msgpack:"source_sample_rate"`

	// OriginalSamples counts samples at the working rate before conditioning.
	OriginalSamples int `json:"original_samples" yaml:"original_samples" msgpack:"original_samples"`

	NumSegments int `json:"num_segments" yaml:"num_segments" msgpack:"num_segments"`
	NumWindows  int `json:"num_windows" yaml:"num_windows" msgpack:"num_windows"`

	// MFCCMeans holds one feature vector per summary window. Summary windows
	// are the windows of every segment's unmodified variant.
	MFCCMeans [][]float64 `json:"mfcc_means" yaml:"mfcc_means" msgpack:"mfcc_means"`

	// Degraded lists the steps that substituted a fallback, sorted.
	Degraded []string `json:"degraded,omitempty" yaml:"degraded,omitempty" msgpack:"degraded,omitempty"`

	// Preview is the first summary window as 16-bit little-endian mono PCM
	// at SampleRate.
	Preview []byte `json:"preview,omitempty" yaml:"preview,omitempty" msgpack:"preview,omitempty"`
}

// PreviewFormat returns the PCM format of Preview.
func (s *Summary) PreviewFormat() pcm.Format {
	return pcm.L16Mono(s.SampleRate)
}

// summaryBuilder accumulates summary windows during a run.
type summaryBuilder struct {
	summary  Summary
	first    []float64
	degraded map[string]bool
}

func (b *summaryBuilder) addWindow(window, vec []float64) {
	if b.first == nil {
		b.first = window
	}
	b.summary.NumWindows++
	b.summary.MFCCMeans = append(b.summary.MFCCMeans, vec)
}

func (b *summaryBuilder) build(preview bool) *Summary {
	s := b.summary
	for step := range b.degraded {
		s.Degraded = append(s.Degraded, step)
	}
	slices.Sort(s.Degraded)
	if preview && b.first != nil {
		s.Preview = encodePreview(b.first, s.SampleRate)
	}
	return &s
}

// encodePreview peak-scales window to full range and encodes it as L16.
func encodePreview(window []float64, rate int) []byte {
	scaled := clone(window)
	if peak := peakAbs(scaled); peak > 0 {
		for i := range scaled {
			scaled[i] /= peak
		}
	}
	return pcm.L16Mono(rate).Encode(scaled).Data
}
