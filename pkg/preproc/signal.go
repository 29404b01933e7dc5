package preproc

import "time"

// Signal is mono audio at a fixed sample rate.
type Signal struct {
	Samples    []float64
	SampleRate int
}

// Duration returns the signal length in time.
func (s Signal) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(s.Samples)) * time.Second / time.Duration(s.SampleRate)
}

// FeatureVector is the utterance-level feature handed to a classifier.
type FeatureVector []float64

// Result is the output of one pipeline run.
type Result struct {
	Features FeatureVector `json:"features" yaml:"features" msgpack:"features"`
	Summary  *Summary      `json:"summary" yaml:"summary" msgpack:"summary"`
}
