package preproc

import (
	"fmt"
	"math"
)

// Mode names the two pipeline presets.
type Mode string

const (
	ModeFull Mode = "full"
	ModeFast Mode = "fast"
)

// Config holds the pipeline parameters. It is stored as a profile in the CLI
// config file; zero fields take their defaults.
type Config struct {
	// SampleRate is the working rate in Hz every signal is resampled to.
	SampleRate int `yaml:"sample_rate,omitempty" json:"sample_rate,omitempty" msgpack:"sample_rate,omitempty"`

	// NumCoeffs is the feature dimension.
	NumCoeffs int `yaml:"num_coeffs,omitempty" json:"num_coeffs,omitempty" msgpack:"num_coeffs,omitempty"`

	// Fast selects the reduced-cost mode.
	Fast bool `yaml:"fast,omitempty" json:"fast,omitempty" msgpack:"fast,omitempty"`

	SegmentSeconds float64 `yaml:"segment_seconds,omitempty" json:"segment_seconds,omitempty" msgpack:"segment_seconds,omitempty"`
	WindowSeconds  float64 `yaml:"window_seconds,omitempty" json:"window_seconds,omitempty" msgpack:"window_seconds,omitempty"`
	HopSeconds     float64 `yaml:"hop_seconds,omitempty" json:"hop_seconds,omitempty" msgpack:"hop_seconds,omitempty"`

	// Augment enables jittering in full mode. A nil value means true.
	Augment *bool `yaml:"augment,omitempty" json:"augment,omitempty" msgpack:"augment,omitempty"`

	// TopDB is the trim threshold in dB below the loudest frame.
	TopDB float64 `yaml:"top_db,omitempty" json:"top_db,omitempty" msgpack:"top_db,omitempty"`

	// PreEmphasis is the first-order high-pass coefficient. A nil value means
	// 0.97; 0 disables the filter.
	PreEmphasis *float64 `yaml:"pre_emphasis,omitempty" json:"pre_emphasis,omitempty" msgpack:"pre_emphasis,omitempty"`

	// Preview attaches the first window as 16-bit PCM to the Summary.
	Preview bool `yaml:"preview,omitempty" json:"preview,omitempty" msgpack:"preview,omitempty"`
}

// Defaults.
const (
	DefaultSampleRate     = 16000
	DefaultNumCoeffs      = 13
	DefaultSegmentSeconds = 1.5
	DefaultWindowSeconds  = 1.0
	DefaultHopSeconds     = 0.5
	DefaultTopDB          = 20.0
	DefaultPreEmphasis    = 0.97
)

// DefaultConfig returns the full-mode configuration.
func DefaultConfig() Config {
	augment := true
	return Config{
		SampleRate:     DefaultSampleRate,
		NumCoeffs:      DefaultNumCoeffs,
		SegmentSeconds: DefaultSegmentSeconds,
		WindowSeconds:  DefaultWindowSeconds,
		HopSeconds:     DefaultHopSeconds,
		Augment:        &augment,
		TopDB:          DefaultTopDB,
		PreEmphasis:    Float(DefaultPreEmphasis),
	}
}

// FastConfig returns the fast-mode configuration.
func FastConfig() Config {
	cfg := DefaultConfig()
	cfg.Fast = true
	return cfg
}

// Bool returns a pointer to b, for Config.Augment.
func Bool(b bool) *bool {
	return &b
}

// Float returns a pointer to v, for Config.PreEmphasis.
func Float(v float64) *float64 {
	return &v
}

// WithDefaults returns a copy of c with every zero field replaced by its
// default.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.SampleRate == 0 {
		c.SampleRate = d.SampleRate
	}
	if c.NumCoeffs == 0 {
		c.NumCoeffs = d.NumCoeffs
	}
	if c.SegmentSeconds == 0 {
		c.SegmentSeconds = d.SegmentSeconds
	}
	if c.WindowSeconds == 0 {
		c.WindowSeconds = d.WindowSeconds
	}
	if c.HopSeconds == 0 {
		c.HopSeconds = d.HopSeconds
	}
	if c.Augment == nil {
		c.Augment = Bool(true)
	}
	if c.TopDB == 0 {
		c.TopDB = d.TopDB
	}
	if c.PreEmphasis == nil {
		c.PreEmphasis = Float(DefaultPreEmphasis)
	}
	return c
}

// Mode reports which preset the configuration runs.
func (c Config) Mode() Mode {
	if c.Fast {
		return ModeFast
	}
	return ModeFull
}

// Augmenting reports whether jittering runs. Fast mode never augments.
func (c Config) Augmenting() bool {
	if c.Fast {
		return false
	}
	return c.Augment == nil || *c.Augment
}

// Emphasis returns the pre-emphasis coefficient, 0.97 when unset.
func (c Config) Emphasis() float64 {
	if c.PreEmphasis == nil {
		return DefaultPreEmphasis
	}
	return *c.PreEmphasis
}

// Validate checks c after defaults are applied.
func (c Config) Validate() error {
	c = c.WithDefaults()
	switch {
	case c.SampleRate < 0:
		return fmt.Errorf("%w: sample_rate %d", ErrInvalidConfig, c.SampleRate)
	case c.NumCoeffs < 0:
		return fmt.Errorf("%w: num_coeffs %d", ErrInvalidConfig, c.NumCoeffs)
	case !positive(c.SegmentSeconds):
		return fmt.Errorf("%w: segment_seconds %v", ErrInvalidConfig, c.SegmentSeconds)
	case !positive(c.WindowSeconds):
		return fmt.Errorf("%w: window_seconds %v", ErrInvalidConfig, c.WindowSeconds)
	case !positive(c.HopSeconds):
		return fmt.Errorf("%w: hop_seconds %v", ErrInvalidConfig, c.HopSeconds)
	case !positive(c.TopDB):
		return fmt.Errorf("%w: top_db %v", ErrInvalidConfig, c.TopDB)
	case math.IsNaN(c.Emphasis()) || c.Emphasis() < 0 || c.Emphasis() >= 1:
		return fmt.Errorf("%w: pre_emphasis %v", ErrInvalidConfig, c.Emphasis())
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
