package preproc

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/Mer315/AuralDine/pkg/audio/decoder"
	"github.com/Mer315/AuralDine/pkg/audio/fbank"
	"github.com/Mer315/AuralDine/pkg/audio/mfcc"
	"github.com/Mer315/AuralDine/pkg/audio/resampler"
)

// ModelWindowSeconds is the tile length of model-ready frames.
const ModelWindowSeconds = 1.0

// Pipeline extracts utterance feature vectors. It is immutable after New and
// safe for concurrent use.
type Pipeline struct {
	cfg       Config
	mfcc      *mfcc.Extractor
	decoder   decoder.Decoder
	logger    *slog.Logger
	newSource func() rand.Source
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithDecoder sets the decoder used by Process. Defaults to decoder.Auto().
func WithDecoder(d decoder.Decoder) Option {
	return func(p *Pipeline) { p.decoder = d }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithRandSource sets the factory called once per run for the augmentation
// random source.
func WithRandSource(f func() rand.Source) Option {
	return func(p *Pipeline) { p.newSource = f }
}

// New creates a Pipeline for cfg. Zero fields of cfg take their defaults.
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ext, err := mfcc.New(mfcc.Config{
		NumCoeffs: cfg.NumCoeffs,
		Fbank:     fbank.DefaultConfig(cfg.SampleRate),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	p := &Pipeline{
		cfg:     cfg,
		mfcc:    ext,
		decoder: decoder.Auto(),
		logger:  slog.Default(),
		newSource: func() rand.Source {
			return rand.NewPCG(rand.Uint64(), rand.Uint64())
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Config returns the effective configuration.
func (p *Pipeline) Config() Config {
	return p.cfg
}

// Process decodes raw audio bytes and extracts its feature vector.
// It fails only with ErrEmptyInput or a *DecodeError.
func (p *Pipeline) Process(ctx context.Context, raw []byte) (*Result, error) {
	sig, err := p.Decode(ctx, raw)
	if err != nil {
		return nil, err
	}
	return p.ProcessSignal(ctx, sig)
}

// Decode turns raw audio bytes into a Signal at the decoded rate.
func (p *Pipeline) Decode(ctx context.Context, raw []byte) (Signal, error) {
	if len(raw) == 0 {
		return Signal{}, ErrEmptyInput
	}
	a, err := p.decoder.Decode(ctx, raw)
	if err != nil {
		return Signal{}, &DecodeError{Container: string(decoder.Sniff(raw)), Err: err}
	}
	if a == nil || len(a.Samples) == 0 {
		return Signal{}, ErrEmptyInput
	}
	return Signal{Samples: a.Samples, SampleRate: a.SampleRate}, nil
}

// ProcessSignal extracts the feature vector of already decoded audio.
func (p *Pipeline) ProcessSignal(ctx context.Context, sig Signal) (*Result, error) {
	if len(sig.Samples) == 0 {
		return nil, ErrEmptyInput
	}
	started := time.Now()
	id := uuid.NewString()
	log := p.logger.With("request_id", id)

	b := &summaryBuilder{degraded: make(map[string]bool)}
	working := p.resample(sig, log, b.degraded)
	b.summary = Summary{
		RequestID:        id,
		Mode:             p.cfg.Mode(),
		SampleRate:       working.SampleRate,
		SourceSampleRate: sig.SampleRate,
		OriginalSamples:  len(working.Samples),
	}

	cond := Condition(working.Samples, p.cfg.TopDB, p.cfg.Emphasis())
	for _, step := range cond.Degraded {
		log.DebugContext(ctx, "conditioning step fell back", "step", step)
		b.degraded[step] = true
	}

	pl := &pooler{dim: p.cfg.NumCoeffs, feature: p.mfcc.Feature, degraded: b.degraded, log: log}
	var features []float64
	if p.cfg.Fast {
		features = p.fast(cond.Samples, working.SampleRate, pl, b)
	} else {
		features = p.full(cond.Samples, working.SampleRate, pl, b, log)
	}

	summary := b.build(p.cfg.Preview)
	log.InfoContext(ctx, "features extracted",
		"mode", summary.Mode,
		"samples", summary.OriginalSamples,
		"segments", summary.NumSegments,
		"windows", summary.NumWindows,
		"degraded", len(summary.Degraded),
		"elapsed", time.Since(started))
	return &Result{Features: features, Summary: summary}, nil
}

// resample converts sig to the working rate once. On failure the samples are
// kept as they are and stamped with the working rate.
func (p *Pipeline) resample(sig Signal, log *slog.Logger, degraded map[string]bool) Signal {
	rate := p.cfg.SampleRate
	if sig.SampleRate == rate {
		return Signal{Samples: clone(sig.Samples), SampleRate: rate}
	}
	out, err := resampler.Resample(sig.Samples, float64(sig.SampleRate), float64(rate))
	if err != nil {
		log.Debug("resample fell back", "from", sig.SampleRate, "to", rate, "error", err)
		degraded["resample"] = true
		return Signal{Samples: clone(sig.Samples), SampleRate: rate}
	}
	return Signal{Samples: out, SampleRate: rate}
}

// fast tiles the conditioned signal into windows and pools them straight into
// the utterance vector.
func (p *Pipeline) fast(samples []float64, rate int, pl *pooler, b *summaryBuilder) []float64 {
	windows := FixedWindows(samples, rate, p.cfg.WindowSeconds)
	vecs := make([][]float64, 0, len(windows))
	for _, w := range windows {
		vec := pl.window(w)
		vecs = append(vecs, vec)
		b.addWindow(w, vec)
	}
	b.summary.NumSegments = len(windows)
	return pl.pool("utterance", vecs, samples)
}

// full runs segments, variants and rolling windows through the cascade.
func (p *Pipeline) full(samples []float64, rate int, pl *pooler, b *summaryBuilder, log *slog.Logger) []float64 {
	segments := SplitSegments(samples, rate, p.cfg.SegmentSeconds)
	b.summary.NumSegments = len(segments)

	var aug *Augmenter
	if p.cfg.Augmenting() {
		aug = &Augmenter{Rand: rand.New(p.newSource()), Logger: log}
	}

	segVecs := make([][]float64, 0, len(segments))
	for _, seg := range segments {
		variants := []Variant{{Kind: "original", Samples: seg}}
		if aug != nil {
			variants = aug.Jitter(seg, rate)
		}

		varVecs := make([][]float64, 0, len(variants))
		for i, v := range variants {
			windows := RollingWindows(v.Samples, rate, p.cfg.WindowSeconds, p.cfg.HopSeconds)
			winVecs := make([][]float64, 0, len(windows))
			for _, w := range windows {
				vec := pl.window(w)
				winVecs = append(winVecs, vec)
				if i == 0 {
					b.addWindow(w, vec)
				}
			}
			varVecs = append(varVecs, pl.pool("variant", winVecs, v.Samples))
		}
		segVecs = append(segVecs, pl.pool("segment", varVecs, seg))
	}
	return pl.pool("utterance", segVecs, samples)
}

// ModelWindows conditions sig at its own rate and tiles it into 1.0 s
// model-ready frames.
func (p *Pipeline) ModelWindows(sig Signal) [][]float64 {
	rate := sig.SampleRate
	if rate <= 0 {
		rate = p.cfg.SampleRate
	}
	cond := Condition(sig.Samples, p.cfg.TopDB, p.cfg.Emphasis())
	return FixedWindows(cond.Samples, rate, ModelWindowSeconds)
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
