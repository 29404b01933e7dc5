package preproc

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"
)

// MeanPool returns the element-wise mean of vectors, each of length dim.
// It returns false when vectors is empty.
func MeanPool(vectors [][]float64, dim int) ([]float64, bool) {
	if len(vectors) == 0 {
		return nil, false
	}
	out := make([]float64, dim)
	for _, v := range vectors {
		floats.Add(out, v[:dim])
	}
	floats.Scale(1/float64(len(vectors)), out)
	return out, true
}

// featureFunc computes one window feature; ok is false when it fell back to
// a zero vector.
type featureFunc func(window []float64) (vec []float64, ok bool)

// pooler folds window features up the cascade. When a level has nothing to
// pool it computes the feature directly on the signal one level up.
type pooler struct {
	dim      int
	feature  featureFunc
	degraded map[string]bool
	log      *slog.Logger
}

func (p *pooler) window(w []float64) []float64 {
	vec, ok := p.feature(w)
	if !ok {
		p.degraded["window_feature"] = true
	}
	return vec
}

// pool means vectors, or computes the feature on fallback when there are
// none.
func (p *pooler) pool(level string, vectors [][]float64, fallback []float64) []float64 {
	if vec, ok := MeanPool(vectors, p.dim); ok {
		return vec
	}
	p.degraded[level+"_pool"] = true
	if p.log != nil {
		p.log.Debug("pooling fell back", "level", level, "error", errNoVectors)
	}
	return p.window(fallback)
}
