// Package classify maps an utterance feature vector to a label.
//
// Model inference lives outside this module. Heuristic reproduces the
// deterministic fallback used when no model is loaded, so the rest of the
// system can run end to end.
package classify

import (
	"context"
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrNoLabels is returned by Heuristic when it has no labels to choose from.
var ErrNoLabels = errors.New("classify: no labels")

// Prediction is a classifier result.
type Prediction struct {
	Label      string  `json:"label" yaml:"label" msgpack:"label"`
	Confidence float64 `json:"confidence" yaml:"confidence" msgpack:"confidence"`
}

// Classifier predicts a label for a feature vector.
type Classifier interface {
	Classify(ctx context.Context, features []float64) (Prediction, error)
}

// DefaultLabels are the regional accent classes.
var DefaultLabels = []string{
	"andhrapradesh",
	"gujarath",
	"kerala",
	"karnataka",
	"jharkhand",
	"tamilnadu",
}

// heuristicConfidence is the fixed confidence of Heuristic predictions.
const heuristicConfidence = 0.5

// Heuristic picks label |int(sum(features))| mod len(Labels) with confidence
// 0.5. A nil Labels uses DefaultLabels.
type Heuristic struct {
	Labels []string
}

// Classify implements Classifier.
func (h Heuristic) Classify(_ context.Context, features []float64) (Prediction, error) {
	labels := h.Labels
	if labels == nil {
		labels = DefaultLabels
	}
	if len(labels) == 0 {
		return Prediction{}, ErrNoLabels
	}
	sum := floats.Sum(features)
	if math.IsNaN(sum) || math.IsInf(sum, 0) {
		sum = 0
	}
	idx := int(math.Mod(math.Abs(math.Trunc(sum)), float64(len(labels))))
	return Prediction{Label: labels[idx], Confidence: heuristicConfidence}, nil
}
