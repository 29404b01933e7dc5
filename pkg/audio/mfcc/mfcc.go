// Package mfcc computes mel-frequency cepstral coefficients on top of
// package fbank.
//
// The cepstrum is an orthonormal DCT-II of the log mel spectrogram, kept as a
// coefficient-by-time gonum matrix. Feature mean-pools each coefficient over
// time to produce one fixed-length vector per window:
//
//	ext, _ := mfcc.New(mfcc.DefaultConfig(16000))
//	vec, ok := ext.Feature(window) // len(vec) == 13
//
// A window that cannot be featurized (empty, non-finite) yields a zero vector
// and ok == false, so callers can keep shapes consistent.
package mfcc

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/Mer315/AuralDine/pkg/audio/fbank"
)

var (
	// ErrEmpty is returned by Matrix for empty input.
	ErrEmpty = errors.New("mfcc: empty input")

	// ErrNotFinite is returned by Matrix when the input or the resulting
	// coefficients contain NaN or Inf.
	ErrNotFinite = errors.New("mfcc: non-finite values")
)

// Config controls MFCC extraction.
type Config struct {
	NumCoeffs int          // number of cepstral coefficients (default 13)
	Fbank     fbank.Config // underlying mel spectrogram settings
}

// DefaultConfig returns 13 coefficients over the default mel spectrogram.
func DefaultConfig(sampleRate int) Config {
	return Config{
		NumCoeffs: 13,
		Fbank:     fbank.DefaultConfig(sampleRate),
	}
}

// Extractor computes MFCCs. Safe for concurrent use.
type Extractor struct {
	numCoeffs int
	fbank     *fbank.Extractor
	dct       *mat.Dense // NumCoeffs x NumMels
}

// New creates an Extractor.
func New(cfg Config) (*Extractor, error) {
	if cfg.NumCoeffs <= 0 {
		return nil, fmt.Errorf("mfcc: invalid coefficient count %d", cfg.NumCoeffs)
	}
	fb, err := fbank.New(cfg.Fbank)
	if err != nil {
		return nil, fmt.Errorf("mfcc: %w", err)
	}
	if cfg.NumCoeffs > cfg.Fbank.NumMels {
		return nil, fmt.Errorf("mfcc: %d coefficients exceed %d mel bands", cfg.NumCoeffs, cfg.Fbank.NumMels)
	}
	return &Extractor{
		numCoeffs: cfg.NumCoeffs,
		fbank:     fb,
		dct:       dctBasis(cfg.NumCoeffs, cfg.Fbank.NumMels),
	}, nil
}

// NumCoeffs returns the feature dimension.
func (e *Extractor) NumCoeffs() int {
	return e.numCoeffs
}

// Matrix returns the MFCC matrix of samples with one row per coefficient and
// one column per frame.
func (e *Extractor) Matrix(samples []float64) (*mat.Dense, error) {
	if len(samples) == 0 {
		return nil, ErrEmpty
	}
	for _, s := range samples {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return nil, ErrNotFinite
		}
	}

	frames := e.fbank.Extract(samples)
	numMels := len(frames[0])
	logMel := mat.NewDense(numMels, len(frames), nil)
	for t, row := range frames {
		logMel.SetCol(t, row)
	}

	var out mat.Dense
	out.Mul(e.dct, logMel)
	for _, v := range out.RawMatrix().Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrNotFinite
		}
	}
	return &out, nil
}

// Feature returns the mean of every coefficient over time. On failure it
// returns a zero vector of NumCoeffs and false.
func (e *Extractor) Feature(window []float64) ([]float64, bool) {
	vec, err := e.FeatureErr(window)
	if err != nil {
		return make([]float64, e.numCoeffs), false
	}
	return vec, true
}

// FeatureErr is like Feature but reports why extraction failed.
func (e *Extractor) FeatureErr(window []float64) ([]float64, error) {
	m, err := e.Matrix(window)
	if err != nil {
		return nil, err
	}
	rows, cols := m.Dims()
	vec := make([]float64, rows)
	for i := range rows {
		vec[i] = floats.Sum(m.RawRowView(i)) / float64(cols)
	}
	return vec, nil
}

// dctBasis returns the orthonormal DCT-II matrix with n rows over m inputs:
//
//	D[k][j] = s(k) * cos(pi * k * (2j + 1) / (2m))
//	s(0) = sqrt(1/m), s(k) = sqrt(2/m)
func dctBasis(n, m int) *mat.Dense {
	d := mat.NewDense(n, m, nil)
	for k := range n {
		scale := math.Sqrt(2 / float64(m))
		if k == 0 {
			scale = math.Sqrt(1 / float64(m))
		}
		for j := range m {
			d.Set(k, j, scale*math.Cos(math.Pi*float64(k)*float64(2*j+1)/float64(2*m)))
		}
	}
	return d
}
