// Package fbank computes log mel spectrograms from mono float audio.
//
// Frames are centered: the signal is zero padded by FFTSize/2 on both sides,
// so the number of frames is 1 + len(samples)/HopSize. Each frame is Hann
// windowed, transformed with gonum's real FFT, mapped through a triangular
// mel filterbank and converted to decibels with a dynamic range floor.
//
// Default parameters follow the common librosa layout:
//
//	SampleRate: 16000
//	FFTSize:     2048
//	HopSize:      512
//	NumMels:      128
//	LowFreq:        0
//	HighFreq:   Nyquist
//	TopDB:         80
package fbank

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// ErrInvalidConfig is returned by New for non-positive sizes or rates.
var ErrInvalidConfig = errors.New("fbank: invalid config")

// amin is the power floor applied before taking the logarithm.
const amin = 1e-10

// Config controls mel spectrogram extraction parameters.
type Config struct {
	SampleRate int     // audio sample rate in Hz (default 16000)
	FFTSize    int     // FFT size and window length (default 2048)
	HopSize    int     // hop length in samples (default 512)
	NumMels    int     // number of mel bins (default 128)
	LowFreq    float64 // lowest mel frequency (default 0)
	HighFreq   float64 // highest mel frequency (default SampleRate/2 when 0)
	TopDB      float64 // dynamic range below the peak kept in dB (default 80, <=0 disables)
}

// DefaultConfig returns the standard config for the given sample rate.
func DefaultConfig(sampleRate int) Config {
	return Config{
		SampleRate: sampleRate,
		FFTSize:    2048,
		HopSize:    512,
		NumMels:    128,
		TopDB:      80,
	}
}

// Extractor computes log mel spectrograms. It holds only read-only tables
// and is safe for concurrent use.
type Extractor struct {
	cfg     Config
	window  []float64
	melBank [][]float64
}

// New creates a new fbank Extractor with the given config.
func New(cfg Config) (*Extractor, error) {
	if cfg.SampleRate <= 0 || cfg.FFTSize <= 1 || cfg.HopSize <= 0 || cfg.NumMels <= 0 {
		return nil, ErrInvalidConfig
	}
	if cfg.HighFreq <= 0 {
		cfg.HighFreq = float64(cfg.SampleRate) / 2
	}
	if cfg.LowFreq < 0 || cfg.LowFreq >= cfg.HighFreq {
		return nil, ErrInvalidConfig
	}
	return &Extractor{
		cfg:     cfg,
		window:  hannWindow(cfg.FFTSize),
		melBank: melFilterBank(cfg.NumMels, cfg.FFTSize, cfg.SampleRate, cfg.LowFreq, cfg.HighFreq),
	}, nil
}

// Config returns the effective configuration.
func (e *Extractor) Config() Config {
	return e.cfg
}

// NumFrames returns the number of frames Extract yields for n samples.
func (e *Extractor) NumFrames(n int) int {
	if n <= 0 {
		return 0
	}
	return 1 + n/e.cfg.HopSize
}

// Extract computes the log mel spectrogram of samples.
// Output: [T][NumMels] in dB where T = 1 + len(samples)/HopSize. Returns nil
// for empty input.
func (e *Extractor) Extract(samples []float64) [][]float64 {
	cfg := e.cfg
	numFrames := e.NumFrames(len(samples))
	if numFrames == 0 {
		return nil
	}

	nfft := cfg.FFTSize
	pad := nfft / 2
	fft := fourier.NewFFT(nfft)

	features := make([][]float64, numFrames)
	frame := make([]float64, nfft)
	power := make([]float64, nfft/2+1)
	var coeffs []complex128

	for t := range numFrames {
		start := t*cfg.HopSize - pad
		for i := range nfft {
			j := start + i
			if j < 0 || j >= len(samples) {
				frame[i] = 0
				continue
			}
			frame[i] = samples[j] * e.window[i]
		}

		coeffs = fft.Coefficients(coeffs, frame)
		for k, c := range coeffs {
			re, im := real(c), imag(c)
			power[k] = re*re + im*im
		}

		mel := make([]float64, cfg.NumMels)
		for m := range cfg.NumMels {
			sum := 0.0
			for k, w := range e.melBank[m] {
				if w != 0 {
					sum += w * power[k]
				}
			}
			mel[m] = 10 * math.Log10(math.Max(sum, amin))
		}
		features[t] = mel
	}

	if cfg.TopDB > 0 {
		applyTopDB(features, cfg.TopDB)
	}
	return features
}

// applyTopDB clamps every value to at least max - topDB.
func applyTopDB(features [][]float64, topDB float64) {
	peak := math.Inf(-1)
	for _, row := range features {
		for _, v := range row {
			peak = math.Max(peak, v)
		}
	}
	floor := peak - topDB
	for _, row := range features {
		for i, v := range row {
			if v < floor {
				row[i] = floor
			}
		}
	}
}
