package fbank

import (
	"errors"
	"math"
	"sync"
	"testing"
)

func sine(n int, freq, rate float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/rate)
	}
	return out
}

func TestHannWindow(t *testing.T) {
	w := hannWindow(2048)
	if len(w) != 2048 {
		t.Fatalf("expected 2048, got %d", len(w))
	}
	if w[0] != 0 {
		t.Errorf("w[0] = %f, want 0", w[0])
	}
	if math.Abs(w[1024]-1.0) > 1e-12 {
		t.Errorf("w[1024] = %f, want 1", w[1024])
	}
	// Periodic window: symmetric around n/2
	if math.Abs(w[1]-w[2047]) > 1e-12 {
		t.Errorf("w[1] = %f, w[2047] = %f, want equal", w[1], w[2047])
	}
}

func TestMelConversion(t *testing.T) {
	// HTK mel scale: 2595 * log10(1 + f/700)
	// hzToMel(1000) = 2595 * log10(1 + 1000/700) ≈ 1000.0
	mel := hzToMel(1000)
	if math.Abs(mel-1000) > 1.0 {
		t.Errorf("hzToMel(1000) = %f, want ~1000", mel)
	}
	hz := melToHz(mel)
	if math.Abs(hz-1000) > 1e-6 {
		t.Errorf("melToHz(hzToMel(1000)) = %f, want 1000", hz)
	}
}

func TestMelFilterBank(t *testing.T) {
	tests := []struct {
		name    string
		numMels int
		fftSize int
		rate    int
	}{
		{"librosa default", 128, 2048, 16000},
		{"coarse fft", 128, 256, 16000},
		{"few mels", 40, 512, 8000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bank := melFilterBank(tt.numMels, tt.fftSize, tt.rate, 0, float64(tt.rate)/2)
			if len(bank) != tt.numMels {
				t.Fatalf("expected %d filters, got %d", tt.numMels, len(bank))
			}
			halfFFT := tt.fftSize/2 + 1
			for i, f := range bank {
				if len(f) != halfFFT {
					t.Fatalf("filter %d: expected %d bins, got %d", i, halfFFT, len(f))
				}
				hasNonZero := false
				for _, v := range f {
					if v < 0 || v > 1 {
						t.Fatalf("filter %d: weight %f outside [0, 1]", i, v)
					}
					if v > 0 {
						hasNonZero = true
					}
				}
				if !hasNonZero {
					t.Errorf("filter %d is all zeros", i)
				}
			}
		})
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	bad := []Config{
		{},
		{SampleRate: 16000, FFTSize: 2048, HopSize: 0, NumMels: 128},
		{SampleRate: 16000, FFTSize: 2048, HopSize: 512, NumMels: 128, LowFreq: 9000},
	}
	for i, cfg := range bad {
		if _, err := New(cfg); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("config %d: error = %v, want ErrInvalidConfig", i, err)
		}
	}
}

func TestExtract(t *testing.T) {
	ext, err := New(DefaultConfig(16000))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name       string
		n          int
		wantFrames int
	}{
		{"one second", 16000, 32},
		{"one window", 512, 2},
		{"shorter than hop", 100, 1},
		{"single sample", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			features := ext.Extract(sine(tt.n, 440, 16000))
			if len(features) != tt.wantFrames {
				t.Fatalf("expected %d frames, got %d", tt.wantFrames, len(features))
			}
			for i, f := range features {
				if len(f) != 128 {
					t.Fatalf("frame %d: expected 128 mels, got %d", i, len(f))
				}
				for j, v := range f {
					if math.IsNaN(v) || math.IsInf(v, 0) {
						t.Fatalf("features[%d][%d] = %f (not finite)", i, j, v)
					}
				}
			}
		})
	}

	if got := ext.Extract(nil); got != nil {
		t.Errorf("Extract(nil) = %v, want nil", got)
	}
}

func TestExtract_TopDB(t *testing.T) {
	ext, err := New(DefaultConfig(16000))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	features := ext.Extract(sine(16000, 440, 16000))
	peak, low := math.Inf(-1), math.Inf(1)
	for _, row := range features {
		for _, v := range row {
			peak = math.Max(peak, v)
			low = math.Min(low, v)
		}
	}
	if peak-low > 80+1e-9 {
		t.Errorf("dynamic range = %f dB, want <= 80", peak-low)
	}
	t.Logf("range: [%f, %f] dB", low, peak)
}

func TestExtract_Silence(t *testing.T) {
	ext, err := New(DefaultConfig(16000))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	features := ext.Extract(make([]float64, 4000))
	for _, row := range features {
		for _, v := range row {
			if math.Abs(v+100) > 1e-9 {
				t.Fatalf("silent frame value = %f, want -100 dB", v)
			}
		}
	}
}

func TestExtract_PeakBin(t *testing.T) {
	ext, err := New(DefaultConfig(16000))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// The strongest mel band for a pure tone should cover the tone.
	features := ext.Extract(sine(16000, 1000, 16000))
	mid := features[len(features)/2]
	best := 0
	for m, v := range mid {
		if v > mid[best] {
			best = m
		}
	}
	if w := ext.melBank[best][128]; w == 0 {
		t.Errorf("peak mel band %d has no weight at the 1 kHz bin", best)
	}
}

func TestExtract_Concurrent(t *testing.T) {
	ext, err := New(DefaultConfig(16000))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	in := sine(8000, 300, 16000)
	want := ext.Extract(in)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := ext.Extract(in)
			for i := range want {
				for j := range want[i] {
					if got[i][j] != want[i][j] {
						t.Errorf("concurrent result differs at [%d][%d]", i, j)
						return
					}
				}
			}
		}()
	}
	wg.Wait()
}

func BenchmarkExtract(b *testing.B) {
	ext, err := New(DefaultConfig(16000))
	if err != nil {
		b.Fatal(err)
	}

	// 1 second at 16kHz
	pcm := sine(16000, 440, 16000)

	b.ResetTimer()
	b.ReportAllocs()
	for range b.N {
		_ = ext.Extract(pcm)
	}
}
