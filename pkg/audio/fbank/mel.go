package fbank

import "math"

// hannWindow generates a periodic Hann window of length n.
func hannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}
	return w
}

// hzToMel converts frequency in Hz to mel scale (HTK formula).
func hzToMel(hz float64) float64 {
	return 2595.0 * math.Log10(1.0+hz/700.0)
}

// melToHz converts mel scale frequency back to Hz.
func melToHz(mel float64) float64 {
	return 700.0 * (math.Pow(10.0, mel/2595.0) - 1.0)
}

// melFilterBank creates triangular filters evaluated at the exact frequency
// of every FFT bin. Returns [numMels][fftSize/2+1].
//
// A filter narrower than one bin would come out empty; it is given a single
// unit weight at the bin closest to its center instead.
func melFilterBank(numMels, fftSize, sampleRate int, lowFreq, highFreq float64) [][]float64 {
	halfFFT := fftSize/2 + 1
	lowMel := hzToMel(lowFreq)
	highMel := hzToMel(highFreq)

	// numMels + 2 equally spaced mel points, in Hz
	edges := make([]float64, numMels+2)
	step := (highMel - lowMel) / float64(numMels+1)
	for i := range edges {
		edges[i] = melToHz(lowMel + float64(i)*step)
	}

	binHz := float64(sampleRate) / float64(fftSize)
	bank := make([][]float64, numMels)
	for m := range numMels {
		left, center, right := edges[m], edges[m+1], edges[m+2]
		filter := make([]float64, halfFFT)
		empty := true
		for k := range halfFFT {
			f := float64(k) * binHz
			lower := (f - left) / (center - left)
			upper := (right - f) / (right - center)
			if w := math.Min(lower, upper); w > 0 {
				filter[k] = w
				empty = false
			}
		}
		if empty {
			k := int(math.Round(center / binHz))
			filter[min(max(k, 0), halfFFT-1)] = 1
		}
		bank[m] = filter
	}
	return bank
}
