package preproc

import "math"

// stretchFrame is the overlap-add grain length.
const stretchFrame = 1024

// timeStretch changes the duration of x by ratio (>1 is longer) without
// changing its pitch, using windowed overlap-add. The result holds
// round(len(x) * ratio) samples.
func timeStretch(x []float64, ratio float64) []float64 {
	outLen := int(math.Round(float64(len(x)) * ratio))
	if len(x) == 0 || outLen <= 0 {
		return make([]float64, max(outLen, 0))
	}

	n := min(stretchFrame, len(x))
	synHop := max(n/4, 1)
	anaHop := float64(synHop) / ratio

	// Offset Hann: strictly positive, so the weight sum never vanishes.
	win := make([]float64, n)
	for i := range win {
		win[i] = 0.5 - 0.5*math.Cos(2*math.Pi*(float64(i)+0.5)/float64(n))
	}

	out := make([]float64, outLen+n)
	norm := make([]float64, outLen+n)
	for m := 0; m*synHop < outLen; m++ {
		src := int(math.Round(float64(m) * anaHop))
		dst := m * synHop
		for i, w := range win {
			var s float64
			if j := src + i; j < len(x) {
				s = x[j]
			}
			out[dst+i] += s * w
			norm[dst+i] += w
		}
	}
	for i := range outLen {
		if norm[i] > 0 {
			out[i] /= norm[i]
		}
	}
	return out[:outLen]
}
