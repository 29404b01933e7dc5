package resampler

// Downmix converts interleaved multi-channel samples to mono by averaging the
// channels of each frame. A trailing partial frame is dropped. For channels
// <= 1 the result is a copy of the input.
func Downmix(interleaved []float64, channels int) []float64 {
	if channels <= 1 {
		out := make([]float64, len(interleaved))
		copy(out, interleaved)
		return out
	}
	numFrames := len(interleaved) / channels
	out := make([]float64, numFrames)
	for i := range numFrames {
		var sum float64
		for c := range channels {
			sum += interleaved[i*channels+c]
		}
		out[i] = sum / float64(channels)
	}
	return out
}
