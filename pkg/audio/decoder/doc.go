// Package decoder turns raw uploaded audio bytes into mono float samples.
//
// The container is sniffed from magic bytes:
//
//	RIFF....WAVE  wav
//	ID3 / 0xFFEx  mp3
//	1A 45 DF A3   webm (EBML)
//	OggS          ogg
//
// WAV is decoded natively with github.com/go-audio/wav. Every other container
// is converted by an ffmpeg subprocess into 16-bit mono WAV and then decoded
// the same way. The source sample rate is preserved; rate conversion belongs
// to package resampler.
//
// Example:
//
//	dec := decoder.Auto()
//	a, err := dec.Decode(ctx, data)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(len(a.Samples), a.SampleRate)
package decoder
