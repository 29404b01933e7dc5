// Package preproc turns a decoded audio recording into one fixed-length
// feature vector for a downstream classifier.
//
// # Pipeline
//
// A run goes through these stages, each one a pure function over sample
// slices:
//
//  1. Resample to the working rate (default 16 kHz)
//  2. Condition: trim silence, peak-normalize, pre-emphasize
//  3. Split into fixed-length segments (1.5 s, last one zero padded)
//  4. Jitter every segment into variants (original, speed, pitch, noise)
//  5. Slide 1.0 s windows over every variant with a 0.5 s hop
//  6. Compute a 13-dimensional MFCC mean vector per window
//  7. Mean-pool windows → variant → segment → utterance
//
// Fast mode skips augmentation and uses 1.0 s non-overlapping tiles as both
// segments and windows, pooling windows straight into the utterance.
//
// # Best effort
//
// Only two conditions fail a run: empty input ([ErrEmptyInput]) and a
// decoder failure ([*DecodeError]). Every other step that cannot complete
// substitutes a safe default (the unmodified signal, a zero vector, a
// directly computed feature) and is reported through [Outcome] and
// [Summary.Degraded].
//
// # Concurrency
//
// A [Pipeline] is immutable after [New] and may be shared by concurrent
// callers. Each call gets its own request id, random source and buffers.
package preproc
