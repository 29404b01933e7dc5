package decoder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// FFmpeg converts any container ffmpeg understands into 16-bit mono WAV and
// decodes the result. Input and output live in temporary files that are
// removed before Decode returns.
type FFmpeg struct {
	// Binary is the ffmpeg executable. Defaults to "ffmpeg" looked up in PATH.
	Binary string

	// TempDir is where temporary files are created. Defaults to os.TempDir().
	TempDir string
}

func (f *FFmpeg) binary() string {
	if f.Binary == "" {
		return "ffmpeg"
	}
	return f.Binary
}

// Decode implements Decoder.
func (f *FFmpeg) Decode(ctx context.Context, data []byte) (*Audio, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty data", ErrInvalid)
	}
	bin, err := exec.LookPath(f.binary())
	if err != nil {
		return nil, fmt.Errorf("%w: ffmpeg not available: %v", ErrUnsupported, err)
	}

	in, err := os.CreateTemp(f.TempDir, "auraldine-in-*")
	if err != nil {
		return nil, fmt.Errorf("decoder: create temp input: %w", err)
	}
	defer os.Remove(in.Name())

	if _, err := in.Write(data); err != nil {
		in.Close()
		return nil, fmt.Errorf("decoder: write temp input: %w", err)
	}
	if err := in.Close(); err != nil {
		return nil, fmt.Errorf("decoder: close temp input: %w", err)
	}

	out, err := os.CreateTemp(f.TempDir, "auraldine-out-*.wav")
	if err != nil {
		return nil, fmt.Errorf("decoder: create temp output: %w", err)
	}
	outPath := out.Name()
	out.Close()
	defer os.Remove(outPath)

	cmd := exec.CommandContext(ctx, bin,
		"-hide_banner",
		"-loglevel", "error",
		"-i", in.Name(),
		"-vn",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-f", "wav",
		"-y",
		outPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("decoder: ffmpeg: %w", ctxErr)
		}
		msg := strings.TrimSpace(stderr.String())
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: ffmpeg exited with %d: %s", ErrInvalid, exitErr.ExitCode(), msg)
		}
		return nil, fmt.Errorf("decoder: run ffmpeg: %w", err)
	}

	converted, err := os.Open(outPath)
	if err != nil {
		return nil, fmt.Errorf("decoder: open ffmpeg output: %w", err)
	}
	defer converted.Close()
	return decodeWAV(converted)
}
