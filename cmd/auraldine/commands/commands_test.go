package commands

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"

	"github.com/Mer315/AuralDine/pkg/audio/pcm"
	"github.com/Mer315/AuralDine/pkg/cli"
)

// run executes the root command with fresh global flag state.
func run(t *testing.T, args ...string) error {
	t.Helper()
	cfgFile, profileName, outputFile, outputFormat = "", "", "", ""
	outputJSON, verbose = false, false
	extractFast, extractPreview, extractClassify = false, false, false
	rootCmd.SetArgs(args)
	return Execute()
}

func toneFile(t *testing.T, seconds float64) string {
	t.Helper()
	n := int(seconds * 16000)
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*220*float64(i)/16000)
	}
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := pcm.L16Mono16K.Encode(samples).WriteWAV(f); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtract_JSON(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	outPath := filepath.Join(dir, "out.json")

	if err := run(t, "--config", cfgPath, "--json", "-o", outPath, "extract", toneFile(t, 1), "--fast", "--classify"); err != nil {
		t.Fatalf("extract: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	var out struct {
		Features []float64 `json:"features"`
		Summary  struct {
			Mode       string `json:"mode"`
			NumWindows int    `json:"num_windows"`
		} `json:"summary"`
		Prediction *struct {
			Label      string  `json:"label"`
			Confidence float64 `json:"confidence"`
		} `json:"prediction"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, data)
	}
	if len(out.Features) != 13 {
		t.Errorf("features = %d, want 13", len(out.Features))
	}
	if out.Summary.Mode != "fast" || out.Summary.NumWindows != 1 {
		t.Errorf("summary = %+v", out.Summary)
	}
	if out.Prediction == nil || out.Prediction.Confidence != 0.5 {
		t.Errorf("prediction = %+v", out.Prediction)
	}
}

func TestExtract_MissingFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := run(t, "--config", cfgPath, "extract", filepath.Join(t.TempDir(), "nope.wav")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWindows(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "windows.json")
	if err := run(t, "--config", filepath.Join(dir, "config.yaml"), "--format", "json", "-o", outPath, "windows", toneFile(t, 2.5)); err != nil {
		t.Fatalf("windows: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	var out windowsOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.WindowSamples != 16000 || out.Count < 1 || out.Count > 3 {
		t.Errorf("windows = %+v", out)
	}
}

func TestPreview_WritesWAV(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "preview.wav")
	if err := run(t, "--config", filepath.Join(dir, "config.yaml"), "-o", outPath, "preview", toneFile(t, 1)); err != nil {
		t.Fatalf("preview: %v", err)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("decode preview: %v", err)
	}
	if dec.SampleRate != 16000 || len(buf.Data) != 16000 {
		t.Errorf("preview = %d Hz, %d samples", dec.SampleRate, len(buf.Data))
	}
}

func TestProfile_AddUseShow(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	if err := run(t, "--config", cfgPath, "profile", "add", "quick", "--fast", "--num-coeffs", "20"); err != nil {
		t.Fatalf("profile add: %v", err)
	}
	if err := run(t, "--config", cfgPath, "profile", "use", "quick"); err != nil {
		t.Fatalf("profile use: %v", err)
	}

	outPath := filepath.Join(dir, "profile.json")
	if err := run(t, "--config", cfgPath, "--json", "-o", outPath, "profile", "show"); err != nil {
		t.Fatalf("profile show: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	var view struct {
		Name     string `json:"name"`
		Pipeline struct {
			Fast       bool `json:"fast"`
			NumCoeffs  int  `json:"num_coeffs"`
			SampleRate int  `json:"sample_rate"`
		} `json:"pipeline"`
	}
	if err := json.Unmarshal(data, &view); err != nil {
		t.Fatal(err)
	}
	if view.Name != "quick" || !view.Pipeline.Fast || view.Pipeline.NumCoeffs != 20 || view.Pipeline.SampleRate != 16000 {
		t.Errorf("view = %+v", view)
	}

	// The current profile drives extract.
	extractOut := filepath.Join(dir, "extract.json")
	if err := run(t, "--config", cfgPath, "--json", "-o", extractOut, "extract", toneFile(t, 1)); err != nil {
		t.Fatalf("extract: %v", err)
	}
	data, err = os.ReadFile(extractOut)
	if err != nil {
		t.Fatal(err)
	}
	var res struct {
		Features []float64 `json:"features"`
	}
	if err := json.Unmarshal(data, &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Features) != 20 {
		t.Errorf("features = %d, want 20 from profile", len(res.Features))
	}

	if err := run(t, "--config", cfgPath, "profile", "delete", "quick"); err != nil {
		t.Fatalf("profile delete: %v", err)
	}
	if err := run(t, "--config", cfgPath, "-p", "quick", "extract", toneFile(t, 1)); err == nil {
		t.Error("extract with a deleted profile should fail")
	}
}

func TestProfile_AddPreEmphasisOff(t *testing.T) {
	t.Cleanup(func() {
		f := profileAddCmd.Flags().Lookup("pre-emphasis")
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")

	if err := run(t, "--config", cfgPath, "profile", "add", "flat", "--pre-emphasis", "0"); err != nil {
		t.Fatalf("profile add: %v", err)
	}
	cfg, err := cli.LoadConfigWithPath(appName, cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	p, err := cfg.GetProfile("flat")
	if err != nil {
		t.Fatal(err)
	}
	if p.Pipeline.PreEmphasis == nil || p.Pipeline.WithDefaults().Emphasis() != 0 {
		t.Errorf("PreEmphasis = %v, want explicit 0", p.Pipeline.PreEmphasis)
	}
}

func TestFormat(t *testing.T) {
	outputJSON, outputFormat = false, "bogus"
	if _, err := format(); err == nil {
		t.Error("bogus format should fail")
	}
	outputJSON = true
	if f, err := format(); err != nil || f != "json" {
		t.Errorf("format() = %q, %v", f, err)
	}
	outputJSON, outputFormat = false, ""
}
