package cli

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/Mer315/AuralDine/pkg/preproc"
)

func TestLoadConfigWithPath_NewConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "testapp", "config.yaml")

	cfg, err := LoadConfigWithPath("testapp", configPath)
	if err != nil {
		t.Fatalf("LoadConfigWithPath error: %v", err)
	}

	if cfg.AppName != "testapp" {
		t.Errorf("AppName = %q, want %q", cfg.AppName, "testapp")
	}
	if cfg.Profiles == nil {
		t.Error("Profiles should be initialized")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file should be created")
	}
	if cfg.Path() != configPath {
		t.Errorf("Path() = %q, want %q", cfg.Path(), configPath)
	}
	if cfg.Dir() != filepath.Dir(configPath) {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), filepath.Dir(configPath))
	}
}

func TestLoadConfigWithPath_ExistingConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `current_profile: quick
profiles:
  quick:
    description: fast path
    fast: true
    num_coeffs: 20
  slow:
    segment_seconds: 2
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigWithPath("testapp", configPath)
	if err != nil {
		t.Fatalf("LoadConfigWithPath error: %v", err)
	}
	if cfg.CurrentProfile != "quick" {
		t.Errorf("CurrentProfile = %q, want %q", cfg.CurrentProfile, "quick")
	}

	quick, err := cfg.GetProfile("quick")
	if err != nil {
		t.Fatal(err)
	}
	if quick.Name != "quick" || quick.Description != "fast path" {
		t.Errorf("quick = %+v", quick)
	}
	if !quick.Pipeline.Fast || quick.Pipeline.NumCoeffs != 20 {
		t.Errorf("quick pipeline = %+v", quick.Pipeline)
	}

	slow, err := cfg.GetProfile("slow")
	if err != nil {
		t.Fatal(err)
	}
	if slow.Pipeline.SegmentSeconds != 2 {
		t.Errorf("slow segment_seconds = %v, want 2", slow.Pipeline.SegmentSeconds)
	}
}

func TestLoadConfigWithPath_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("profiles: [unclosed"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfigWithPath("testapp", configPath); err == nil {
		t.Error("expected parse error")
	}
}

func TestConfig_ProfileLifecycle(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	cfg, err := LoadConfigWithPath("testapp", configPath)
	if err != nil {
		t.Fatal(err)
	}

	if err := cfg.AddProfile("b", &Profile{Pipeline: preproc.FastConfig()}); err != nil {
		t.Fatalf("AddProfile(b): %v", err)
	}
	if err := cfg.AddProfile("a", &Profile{Description: "full", Pipeline: preproc.DefaultConfig()}); err != nil {
		t.Fatalf("AddProfile(a): %v", err)
	}
	if got := cfg.ListProfiles(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("ListProfiles() = %v, want [a b]", got)
	}

	if err := cfg.UseProfile("b"); err != nil {
		t.Fatalf("UseProfile: %v", err)
	}

	reloaded, err := LoadConfigWithPath("testapp", configPath)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.CurrentProfile != "b" {
		t.Errorf("reloaded CurrentProfile = %q, want b", reloaded.CurrentProfile)
	}
	p, err := reloaded.ResolveProfile("")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "b" || p.Pipeline.Mode() != preproc.ModeFast {
		t.Errorf("resolved %q mode %s, want b fast", p.Name, p.Pipeline.Mode())
	}

	if err := reloaded.DeleteProfile("b"); err != nil {
		t.Fatalf("DeleteProfile: %v", err)
	}
	if reloaded.CurrentProfile != "" {
		t.Errorf("CurrentProfile after delete = %q, want empty", reloaded.CurrentProfile)
	}
	if err := reloaded.DeleteProfile("b"); err == nil {
		t.Error("deleting a missing profile should fail")
	}
	if err := reloaded.UseProfile("missing"); err == nil {
		t.Error("using a missing profile should fail")
	}
}

func TestConfig_AddProfileValidates(t *testing.T) {
	cfg, err := LoadConfigWithPath("testapp", filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	err = cfg.AddProfile("bad", &Profile{Pipeline: preproc.Config{PreEmphasis: preproc.Float(1.5)}})
	if !errors.Is(err, preproc.ErrInvalidConfig) {
		t.Errorf("AddProfile error = %v, want ErrInvalidConfig", err)
	}
	if err := cfg.AddProfile("", &Profile{}); err == nil {
		t.Error("empty profile name should fail")
	}
	if len(cfg.Profiles) != 0 {
		t.Errorf("Profiles = %v, want none", cfg.ListProfiles())
	}
}

func TestConfig_ResolveProfileDefault(t *testing.T) {
	cfg, err := LoadConfigWithPath("testapp", filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	p, err := cfg.ResolveProfile("")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "default" || p.Pipeline.Mode() != preproc.ModeFull {
		t.Errorf("default profile = %+v", p)
	}
	if _, err := cfg.ResolveProfile("nope"); err == nil {
		t.Error("resolving a missing profile should fail")
	}
}

func TestLoadConfigWithPath_PreEmphasisDisabled(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	data := "profiles:\n  flat:\n    pre_emphasis: 0\n  plain:\n    top_db: 30\n"
	if err := os.WriteFile(configPath, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigWithPath("testapp", configPath)
	if err != nil {
		t.Fatal(err)
	}
	flat, err := cfg.GetProfile("flat")
	if err != nil {
		t.Fatal(err)
	}
	if got := flat.Pipeline.WithDefaults().Emphasis(); got != 0 {
		t.Errorf("flat pre-emphasis = %v, want 0", got)
	}
	plain, err := cfg.GetProfile("plain")
	if err != nil {
		t.Fatal(err)
	}
	if got := plain.Pipeline.WithDefaults().Emphasis(); got != preproc.DefaultPreEmphasis {
		t.Errorf("plain pre-emphasis = %v, want %v", got, preproc.DefaultPreEmphasis)
	}
}
