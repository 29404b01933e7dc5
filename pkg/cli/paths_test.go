package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewPaths(t *testing.T) {
	paths, err := NewPaths("testapp")
	if err != nil {
		t.Fatalf("NewPaths error: %v", err)
	}

	if paths.AppName != "testapp" {
		t.Errorf("AppName = %q, want %q", paths.AppName, "testapp")
	}

	if paths.HomeDir == "" {
		t.Error("HomeDir should not be empty")
	}
}

func TestPaths_Layout(t *testing.T) {
	tmpDir := t.TempDir()
	paths := &Paths{AppName: "testapp", HomeDir: tmpDir}
	appDir := filepath.Join(tmpDir, DefaultBaseDir, "testapp")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"BaseDir", paths.BaseDir(), filepath.Join(tmpDir, DefaultBaseDir)},
		{"AppDir", paths.AppDir(), appDir},
		{"ConfigFile", paths.ConfigFile(), filepath.Join(appDir, DefaultConfigFile)},
		{"PreviewDir", paths.PreviewDir(), filepath.Join(appDir, "previews")},
		{"PreviewPath", paths.PreviewPath("abc"), filepath.Join(appDir, "previews", "abc.wav")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s() = %q, want %q", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestPaths_EnsurePreviewDir(t *testing.T) {
	paths := &Paths{AppName: "testapp", HomeDir: t.TempDir()}

	if err := paths.EnsurePreviewDir(); err != nil {
		t.Fatalf("EnsurePreviewDir error: %v", err)
	}

	info, err := os.Stat(paths.PreviewDir())
	if err != nil {
		t.Fatalf("preview dir not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("preview path is not a directory")
	}
}
