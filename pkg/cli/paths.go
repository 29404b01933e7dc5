package cli

import (
	"os"
	"path/filepath"
)

// Paths locates the per-app directories under ~/.auraldine.
type Paths struct {
	// AppName is the application name
	AppName string

	// HomeDir is the user's home directory
	HomeDir string
}

// NewPaths creates a new Paths instance for the given app
func NewPaths(appName string) (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &Paths{
		AppName: appName,
		HomeDir: home,
	}, nil
}

// BaseDir returns the base directory (~/.auraldine)
func (p *Paths) BaseDir() string {
	return filepath.Join(p.HomeDir, DefaultBaseDir)
}

// AppDir returns the app-specific directory (~/.auraldine/<app>)
func (p *Paths) AppDir() string {
	return filepath.Join(p.BaseDir(), p.AppName)
}

// ConfigFile returns the config file path (~/.auraldine/<app>/config.yaml)
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.AppDir(), DefaultConfigFile)
}

// PreviewDir returns the directory preview WAV files are written to
// (~/.auraldine/<app>/previews)
func (p *Paths) PreviewDir() string {
	return filepath.Join(p.AppDir(), "previews")
}

// EnsurePreviewDir creates the preview directory if it doesn't exist
func (p *Paths) EnsurePreviewDir() error {
	return os.MkdirAll(p.PreviewDir(), 0755)
}

// PreviewPath returns the preview WAV path for a request ID
func (p *Paths) PreviewPath(requestID string) string {
	return filepath.Join(p.PreviewDir(), requestID+".wav")
}
