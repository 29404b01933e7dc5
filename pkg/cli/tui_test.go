package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestReport_Render(t *testing.T) {
	r := Report{
		Title:  "extract",
		Status: "full",
		Sections: []Section{
			{Label: "Input", Rows: []Row{{Key: "rate", Value: "16000 Hz"}, {Key: "duration", Value: "3.0s"}}},
			{Label: "Features", Rows: []Row{{Key: "mfcc", Value: strings.Repeat("0.123 ", 40)}}},
		},
		Footer: "2 segments",
	}

	out := r.Render(60)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	// Every boxed line has the same visible width; the footer sits outside.
	for i, line := range lines[:len(lines)-1] {
		if w := lipgloss.Width(line); w != 60 {
			t.Errorf("line %d width = %d, want 60: %q", i, w, line)
		}
	}
	for _, want := range []string{"extract", "[full]", "Input", "16000 Hz", "Features", "…", "2 segments"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestReport_RenderNarrowWidth(t *testing.T) {
	out := Report{Title: "x"}.Render(0)
	first := strings.SplitN(out, "\n", 2)[0]
	if w := lipgloss.Width(first); w != DefaultWidth {
		t.Errorf("width = %d, want %d", w, DefaultWidth)
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 3, "hel"},
		{"hello", 0, ""},
		{"日本語", 4, "日本"},
	}
	for _, tt := range tests {
		if got := truncateString(tt.s, tt.width); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}
