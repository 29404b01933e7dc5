package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DefaultWidth is the report width used when the terminal width is unknown.
const DefaultWidth = 80

// Theme defines the color scheme for rendered reports.
type Theme struct {
	Primary lipgloss.Color // Main accent color
	Dim     lipgloss.Color // Dimmed/help text color
}

// DefaultTheme is the default bright green theme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Dim:     lipgloss.Color("#6e7681"),
}

// Styles holds all styles derived from a theme.
type Styles struct {
	Title  lipgloss.Style
	Label  lipgloss.Style
	Key    lipgloss.Style
	Border lipgloss.Style
	Help   lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Padding(0, 1),
		Label:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Key:    lipgloss.NewStyle().Foreground(t.Dim),
		Border: lipgloss.NewStyle().Foreground(t.Primary),
		Help:   lipgloss.NewStyle().Foreground(t.Dim),
	}
}

// Row is one key/value line of a section.
type Row struct {
	Key   string
	Value string
}

// Section is a labeled block of rows.
type Section struct {
	Label string
	Rows  []Row
}

// Reporter is implemented by values that can render themselves as a table.
type Reporter interface {
	Report() Report
}

// Report is a boxed, sectioned key/value view.
type Report struct {
	Title    string
	Status   string
	Sections []Section
	Footer   string
}

// Render renders the report at the given width using the default styles.
func (r Report) Render(width int) string {
	return r.RenderStyled(NewStyles(DefaultTheme), width)
}

// RenderStyled renders the report at the given width.
func (r Report) RenderStyled(st Styles, width int) string {
	if width < 10 {
		width = DefaultWidth
	}
	bc := st.Border
	inner := width - 4

	var lines []string
	lines = append(lines, bc.Render("╭"+strings.Repeat("─", width-2)+"╮"))

	// │ title [status]    │
	title := st.Title.Render(r.Title)
	head := bc.Render("│") + " " + title
	used := lipgloss.Width(title)
	if r.Status != "" {
		status := st.Help.Render("[" + r.Status + "]")
		head += " " + status
		used += 1 + lipgloss.Width(status)
	}
	head += strings.Repeat(" ", max(0, width-4-used)) + " " + bc.Render("│")
	lines = append(lines, head)

	keyWidth := 0
	for _, sec := range r.Sections {
		for _, row := range sec.Rows {
			keyWidth = max(keyWidth, lipgloss.Width(row.Key))
		}
	}

	for _, sec := range r.Sections {
		label := st.Label.Render(sec.Label)
		pad := max(0, width-3-lipgloss.Width(label))
		lines = append(lines, bc.Render("├")+bc.Render("─")+label+
			bc.Render(strings.Repeat("─", pad))+bc.Render("┤"))

		for _, row := range sec.Rows {
			key := row.Key + strings.Repeat(" ", keyWidth-lipgloss.Width(row.Key))
			text := st.Key.Render(key) + "  " + row.Value
			if inner > 1 && lipgloss.Width(text) > inner {
				text = st.Key.Render(key) + "  " + truncateString(row.Value, max(0, inner-keyWidth-3)) + "…"
			}
			lines = append(lines, bc.Render("│")+" "+text+
				strings.Repeat(" ", max(0, inner-lipgloss.Width(text)))+" "+bc.Render("│"))
		}
	}

	lines = append(lines, bc.Render("╰"+strings.Repeat("─", width-2)+"╯"))
	if r.Footer != "" {
		lines = append(lines, st.Help.Render(r.Footer))
	}
	return strings.Join(lines, "\n") + "\n"
}

// truncateString safely truncates a string to the given width,
// handling multi-byte characters correctly.
func truncateString(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	currentWidth := 0
	for i, r := range runes {
		w := lipgloss.Width(string(r))
		if currentWidth+w > width {
			return string(runes[:i])
		}
		currentWidth += w
	}
	return s
}
