// Package theme resolves program color tokens into terminal colors.
package theme

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tonylturner/merlinctl/internal/programs"
)

// Theme defines the palette used by CLI output.
type Theme struct {
	// Text
	TextPrimary lipgloss.Color
	TextDim     lipgloss.Color

	// Semantic colors
	Accent  lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// Tokens maps color token names ("drizzle-red") to colors.
	Tokens map[string]lipgloss.Color
	// Fallback is used for tokens missing from Tokens.
	Fallback lipgloss.Color
}

// DefaultTheme returns the drizzle palette used by the device UI.
var DefaultTheme = Theme{
	TextPrimary: lipgloss.Color("#c0caf5"),
	TextDim:     lipgloss.Color("#565f89"),

	Accent:  lipgloss.Color("#7aa2f7"),
	Warning: lipgloss.Color("#e0af68"),
	Error:   lipgloss.Color("#f7768e"),

	Tokens: map[string]lipgloss.Color{
		"drizzle-red":    lipgloss.Color("#e5484d"),
		"drizzle-blue":   lipgloss.Color("#3e63dd"),
		"drizzle-orange": lipgloss.Color("#f76b15"),
		"drizzle-green":  lipgloss.Color("#30a46c"),
		"drizzle-purple": lipgloss.Color("#8e4ec6"),
	},
	Fallback: lipgloss.Color("#565f89"),
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// WithOverrides returns a copy of t with token colors replaced. Keys are
// token names or full var(--name) references; values are hex colors.
func (t Theme) WithOverrides(overrides map[string]string) (Theme, error) {
	tokens := make(map[string]lipgloss.Color, len(t.Tokens)+len(overrides))
	for k, v := range t.Tokens {
		tokens[k] = v
	}
	for k, v := range overrides {
		name := tokenName(k)
		if name == "" {
			return t, fmt.Errorf("invalid color token %q", k)
		}
		v = strings.TrimSpace(v)
		if !hexColor.MatchString(v) {
			return t, fmt.Errorf("color %q for token %q is not a hex color", v, name)
		}
		tokens[name] = lipgloss.Color(v)
	}
	t.Tokens = tokens
	return t, nil
}

// Resolve maps a program color token to a terminal color. The second
// result is false when the fallback color was used.
func (t Theme) Resolve(token programs.ColorToken) (lipgloss.Color, bool) {
	c, ok := t.Tokens[tokenName(string(token))]
	if !ok {
		return t.Fallback, false
	}
	return c, true
}

func tokenName(s string) string {
	if name := programs.ColorToken(s).Name(); name != "" {
		return name
	}
	return strings.TrimSpace(s)
}

// Styles provides pre-configured lipgloss styles using the theme.
type Styles struct {
	Title   lipgloss.Style
	Header  lipgloss.Style
	Dim     lipgloss.Style
	Label   lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style

	theme Theme
	plain bool
}

// NewStyles creates styles from a theme. With color disabled every Render
// call returns its input unchanged.
func NewStyles(t Theme, color bool) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),
		Header: lipgloss.NewStyle().
			Foreground(t.TextDim).
			Bold(true),
		Dim:     lipgloss.NewStyle().Foreground(t.TextDim),
		Label:   lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
		Error:   lipgloss.NewStyle().Foreground(t.Error),

		ProgressFilled: lipgloss.NewStyle().Foreground(t.Accent),
		ProgressEmpty:  lipgloss.NewStyle().Foreground(t.TextDim),

		theme: t,
		plain: !color,
	}
}

// DefaultStyles returns colored styles using the default theme.
func DefaultStyles() Styles {
	return NewStyles(DefaultTheme, true)
}

// PlainStyles returns styles that never emit escape codes.
func PlainStyles() Styles {
	return NewStyles(DefaultTheme, false)
}

// Plain reports whether color output is disabled.
func (s Styles) Plain() bool {
	return s.plain
}

// Render applies style to text unless color is disabled.
func (s Styles) Render(style lipgloss.Style, text string) string {
	if s.plain {
		return text
	}
	return style.Render(text)
}

// Swatch returns a colored block for a program color, or the token name in
// brackets when color is disabled.
func (s Styles) Swatch(token programs.ColorToken) string {
	if s.plain {
		name := token.Name()
		if name == "" {
			name = string(token)
		}
		return "[" + name + "]"
	}
	c, _ := s.theme.Resolve(token)
	return lipgloss.NewStyle().Foreground(c).Render("■")
}

// ProgramName renders a program name in its own color.
func (s Styles) ProgramName(p programs.Program) string {
	if s.plain {
		return p.Name
	}
	c, _ := s.theme.Resolve(p.Color)
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render(p.Name)
}
