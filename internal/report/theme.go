package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/envwrangler/envwrangler/pkg/envdiff"
)

// ColorMode controls whether the text report is styled.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	case "":
		return ColorAuto, nil
	default:
		return "", fmt.Errorf("unknown color mode %q (want auto, always or never)", s)
	}
}

type Theme struct {
	// Plain disables styling altogether, strings are passed through untouched.
	Plain bool

	HeaderStyle  lipgloss.Style
	RuleStyle    lipgloss.Style
	LabelStyle   lipgloss.Style
	ValueStyle   lipgloss.Style
	MissingStyle lipgloss.Style
	SuccessStyle lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style

	AddedKeyStyle    lipgloss.Style
	RemovedKeyStyle  lipgloss.Style
	ModifiedKeyStyle lipgloss.Style
}

// PlainTheme renders the report byte for byte without escape sequences.
var PlainTheme = Theme{Plain: true}

// NewDarkTheme builds the default colour theme on the given renderer.
func NewDarkTheme(r *lipgloss.Renderer) Theme {
	return Theme{
		HeaderStyle:  r.NewStyle().Bold(true),
		RuleStyle:    r.NewStyle().Foreground(lipgloss.Color("#555555")),
		LabelStyle:   r.NewStyle().Foreground(lipgloss.Color("#888888")),
		ValueStyle:   r.NewStyle().Foreground(lipgloss.Color("#61AFEF")),
		MissingStyle: r.NewStyle().Foreground(lipgloss.Color("#888888")).Italic(true),
		SuccessStyle: r.NewStyle().Foreground(lipgloss.Color("#A9DC76")).Bold(true),
		WarningStyle: r.NewStyle().Foreground(lipgloss.Color("#FFA500")),
		InfoStyle:    r.NewStyle().Foreground(lipgloss.Color("#E5C07B")),

		AddedKeyStyle:    r.NewStyle().Foreground(lipgloss.Color("#A9DC76")).Bold(true),
		RemovedKeyStyle:  r.NewStyle().Foreground(lipgloss.Color("#E06C75")).Bold(true),
		ModifiedKeyStyle: r.NewStyle().Foreground(lipgloss.Color("#E5C07B")).Bold(true),
	}
}

// ThemeFor picks the theme for output written to w. In auto mode output that
// is not a colour capable terminal gets the plain theme.
func ThemeFor(mode ColorMode, w io.Writer) Theme {
	switch mode {
	case ColorNever:
		return PlainTheme
	case ColorAlways:
		r := lipgloss.NewRenderer(w)
		r.SetColorProfile(termenv.TrueColor)
		return NewDarkTheme(r)
	default:
		r := lipgloss.NewRenderer(w)
		if r.ColorProfile() == termenv.Ascii {
			return PlainTheme
		}
		return NewDarkTheme(r)
	}
}

func (t Theme) render(style lipgloss.Style, content string) string {
	if t.Plain {
		return content
	}
	return style.Render(content)
}

// KeyStyle returns the style a key is highlighted with for the given change.
func (t Theme) KeyStyle(change envdiff.ChangeType) lipgloss.Style {
	switch change {
	case envdiff.Added:
		return t.AddedKeyStyle
	case envdiff.Removed:
		return t.RemovedKeyStyle
	case envdiff.Modified:
		return t.ModifiedKeyStyle
	default:
		return t.LabelStyle
	}
}
