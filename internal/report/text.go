package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/envwrangler/envwrangler/pkg/envset"
)

const ruleWidth = 60

// RenderText renders r in the text layout:
//
//	🔍 Found 1 difference(s) between local and staging:
//	------------------------------------------------------------
//	BAR:
//	  local: 2
//	  staging: 3
//
// An identical report renders as a single line.
func RenderText(r Report, theme Theme) string {
	var sb strings.Builder
	if r.Identical() {
		sb.WriteString(theme.render(theme.SuccessStyle,
			fmt.Sprintf("🎉 No differences! %s and %s are identical twins.", r.LeftLabel, r.RightLabel)))
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString(theme.render(theme.HeaderStyle,
		fmt.Sprintf("🔍 Found %s difference(s) between %s and %s:",
			humanize.Comma(int64(len(r.Differences))), r.LeftLabel, r.RightLabel)))
	sb.WriteString("\n")
	sb.WriteString(theme.render(theme.RuleStyle, strings.Repeat("-", ruleWidth)))
	sb.WriteString("\n")

	for _, d := range r.Differences {
		sb.WriteString(theme.render(theme.KeyStyle(d.Change()), d.Key) + ":\n")
		renderSide(&sb, theme, r.LeftLabel, d.Left)
		renderSide(&sb, theme, r.RightLabel, d.Right)
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderSide(sb *strings.Builder, theme Theme, label string, v envset.Value) {
	style := theme.ValueStyle
	if !v.IsPresent() {
		style = theme.MissingStyle
	}
	sb.WriteString("  " + theme.render(theme.LabelStyle, label+":") + " " + theme.render(style, v.String()) + "\n")
}

// Printer writes user facing messages of a run.
type Printer struct {
	out   io.Writer
	theme Theme
}

func NewPrinter(out io.Writer, theme Theme) *Printer {
	return &Printer{out: out, theme: theme}
}

// Warning reports a source that could not be read.
func (p *Printer) Warning(err error) error {
	return p.line(p.theme.WarningStyle, WarningText(err))
}

// NothingToWrangle reports that both sources were empty or missing.
func (p *Printer) NothingToWrangle() error {
	return p.line(p.theme.InfoStyle, "🤷 Both files are empty or missing. Nothing to wrangle!")
}

func (p *Printer) Report(r Report) error {
	_, err := io.WriteString(p.out, RenderText(r, p.theme))
	return err
}

func (p *Printer) line(style lipgloss.Style, text string) error {
	_, err := fmt.Fprintln(p.out, p.theme.render(style, text))
	return err
}

// WarningText formats a read failure the way it is shown to the user.
func WarningText(err error) string {
	var readErr *envset.ReadError
	if !errors.As(err, &readErr) {
		return fmt.Sprintf("⚠️  %v", err)
	}
	if readErr.NotFound() {
		return fmt.Sprintf("⚠️  File not found: %s", readErr.Path)
	}
	return fmt.Sprintf("⚠️  Cannot read file: %s (%v)", readErr.Path, readErr.Err)
}
