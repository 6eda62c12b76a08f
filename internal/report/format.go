package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fraudlens/fraudlens/internal/tui"
	"github.com/fraudlens/fraudlens/pkg/fraudlens"
)

// Format selects how results are rendered.
type Format string

const (
	// FormatText styles labels when the output is a terminal.
	FormatText Format = "text"
	// FormatPlain never styles.
	FormatPlain Format = "plain"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatText:
		return FormatText, nil
	case FormatPlain:
		return FormatPlain, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: text, plain): %w", s, fraudlens.ErrInvalidConfig)
	}
}

// FormatRow fills a template's {Field} placeholders from one row.
// Unknown placeholders are left as they are.
func FormatRow(template string, columns []string, row Row) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(m string) string {
		name := m[1 : len(m)-1]
		for i, col := range columns {
			if col == name && i < len(row) {
				return row[i].String()
			}
		}
		return m
	})
}

// Lines renders a result as its formatted row lines.
func Lines(r Result) []string {
	lines := make([]string, len(r.Rows))
	for i, row := range r.Rows {
		lines[i] = FormatRow(r.Query.Template, r.Columns, row)
	}
	return lines
}

// Block is a rendered result: the query label and one line per row.
type Block struct {
	ID    int
	Label string
	Lines []string
}

// NewBlock renders a result.
func NewBlock(r Result) Block {
	return Block{ID: r.Query.ID, Label: r.Query.Label, Lines: Lines(r)}
}

// Presenter writes one block per result: the query label followed by one
// indented line per row and a blank separator line.
type Presenter struct {
	out    io.Writer
	styler tui.Styler
}

// NewPresenter creates a presenter writing to out. FormatText styles labels
// only when out is a terminal with color allowed.
func NewPresenter(out io.Writer, format Format) *Presenter {
	return &Presenter{
		out:    out,
		styler: tui.Styler{Enabled: format == FormatText && tui.ColorEnabled(out)},
	}
}

// Write renders one result block.
func (p *Presenter) Write(r Result) error {
	block := NewBlock(r)

	var sb strings.Builder
	sb.WriteString(p.styler.Render(tui.LabelStyle, block.Label))
	sb.WriteString("\n")

	lines := block.Lines
	if len(lines) == 0 {
		sb.WriteString("  ")
		sb.WriteString(p.styler.Render(tui.EmptyStyle, fraudlens.EmptyResultDisplay))
		sb.WriteString("\n")
	}
	for _, line := range lines {
		sb.WriteString("  ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	_, err := io.WriteString(p.out, sb.String())
	return err
}
