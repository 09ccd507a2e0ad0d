package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4DD0E1"))
	cellStyle   = lipgloss.NewStyle()
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#73D13D"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA940"))
)

// table renders left-aligned columns sized to their widest cell.
type table struct {
	headers []string
	rows    [][]string
	styles  []func(row []string) lipgloss.Style
}

func newTable(headers ...string) *table {
	return &table{headers: headers}
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

// styleColumn sets how the cells of column i are styled.
func (t *table) styleColumn(i int, fn func(row []string) lipgloss.Style) {
	for len(t.styles) <= i {
		t.styles = append(t.styles, nil)
	}
	t.styles[i] = fn
}

func (t *table) render(out io.Writer) error {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	line := func(cells []string, style func(i int) lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = style(i).Width(widths[i]).Render(cell)
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	if _, err := fmt.Fprintln(out, line(t.headers, func(int) lipgloss.Style { return headerStyle })); err != nil {
		return err
	}
	for _, row := range t.rows {
		text := line(row, func(i int) lipgloss.Style {
			if i < len(t.styles) && t.styles[i] != nil {
				return t.styles[i](row)
			}
			return cellStyle
		})
		if _, err := fmt.Fprintln(out, text); err != nil {
			return err
		}
	}
	return nil
}
