// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors for terminal UI rendering.
var (
	Purple = lipgloss.Color("99")
	Gray   = lipgloss.Color("245")
	White  = lipgloss.Color("15")
	Teal   = lipgloss.Color("#06ffa5")
)

// Reusable inline styles for compact key-value output.
var (
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(Purple)
	valueStyle = lipgloss.NewStyle().Foreground(Teal)

	// DimStyle is a muted style for secondary text.
	DimStyle = lipgloss.NewStyle().Foreground(Gray)
)

// Section represents a header with its corresponding rows.
type Section struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// compactMaxColWidth is the maximum column width before truncation.
const compactMaxColWidth = 80

// PrintCompactTable renders column-aligned sections with uppercase purple
// headers and alternating row colors. Multi-line cells are flattened and
// cells wider than compactMaxColWidth are truncated with an ellipsis.
func PrintCompactTable(
	sections []Section,
) {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(Purple)
	rowStyles := []lipgloss.Style{
		lipgloss.NewStyle().Foreground(Teal),
		lipgloss.NewStyle().Foreground(White),
	}

	const colGap = 2

	for _, section := range sections {
		if section.Title != "" {
			fmt.Printf("\n  %s:\n", headerStyle.Render(section.Title))
		} else {
			fmt.Println()
		}

		rows := flattenRows(section.Rows)
		widths := columnWidths(section.Headers, rows)

		cells := make([]string, len(section.Headers))
		for i, h := range section.Headers {
			cells[i] = strings.ToUpper(h)
		}
		fmt.Println(renderLine(cells, widths, colGap, headerStyle))

		for r, row := range rows {
			rowCells := make([]string, len(section.Headers))
			for i := range rowCells {
				if i < len(row) {
					rowCells[i] = truncate(row[i], widths[i])
				}
			}
			fmt.Println(renderLine(rowCells, widths, colGap, rowStyles[r%2]))
		}
	}
}

func flattenRows(
	rows [][]string,
) [][]string {
	flat := make([][]string, len(rows))
	for r, row := range rows {
		flat[r] = make([]string, len(row))
		for c, cell := range row {
			flat[r][c] = strings.Join(strings.Fields(cell), " ")
		}
	}

	return flat
}

func columnWidths(
	headers []string,
	rows [][]string,
) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}

	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = min(len(cell), compactMaxColWidth)
			}
		}
	}

	return widths
}

func renderLine(
	cells []string,
	widths []int,
	gap int,
	style lipgloss.Style,
) string {
	var line strings.Builder
	line.WriteString("  ")
	for i, cell := range cells {
		if i < len(cells)-1 {
			cell = fmt.Sprintf("%-*s", widths[i]+gap, cell)
		}
		line.WriteString(style.Render(cell))
	}

	return line.String()
}

func truncate(
	cell string,
	width int,
) string {
	if len(cell) <= width || width < 1 {
		return cell
	}

	return cell[:width-1] + "…"
}

// KVMinColWidth is the minimum visual width for each key-value column.
// A consistent minimum ensures columns align across consecutive PrintKV calls.
const KVMinColWidth = 20

// PrintKV prints labeled key-value pairs on a single indented line.
// Arguments alternate between labels and values: label1, val1, label2, val2, ...
func PrintKV(
	pairs ...string,
) {
	if len(pairs)%2 != 0 || len(pairs) == 0 {
		return
	}

	rendered := make([]string, 0, len(pairs)/2)
	maxWidth := KVMinColWidth
	for i := 0; i < len(pairs); i += 2 {
		pair := labelStyle.Render(pairs[i]+":") + " " + valueStyle.Render(pairs[i+1])
		rendered = append(rendered, pair)
		maxWidth = max(maxWidth, lipgloss.Width(pair))
	}

	var line strings.Builder
	line.WriteString("  ")
	for i, pair := range rendered {
		line.WriteString(pair)
		if i < len(rendered)-1 {
			line.WriteString(strings.Repeat(" ", maxWidth-lipgloss.Width(pair)+4))
		}
	}
	fmt.Println(line.String())
}

// FormatList joins list with commas, or returns "None" when it is empty.
func FormatList(
	list []string,
) string {
	if len(list) == 0 {
		return "None"
	}

	return strings.Join(list, ", ")
}
