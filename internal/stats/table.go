package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type column struct {
	title string
	right bool
	width int
}

// formatTable aligns rows under headers. Trailing blanks are trimmed so an
// empty last column leaves no padding behind.
func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	cols := make([]column, len(headers))
	for i, h := range headers {
		cols[i] = column{title: h, right: rightAlignCols[i], width: displayWidth(h)}
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(cols) {
				cols = append(cols, column{right: rightAlignCols[i]})
			}
			cols[i].width = max(cols[i].width, displayWidth(cell))
		}
	}
	if len(cols) == 0 {
		return nil
	}

	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, joinCells(cols, headers))
	}
	for _, row := range rows {
		lines = append(lines, joinCells(cols, row))
	}
	return lines
}

func joinCells(cols []column, row []string) string {
	var b strings.Builder
	for i, col := range cols {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		gap := strings.Repeat(" ", max(0, col.width-displayWidth(cell)))
		if col.right {
			b.WriteString(gap + cell)
		} else {
			b.WriteString(cell + gap)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}
