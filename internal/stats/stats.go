// Package stats contains summaries and text output for prepared points.
package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/verte-zerg/pointprep/internal/model"
	"github.com/verte-zerg/pointprep/internal/serie"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C0C0C0"))

// Summary describes the y values of a point sequence.
type Summary struct {
	Count  int
	Filled int
	Total  float64
	Min    float64
	Max    float64
	Mean   float64
}

// Summarize computes count, total, min, max, and mean of y.
func Summarize(points []model.Point) Summary {
	if len(points) == 0 {
		return Summary{}
	}
	sum := Summary{
		Count: len(points),
		Min:   math.Inf(1),
		Max:   math.Inf(-1),
	}
	for _, p := range points {
		if p.Filled {
			sum.Filled++
		}
		sum.Total += p.Y
		if p.Y < sum.Min {
			sum.Min = p.Y
		}
		if p.Y > sum.Max {
			sum.Max = p.Y
		}
	}
	sum.Mean = sum.Total / float64(sum.Count)
	return sum
}

// RenderSummary prints a short summary block for res.
func RenderSummary(w io.Writer, res serie.Result) error {
	if len(res.Points) == 0 {
		_, err := fmt.Fprintf(w, "%s: no points.\n", res.Name)
		return err
	}
	sum := Summarize(res.Points)
	if _, err := fmt.Fprintf(w, "Summary: %s\n", res.Name); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Points: %d (%d filled)\n", sum.Count, sum.Filled); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Total: %.2f\n", sum.Total); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Min: %.2f\n", sum.Min); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Max: %.2f\n", sum.Max); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Mean: %.2f\n", sum.Mean); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderPoints prints res as an aligned table.
func RenderPoints(w io.Writer, res serie.Result, useColor bool) error {
	if len(res.Points) == 0 {
		_, err := fmt.Fprintln(w, "No points.")
		return err
	}
	headers := []string{"X", "Y", "Label", "Note"}
	rows := PointRows(res.Points)
	rightAlign := map[int]bool{1: true}
	lines := formatTable(headers, rows, rightAlign)
	for i, line := range lines {
		if i == 0 && useColor {
			line = headerStyle.Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// PointRows formats points as table cells: x, y, label, note.
func PointRows(points []model.Point) [][]string {
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			p.X.String(),
			FormatValue(p.Y),
			p.Label,
			pointNote(p),
		})
	}
	return rows
}

// FormatValue renders y without trailing zeros.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func pointNote(p model.Point) string {
	switch {
	case p.Filled:
		return "filled"
	case p.Merged > 1:
		return fmt.Sprintf("merged %d", p.Merged)
	default:
		return ""
	}
}

// WriteJSON encodes res as JSON.
func WriteJSON(w io.Writer, res serie.Result, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(res)
}

// ShouldUseColor reports whether output to w should be styled.
func ShouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	return IsTerminal(w)
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
