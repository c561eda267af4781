package viewui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/pointprep/internal/model"
	"github.com/verte-zerg/pointprep/internal/serie"
)

func newTestModel(t *testing.T, opts serie.Options, points ...model.Point) *Model {
	t.Helper()
	s, err := serie.New(serie.Config{Name: "Browse", Options: opts})
	if err != nil {
		t.Fatalf("new serie: %v", err)
	}
	for _, p := range points {
		if err := s.SetDataPoint(p); err != nil {
			t.Fatalf("set data point: %v", err)
		}
	}
	return NewModel(s)
}

func press(m *Model, key string) *Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	return next.(*Model)
}

func TestToggleOptionsRecomputes(t *testing.T) {
	m := newTestModel(t, serie.Options{},
		model.Point{X: model.StringKey("b"), Y: 2},
		model.Point{X: model.StringKey("a"), Y: 3},
		model.Point{X: model.StringKey("b"), Y: 5},
	)
	if len(m.Result().Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(m.Result().Points))
	}

	m = press(m, "g")
	if !m.Options().Grouped || len(m.Result().Points) != 2 {
		t.Fatalf("expected grouped result, got %+v", m.Result().Points)
	}

	m = press(m, "c")
	if got := m.Result().Points[1].Y; got != 10 {
		t.Fatalf("expected cumulative total 10, got %v", got)
	}

	m = press(m, "o")
	if !m.Options().Sort || m.Options().Order.String() != "alpha" {
		t.Fatalf("expected alpha sort, got %+v", m.Options())
	}
	if m.Result().Points[0].X.String() != "a" {
		t.Fatalf("expected a first, got %+v", m.Result().Points)
	}

	m = press(m, "d")
	if m.Options().Direction != serie.Descending || m.Result().Points[0].X.String() != "b" {
		t.Fatalf("expected descending order, got %+v", m.Result().Points)
	}
}

func TestPipelineErrorIsShown(t *testing.T) {
	m := newTestModel(t, serie.Options{},
		model.Point{X: model.StringKey("not a date"), Y: 1},
	)
	m = press(m, "f")
	if m.Err() == "" {
		t.Fatalf("expected error after enabling fill on text keys")
	}
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	m = next.(*Model)
	view := m.View()
	if !strings.Contains(view, "data error in fill") {
		t.Fatalf("expected error in view:\n%s", view)
	}

	m = press(m, "f")
	if m.Err() != "" || len(m.Result().Points) != 1 {
		t.Fatalf("expected recovery after disabling fill, err=%q", m.Err())
	}
}

func TestViewLayout(t *testing.T) {
	m := newTestModel(t, serie.Options{Sort: true},
		model.Point{X: model.NumberKey(2), Y: 1, Label: "two"},
		model.Point{X: model.NumberKey(1), Y: 2},
	)
	if m.View() != "" {
		t.Fatalf("expected empty view before size is known")
	}
	next, _ := m.Update(tea.WindowSizeMsg{Width: 90, Height: 15})
	m = next.(*Model)
	view := m.View()
	lines := strings.Split(view, "\n")
	if len(lines) != 15 {
		t.Fatalf("expected 15 lines, got %d", len(lines))
	}
	for _, want := range []string{"Browse", "sort=numeric ASC", "two", "q quit"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, serie.Options{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestNextOrder(t *testing.T) {
	if got := nextOrder(serie.OrderDate); got.String() != "numeric" {
		t.Fatalf("expected wrap to numeric, got %s", got)
	}
	custom := serie.OrderCustom(func(model.Point) float64 { return 0 })
	if got := nextOrder(custom); got.String() != "numeric" {
		t.Fatalf("expected custom to reset to numeric, got %s", got)
	}
}

func TestTruncateLineUsesDisplayWidth(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"abcdefgh", 5, "ab..."},
		{"abc", 5, "abc"},
		{"日本語テキスト", 7, "日本..."},
		{"日本語", 2, "日"},
	}
	for _, tt := range tests {
		got := truncateLine(tt.in, tt.width)
		if got != tt.want {
			t.Fatalf("truncateLine(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
		if w := runewidth.StringWidth(got); w > tt.width {
			t.Fatalf("truncateLine(%q, %d) is %d cells wide", tt.in, tt.width, w)
		}
	}
}
