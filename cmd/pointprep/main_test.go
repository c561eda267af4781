package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/pointprep/internal/config"
	"github.com/verte-zerg/pointprep/internal/model"
)

const visitsCSV = "x,y,label\n2024-01-02,3,b\n2024-01-01,2,a\n2024-01-04,5,\n"

type jsonResult struct {
	Name   string `json:"name"`
	Points []struct {
		Y      float64 `json:"y"`
		Label  string  `json:"label"`
		Filled bool    `json:"filled"`
	} `json:"points"`
}

func setupConfig(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
	}
	t.Setenv("POINTPREP_CONFIG", path)
	t.Setenv("NO_COLOR", "1")
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func decodeResult(t *testing.T, out string) jsonResult {
	t.Helper()
	var res jsonResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	return res
}

func ys(res jsonResult) []float64 {
	values := make([]float64, 0, len(res.Points))
	for _, p := range res.Points {
		values = append(values, p.Y)
	}
	return values
}

func equalFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestGetFillDatesJSON(t *testing.T) {
	setupConfig(t, "")
	input := writeInput(t, "visits.csv", visitsCSV)

	out, err := runCLI(t, "get", input, "--fill-dates", "--format", "json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	res := decodeResult(t, out)
	if res.Name != "visits" {
		t.Fatalf("expected name from file, got %q", res.Name)
	}
	if got := ys(res); !equalFloats(got, []float64{2, 3, 0, 5}) {
		t.Fatalf("unexpected values: %v", got)
	}
	if !res.Points[2].Filled || res.Points[0].Label != "a" {
		t.Fatalf("unexpected points: %+v", res.Points)
	}
}

func TestGetUsesConfigFile(t *testing.T) {
	setupConfig(t, "[serie]\ncumulative = true\n\n[output]\nformat = \"json\"\n")
	input := writeInput(t, "visits.csv", visitsCSV)

	out, err := runCLI(t, "get", input, "--name", "Visits")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	res := decodeResult(t, out)
	if res.Name != "Visits" {
		t.Fatalf("expected explicit name, got %q", res.Name)
	}
	if got := ys(res); !equalFloats(got, []float64{3, 5, 10}) {
		t.Fatalf("expected cumulative values, got %v", got)
	}

	out, err = runCLI(t, "get", input, "--cumulative=false")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := ys(decodeResult(t, out)); !equalFloats(got, []float64{3, 2, 5}) {
		t.Fatalf("expected flag to override config, got %v", got)
	}
}

func TestGetSortDescending(t *testing.T) {
	setupConfig(t, "")
	input := writeInput(t, "scores.csv", "x,y\n12,1\n2,2\n123,3\n")

	out, err := runCLI(t, "get", input, "--sort", "--direction", "DESC", "--format", "json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := ys(decodeResult(t, out)); !equalFloats(got, []float64{3, 1, 2}) {
		t.Fatalf("unexpected order: %v", got)
	}

	out, err = runCLI(t, "get", input, "--sort", "--order", "alpha", "--format", "json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := ys(decodeResult(t, out)); !equalFloats(got, []float64{1, 3, 2}) {
		t.Fatalf("unexpected alpha order: %v", got)
	}
}

func TestGetTableWithSummary(t *testing.T) {
	setupConfig(t, "")
	input := writeInput(t, "regions.csv", "x,y\nnorth,1\nsouth,2\nnorth,3\n")

	out, err := runCLI(t, "get", input, "--grouped", "--format", "table", "--summary")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	for _, want := range []string{"Summary: regions", "Points: 2 (0 filled)", "Total: 6.00", "Label", "merged 2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestGetRejectsBadInput(t *testing.T) {
	setupConfig(t, "")
	input := writeInput(t, "visits.csv", visitsCSV)

	tests := []struct {
		name string
		args []string
	}{
		{"format", []string{"get", input, "--format", "xml"}},
		{"direction", []string{"get", input, "--direction", "up"}},
		{"x type", []string{"get", input, "--x-type", "time"}},
		{"same columns", []string{"get", input, "--x-col", "y"}},
		{"missing file", []string{"get", filepath.Join(t.TempDir(), "absent.csv")}},
		{"fill on numbers", []string{"get", writeInput(t, "n.csv", "x,y\n1,2\n"), "--fill-dates"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runCLI(t, tt.args...); err == nil {
				t.Fatalf("expected error for %v", tt.args)
			}
		})
	}
}

func TestValidateConfig(t *testing.T) {
	cfg := model.Config{Format: formatTable, Input: model.InputConfig{XColumn: "day", YColumn: "visits"}}
	if err := validateConfig(cfg); err != nil {
		t.Fatalf("expected valid config: %v", err)
	}
	cfg.Input.YColumn = " "
	if err := validateConfig(cfg); err == nil {
		t.Fatalf("expected error for empty y column")
	}
}

func TestEnsureConfigFileWritesTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := ensureConfigFile(path); err != nil {
		t.Fatalf("ensure config: %v", err)
	}
	if _, err := config.LoadConfig(path); err != nil {
		t.Fatalf("template must decode: %v", err)
	}
	if err := os.WriteFile(path, []byte("[serie]\nsort = true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := ensureConfigFile(path); err != nil {
		t.Fatalf("ensure config: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Serie.Sort == nil || !*cfg.Serie.Sort {
		t.Fatalf("existing config must be kept")
	}
}
