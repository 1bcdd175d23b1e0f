package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/kozaktomas/face-compare/internal/store"
	"github.com/spf13/cobra"
)

func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	f := c.Flags()
	f.String("config", "", "")
	f.String("store", "", "")
	f.String("picker-dir", "", "")
	f.String("models", "", "")
	f.Float64("tolerance", 0, "")
	f.Bool("cnn", false, "")
	if err := f.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return c
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	t.Setenv("FACE_COMPARE_CONFIG", "")
	t.Setenv("FACE_STORE_DIR", "/env/store")
	t.Setenv("FACE_TOLERANCE", "0.5")

	t.Run("env only", func(t *testing.T) {
		cfg, err := loadConfig(newTestCommand(t))
		if err != nil {
			t.Fatalf("loadConfig: %v", err)
		}
		if cfg.Store.Dir != "/env/store" {
			t.Errorf("Store.Dir = %q, want /env/store", cfg.Store.Dir)
		}
		if cfg.Recognizer.Tolerance != 0.5 {
			t.Errorf("Tolerance = %v, want 0.5", cfg.Recognizer.Tolerance)
		}
	})

	t.Run("flags win", func(t *testing.T) {
		cfg, err := loadConfig(newTestCommand(t, "--store", "/flag/store", "--tolerance", "0.4", "--cnn"))
		if err != nil {
			t.Fatalf("loadConfig: %v", err)
		}
		if cfg.Store.Dir != "/flag/store" {
			t.Errorf("Store.Dir = %q, want /flag/store", cfg.Store.Dir)
		}
		if cfg.Recognizer.Tolerance != 0.4 {
			t.Errorf("Tolerance = %v, want 0.4", cfg.Recognizer.Tolerance)
		}
		if !cfg.Recognizer.UseCNN {
			t.Error("UseCNN = false, want true")
		}
	})

	t.Run("invalid tolerance", func(t *testing.T) {
		if _, err := loadConfig(newTestCommand(t, "--tolerance", "-1")); err == nil {
			t.Error("expected error for negative tolerance")
		}
	})

	t.Run("missing config file", func(t *testing.T) {
		if _, err := loadConfig(newTestCommand(t, "--config", t.TempDir()+"/missing.yaml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})
}

func TestRenderTable(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		rows    [][]string
		want    []string
	}{
		{
			name:    "no headers",
			headers: nil,
			want:    nil,
		},
		{
			name:    "short rows are padded",
			headers: []string{"File", "Status", "Detail"},
			rows:    [][]string{{"a.jpg", "face"}, {"b.png", "no-face", ""}},
			want:    []string{"file", "status", "a.jpg", "b.png", "no-face"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderTable(tt.headers, tt.rows, []columnAlignment{alignLeft, alignRight})
			if tt.want == nil {
				if got != "" {
					t.Errorf("renderTable() = %q, want empty", got)
				}
				return
			}
			for _, w := range tt.want {
				if !strings.Contains(strings.ToLower(got), w) {
					t.Errorf("renderTable() missing %q in:\n%s", w, got)
				}
			}
		})
	}
}

func TestToSkippedOutput(t *testing.T) {
	got := toSkippedOutput([]store.Skipped{
		{Path: "/s/a.jpg", Reason: store.SkipNoFace},
		{Path: "/s/b.jpg", Reason: store.SkipUnreadable, Err: errors.New("truncated")},
	})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Reason != "no-face" || got[0].Error != "" {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[1].Reason != "unreadable" || got[1].Error != "truncated" {
		t.Errorf("got[1] = %+v", got[1])
	}
}
