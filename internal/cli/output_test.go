package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agbru/ordercalc/internal/config"
	apperrors "github.com/agbru/ordercalc/internal/errors"
	"github.com/agbru/ordercalc/internal/ui"
)

func TestMain(m *testing.M) {
	ui.InitTheme(true)
	os.Exit(m.Run())
}

func TestPrintRunConfig(t *testing.T) {
	cfg := config.AppConfig{
		InputFile: "orders.json",
		Workers:   4,
		Timeout:   30 * time.Second,
	}

	var buf bytes.Buffer
	PrintRunConfig(cfg, 12, &buf)

	output := buf.String()
	for _, want := range []string{
		"Execution Configuration",
		"12",
		"orders.json",
		"30s",
		"4",
		"Starting Aggregation",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("PrintRunConfig output missing %q:\n%s", want, output)
		}
	}
}

func TestDisplayReports(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	DisplayReports(&buf, "detail\n", "summary\n")

	if got, want := buf.String(), "detail\nsummary\n"; got != want {
		t.Errorf("DisplayReports wrote %q, want %q", got, want)
	}
}

func TestWriteReportFile(t *testing.T) {
	t.Parallel()

	t.Run("writes content", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "report.txt")

		if err := WriteReportFile(path, "Total Revenue: 20\n"); err != nil {
			t.Fatalf("WriteReportFile failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading report back: %v", err)
		}
		if string(data) != "Total Revenue: 20\n" {
			t.Errorf("file content = %q", data)
		}
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "nested", "deep", "report.txt")

		if err := WriteReportFile(path, "x"); err != nil {
			t.Fatalf("WriteReportFile failed: %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("report file not created: %v", err)
		}
	})

	t.Run("returns IOError on unwritable path", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()

		err := WriteReportFile(dir, "x")

		var ioErr apperrors.IOError
		if !errors.As(err, &ioErr) {
			t.Errorf("expected IOError, got %v", err)
		}
		if ioErr.Path != dir {
			t.Errorf("IOError.Path = %q, want %q", ioErr.Path, dir)
		}
	})
}

func TestDisplaySavedReports(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	DisplaySavedReports(&buf, "a.txt", "b.txt")

	output := buf.String()
	if !strings.Contains(output, "a.txt") || !strings.Contains(output, "b.txt") {
		t.Errorf("DisplaySavedReports output missing paths:\n%s", output)
	}
	if !strings.Contains(output, "Reports saved") {
		t.Errorf("DisplaySavedReports output missing confirmation:\n%s", output)
	}
}

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{"microseconds", 500 * time.Microsecond, "500µs"},
		{"milliseconds", 250 * time.Millisecond, "250ms"},
		{"seconds", 2 * time.Second, "2s"},
		{"minutes", 90 * time.Second, "1m30s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatExecutionDuration(tt.duration); got != tt.want {
				t.Errorf("FormatExecutionDuration(%s) = %q, want %q", tt.duration, got, tt.want)
			}
		})
	}
}
