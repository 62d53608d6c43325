package config

import (
	"bytes"
	"errors"
	"flag"
	"testing"
	"time"

	apperrors "github.com/agbru/ordercalc/internal/errors"
)

func TestParseConfig_Defaults(t *testing.T) {
	var buf bytes.Buffer
	cfg, err := ParseConfig("ordercalc", []string{"orders.json"}, &buf)
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	if cfg.InputFile != "orders.json" {
		t.Errorf("InputFile = %q, want %q", cfg.InputFile, "orders.json")
	}
	if cfg.DetailFile != DefaultDetailFile {
		t.Errorf("DetailFile = %q, want %q", cfg.DetailFile, DefaultDetailFile)
	}
	if cfg.SummaryFile != DefaultSummaryFile {
		t.Errorf("SummaryFile = %q, want %q", cfg.SummaryFile, DefaultSummaryFile)
	}
	if cfg.Workers != 0 {
		t.Errorf("Workers = %d, want 0 (auto)", cfg.Workers)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %s, want %s", cfg.Timeout, DefaultTimeout)
	}
	if cfg.Quiet || cfg.Verbose || cfg.NoColor {
		t.Error("boolean flags should default to false")
	}
}

func TestParseConfig_Flags(t *testing.T) {
	var buf bytes.Buffer
	cfg, err := ParseConfig("ordercalc", []string{
		"--workers", "8",
		"--timeout", "30s",
		"--detail-output", "out/details.txt",
		"--summary-output", "out/summary.txt",
		"--quiet",
		"--metrics-addr", ":9090",
		"orders.json",
	}, &buf)
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %s, want 30s", cfg.Timeout)
	}
	if cfg.DetailFile != "out/details.txt" || cfg.SummaryFile != "out/summary.txt" {
		t.Errorf("output paths = %q/%q, want overridden values", cfg.DetailFile, cfg.SummaryFile)
	}
	if !cfg.Quiet {
		t.Error("Quiet should be set")
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("MetricsAddr = %q, want %q", cfg.MetricsAddr, ":9090")
	}
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing input file", []string{}},
		{"extra arguments", []string{"orders.json", "more.json"}},
		{"negative workers", []string{"--workers", "-1", "orders.json"}},
		{"zero timeout", []string{"--timeout", "0s", "orders.json"}},
		{"empty detail path", []string{"--detail-output", "", "orders.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			_, err := ParseConfig("ordercalc", tt.args, &buf)

			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("expected ConfigError, got %v", err)
			}
		})
	}
}

func TestParseConfig_HelpFlag(t *testing.T) {
	var buf bytes.Buffer
	_, err := ParseConfig("ordercalc", []string{"--help"}, &buf)

	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("expected flag.ErrHelp, got %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Usage")) {
		t.Error("help output should include usage text")
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Run("env fills unset flags", func(t *testing.T) {
		t.Setenv(EnvPrefix+"WORKERS", "4")
		t.Setenv(EnvPrefix+"TIMEOUT", "90s")
		t.Setenv(EnvPrefix+"QUIET", "yes")

		var buf bytes.Buffer
		cfg, err := ParseConfig("ordercalc", []string{"orders.json"}, &buf)
		if err != nil {
			t.Fatalf("ParseConfig failed: %v", err)
		}

		if cfg.Workers != 4 {
			t.Errorf("Workers = %d, want 4 from env", cfg.Workers)
		}
		if cfg.Timeout != 90*time.Second {
			t.Errorf("Timeout = %s, want 90s from env", cfg.Timeout)
		}
		if !cfg.Quiet {
			t.Error("Quiet should be set from env")
		}
	})

	t.Run("explicit flags beat env", func(t *testing.T) {
		t.Setenv(EnvPrefix+"WORKERS", "4")

		var buf bytes.Buffer
		cfg, err := ParseConfig("ordercalc", []string{"--workers", "2", "orders.json"}, &buf)
		if err != nil {
			t.Fatalf("ParseConfig failed: %v", err)
		}
		if cfg.Workers != 2 {
			t.Errorf("Workers = %d, want 2 (flag beats env)", cfg.Workers)
		}
	})

	t.Run("invalid env values are ignored", func(t *testing.T) {
		t.Setenv(EnvPrefix+"WORKERS", "many")

		var buf bytes.Buffer
		cfg, err := ParseConfig("ordercalc", []string{"orders.json"}, &buf)
		if err != nil {
			t.Fatalf("ParseConfig failed: %v", err)
		}
		if cfg.Workers != 0 {
			t.Errorf("Workers = %d, want default 0", cfg.Workers)
		}
	})
}

func TestApplyAdaptiveWorkers(t *testing.T) {
	t.Parallel()

	t.Run("fills zero value", func(t *testing.T) {
		t.Parallel()
		cfg := ApplyAdaptiveWorkers(AppConfig{})
		if cfg.Workers < 1 {
			t.Errorf("Workers = %d, want >= 1", cfg.Workers)
		}
	})

	t.Run("preserves explicit value", func(t *testing.T) {
		t.Parallel()
		cfg := ApplyAdaptiveWorkers(AppConfig{Workers: 3})
		if cfg.Workers != 3 {
			t.Errorf("Workers = %d, want 3", cfg.Workers)
		}
	})
}

func TestEstimateOptimalWorkerCount(t *testing.T) {
	t.Parallel()

	got := EstimateOptimalWorkerCount()
	if got < 1 || got > 16 {
		t.Errorf("EstimateOptimalWorkerCount() = %d, want within [1, 16]", got)
	}
}
