// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//   - Print* functions write informational banners to an [io.Writer].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/agbru/ordercalc/internal/config"
	apperrors "github.com/agbru/ordercalc/internal/errors"
	"github.com/agbru/ordercalc/internal/ui"
)

// PrintRunConfig displays the current execution configuration to the user.
// It shows the input file, worker fan-out, timeout, and environment details.
//
// Parameters:
//   - cfg: The application configuration.
//   - orderCount: The number of orders loaded from the input document.
//   - out: The writer for standard output.
func PrintRunConfig(cfg config.AppConfig, orderCount int, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Aggregating %s%d%s orders from %s%s%s with a timeout of %s%s%s.\n",
		ui.ColorPrimary(), orderCount, ui.ColorReset(),
		ui.ColorCyan(), cfg.InputFile, ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s, %s%d%s workers.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset(),
		ui.ColorCyan(), cfg.Workers, ui.ColorReset())
	fmt.Fprintf(out, "\n--- Starting Aggregation ---\n")
}

// DisplayReports prints both reports to the console, detail first.
//
// Parameters:
//   - out: The output writer.
//   - detailReport: The formatted per-order detail report.
//   - summaryReport: The formatted summary report.
func DisplayReports(out io.Writer, detailReport, summaryReport string) {
	fmt.Fprint(out, detailReport)
	fmt.Fprint(out, summaryReport)
}

// WriteReportFile writes a report to the given path, creating parent
// directories as needed.
//
// Parameters:
//   - path: The destination file path.
//   - content: The report text.
//
// Returns:
//   - error: An apperrors.IOError if the file cannot be written.
func WriteReportFile(path, content string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return apperrors.IOError{Path: path, Cause: err}
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.IOError{Path: path, Cause: err}
	}
	defer file.Close()

	if _, err := file.WriteString(content); err != nil {
		return apperrors.IOError{Path: path, Cause: err}
	}
	return nil
}

// DisplaySavedReports prints the success message naming both report files.
func DisplaySavedReports(out io.Writer, detailPath, summaryPath string) {
	fmt.Fprintf(out, "\n%s✓ Reports saved to: %s%s%s and %s%s%s\n",
		ui.ColorGreen(),
		ui.ColorCyan(), detailPath, ui.ColorReset(),
		ui.ColorCyan(), summaryPath, ui.ColorReset())
}

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
// This approach provides a more human-readable output for short durations.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}
