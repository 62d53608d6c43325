// Package report renders the aggregation engine's outputs into the two
// textual report formats: the per-order detail listing and the cross-order
// summary. All functions are pure; file and console output belong to the
// CLI layer.
//
// Functions follow the Format* naming convention: they return a formatted
// string without performing I/O.
package report

import (
	"fmt"
	"strings"
)

// summarySeparator delimits the sections of the summary report.
const summarySeparator = "------------------\n"

// FormatDetailReport concatenates the per-order detail strings in their
// given (input) order.
func FormatDetailReport(details []string) string {
	var sb strings.Builder
	for _, d := range details {
		sb.WriteString(d)
	}
	return sb.String()
}

// FormatSummaryReport renders the per-product quantity table followed by the
// total revenue line.
//
// Products are emitted in the map's iteration order; the layout contract does
// not require sorting. Monetary values in the detail report use two decimals,
// while the revenue line keeps the value's native precision. Downstream
// consumers parse the current layout, so both renderings must stay as-is.
//
// Parameters:
//   - quantities: The per-product cumulative quantities.
//   - totalRevenue: The revenue summed over fulfilled orders.
//
// Returns:
//   - string: The formatted summary report.
func FormatSummaryReport(quantities map[string]int, totalRevenue float64) string {
	var sb strings.Builder
	sb.WriteString("Total sale product Quantities:\n")
	sb.WriteString(summarySeparator)
	fmt.Fprintf(&sb, "%-20s %s\n", "Product", "Quantity")
	sb.WriteString(summarySeparator)
	for product, quantity := range quantities {
		fmt.Fprintf(&sb, "%-20s %d\n", product, quantity)
	}
	sb.WriteString(summarySeparator)
	fmt.Fprintf(&sb, "Total Revenue: %v\n", totalRevenue)
	return sb.String()
}
