package sales

import (
	"fmt"
	"strings"
	"time"
)

const rule = "============================================================"

// FormatReport renders the full sales report: header with group and
// error counts, one item table per group in sorted id order, and the
// grand total footer.
func FormatReport(res Result, elapsed time.Duration) string {
	var lines []string
	lines = append(lines,
		"SALES RESULTS",
		rule,
		fmt.Sprintf("Sales (unique SALE_ID): %d", len(res.Groups)),
		fmt.Sprintf("Errors (skipped rows): %d", res.ErrorCount),
		"",
	)

	dash := strings.Repeat("-", 60)
	for _, id := range SortedIDs(res.Groups) {
		g := res.Groups[id]
		lines = append(lines,
			fmt.Sprintf("SALE_ID: %s    DATE: %s", g.SaleID, g.Date),
			dash,
			fmt.Sprintf("%-35s %8s %10s %12s", "Product", "Qty", "Price", "Total"),
		)
		for _, it := range g.Items {
			name := it.Product
			if len(name) > 35 {
				name = name[:35]
			}
			lines = append(lines, fmt.Sprintf("%-35s %8.2f %10.2f %12.2f",
				name, it.Quantity, it.UnitPrice, it.LineTotal()))
		}
		lines = append(lines,
			dash,
			fmt.Sprintf("%55s %12.2f", "SUBTOTAL", g.Subtotal()),
			"",
		)
	}

	lines = append(lines,
		rule,
		fmt.Sprintf("%55s %12.2f", "GRAND TOTAL", res.GrandTotal),
		fmt.Sprintf("Elapsed time (s): %.6f", elapsed.Seconds()),
		rule,
	)
	return strings.Join(lines, "\n") + "\n"
}
