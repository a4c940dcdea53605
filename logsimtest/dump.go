// Package logsimtest holds small test-only helpers shared across this
// module's package tests: currently a decoded-container pretty printer,
// grounded on the teacher's sqltest.DumpRows/QueryDump (there: tabulate a
// *sql.Rows result with repr-quoted string cells; here: tabulate a
// Container's templates and query results the same way).
package logsimtest

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/alecthomas/repr"

	"github.com/adam-bouafia/logsim/internal/container"
	"github.com/adam-bouafia/logsim/internal/query"
)

// DumpTemplates prints every template's shape, one row per slot, for
// failing-test diagnostics.
func DumpTemplates(c *container.Container) string {
	var out bytes.Buffer
	w := tabwriter.NewWriter(&out, 0, 0, 4, ' ', 0)
	for _, t := range c.Templates() {
		fmt.Fprintf(w, "template %d\trows=%d\t\n", t.ID, c.RowCount(t.ID))
		for i, slot := range t.Slots {
			if slot.Literal {
				fmt.Fprintf(w, "  slot %d\tLITERAL\t%s\n", i, repr.String(string(slot.LiteralBytes)))
				continue
			}
			fmt.Fprintf(w, "  slot %d\t%s\tcolumn=%d\n", i, slot.FieldType, slot.ColumnIndex)
		}
		fmt.Fprintln(w, "----------------\t------------\t")
	}
	w.Flush()
	return out.String()
}

// DumpResults prints a Filter result set, one row per match, with rendered
// text repr-quoted so embedded control characters and quotes are visible.
func DumpResults(results []query.Result) string {
	var out bytes.Buffer
	w := tabwriter.NewWriter(&out, 0, 0, 4, ' ', 0)
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%s\t\n", r.LineIndex, repr.String(r.Rendered))
	}
	w.Flush()
	return out.String()
}
