package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteText writes the human-readable report. Used dependencies produce no
// output.
func WriteText(w io.Writer, r Report) {
	fmt.Fprintln(w, "\nDependency Analysis Report:")
	fmt.Fprintln(w, "==========================")

	for _, d := range r.Flagged {
		fmt.Fprintf(w, "\n%s (%s)\n", d.Name, UnusedMarker)
		fmt.Fprintf(w, "Version: %s\n", d.Req)
		fmt.Fprintf(w, "Feature flags: %s\n", debugList(d.Features))
		fmt.Fprintln(w, "⚠️  This dependency might be removable. Verify:")
		for i, h := range Hints {
			fmt.Fprintf(w, "  %d. %s\n", i+1, h)
		}
	}
}

// debugList renders a string list as ["a", "b"].
func debugList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = strconv.Quote(s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
