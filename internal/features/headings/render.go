package headings

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteTable prints captures as an aligned table, oldest first.
func WriteTable(w io.Writer, list []Captured) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No headings captured yet.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, "#\tCAPTURED AT\tTEXT\tURL")
	for i, c := range list {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, c.CapturedAt, c.Text, c.URL)
	}

	return tw.Flush()
}
