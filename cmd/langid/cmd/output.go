package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"langid/internal/core/langid"

	"gopkg.in/yaml.v3"
)

// encode writes v as indented json or yaml
func encode(w io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}

func reliability(ok bool) string {
	if ok {
		return "reliable"
	}
	return "unreliable"
}

// writeResult prints one candidate per row
func writeResult(w io.Writer, res langid.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range res.Candidates {
		fmt.Fprintf(tw, "%s\t%s\t%d%%\t%s\n", c.Code, c.Name, c.Percent, reliability(c.Reliable))
	}
	return tw.Flush()
}

// writeRows prints the top candidate of every line
func writeRows(w io.Writer, rows []batchRow) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, r := range rows {
		if r.Result == nil {
			fmt.Fprintf(tw, "%d\terror: %s\n", r.Index+1, r.Error)
			continue
		}
		top := r.Result.Top()
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d%%\t%s\n", r.Index+1, top.Code, top.Name, top.Percent, reliability(r.Result.Reliable))
	}
	return tw.Flush()
}
