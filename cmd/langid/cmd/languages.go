package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// languageRow is one entry of the language table
type languageRow struct {
	Code     string   `json:"code"           yaml:"code"`
	Name     string   `json:"name"           yaml:"name"`
	Script   string   `json:"script"         yaml:"script"`
	Extended bool     `json:"extended"       yaml:"extended"`
	TLDs     []string `json:"tlds,omitempty" yaml:"tlds,omitempty"`
}

func newLanguagesCommand(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "languages",
		Short: "List the languages of the model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := a.format()
			if err != nil {
				return err
			}
			d, err := a.detector()
			if err != nil {
				return err
			}

			langs := d.Model().Languages()
			rows := make([]languageRow, len(langs))
			for i, l := range langs {
				rows[i] = languageRow{Code: l.Code, Name: l.Name, Script: l.Script.String(), Extended: l.Extended, TLDs: l.TLDs}
			}
			if format != "text" {
				return encode(cmd.OutOrStdout(), format, rows)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, r := range rows {
				ext := ""
				if r.Extended {
					ext = "extended"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Code, r.Name, r.Script, ext, strings.Join(r.TLDs, ","))
			}
			return tw.Flush()
		},
	}
	c.Flags().StringP("format", "o", "text", "output format: text, json or yaml")
	return c
}
