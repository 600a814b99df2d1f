package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"langid/internal/core/langid"

	"github.com/spf13/cobra"
)

// batchRow is one line of a --lines run
type batchRow struct {
	Index  int            `json:"index"            yaml:"index"`
	Result *langid.Result `json:"result,omitempty" yaml:"result,omitempty"`
	Error  string         `json:"error,omitempty"  yaml:"error,omitempty"`
}

func newDetectCommand(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "detect [text...]",
		Short: "Detect the languages of text",
		Long: `Detect the languages of text given as arguments, read from --file or piped on stdin.
With --lines every non-blank input line is detected on its own.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.format()
			if err != nil {
				return err
			}
			texts, err := a.inputs(cmd, args)
			if err != nil {
				return err
			}
			d, err := a.detector()
			if err != nil {
				return err
			}
			opts := a.options()

			if !a.v.GetBool("lines") {
				res, err := d.Detect(&texts[0], opts)
				if err != nil {
					return err
				}
				if format == "text" {
					return writeResult(cmd.OutOrStdout(), res)
				}
				return encode(cmd.OutOrStdout(), format, res)
			}

			ptrs := make([]*string, len(texts))
			for i := range texts {
				ptrs[i] = &texts[i]
			}
			items, err := d.DetectBatch(cmd.Context(), ptrs, opts)
			if err != nil {
				return err
			}
			rows := make([]batchRow, len(items))
			for i, it := range items {
				rows[i].Index = it.Index
				if it.Err != nil {
					rows[i].Error = it.Err.Error()
					continue
				}
				res := it.Result
				rows[i].Result = &res
			}
			if format == "text" {
				return writeRows(cmd.OutOrStdout(), rows)
			}
			return encode(cmd.OutOrStdout(), format, rows)
		},
	}

	f := c.Flags()
	f.StringP("file", "f", "", "read text from a file, - reads stdin")
	f.Bool("lines", false, "detect every non-blank line separately")
	f.Bool("html", false, "strip HTML markup before detection")
	f.String("tld", "", "top-level domain hint, e.g. br")
	f.String("language", "", "BCP 47 language hint, e.g. pt-BR")
	f.Bool("no-extended", false, "leave out rarely written languages")
	f.Bool("skip-weak", false, "drop weak secondary candidates")
	f.Bool("summary", false, "prefer a real language over a larger unknown share")
	f.Int("max-results", 0, "candidates to report, 0 uses the model policy")
	f.StringP("format", "o", "text", "output format: text, json or yaml")
	return c
}

func (a *app) options() langid.Options {
	return langid.Options{
		HTML:            a.v.GetBool("html"),
		ExcludeExtended: a.v.GetBool("no-extended"),
		SkipWeakMatches: a.v.GetBool("skip-weak"),
		PickSummary:     a.v.GetBool("summary"),
		TLDHint:         a.v.GetString("tld"),
		LanguageHint:    a.v.GetString("language"),
		MaxResults:      a.v.GetInt("max-results"),
	}
}

// inputs gathers the texts to detect: arguments first, then --file, then piped stdin
func (a *app) inputs(cmd *cobra.Command, args []string) ([]string, error) {
	var raw string
	switch file := a.v.GetString("file"); {
	case len(args) > 0:
		raw = strings.Join(args, " ")
	case file == "-":
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		raw = string(b)
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		raw = string(b)
	default:
		in := cmd.InOrStdin()
		if f, ok := in.(*os.File); ok && !stdinPiped(f) {
			return nil, errNoInput
		}
		b, err := io.ReadAll(in)
		if err != nil {
			return nil, err
		}
		raw = string(b)
	}

	if !a.v.GetBool("lines") {
		return []string{raw}, nil
	}
	var texts []string
	for line := range strings.Lines(raw) {
		if strings.TrimSpace(line) != "" {
			texts = append(texts, strings.TrimRight(line, "\r\n"))
		}
	}
	if len(texts) == 0 {
		return nil, errNoInput
	}
	return texts, nil
}

var formats = []string{"text", "json", "yaml"}

func (a *app) format() (string, error) {
	f := strings.ToLower(a.v.GetString("format"))
	if !slices.Contains(formats, f) {
		return "", usageError{fmt.Errorf("unknown format %q, want one of %s", f, strings.Join(formats, ", "))}
	}
	return f, nil
}
