// Package cmd implements the langid command line
package cmd

import (
	"errors"
	"io"
	"os"
	"strings"

	"langid/internal/core/langid"
	"langid/internal/core/langmodel"
	"langid/internal/platform/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// exit codes
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// errNoInput is returned when detect has no arguments, no file and no piped stdin
var errNoInput = errors.New("no input: pass text as arguments, --file or pipe it on stdin")

// usageError marks command line mistakes, which exit with exitUsage
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// app carries what every subcommand shares
type app struct {
	v      *viper.Viper
	models *langmodel.Provider
}

// detector builds a detector over the configured model
func (a *app) detector() (*langid.Detector, error) {
	if a.models == nil {
		a.models = langmodel.File(a.v.GetString("model"))
	}
	return langid.NewFromProvider(a.models)
}

// NewRootCommand builds the command tree. Flags may also come from LANGID_* variables or a config file
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}
	a.v.SetEnvPrefix("LANGID")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "langid",
		Short: "Identify the natural language of text",
		Long: `langid identifies the languages of a text with a compact character n-gram model.

Examples:
  langid detect "Bonjour tout le monde"
  echo "Hallo Welt" | langid detect --format json
  langid detect --file page.html --html
  langid languages`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			if path := a.v.GetString("config"); path != "" {
				a.v.SetConfigFile(path)
				if err := a.v.ReadInConfig(); err != nil {
					return err
				}
			}
			logger.Init(logger.Options{
				Level:   a.v.GetString("log-level"),
				Format:  "console",
				Service: "langid",
				Writer:  cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (yaml, json or toml) holding flag values")
	pf.String("model", "", "model file (.json or .json.gz); empty uses the embedded model")
	pf.String("log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newDetectCommand(a), newLanguagesCommand(a), newVersionCommand())
	return root
}

// Execute runs the command line against os.Args and returns the process exit code
func Execute() int { return run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr) }

func run(args []string, in io.Reader, out, errOut io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.Execute()
	if err == nil {
		return exitOK
	}
	root.PrintErrln("Error:", err)
	var ue usageError
	if errors.Is(err, errNoInput) || errors.As(err, &ue) {
		return exitUsage
	}
	return exitFailure
}

// stdinPiped reports whether stdin is a pipe or file rather than a terminal
func stdinPiped(f *os.File) bool {
	st, err := f.Stat()
	if err != nil {
		return false
	}
	return st.Mode()&os.ModeCharDevice == 0
}
