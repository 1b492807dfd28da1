// Package main provides the goenum CLI: it loads an enum spec from JSON or
// YAML, builds the registry and inspects, queries or exports it.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reoring/goenum"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries an exit code through cobra. Silent errors print nothing.
type exitError struct {
	code   int
	err    error
	silent bool
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func userErrorf(format string, args ...any) error {
	return &exitError{code: exitUserError, err: fmt.Errorf(format, args...)}
}

// app is the per-invocation state shared by the subcommands.
type app struct {
	v      *viper.Viper
	log    *slog.Logger
	stdout io.Writer
	stderr io.Writer

	configFile string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI with args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if !ee.silent {
			fmt.Fprintln(stderr, formatError(ee.err))
		}
		return ee.code
	}
	// Unclassified errors come from argument and flag parsing.
	fmt.Fprintln(stderr, formatError(err))
	return exitUserError
}

// formatError prefixes goenum errors with their code and path.
func formatError(err error) string {
	if iss, ok := goenum.AsIssue(err); ok {
		return fmt.Sprintf("error: [%s] %s: %s", iss.Code, iss.Path, iss.Message)
	}
	return "error: " + err.Error()
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{v: viper.New(), stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "goenum",
		Short: "goenum builds and inspects nested enum registries",
		Long: `goenum loads an enum spec (JSON or YAML, chosen by file extension),
builds the registry and prints its tree, values, JSON form or JSON Schema.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(a.v, a.configFile); err != nil {
				return &exitError{code: exitSysError, err: fmt.Errorf("load config: %w", err)}
			}
			log, err := newLogger(a.stderr, a.v.GetString(cfgKeyLogLevel))
			if err != nil {
				return &exitError{code: exitUserError, err: err}
			}
			a.log = log
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default: ./"+configFileName+".yaml)")
	pf.Int("max-depth", goenum.DefaultMaxDepth, "maximum nesting depth")
	pf.Int64("max-bytes", 0, "maximum input size in bytes (0 = unlimited)")
	pf.String("driver", driverStd, "JSON driver: std|gojson")
	pf.String("log-level", defaultLogLevel, "log level: debug|info|warn|error")
	if err := bindFlags(a.v, pf); err != nil {
		panic(err)
	}

	root.AddCommand(
		newInspectCmd(a),
		newValuesCmd(a),
		newCheckCmd(a),
		newDumpCmd(a),
		newSchemaCmd(a),
	)
	return root
}
