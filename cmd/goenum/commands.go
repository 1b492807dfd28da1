package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/goenum"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the registry tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, goenum.RootPath)
			return printTree(a.stdout, root, 1)
		},
	}
}

// printTree writes one line per child; leaves carrying metadata get a
// trailing meta=... marker.
func printTree(w io.Writer, n *goenum.Node, indent int) error {
	pad := strings.Repeat("  ", indent)
	for key, c := range n.All() {
		switch c := c.(type) {
		case *goenum.Node:
			fmt.Fprintf(w, "%s%s\n", pad, key)
			if err := printTree(w, c, indent+1); err != nil {
				return err
			}
		case *goenum.Item:
			line := pad + key + " = " + formatValue(c.Value())
			if c.HasMeta() {
				mb, err := gojson.Marshal(c.Meta())
				if err != nil {
					return &exitError{code: exitSysError, err: err}
				}
				line += "  meta=" + string(mb)
			}
			fmt.Fprintln(w, line)
		}
	}
	return nil
}

func formatValue(v goenum.Value) string {
	if s, ok := v.AsString(); ok {
		return strconv.Quote(s)
	}
	return v.String()
}

func newValuesCmd(a *app) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "values FILE",
		Short: "List the direct values of a level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.load(args[0])
			if err != nil {
				return err
			}
			n, err := level(root, at)
			if err != nil {
				return err
			}
			for _, v := range n.Features().Values() {
				fmt.Fprintln(a.stdout, v.String())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "dotted path of the level (default: root)")
	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	var (
		at     string
		number bool
	)
	cmd := &cobra.Command{
		Use:   "check FILE VALUE",
		Short: "Exit 0 when VALUE is a direct value of the level, 1 otherwise",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var candidate any = args[1]
			if number {
				f, err := strconv.ParseFloat(args[1], 64)
				if err != nil {
					return userErrorf("not a number: %q", args[1])
				}
				candidate = f
			}
			root, err := a.load(args[0])
			if err != nil {
				return err
			}
			n, err := level(root, at)
			if err != nil {
				return err
			}
			ok := n.Features().Contains(candidate)
			fmt.Fprintln(a.stdout, ok)
			if !ok {
				return &exitError{code: exitUserError, silent: true}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "dotted path of the level (default: root)")
	cmd.Flags().BoolVar(&number, "number", false, "treat VALUE as a number")
	return cmd
}

func newDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump FILE",
		Short: "Print the registry as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.load(args[0])
			if err != nil {
				return err
			}
			return writeJSON(a.stdout, root)
		},
	}
}

func newSchemaCmd(a *app) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "schema FILE",
		Short: "Print the JSON Schema of a level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := a.load(args[0])
			if err != nil {
				return err
			}
			n, err := level(root, at)
			if err != nil {
				return err
			}
			return writeJSON(a.stdout, n.JSONSchema())
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "dotted path of the level (default: root)")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	b, err := gojson.MarshalIndent(v, "", "  ")
	if err != nil {
		return &exitError{code: exitSysError, err: err}
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
