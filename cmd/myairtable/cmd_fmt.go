package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielrbaughman/myairtable/pkg/formula"
)

// fmtCmd formats an Airtable formula.
func fmtCmd() *cobra.Command {
	var condense bool
	var color bool

	cmd := &cobra.Command{
		Use:   "fmt [formula]",
		Short: "Format an Airtable formula",
		Long: `Pretty-print an Airtable formula with indentation, or collapse it to a
single line with --condense. The formula is read from the argument, or
from stdin when no argument is given.`,
		Example: `  myairtable fmt 'IF({Status}="Done",1,0)'

  # Format from stdin
  pbpaste | myairtable fmt

  # Collapse to one line
  myairtable fmt --condense "$(cat long_formula.txt)"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var src string
			if len(args) == 1 {
				src = args[0]
			} else {
				raw, err := io.ReadAll(os.Stdin)
				if err != nil {
					return err
				}
				src = string(raw)
			}
			src = strings.TrimSpace(src)
			if src == "" {
				return fmt.Errorf("no formula given, pass one as an argument or on stdin")
			}

			var out string
			if condense {
				out = formula.Condense(src)
			} else {
				out = formula.Format(src)
			}
			if color {
				out = formula.Highlight(out)
			}

			fmt.Println(out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&condense, "condense", false, "Collapse the formula to a single line")
	cmd.Flags().BoolVar(&color, "color", false, "Syntax-highlight the output")

	return cmd
}
