package cmd

import (
	"github.com/spf13/cobra"
	"github.com/trevorspielman/JSONCodeChallenge/util"
)

type resolveCommand struct {
	cmd *cobra.Command
	O   struct {
		Output string
		Unwrap bool
		Deep   bool
		Query  string
	}
}

func (v *resolveCommand) Command() *cobra.Command {
	if v.cmd != nil {
		return v.cmd
	}

	v.cmd = &cobra.Command{
		Use:   "resolve <file|->",
		Short: "Repair JSON from a file or stdin",
		Long: `Run the same parse, repair and reparse steps as fetch on local text.
Use - to read from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.Execute(args)
		},
	}

	fs := v.cmd.Flags()
	fs.SortFlags = false
	addFixFlags(fs, &v.O.Output, &v.O.Unwrap, &v.O.Deep, &v.O.Query)
	setGroupedUsage(v.cmd)

	return v.cmd
}

func (v resolveCommand) Execute(args []string) error {
	if len(args) != 1 {
		return NewErrorWithUsage("resolve requires exactly one argument: <file|->")
	}
	raw, err := util.ReadInput(args[0])
	if err != nil {
		return NewErrorWithUsageF("%v", err)
	}
	opts := util.FixOptions{
		Unwrap: v.O.Unwrap,
		Deep:   v.O.Deep,
		Query:  v.O.Query,
		Output: v.O.Output,
	}
	return util.ShowResolution(util.ResolveText(raw, opts), opts)
}

var resolveCmd = resolveCommand{}

func init() {
	rootCmd.AddCommand(resolveCmd.Command())
}
