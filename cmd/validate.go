package cmd

import (
	"github.com/spf13/cobra"
	"github.com/trevorspielman/JSONCodeChallenge/util"
)

type validateCommand struct {
	cmd *cobra.Command
	O   struct {
		Check bool
		Query string
	}
}

func (v *validateCommand) Command() *cobra.Command {
	if v.cmd != nil {
		return v.cmd
	}

	v.cmd = &cobra.Command{
		Use:   "validate <file|->",
		Short: "Check edited JSON strictly",
		Long: `Parse the edited text strictly, without any repair. If it is valid the
file is rewritten pretty-printed (use --check to leave it untouched);
otherwise the parse error is shown and the command fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.Execute(args)
		},
	}
	v.cmd.Flags().BoolVar(&v.O.Check, "check", false,
		"only check, do not rewrite the file")
	v.cmd.Flags().StringVar(&v.O.Query, "query", "",
		"print the value at this path (gjson syntax, e.g. items.0.name)")

	return v.cmd
}

func (v validateCommand) Execute(args []string) error {
	if len(args) != 1 {
		return NewErrorWithUsage("validate requires exactly one argument: <file|->")
	}
	if args[0] != "-" && !util.Exist(args[0]) {
		return NewErrorWithUsage("file does not exist:", args[0])
	}
	return util.CmdValidate(args[0], v.O.Check, v.O.Query)
}

var validateCmd = validateCommand{}

func init() {
	rootCmd.AddCommand(validateCmd.Command())
}
