package cmd

import (
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/trevorspielman/JSONCodeChallenge/repair"
	"github.com/trevorspielman/JSONCodeChallenge/util"
)

type sanitizeCommand struct {
	cmd *cobra.Command
	O   struct {
		Output string
	}
}

func (v *sanitizeCommand) Command() *cobra.Command {
	if v.cmd != nil {
		return v.cmd
	}

	v.cmd = &cobra.Command{
		Use:   "sanitize <file|->",
		Short: "Apply the textual repairs without parsing",
		Long: `Remove trailing commas, quote bare keys and close an unterminated string,
then print the text. The output is not checked and may still be invalid.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.Execute(args)
		},
	}
	v.cmd.Flags().StringVarP(&v.O.Output, "output", "o", "",
		"write output to file (use - for stdout); default is stdout")

	return v.cmd
}

func (v sanitizeCommand) Execute(args []string) error {
	if len(args) != 1 {
		return NewErrorWithUsage("sanitize requires exactly one argument: <file|->")
	}
	text, err := util.ReadInput(args[0])
	if err != nil {
		return NewErrorWithUsageF("%v", err)
	}
	out, passes := repair.SanitizeReport(text)
	if len(passes) > 0 {
		log.Debugf("applied: %s", strings.Join(passes, ", "))
	}
	return util.WriteOutput(v.O.Output, out)
}

var sanitizeCmd = sanitizeCommand{}

func init() {
	rootCmd.AddCommand(sanitizeCmd.Command())
}
