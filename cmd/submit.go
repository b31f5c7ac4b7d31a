package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/trevorspielman/JSONCodeChallenge/remote"
	"github.com/trevorspielman/JSONCodeChallenge/util"
)

type submitCommand struct {
	cmd *cobra.Command
}

func (v *submitCommand) Command() *cobra.Command {
	if v.cmd != nil {
		return v.cmd
	}

	v.cmd = &cobra.Command{
		Use:   "submit <file|->",
		Short: "Validate edited JSON and send it to the remote API",
		Long: `Parse the edited text strictly and, if valid, POST it to the remote API as
{"email": <email>, "data": <compact JSON text>}. Invalid text is refused.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.Execute(args)
		},
	}

	return v.cmd
}

func (v submitCommand) Execute(args []string) error {
	if len(args) != 1 {
		return NewErrorWithUsage("submit requires exactly one argument: <file|->")
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return NewErrorWithUsageF("%v", err)
	}
	return util.CmdSubmit(context.Background(), remote.New(cfg), args[0])
}

var submitCmd = submitCommand{}

func init() {
	rootCmd.AddCommand(submitCmd.Command())
}
