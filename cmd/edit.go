package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/trevorspielman/JSONCodeChallenge/remote"
	"github.com/trevorspielman/JSONCodeChallenge/util"
)

type editCommand struct {
	cmd *cobra.Command
	O   struct {
		Unwrap bool
		Deep   bool
	}
}

func (v *editCommand) Command() *cobra.Command {
	if v.cmd != nil {
		return v.cmd
	}

	v.cmd = &cobra.Command{
		Use:   "edit [file]",
		Short: "Fetch, repair, edit and submit JSON interactively",
		Long: `Fetch the response from the remote API (or read file), repair it and open
it in an editor. The editor is reopened until the text is valid JSON, then
you are asked whether to submit it.

The editor is taken from the config file, $VISUAL or $EDITOR, in that order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.Execute(args)
		},
	}
	v.cmd.Flags().BoolVar(&v.O.Unwrap, "unwrap", false,
		"strip BOM, markdown code fences and surrounding text before parsing")
	v.cmd.Flags().BoolVar(&v.O.Deep, "deep", false,
		"try jsonrepair when the built-in repairs are not enough")

	return v.cmd
}

func (v editCommand) Execute(args []string) error {
	if len(args) > 1 {
		return NewErrorWithUsage("edit expects at most one argument: file")
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return NewErrorWithUsageF("%v", err)
	}

	var file string
	if len(args) == 1 {
		file = args[0]
	}
	return util.CmdEdit(context.Background(), remote.New(cfg), file,
		util.ResolveEditor(cfg.Editor),
		util.FixOptions{Unwrap: v.O.Unwrap, Deep: v.O.Deep})
}

var editCmd = editCommand{}

func init() {
	rootCmd.AddCommand(editCmd.Command())
}
