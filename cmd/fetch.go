package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/trevorspielman/JSONCodeChallenge/remote"
	"github.com/trevorspielman/JSONCodeChallenge/util"
)

type fetchCommand struct {
	cmd *cobra.Command
	O   struct {
		Output string
		Unwrap bool
		Deep   bool
		Query  string
	}
}

func (v *fetchCommand) Command() *cobra.Command {
	if v.cmd != nil {
		return v.cmd
	}

	v.cmd = &cobra.Command{
		Use:   "fetch [-o file]",
		Short: "Fetch JSON from the remote API and repair it",
		Long: `Fetch the response from the remote API and try to parse it as JSON.
If parsing fails, trailing commas are removed, bare keys are quoted and an
unterminated string is closed, then the text is parsed once more.

On success the pretty-printed JSON is written. Otherwise the repaired but
still invalid text is written so it can be fixed by hand, the parse error is
shown and the command fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.Execute(args)
		},
	}

	fs := v.cmd.Flags()
	fs.SortFlags = false
	addFixFlags(fs, &v.O.Output, &v.O.Unwrap, &v.O.Deep, &v.O.Query)
	setGroupedUsage(v.cmd)
	_ = viper.BindPFlag("fetch--deep", fs.Lookup("deep"))

	return v.cmd
}

func (v fetchCommand) Execute(args []string) error {
	if len(args) != 0 {
		return NewErrorWithUsage("fetch command needs no arguments")
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return NewErrorWithUsageF("%v", err)
	}
	return util.CmdFetch(context.Background(), remote.New(cfg), util.FixOptions{
		Unwrap: v.O.Unwrap,
		Deep:   viper.GetBool("fetch--deep"),
		Query:  v.O.Query,
		Output: v.O.Output,
	})
}

var fetchCmd = fetchCommand{}

func init() {
	rootCmd.AddCommand(fetchCmd.Command())
}
