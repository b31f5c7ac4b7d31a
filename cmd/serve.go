package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/trevorspielman/JSONCodeChallenge/remote"
	"github.com/trevorspielman/JSONCodeChallenge/server"
)

type serveCommand struct {
	cmd *cobra.Command
}

func (v *serveCommand) Command() *cobra.Command {
	if v.cmd != nil {
		return v.cmd
	}

	v.cmd = &cobra.Command{
		Use:   "serve [--listen addr]",
		Short: "Serve the repair pipeline over HTTP",
		Long: `Start an HTTP server with these routes:
  POST /api/resolve   repair and parse the request body
  POST /api/parse     parse the request body strictly
  POST /api/sanitize  apply the textual repairs only
  GET  /api/fetch     fetch from the remote API, then resolve
  POST /api/submit    validate the body and send it to the remote API
  GET  /healthz

/api/fetch and /api/submit need api_base and email to be configured.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.Execute(args)
		},
	}
	v.cmd.Flags().String("listen", "", "address to listen on (default from config, 127.0.0.1:8000)")
	_ = viper.BindPFlag("listen", v.cmd.Flags().Lookup("listen"))

	return v.cmd
}

func (v serveCommand) Execute(args []string) error {
	if len(args) != 0 {
		return NewErrorWithUsage("serve command needs no arguments")
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := server.Options{MaxBodyBytes: cfg.MaxBodyBytes}
	if err := cfg.Validate(); err != nil {
		log.Warnf("remote API disabled: %v", err)
	} else {
		opts.Upstream = remote.New(cfg)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.Serve(ctx, cfg.Listen, server.Router(opts))
}

var serveCmd = serveCommand{}

func init() {
	rootCmd.AddCommand(serveCmd.Command())
}
