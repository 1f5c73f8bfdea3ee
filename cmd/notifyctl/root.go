package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/notifycenter/internal/config"
	"github.com/dshills/notifycenter/internal/host"
	"github.com/dshills/notifycenter/internal/logging"
	"github.com/dshills/notifycenter/internal/notification"
	"github.com/dshills/notifycenter/internal/plugin/lua"
)

// globalOptions holds flags shared by every command.
type globalOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "notifyctl",
		Short:         "Post and observe notifications from the command line",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file (.toml, .yaml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Override the configured log level")

	cmd.AddCommand(
		newPostCmd(opts),
		newRunCmd(opts),
		newWatchCmd(opts),
	)
	return cmd
}

// setup loads the configuration, builds the logger, and creates a host
// whose sessions run the configured scripts plus extra.
func setup(cmd *cobra.Command, opts *globalOptions, extra []string) (*host.Host, *zap.Logger, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}

	logger, err := logging.NewWithWriter(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}

	var h *host.Host
	scripts := func(c *notification.Center) (func(), error) {
		paths := slices.Concat(h.Config().Plugins.Scripts, extra)
		if len(paths) == 0 {
			return nil, nil
		}

		rt, err := lua.NewRuntime(c, lua.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := rt.LoadScripts(paths); err != nil {
			_ = rt.Close()
			return nil, err
		}
		return func() { _ = rt.Close() }, nil
	}

	h = host.New(cfg,
		host.WithLogger(logger),
		host.WithSessionHook(scripts),
	)
	return h, logging.Component(logger, logging.ComponentCLI), nil
}

// printer writes every notification it observes to the command output.
func printer(cmd *cobra.Command) notification.Callback {
	out := cmd.OutOrStdout()
	return func(n notification.Notification) {
		fmt.Fprintln(out, n)
	}
}
