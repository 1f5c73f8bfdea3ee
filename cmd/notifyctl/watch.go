package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/notifycenter/internal/config"
	"github.com/dshills/notifycenter/internal/host"
	"github.com/dshills/notifycenter/internal/notification"
)

func newWatchCmd(global *globalOptions) *cobra.Command {
	var scripts []string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Restart the session whenever the configuration file changes",
		Long: `Start the host and watch the configuration file. Each change reloads
the configuration and, with session.reset_on_reload, starts a new session
that reloads the configured scripts. The file is watched whether or not
watch.enabled is set. Runs until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if global.configPath == "" {
				return fmt.Errorf("watch requires --config")
			}
			return runWatch(cmd, global, scripts)
		},
	}

	cmd.Flags().StringArrayVar(&scripts, "script", nil, "Lua script to load (repeatable)")
	return cmd
}

func runWatch(cmd *cobra.Command, global *globalOptions, scripts []string) error {
	h, _, err := setup(cmd, global, scripts)
	if err != nil {
		return err
	}
	defer h.Shutdown()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	announce := func(t *notification.Center) {
		t.Subscribe(host.SessionStarted, func(n notification.Notification) {
			info := notification.MustReadPayload[host.SessionInfo](n)
			fmt.Fprintf(out, "session %d started\n", info.Number)
		})
		t.Subscribe(host.ConfigReloaded, func(n notification.Notification) {
			cfg := notification.MustReadPayload[*config.Config](n)
			fmt.Fprintf(out, "config reloaded (log level %s)\n", cfg.Logging.Level)
		})
	}

	// The tooling center is created by Start, so the first session is
	// reported directly.
	if _, err := h.Start(); err != nil {
		return err
	}
	announce(h.Tooling())
	fmt.Fprintf(out, "session %d started\n", h.Sessions())

	return h.Watch(ctx, global.configPath)
}
