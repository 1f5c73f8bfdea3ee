package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/notifycenter/internal/notification"
)

type postOptions struct {
	sender  string
	payload string
	scripts []string
	print   []string
}

func newPostCmd(global *globalOptions) *cobra.Command {
	opts := &postOptions{}

	cmd := &cobra.Command{
		Use:   "post <name>",
		Short: "Start a session, post one notification, and print deliveries",
		Long: `Start a session, load scripts, post a single notification, and end
the session. The posted notification is printed once every earlier
observer has received it; use --print to also print other names.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPost(cmd, global, opts, notification.Name(args[0]))
		},
	}

	cmd.Flags().StringVar(&opts.sender, "sender", "", "Sender attached to the notification")
	cmd.Flags().StringVar(&opts.payload, "payload", "", "Payload attached to the notification")
	cmd.Flags().StringArrayVar(&opts.scripts, "script", nil, "Lua script to load (repeatable)")
	cmd.Flags().StringArrayVar(&opts.print, "print", nil, "Additional notification name to print (repeatable)")
	return cmd
}

func runPost(cmd *cobra.Command, global *globalOptions, opts *postOptions, name notification.Name) error {
	h, logger, err := setup(cmd, global, opts.scripts)
	if err != nil {
		return err
	}
	defer h.Shutdown()

	c, err := h.Start()
	if err != nil {
		return err
	}

	show := printer(cmd)
	c.Subscribe(name, show)
	for _, extra := range opts.print {
		c.Subscribe(notification.Name(extra), show)
	}

	var sender, payload any
	if cmd.Flags().Changed("sender") {
		sender = opts.sender
	}
	if cmd.Flags().Changed("payload") {
		payload = opts.payload
	}

	logger.Debug("posting", zap.String("name", string(name)))
	c.Post(name, sender, payload)
	return nil
}
