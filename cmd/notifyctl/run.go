package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/notifycenter/internal/host"
	"github.com/dshills/notifycenter/internal/notification"
)

// Control lines understood by run.
const (
	cmdSession = ":session"
	cmdReload  = ":reload"
)

func newRunCmd(global *globalOptions) *cobra.Command {
	var scripts []string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Post notifications read from standard input",
		Long: `Start the host and post one notification per input line.

Each line is "name" or "name payload". Blank lines and lines starting with
'#' are ignored. The control line ":session" starts a new session and
":reload" reloads the configuration file. With watch.enabled set, changes
to the configuration file are reloaded as well. Input ends the host at EOF.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLines(cmd, global, scripts)
		},
	}

	cmd.Flags().StringArrayVar(&scripts, "script", nil, "Lua script to load (repeatable)")
	return cmd
}

func runLines(cmd *cobra.Command, global *globalOptions, scripts []string) error {
	h, logger, err := setup(cmd, global, scripts)
	if err != nil {
		return err
	}
	defer h.Shutdown()

	if _, err := h.Start(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	lines, readErr := readLines(ctx, cmd.InOrStdin())

	// Changes are handed to this goroutine so reloads never overlap a post.
	var changes chan struct{}
	var watchErr chan error
	if h.Config().Watch.Enabled && global.configPath != "" {
		changes = make(chan struct{}, 1)
		watchErr = make(chan error, 1)
		go func() {
			watchErr <- h.WatchChanges(ctx, global.configPath, func() {
				select {
				case changes <- struct{}{}:
				default:
				}
			})
		}()
	}

	out := cmd.OutOrStdout()
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return <-readErr
			}
			if err := runLine(h, logger, out, global.configPath, line); err != nil {
				return err
			}

		case <-changes:
			if err := h.Reload(global.configPath); err != nil {
				continue
			}
			fmt.Fprintln(out, "config reloaded")

		case err := <-watchErr:
			if err != nil {
				return err
			}
			changes, watchErr = nil, nil
		}
	}
}

func runLine(h *host.Host, logger *zap.Logger, out io.Writer, configPath, line string) error {
	switch line {
	case cmdSession:
		if _, err := h.StartSession(); err != nil {
			return err
		}
		fmt.Fprintf(out, "session %d started\n", h.Sessions())
		return nil
	case cmdReload:
		if err := reload(h, configPath); err != nil {
			return err
		}
		fmt.Fprintln(out, "config reloaded")
		return nil
	}

	n := parseLine(line)
	c := h.Session()
	observers := c.Channel(n.Name()).Len()
	c.PostNotification(n)

	logger.Debug("posted", zap.String("name", string(n.Name())), zap.Int("observers", observers))
	fmt.Fprintf(out, "%s (%d observers)\n", n, observers)
	return nil
}

// readLines sends the non-blank, non-comment lines of r until EOF or ctx is
// done. The scanner error, if any, is delivered after lines is closed.
func readLines(ctx context.Context, r io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			select {
			case lines <- line:
			case <-ctx.Done():
				errc <- nil
				return
			}
		}
		errc <- scanner.Err()
	}()

	return lines, errc
}

// parseLine splits "name payload" at the first space.
func parseLine(line string) notification.Notification {
	name, payload, found := strings.Cut(line, " ")
	if !found {
		return notification.New(notification.Name(name))
	}
	return notification.NewWithPayload(notification.Name(name), nil, strings.TrimSpace(payload))
}

func reload(h *host.Host, path string) error {
	if path == "" {
		return fmt.Errorf("%s requires --config", cmdReload)
	}
	return h.Reload(path)
}
