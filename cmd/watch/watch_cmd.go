package watch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LegacyCodeHQ/ecocap/cmd/check"
	"github.com/LegacyCodeHQ/ecocap/internal/mcplogdlog"
	"github.com/spf13/cobra"
)

type watchOptions struct {
	check *check.Options
	serve bool
	port  int
}

// NewCommand returns a new watch command instance.
func NewCommand() *cobra.Command {
	opts := &watchOptions{
		check: check.DefaultOptions(),
		port:  4900,
	}

	cmd := &cobra.Command{
		Use:   "watch <build.gradle.kts|coordinates.txt>",
		Short: "Re-run check whenever the input or catalog changes",
		Long: `Run check once, then again every time the input file or the --catalog file
is written. Unresolved conflicts are reported but do not stop the watch.

With --serve the latest report is also streamed to a page at localhost.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts, args[0])
		},
	}

	check.AddFlags(cmd, opts.check)
	cmd.Flags().BoolVar(&opts.serve, "serve", false, "Serve a live-updating report over HTTP")
	cmd.Flags().IntVarP(&opts.port, "port", "P", opts.port, "HTTP server port for --serve")

	return cmd
}

func runWatch(cmd *cobra.Command, opts *watchOptions, input string) error {
	if opts.check.CommitID != "" {
		return fmt.Errorf("--commit cannot be combined with watch")
	}

	target, err := newWatchTarget(input, opts.check.CatalogPath)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var b *broker
	if opts.serve {
		b = newBroker()
		srv := newServer(b, opts.port)
		ln, err := net.Listen("tcp", fmt.Sprintf(":%d", opts.port))
		if err != nil {
			return fmt.Errorf("failed to listen on port %d: %w", opts.port, err)
		}
		go srv.Serve(ln)
		defer srv.Close()
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if err := runOnce(out, errOut, opts.check, input, b); err != nil {
		return fmt.Errorf("initial check failed: %w", err)
	}

	fmt.Fprintf(out, "Watching %s\n", input)
	if opts.serve {
		fmt.Fprintf(out, "Serving at http://localhost:%d\n", opts.port)
	}
	fmt.Fprintf(out, "Press Ctrl+C to stop\n")

	return watchAndRerun(ctx, target, errOut, func() {
		if err := runOnce(out, errOut, opts.check, input, b); err != nil {
			fmt.Fprintf(errOut, "check error: %v\n", err)
		}
	})
}

// runOnce checks input, writes the report to out and publishes it when b is non-nil.
func runOnce(out, errOut io.Writer, opts *check.Options, input string, b *broker) error {
	var buf bytes.Buffer
	r, err := check.Run(&buf, opts, input)
	if err != nil {
		return err
	}
	if _, err := out.Write(buf.Bytes()); err != nil {
		return err
	}
	if b != nil {
		b.publish(newReportEvent(r, opts.OutputFormat, buf.String(), time.Now()))
	}
	if r.HasUnresolved() {
		fmt.Fprintf(errOut, "%d unresolved capability conflicts\n", len(r.Unresolved))
	}
	mcplogdlog.Debug("watch rerun", mcplogdlog.Fields{"input": input, "unresolved": len(r.Unresolved)})
	return nil
}
