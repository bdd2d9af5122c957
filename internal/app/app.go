package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/rbright/obsctl/internal/cli"
	"github.com/rbright/obsctl/internal/dispatch"
	"github.com/rbright/obsctl/internal/logging"
	"github.com/rbright/obsctl/internal/obsws"
)

type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	r := Runner{Stdout: stdout, Stderr: stderr}
	return r.Execute(ctx, args)
}

// Execute runs one obsctl invocation and returns its exit code:
// 0 success, 1 fatal runtime failure, 2 usage error.
func (r Runner) Execute(ctx context.Context, args []string) int {
	parsed, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n\n", err)
		fmt.Fprint(r.Stderr, cli.HelpText(cli.BinaryName))
		return 2
	}

	if parsed.ShowHelp {
		fmt.Fprint(r.Stdout, parsed.HelpText)
		return 0
	}

	if !dispatch.NeedsRemote(parsed.Command) {
		d := dispatch.Dispatcher{Out: r.Stdout}
		if err := d.Run(ctx, parsed.Command); err != nil {
			fmt.Fprintf(r.Stderr, "error: %v\n", err)
			return 1
		}
		return 0
	}

	logRuntime, err := logging.New(logging.Options{Debug: parsed.Debug})
	if err != nil {
		fmt.Fprintf(r.Stderr, "warning: logging disabled: %v\n", err)
		logRuntime = logging.Discard()
	}
	defer func() { _ = logRuntime.Close() }()

	logger := r.Logger
	if logger == nil {
		logger = logRuntime.Logger
	}

	return r.commandRemote(ctx, parsed, logger, logRuntime.Path)
}

func (r Runner) commandRemote(ctx context.Context, parsed cli.Parsed, logger *slog.Logger, logPath string) int {
	name := parsed.Command.Name()
	endpoint := parsed.Connection.URL()

	logger.Info("command start",
		"command", name,
		"endpoint", endpoint,
		"password", parsed.Connection.HasPassword(),
		"log", logPath,
	)

	client, err := obsws.Dial(ctx, obsws.DialConfig{
		Address:  parsed.Connection.Address(),
		Password: parsed.Connection.Password,
		Logger:   logger,
	})
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: connect to %s: %v\n", endpoint, err)
		logger.Error("connect failed", "endpoint", endpoint, "error", err.Error())
		return 1
	}
	defer func() { _ = client.Close() }()

	started := time.Now()
	d := dispatch.Dispatcher{Remote: client, Out: r.Stdout, Logger: logger}
	if err := d.Run(ctx, parsed.Command); err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("command failed",
			"command", name,
			"duration_ms", time.Since(started).Milliseconds(),
			"error", err.Error(),
		)
		return 1
	}

	logger.Info("command complete",
		"command", name,
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return 0
}
