package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gabapcia/solrelay/internal/notify"

	"github.com/urfave/cli/v3"
)

// serveCommand returns a CLI command that starts the webhook relay server
// and keeps it running until interrupted.
//
// Usage example:
//
//	solrelay serve
//
// The process runs indefinitely until it receives an interrupt (SIGINT or
// SIGTERM), at which point in-flight requests are drained before exit.
func serveCommand(srv WebhookServer) *cli.Command {
	return &cli.Command{
		Name:        "serve",
		Description: "Starts the webhook relay server that receives deliveries and dispatches notifications.",
		Usage:       "Runs the HTTP ingestion server. Terminates gracefully on Ctrl+C or termination signals.",
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Start(ctx)
		},
	}
}

// ErrDeliveryChannelUnreachable is returned by the ping command when the
// delivery channel does not answer.
var ErrDeliveryChannelUnreachable = errors.New("delivery channel unreachable")

// pingCommand returns a CLI command that checks whether the configured
// delivery channel is reachable.
//
// Usage example:
//
//	solrelay ping
func pingCommand(nt notify.Service) *cli.Command {
	return &cli.Command{
		Name:        "ping",
		Description: "Checks connectivity to the configured notification channel.",
		Usage:       "Exits successfully when the delivery channel answers, with an error otherwise.",
		Action: func(ctx context.Context, c *cli.Command) error {
			if !nt.SelfTest(ctx) {
				return ErrDeliveryChannelUnreachable
			}

			fmt.Println("delivery channel reachable")
			return nil
		},
	}
}
