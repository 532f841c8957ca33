// Package cli wires the solrelay commands: running the webhook server and
// managing the tracked-wallet registry from the terminal.
package cli

import (
	"context"
	"os"

	"github.com/gabapcia/solrelay/internal/notify"
	"github.com/gabapcia/solrelay/internal/walletregistry"

	"github.com/urfave/cli/v3"
)

// WebhookServer runs the HTTP ingestion surface until its context is
// canceled.
type WebhookServer interface {
	Start(ctx context.Context) error
}

// Run initializes and executes the solrelay CLI application.
//
// It registers all available commands, including:
//
//   - `serve`: Starts the webhook relay server.
//   - `track`: Registers a wallet for notifications.
//   - `untrack`: Removes a wallet entirely.
//   - `pause` / `resume`: Toggles notifications for a wallet.
//   - `list`: Shows every registered wallet.
//   - `ping`: Checks the delivery channel.
//
// Parameters:
//   - ctx: Context used to control the lifecycle of the CLI application.
//   - wr: The walletregistry service implementation used by wallet commands.
//   - nt: The notify service implementation used by the ping command.
//   - srv: The webhook server run by the serve command.
func Run(ctx context.Context, wr walletregistry.Service, nt notify.Service, srv WebhookServer) error {
	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "solrelay",
		Description:           "Command-line interface for running and managing the solrelay webhook notifier.",
		Usage:                 "solrelay [command] [flags]",
		Commands: []*cli.Command{
			serveCommand(srv),
			trackWalletCommand(wr),
			untrackWalletCommand(wr),
			pauseWalletCommand(wr),
			resumeWalletCommand(wr),
			listWalletsCommand(wr),
			pingCommand(nt),
		},
	}

	return app.Run(ctx, os.Args)
}
