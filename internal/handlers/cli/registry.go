package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/gabapcia/solrelay/internal/walletregistry"

	"github.com/urfave/cli/v3"
)

// trackWalletCommand returns a CLI command that registers a wallet address
// for activity notifications, with an optional display label.
//
// Usage example:
//
//	solrelay track --address 4Nd1mB... --label treasury
func trackWalletCommand(wr walletregistry.Service) *cli.Command {
	return &cli.Command{
		Name:        "track",
		Description: "Register a wallet so its transaction activity produces notifications.",
		Usage:       "Registers a wallet address. Tracking an already-registered wallet updates its label and reactivates it.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "address",
				Usage:    "Wallet address to start tracking",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "label",
				Usage: "Display label shown in notifications instead of the raw address",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			var (
				address = c.String("address")
				label   = c.String("label")
			)

			return wr.Track(ctx, address, label)
		},
	}
}

// untrackWalletCommand returns a CLI command that removes a wallet address
// from the registry entirely.
//
// Usage example:
//
//	solrelay untrack --address 4Nd1mB...
func untrackWalletCommand(wr walletregistry.Service) *cli.Command {
	return &cli.Command{
		Name:        "untrack",
		Description: "Remove a wallet from the registry, stopping all notifications for it.",
		Usage:       "Unregisters a wallet address. Untracking an unknown wallet is not an error.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "address",
				Usage:    "Wallet address to stop tracking",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return wr.Untrack(ctx, c.String("address"))
		},
	}
}

// pauseWalletCommand returns a CLI command that keeps a wallet registered
// but suspends its notifications.
//
// Usage example:
//
//	solrelay pause --address 4Nd1mB...
func pauseWalletCommand(wr walletregistry.Service) *cli.Command {
	return &cli.Command{
		Name:        "pause",
		Description: "Suspend notifications for a wallet without removing it from the registry.",
		Usage:       "Pauses a tracked wallet. Its label and registration survive until untracked.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "address",
				Usage:    "Wallet address to pause",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return wr.Pause(ctx, c.String("address"))
		},
	}
}

// resumeWalletCommand returns a CLI command that reactivates a paused
// wallet.
//
// Usage example:
//
//	solrelay resume --address 4Nd1mB...
func resumeWalletCommand(wr walletregistry.Service) *cli.Command {
	return &cli.Command{
		Name:        "resume",
		Description: "Reactivate notifications for a previously paused wallet.",
		Usage:       "Resumes a tracked wallet.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "address",
				Usage:    "Wallet address to resume",
				Required: true,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return wr.Resume(ctx, c.String("address"))
		},
	}
}

// listWalletsCommand returns a CLI command that prints every registered
// wallet, active or paused.
//
// Usage example:
//
//	solrelay list
func listWalletsCommand(wr walletregistry.Service) *cli.Command {
	return &cli.Command{
		Name:        "list",
		Description: "Show every registered wallet with its label and status.",
		Usage:       "Lists tracked wallets.",
		Action: func(ctx context.Context, c *cli.Command) error {
			wallets, err := wr.List(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ADDRESS\tLABEL\tSTATUS")
			for _, wallet := range wallets {
				status := "active"
				if !wallet.Active {
					status = "paused"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", wallet.Address, wallet.Label, status)
			}

			return w.Flush()
		},
	}
}
