package notify

import "context"

// DeliverySender posts one fully formatted message to the downstream chat
// channel. Implementations retry transient failures a bounded number of
// times with linearly increasing backoff; the formatter never retries on
// its own. Duplicate delivery on retry is acceptable since the downstream
// is a human-facing channel.
type DeliverySender interface {
	// Deliver posts the message. The wallet address is provided for logging
	// context only. A non-nil error means delivery failed after every
	// attempt and is terminal for this (transaction, wallet) pair.
	Deliver(ctx context.Context, wallet string, msg Message) error

	// Ping reports whether the downstream channel is currently reachable.
	// It is intended for connectivity self-tests.
	Ping(ctx context.Context) bool
}

// WalletDescriber supplies the optional display label for a tracked wallet.
type WalletDescriber interface {
	// DescribeWallet returns the wallet's label, or an empty string when no
	// label is registered.
	DescribeWallet(ctx context.Context, address string) (string, error)
}

// PriceOracle supplies the native-currency price used for USD estimates.
type PriceOracle interface {
	// SolPriceUSD returns the current SOL/USD rate. A zero value with a nil
	// error means the oracle has no figure; estimates are then omitted.
	SolPriceUSD(ctx context.Context) (float64, error)
}
