package relay

import (
	"context"

	"github.com/gabapcia/solrelay/internal/txnorm"
)

// AddressRegistry supplies the set of currently tracked wallet addresses.
// It is read-only from the relay's perspective; wallet lifecycle is owned by
// the registry service.
type AddressRegistry interface {
	// ListActiveAddresses returns the active tracked addresses as a flat
	// collection, with no ordering guarantee. It is called once per webhook
	// delivery.
	ListActiveAddresses(ctx context.Context) ([]string, error)
}

// Notifier formats and delivers one notification per (transaction, wallet)
// pair. A returned error is terminal for that pair only.
type Notifier interface {
	Notify(ctx context.Context, tx txnorm.Transaction, wallet string) error
}
