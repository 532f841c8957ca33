package walletregistry

import (
	"context"

	"github.com/gabapcia/solrelay/internal/pkg/validator"
)

// TrackedWallet is one wallet address registered for activity monitoring,
// with an optional display label and an active flag. Only active wallets
// participate in involvement matching.
type TrackedWallet struct {
	Address string `validate:"required,base58"` // Solana wallet address
	Label   string // optional display label used in notifications
	Active  bool   // whether the wallet currently receives notifications
}

// WalletStorage is the persistence contract for tracked wallets.
//
// Implementations must be idempotent: saving an already-tracked wallet or
// deleting an unknown one is not an error.
type WalletStorage interface {
	// SaveWallet stores the wallet, overwriting any previous registration
	// for the same address.
	SaveWallet(ctx context.Context, wallet TrackedWallet) error

	// DeleteWallet removes the wallet registration entirely.
	DeleteWallet(ctx context.Context, address string) error

	// SetWalletActive flips the wallet's active flag without touching its
	// label.
	SetWalletActive(ctx context.Context, address string, active bool) error

	// ListWallets returns every registered wallet, active or not, in no
	// particular order.
	ListWallets(ctx context.Context) ([]TrackedWallet, error)
}

// buildTrackedWallet constructs and validates a TrackedWallet. New wallets
// start active.
func buildTrackedWallet(address, label string) (TrackedWallet, error) {
	wallet := TrackedWallet{
		Address: address,
		Label:   label,
		Active:  true,
	}

	return wallet, validator.Validate(wallet)
}
