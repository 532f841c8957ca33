// Package walletregistry manages the set of wallet addresses registered for
// transaction monitoring. It validates input and delegates persistence to a
// WalletStorage backend; the processing pipeline only ever consumes the
// resulting set of active addresses.
package walletregistry

import "context"

// Service registers, unregisters, and pauses tracked wallets.
type Service interface {
	// Track registers a wallet for monitoring with an optional display
	// label. Tracking an already-registered wallet overwrites its label and
	// reactivates it.
	Track(ctx context.Context, address, label string) error

	// Untrack removes a wallet from monitoring entirely.
	Untrack(ctx context.Context, address string) error

	// Pause keeps the wallet registered but stops notifications for it.
	Pause(ctx context.Context, address string) error

	// Resume reactivates a paused wallet.
	Resume(ctx context.Context, address string) error

	// List returns every registered wallet, active or paused.
	List(ctx context.Context) ([]TrackedWallet, error)
}

// service is the concrete Service implementation backed by WalletStorage.
type service struct {
	walletStorage WalletStorage
}

var _ Service = (*service)(nil)

// New creates a walletregistry service using the provided storage backend.
func New(ws WalletStorage) *service {
	return &service{
		walletStorage: ws,
	}
}

func (s *service) Track(ctx context.Context, address, label string) error {
	wallet, err := buildTrackedWallet(address, label)
	if err != nil {
		return err
	}

	return s.walletStorage.SaveWallet(ctx, wallet)
}

func (s *service) Untrack(ctx context.Context, address string) error {
	return s.walletStorage.DeleteWallet(ctx, address)
}

func (s *service) Pause(ctx context.Context, address string) error {
	return s.walletStorage.SetWalletActive(ctx, address, false)
}

func (s *service) Resume(ctx context.Context, address string) error {
	return s.walletStorage.SetWalletActive(ctx, address, true)
}

func (s *service) List(ctx context.Context) ([]TrackedWallet, error) {
	return s.walletStorage.ListWallets(ctx)
}
