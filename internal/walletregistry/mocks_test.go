package walletregistry

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type walletStorageMock struct {
	mock.Mock
}

func (m *walletStorageMock) SaveWallet(ctx context.Context, wallet TrackedWallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *walletStorageMock) DeleteWallet(ctx context.Context, address string) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *walletStorageMock) SetWalletActive(ctx context.Context, address string, active bool) error {
	args := m.Called(ctx, address, active)
	return args.Error(0)
}

func (m *walletStorageMock) ListWallets(ctx context.Context) ([]TrackedWallet, error) {
	args := m.Called(ctx)
	if wallets := args.Get(0); wallets != nil {
		return wallets.([]TrackedWallet), args.Error(1)
	}
	return nil, args.Error(1)
}
