package cli

import (
	"context"
	"os"
	"testing"

	"github.com/gabapcia/solrelay/internal/notify"
	"github.com/gabapcia/solrelay/internal/txnorm"
	"github.com/gabapcia/solrelay/internal/walletregistry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type walletRegistryMock struct {
	mock.Mock
}

var _ walletregistry.Service = (*walletRegistryMock)(nil)

func (m *walletRegistryMock) Track(ctx context.Context, address, label string) error {
	return m.Called(ctx, address, label).Error(0)
}

func (m *walletRegistryMock) Untrack(ctx context.Context, address string) error {
	return m.Called(ctx, address).Error(0)
}

func (m *walletRegistryMock) Pause(ctx context.Context, address string) error {
	return m.Called(ctx, address).Error(0)
}

func (m *walletRegistryMock) Resume(ctx context.Context, address string) error {
	return m.Called(ctx, address).Error(0)
}

func (m *walletRegistryMock) List(ctx context.Context) ([]walletregistry.TrackedWallet, error) {
	args := m.Called(ctx)
	return args.Get(0).([]walletregistry.TrackedWallet), args.Error(1)
}

type notifyServiceMock struct {
	mock.Mock
}

var _ notify.Service = (*notifyServiceMock)(nil)

func (m *notifyServiceMock) Notify(ctx context.Context, tx txnorm.Transaction, wallet string) error {
	return m.Called(ctx, tx, wallet).Error(0)
}

func (m *notifyServiceMock) SelfTest(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

type webhookServerMock struct {
	mock.Mock
}

var _ WebhookServer = (*webhookServerMock)(nil)

func (m *webhookServerMock) Start(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestRun(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	const address = "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T"

	t.Run("should handle the serve command", func(t *testing.T) {
		wr := new(walletRegistryMock)
		nt := new(notifyServiceMock)
		srv := new(webhookServerMock)

		srv.On("Start", mock.Anything).Return(assert.AnError).Once()

		os.Args = []string{"solrelay", "serve"}
		err := Run(t.Context(), wr, nt, srv)

		assert.ErrorIs(t, err, assert.AnError)
		srv.AssertExpectations(t)
	})

	t.Run("should handle the track command with label", func(t *testing.T) {
		wr := new(walletRegistryMock)
		nt := new(notifyServiceMock)
		srv := new(webhookServerMock)

		wr.On("Track", mock.Anything, address, "treasury").Return(nil).Once()

		os.Args = []string{"solrelay", "track", "--address", address, "--label", "treasury"}
		err := Run(t.Context(), wr, nt, srv)

		assert.NoError(t, err)
		wr.AssertExpectations(t)
	})

	t.Run("should fail the track command when the address flag is missing", func(t *testing.T) {
		wr := new(walletRegistryMock)
		nt := new(notifyServiceMock)
		srv := new(webhookServerMock)

		os.Args = []string{"solrelay", "track"}
		err := Run(t.Context(), wr, nt, srv)

		assert.Error(t, err)
		wr.AssertNotCalled(t, "Track", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should handle the untrack command", func(t *testing.T) {
		wr := new(walletRegistryMock)
		nt := new(notifyServiceMock)
		srv := new(webhookServerMock)

		wr.On("Untrack", mock.Anything, address).Return(nil).Once()

		os.Args = []string{"solrelay", "untrack", "--address", address}
		err := Run(t.Context(), wr, nt, srv)

		assert.NoError(t, err)
		wr.AssertExpectations(t)
	})

	t.Run("should handle the pause command", func(t *testing.T) {
		wr := new(walletRegistryMock)
		nt := new(notifyServiceMock)
		srv := new(webhookServerMock)

		wr.On("Pause", mock.Anything, address).Return(nil).Once()

		os.Args = []string{"solrelay", "pause", "--address", address}
		err := Run(t.Context(), wr, nt, srv)

		assert.NoError(t, err)
		wr.AssertExpectations(t)
	})

	t.Run("should handle the resume command", func(t *testing.T) {
		wr := new(walletRegistryMock)
		nt := new(notifyServiceMock)
		srv := new(webhookServerMock)

		wr.On("Resume", mock.Anything, address).Return(nil).Once()

		os.Args = []string{"solrelay", "resume", "--address", address}
		err := Run(t.Context(), wr, nt, srv)

		assert.NoError(t, err)
		wr.AssertExpectations(t)
	})

	t.Run("should handle the list command", func(t *testing.T) {
		wr := new(walletRegistryMock)
		nt := new(notifyServiceMock)
		srv := new(webhookServerMock)

		wallets := []walletregistry.TrackedWallet{
			{Address: address, Label: "treasury", Active: true},
			{Address: "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM", Active: false},
		}
		wr.On("List", mock.Anything).Return(wallets, nil).Once()

		os.Args = []string{"solrelay", "list"}
		err := Run(t.Context(), wr, nt, srv)

		assert.NoError(t, err)
		wr.AssertExpectations(t)
	})

	t.Run("should surface registry errors from the list command", func(t *testing.T) {
		wr := new(walletRegistryMock)
		nt := new(notifyServiceMock)
		srv := new(webhookServerMock)

		wr.On("List", mock.Anything).Return([]walletregistry.TrackedWallet(nil), assert.AnError).Once()

		os.Args = []string{"solrelay", "list"}
		err := Run(t.Context(), wr, nt, srv)

		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("should handle the ping command when the channel answers", func(t *testing.T) {
		wr := new(walletRegistryMock)
		nt := new(notifyServiceMock)
		srv := new(webhookServerMock)

		nt.On("SelfTest", mock.Anything).Return(true).Once()

		os.Args = []string{"solrelay", "ping"}
		err := Run(t.Context(), wr, nt, srv)

		assert.NoError(t, err)
		nt.AssertExpectations(t)
	})

	t.Run("should fail the ping command when the channel is unreachable", func(t *testing.T) {
		wr := new(walletRegistryMock)
		nt := new(notifyServiceMock)
		srv := new(webhookServerMock)

		nt.On("SelfTest", mock.Anything).Return(false).Once()

		os.Args = []string{"solrelay", "ping"}
		err := Run(t.Context(), wr, nt, srv)

		assert.ErrorIs(t, err, ErrDeliveryChannelUnreachable)
	})
}
