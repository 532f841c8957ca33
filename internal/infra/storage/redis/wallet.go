package redis

import (
	"context"
	"errors"

	"github.com/gabapcia/solrelay/internal/notify"
	"github.com/gabapcia/solrelay/internal/relay"
	"github.com/gabapcia/solrelay/internal/walletregistry"

	redis "github.com/redis/go-redis/v9"
)

// Redis keys for the tracked-wallet registry.
//
//   - wallet:registry:all    set of every registered address
//   - wallet:registry:active set of addresses currently receiving notifications
//   - wallet:registry:labels hash of address -> display label
const (
	walletAllKey    = "wallet:registry:all"
	walletActiveKey = "wallet:registry:active"
	walletLabelsKey = "wallet:registry:labels"
)

// SaveWallet implements walletregistry.WalletStorage. It registers the
// address, stores or clears its label, and sets its active membership, all
// in one pipeline.
func (c *client) SaveWallet(ctx context.Context, wallet walletregistry.TrackedWallet) error {
	pipe := c.conn.TxPipeline()

	pipe.SAdd(ctx, walletAllKey, wallet.Address)

	if wallet.Label != "" {
		pipe.HSet(ctx, walletLabelsKey, wallet.Address, wallet.Label)
	} else {
		pipe.HDel(ctx, walletLabelsKey, wallet.Address)
	}

	if wallet.Active {
		pipe.SAdd(ctx, walletActiveKey, wallet.Address)
	} else {
		pipe.SRem(ctx, walletActiveKey, wallet.Address)
	}

	_, err := pipe.Exec(ctx)
	return err
}

// DeleteWallet implements walletregistry.WalletStorage.
func (c *client) DeleteWallet(ctx context.Context, address string) error {
	pipe := c.conn.TxPipeline()

	pipe.SRem(ctx, walletAllKey, address)
	pipe.SRem(ctx, walletActiveKey, address)
	pipe.HDel(ctx, walletLabelsKey, address)

	_, err := pipe.Exec(ctx)
	return err
}

// SetWalletActive implements walletregistry.WalletStorage. Flipping the flag
// for an unregistered address is a no-op.
func (c *client) SetWalletActive(ctx context.Context, address string, active bool) error {
	if !active {
		return c.conn.SRem(ctx, walletActiveKey, address).Err()
	}

	registered, err := c.conn.SIsMember(ctx, walletAllKey, address).Result()
	if err != nil {
		return err
	}
	if !registered {
		return nil
	}

	return c.conn.SAdd(ctx, walletActiveKey, address).Err()
}

// ListWallets implements walletregistry.WalletStorage.
func (c *client) ListWallets(ctx context.Context) ([]walletregistry.TrackedWallet, error) {
	addresses, err := c.conn.SMembers(ctx, walletAllKey).Result()
	if err != nil {
		return nil, err
	}
	if len(addresses) == 0 {
		return nil, nil
	}

	activeResult, err := c.conn.SMIsMember(ctx, walletActiveKey, addressesAsAny(addresses)...).Result()
	if err != nil {
		return nil, err
	}

	labels, err := c.conn.HGetAll(ctx, walletLabelsKey).Result()
	if err != nil {
		return nil, err
	}

	wallets := make([]walletregistry.TrackedWallet, len(addresses))
	for i, address := range addresses {
		wallets[i] = walletregistry.TrackedWallet{
			Address: address,
			Label:   labels[address],
			Active:  activeResult[i],
		}
	}

	return wallets, nil
}

// ListActiveAddresses implements relay.AddressRegistry.
func (c *client) ListActiveAddresses(ctx context.Context) ([]string, error) {
	return c.conn.SMembers(ctx, walletActiveKey).Result()
}

// DescribeWallet implements notify.WalletDescriber. An unlabeled wallet
// yields an empty string, not an error.
func (c *client) DescribeWallet(ctx context.Context, address string) (string, error) {
	label, err := c.conn.HGet(ctx, walletLabelsKey, address).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return label, nil
}

// addressesAsAny converts addresses for the SMIsMember variadic call.
func addressesAsAny(addresses []string) []any {
	result := make([]any, len(addresses))
	for i, address := range addresses {
		result[i] = address
	}
	return result
}

var (
	_ walletregistry.WalletStorage = (*client)(nil)
	_ relay.AddressRegistry        = (*client)(nil)
	_ notify.WalletDescriber       = (*client)(nil)
)
