package notify

import (
	"context"
	"sync"

	"github.com/gabapcia/solrelay/internal/pkg/logger"
	"github.com/gabapcia/solrelay/internal/pkg/types"
	"github.com/gabapcia/solrelay/internal/pkg/x/chflow"
	"github.com/gabapcia/solrelay/internal/txnorm"
)

// TokenMetadata describes a token mint in human-readable terms. Price and
// MarketCap are optional: nil means the metadata source had no figure.
type TokenMetadata struct {
	Symbol    string   // short token symbol, e.g. "USDC"
	Name      string   // full token name
	Decimals  uint8    // raw-to-display scaling factor
	PriceUSD  *float64 // unit price in USD, when known
	MarketCap *float64 // market capitalization in USD, when known
}

// MetadataResolver looks up token metadata for a mint address from an
// external source.
type MetadataResolver interface {
	// Resolve returns metadata for the given mint. Implementations may fail
	// with an error; callers substitute fallback metadata and continue, so a
	// resolver failure never blocks notification delivery.
	Resolve(ctx context.Context, mint string) (TokenMetadata, error)
}

// fallbackMetadata substitutes for mints whose lookup failed.
var fallbackMetadata = TokenMetadata{
	Symbol:   "UNKNOWN",
	Decimals: 9,
}

// metadataCache memoizes resolved token metadata by mint address for the
// lifetime of the process. Concurrent webhook deliveries may race to
// populate the same key; last-write-wins is acceptable since entries derive
// from the same external source.
type metadataCache struct {
	mu   sync.RWMutex
	data map[string]TokenMetadata
}

func newMetadataCache() *metadataCache {
	return &metadataCache{
		data: make(map[string]TokenMetadata),
	}
}

func (c *metadataCache) get(mint string) (TokenMetadata, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	meta, ok := c.data[mint]
	return meta, ok
}

func (c *metadataCache) put(mint string, meta TokenMetadata) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[mint] = meta
}

// resolvedMint pairs a mint address with its lookup outcome for the
// enrichment fan-out below.
type resolvedMint struct {
	mint string
	meta TokenMetadata
}

// enrichTransfers resolves metadata for every distinct mint referenced by
// the given token transfers. Cached mints are answered locally; the rest
// fan out concurrently, each lookup independent so a timeout or error on
// one mint never corrupts its siblings. Failed lookups soft-fail to
// fallbackMetadata, which is cached too so repeated mints skip redundant
// external calls.
func (s *service) enrichTransfers(ctx context.Context, transfers []txnorm.TokenTransfer) map[string]TokenMetadata {
	mints := types.NewSet[string]()
	for _, transfer := range transfers {
		if transfer.Mint != "" {
			mints.Add(transfer.Mint)
		}
	}

	resolved := make(map[string]TokenMetadata, len(mints))

	pending := make([]string, 0, len(mints))
	for mint := range mints.ToIter() {
		if meta, ok := s.cache.get(mint); ok {
			resolved[mint] = meta
			continue
		}
		pending = append(pending, mint)
	}

	if len(pending) == 0 {
		return resolved
	}

	resultCh := make(chan resolvedMint, len(pending))
	for _, mint := range pending {
		go func(mint string) {
			meta, err := s.resolver.Resolve(ctx, mint)
			if err != nil {
				logger.Warn(ctx, "token metadata lookup failed, using fallback", "mint", mint, "error", err)
				meta = fallbackMetadata
			}
			chflow.Send(ctx, resultCh, resolvedMint{mint: mint, meta: meta})
		}(mint)
	}

	for range pending {
		result, ok := chflow.Receive(ctx, resultCh)
		if !ok {
			break
		}
		s.cache.put(result.mint, result.meta)
		resolved[result.mint] = result.meta
	}

	// Lookups cut short by context cancellation still need an answer.
	for _, mint := range pending {
		if _, ok := resolved[mint]; !ok {
			resolved[mint] = fallbackMetadata
		}
	}

	return resolved
}
