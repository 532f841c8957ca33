// Package dexscreener resolves token metadata from the public DexScreener
// API. Lookups are best effort: callers are expected to substitute fallback
// metadata when a mint cannot be resolved.
package dexscreener

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gabapcia/solrelay/internal/notify"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://api.dexscreener.com"
	defaultTimeout = 10 * time.Second

	// Display decimals reported for mints whose pairs carry no decimal
	// information. Matches the native token's scaling.
	defaultDecimals = 9
)

// ErrTokenNotFound indicates DexScreener has no trading pair for the mint.
var ErrTokenNotFound = errors.New("token not found")

// Client queries DexScreener's token-pairs endpoint.
type Client struct {
	http *resty.Client
}

var _ notify.MetadataResolver = (*Client)(nil)

type config struct {
	baseURL string
	timeout time.Duration
}

// Option configures the DexScreener client.
type Option func(*config)

// WithBaseURL overrides the API base URL. Intended for tests.
func WithBaseURL(url string) Option {
	return func(c *config) {
		c.baseURL = url
	}
}

// WithTimeout bounds each lookup request. Default: 10 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// New creates a DexScreener metadata client.
func New(opts ...Option) *Client {
	cfg := config{
		baseURL: defaultBaseURL,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Client{
		http: resty.New().
			SetBaseURL(cfg.baseURL).
			SetTimeout(cfg.timeout).
			SetHeader("Accept", "application/json"),
	}
}

// pair is the subset of a DexScreener trading pair the resolver reads.
type pair struct {
	BaseToken struct {
		Address string `json:"address"`
		Name    string `json:"name"`
		Symbol  string `json:"symbol"`
	} `json:"baseToken"`
	PriceUSD  string   `json:"priceUsd"`
	MarketCap *float64 `json:"marketCap"`
	Liquidity struct {
		USD float64 `json:"usd"`
	} `json:"liquidity"`
	Info struct {
		Decimals *uint8 `json:"decimals"`
	} `json:"info"`
}

// Resolve implements notify.MetadataResolver. When a mint trades in several
// pairs, the pair with the deepest USD liquidity wins.
func (c *Client) Resolve(ctx context.Context, mint string) (notify.TokenMetadata, error) {
	var pairs []pair
	res, err := c.http.R().
		SetContext(ctx).
		SetResult(&pairs).
		Get("/tokens/v1/solana/" + mint)
	if err != nil {
		return notify.TokenMetadata{}, fmt.Errorf("querying dexscreener: %w", err)
	}
	if res.IsError() {
		return notify.TokenMetadata{}, fmt.Errorf("querying dexscreener: unexpected status %d", res.StatusCode())
	}

	best, ok := bestPair(pairs, mint)
	if !ok {
		return notify.TokenMetadata{}, fmt.Errorf("%w: %s", ErrTokenNotFound, mint)
	}

	meta := notify.TokenMetadata{
		Symbol:    best.BaseToken.Symbol,
		Name:      best.BaseToken.Name,
		Decimals:  defaultDecimals,
		MarketCap: best.MarketCap,
	}
	if best.Info.Decimals != nil {
		meta.Decimals = *best.Info.Decimals
	}
	if price, err := strconv.ParseFloat(best.PriceUSD, 64); err == nil {
		meta.PriceUSD = &price
	}

	return meta, nil
}

// bestPair picks the pair whose base token matches the mint and whose USD
// liquidity is deepest.
func bestPair(pairs []pair, mint string) (pair, bool) {
	var (
		best  pair
		found bool
	)
	for _, p := range pairs {
		if p.BaseToken.Address != mint {
			continue
		}
		if !found || p.Liquidity.USD > best.Liquidity.USD {
			best = p
			found = true
		}
	}
	return best, found
}
