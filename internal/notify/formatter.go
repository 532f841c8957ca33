// Package notify formats one notification message per (transaction, wallet)
// pair and hands it to a delivery sender. Token transfers are enriched with
// best-effort metadata and classified as buys, sells, or plain transfers
// from the wallet's perspective.
package notify

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gabapcia/solrelay/internal/pkg/logger"
	"github.com/gabapcia/solrelay/internal/txnorm"
)

// explorerTxURLFormat builds the block-explorer link for a signature.
const explorerTxURLFormat = "https://solscan.io/tx/%s"

// Service formats and delivers wallet-activity notifications.
type Service interface {
	// Notify formats one message for the given transaction and implicated
	// wallet and delivers it. The message is fully assembled in memory
	// before any delivery attempt; a returned error is terminal for this
	// (transaction, wallet) pair only.
	Notify(ctx context.Context, tx txnorm.Transaction, wallet string) error

	// SelfTest reports whether the delivery channel is reachable.
	SelfTest(ctx context.Context) bool
}

type service struct {
	resolver  MetadataResolver
	sender    DeliverySender
	describer WalletDescriber
	oracle    PriceOracle
	cache     *metadataCache
}

var _ Service = (*service)(nil)

type config struct {
	oracle PriceOracle
}

// Option configures the notify service.
type Option func(*config)

// WithPriceOracle installs a price oracle used for USD estimates of native
// amounts. Without one, estimates are omitted from messages.
func WithPriceOracle(oracle PriceOracle) Option {
	return func(c *config) {
		c.oracle = oracle
	}
}

// New creates the notify service from its collaborators. The token-metadata
// cache lives for the lifetime of the service.
func New(resolver MetadataResolver, sender DeliverySender, describer WalletDescriber, opts ...Option) *service {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		resolver:  resolver,
		sender:    sender,
		describer: describer,
		oracle:    cfg.oracle,
		cache:     newMetadataCache(),
	}
}

func (s *service) Notify(ctx context.Context, tx txnorm.Transaction, wallet string) error {
	metadata := s.enrichTransfers(ctx, tx.TokenTransfers)
	classified := classifyTransfers(tx, wallet, metadata)

	label := wallet
	if s.describer != nil {
		if described, err := s.describer.DescribeWallet(ctx, wallet); err != nil {
			logger.Warn(ctx, "wallet label lookup failed", "wallet", wallet, "error", err)
		} else if described != "" {
			label = described
		}
	}

	msg := s.buildMessage(ctx, tx, wallet, label, classified)

	if err := s.sender.Deliver(ctx, wallet, msg); err != nil {
		return fmt.Errorf("delivering notification for wallet %s: %w", wallet, err)
	}

	return nil
}

func (s *service) SelfTest(ctx context.Context) bool {
	return s.sender.Ping(ctx)
}

// buildMessage assembles the complete notification for one wallet.
func (s *service) buildMessage(ctx context.Context, tx txnorm.Transaction, wallet, label string, classified []classifiedTransfer) Message {
	title, color := messageTheme(classified)

	msg := Message{
		Title:       title,
		Color:       color,
		Description: fmt.Sprintf("Activity on %s: %s", label, tx.Description),
		Fields: []Field{
			{Name: "Wallet", Value: TruncateAddress(wallet), Inline: true},
			{Name: "When", Value: fmt.Sprintf("<t:%d:R>", tx.Timestamp), Inline: true},
			{Name: "Fee", Value: tx.Fee.Format(6) + " SOL", Inline: true},
		},
	}

	solPrice := s.solPrice(ctx)
	for _, transfer := range classified {
		msg.Fields = append(msg.Fields, transferField(transfer, solPrice))
	}

	msg.Fields = append(msg.Fields, Field{
		Name:  "Explorer",
		Value: fmt.Sprintf(explorerTxURLFormat, tx.Signature),
	})

	return msg
}

// solPrice queries the oracle, treating any failure as "no figure".
func (s *service) solPrice(ctx context.Context) float64 {
	if s.oracle == nil {
		return 0
	}

	price, err := s.oracle.SolPriceUSD(ctx)
	if err != nil {
		logger.Warn(ctx, "price oracle lookup failed", "error", err)
		return 0
	}
	return price
}

// messageTheme picks the title and color from the dominant classification:
// pure buys, pure sells, a mix of both, transfers only, or nothing at all.
func messageTheme(classified []classifiedTransfer) (string, int) {
	var buys, sells, transfers int
	for _, transfer := range classified {
		switch transfer.Kind {
		case KindBuy:
			buys++
		case KindSell:
			sells++
		default:
			transfers++
		}
	}

	switch {
	case buys > 0 && sells > 0:
		return "🔄 New Swap", colorSwap
	case buys > 0:
		return "🟢 New Buy", colorBuy
	case sells > 0:
		return "🔴 New Sell", colorSell
	case transfers > 0:
		return "💸 Transfer", colorTransfer
	default:
		return "📣 Wallet Activity", colorGeneric
	}
}

// transferField renders one classified transfer as a message field.
func transferField(transfer classifiedTransfer, solPrice float64) Field {
	var name, value string

	switch transfer.Kind {
	case KindBuy:
		name = "Buy " + transfer.Symbol
		value = fmt.Sprintf("%s %s for %s SOL", formatAmount(transfer.TokenAmount), transfer.Symbol, formatAmount(transfer.SolAmount))
	case KindSell:
		name = "Sell " + transfer.Symbol
		value = fmt.Sprintf("%s %s for %s SOL", formatAmount(transfer.TokenAmount), transfer.Symbol, formatAmount(transfer.SolAmount))
	default:
		direction := "Sent"
		if transfer.Direction == DirectionReceived {
			direction = "Received"
		}

		name = direction + " " + transfer.Symbol
		if transfer.Mint == "" {
			value = fmt.Sprintf("%s SOL", formatAmount(transfer.SolAmount))
		} else {
			value = fmt.Sprintf("%s %s", formatAmount(transfer.TokenAmount), transfer.Symbol)
		}
	}

	if solPrice > 0 && transfer.SolAmount > 0 {
		value += fmt.Sprintf(" (~$%.2f)", transfer.SolAmount*solPrice)
	}

	if transfer.MarketCap != nil {
		value += " • MC " + formatUSD(*transfer.MarketCap)
	}

	if transfer.Counterparty != "" {
		value += " • with " + TruncateAddress(transfer.Counterparty)
	}

	return Field{Name: name, Value: value}
}

// formatAmount renders a display-unit amount with up to six decimals,
// trimming trailing zeros.
func formatAmount(amount float64) string {
	formatted := strconv.FormatFloat(amount, 'f', 6, 64)

	trimmed := len(formatted)
	for trimmed > 0 && formatted[trimmed-1] == '0' {
		trimmed--
	}
	if trimmed > 0 && formatted[trimmed-1] == '.' {
		trimmed--
	}
	return formatted[:trimmed]
}

// formatUSD renders a USD figure compactly: $1.23K, $4.56M, $7.89B.
func formatUSD(amount float64) string {
	switch {
	case amount >= 1e9:
		return fmt.Sprintf("$%.2fB", amount/1e9)
	case amount >= 1e6:
		return fmt.Sprintf("$%.2fM", amount/1e6)
	case amount >= 1e3:
		return fmt.Sprintf("$%.2fK", amount/1e3)
	default:
		return fmt.Sprintf("$%.2f", amount)
	}
}
