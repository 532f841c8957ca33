package notify

import (
	"github.com/gabapcia/solrelay/internal/pkg/types"
	"github.com/gabapcia/solrelay/internal/txnorm"
)

// Kind classifies one transfer from the perspective of the target wallet.
type Kind int

const (
	// KindTransfer is a plain movement with no counter-asset leg.
	KindTransfer Kind = iota

	// KindBuy means the wallet received a token and paid native currency.
	KindBuy

	// KindSell means the wallet sent a token and received native currency.
	KindSell
)

// Direction tells whether the wallet sent or received a plain transfer.
type Direction int

const (
	DirectionSent Direction = iota
	DirectionReceived
)

// classifiedTransfer is one transfer touching the target wallet, classified
// and scaled to display units.
type classifiedTransfer struct {
	Kind         Kind
	Direction    Direction // meaningful for KindTransfer only
	TokenAmount  float64   // token display units; 0 for pure native transfers
	Symbol       string    // token symbol, or "SOL" for pure native transfers
	Mint         string    // token mint, empty for pure native transfers
	SolAmount    float64   // counter-asset (or native) amount in SOL; 0 when unknown
	MarketCap    *float64  // token market cap in USD, when known
	Counterparty string    // other party's address, possibly empty
}

// amountEpsilon is the tolerance, in display units, used to recognize a
// native leg already consumed as the counterpart of a token transfer.
const amountEpsilon = 1e-6

// consumedAmounts tracks native-currency amounts already paired with token
// transfers so they do not additionally surface as standalone transfers.
type consumedAmounts []float64

func (c *consumedAmounts) add(amount float64) {
	*c = append(*c, amount)
}

// take removes the first tracked amount within amountEpsilon of the given
// one and reports whether a match existed.
func (c *consumedAmounts) take(amount float64) bool {
	for i, consumed := range *c {
		diff := amount - consumed
		if diff < 0 {
			diff = -diff
		}
		if diff <= amountEpsilon {
			*c = append((*c)[:i], (*c)[i+1:]...)
			return true
		}
	}
	return false
}

// classifyTransfers classifies every transfer touching the target wallet.
//
// A token transfer received by the wallet with an opposite-direction native
// leg is a BUY; the symmetric case is a SELL. Token transfers without a
// native counterpart, and native transfers not consumed as a counterpart,
// classify as TRANSFER with the wallet's direction. Metadata controls the
// raw-to-display scaling of token amounts.
func classifyTransfers(tx txnorm.Transaction, wallet string, metadata map[string]TokenMetadata) []classifiedTransfer {
	var (
		classified = make([]classifiedTransfer, 0)
		consumed   = make(consumedAmounts, 0)
	)

	// nativeCounterpart finds the first native leg moving in the given
	// direction relative to the wallet and marks its amount consumed.
	nativeCounterpart := func(walletSends bool) (float64, bool) {
		for _, native := range tx.NativeTransfers {
			if walletSends && native.From != wallet {
				continue
			}
			if !walletSends && native.To != wallet {
				continue
			}
			amount := native.Amount.SOL()
			if consumed.take(amount) {
				consumed.add(amount) // already paired with an earlier token transfer; keep it tracked
				continue
			}
			consumed.add(amount)
			return amount, true
		}
		return 0, false
	}

	for _, transfer := range tx.TokenTransfers {
		if transfer.From != wallet && transfer.To != wallet {
			continue
		}

		meta, ok := metadata[transfer.Mint]
		if !ok {
			meta = fallbackMetadata
		}

		entry := classifiedTransfer{
			Kind:        KindTransfer,
			TokenAmount: types.RawAmountToDisplay(transfer.Amount, meta.Decimals),
			Symbol:      meta.Symbol,
			Mint:        transfer.Mint,
			MarketCap:   meta.MarketCap,
		}

		if transfer.To == wallet {
			entry.Direction = DirectionReceived
			entry.Counterparty = transfer.From
			if solAmount, ok := nativeCounterpart(true); ok {
				entry.Kind = KindBuy
				entry.SolAmount = solAmount
			}
		} else {
			entry.Direction = DirectionSent
			entry.Counterparty = transfer.To
			if solAmount, ok := nativeCounterpart(false); ok {
				entry.Kind = KindSell
				entry.SolAmount = solAmount
			}
		}

		classified = append(classified, entry)
	}

	for _, native := range tx.NativeTransfers {
		if native.From != wallet && native.To != wallet {
			continue
		}

		amount := native.Amount.SOL()
		if consumed.take(amount) {
			continue
		}

		entry := classifiedTransfer{
			Kind:      KindTransfer,
			Symbol:    "SOL",
			SolAmount: amount,
		}

		if native.From == wallet {
			entry.Direction = DirectionSent
			entry.Counterparty = native.To
		} else {
			entry.Direction = DirectionReceived
			entry.Counterparty = native.From
		}

		classified = append(classified, entry)
	}

	return classified
}
