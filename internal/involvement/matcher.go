// Package involvement decides which tracked wallet addresses are implicated
// in a canonical transaction. An address is implicated when it pays the fee,
// appears on either side of a native or token transfer, or owns a non-zero
// account balance delta.
package involvement

import (
	"github.com/gabapcia/solrelay/internal/pkg/types"
	"github.com/gabapcia/solrelay/internal/txnorm"
)

// Implicated returns the tracked addresses involved in the transaction,
// deduplicated, in first-seen order. Membership is exact, case-sensitive
// string equality against the tracked set; no address normalization applies.
//
// A transaction with an empty signature is unparseable by definition and
// yields no matches. An empty result means "do not notify" and is a no-op
// for callers, never an error.
func Implicated(tx txnorm.Transaction, tracked types.Set[string]) []string {
	if tx.Signature == "" || len(tracked) == 0 {
		return nil
	}

	var (
		matched = make([]string, 0)
		seen    = types.NewSet[string]()
	)

	appendMatch := func(address string) {
		if address == "" || seen.Has(address) || !tracked.Has(address) {
			return
		}
		seen.Add(address)
		matched = append(matched, address)
	}

	appendMatch(tx.FeePayer)

	for _, transfer := range tx.NativeTransfers {
		appendMatch(transfer.From)
		appendMatch(transfer.To)
	}

	for _, transfer := range tx.TokenTransfers {
		appendMatch(transfer.From)
		appendMatch(transfer.To)
	}

	for _, delta := range tx.AccountDeltas {
		appendMatch(delta.Account)
	}

	return matched
}
