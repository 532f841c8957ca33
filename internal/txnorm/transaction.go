package txnorm

import (
	"encoding/json"
	"strings"

	"github.com/gabapcia/solrelay/internal/pkg/types"
)

// Transaction is the canonical, shape-independent record built once per
// incoming webhook payload. All downstream matching and notification logic
// operates on this type; it is created fresh per delivery and discarded
// after processing.
type Transaction struct {
	Signature   string           // unique transaction signature; empty means unparseable
	Slot        uint64           // slot the transaction landed in
	Timestamp   int64            // unix time in seconds
	Fee         types.Lamports   // transaction fee in lamports
	FeePayer    string           // address that paid the fee
	Type        string           // transaction type tag, possibly TypeUnknown
	Source      string           // origin system tag
	Description string           // human-readable summary
	NativeTransfers []NativeTransfer // native balance movements, in payload order
	TokenTransfers  []TokenTransfer  // token movements, in payload order
	AccountDeltas   []AccountDelta   // non-zero native balance changes, in payload order
	Err         json.RawMessage  // opaque failure info; non-nil means the on-chain transaction failed
}

// NativeTransfer represents a native-currency balance movement inferred from
// balance deltas.
type NativeTransfer struct {
	From   string         // sender address
	To     string         // receiver address
	Amount types.Lamports // transferred amount
}

// TokenTransfer represents a token balance movement.
type TokenTransfer struct {
	From             string // sending owner address
	To               string // receiving owner address
	FromTokenAccount string // sending token account
	ToTokenAccount   string // receiving token account
	Amount           uint64 // raw, unscaled token units
	Mint             string // token mint address
	Standard         string // token standard tag, e.g. TokenStandardFungible
}

// AccountDelta records a non-zero native balance change for one account.
// Zero-change entries are never recorded.
type AccountDelta struct {
	Account string // account address
	Change  int64  // signed balance change in lamports
}

// Transaction type and standard tags shared across payload shapes.
const (
	TypeUnknown           = "UNKNOWN"
	TokenStandardFungible = "fungible"

	sourceHelius = "helius"
	sourceRaw    = "raw"

	rawTransactionDescription = "Raw transaction"
	genericDescription        = "New Transaction"
)

// Failed reports whether the on-chain transaction failed.
func (t Transaction) Failed() bool {
	return len(t.Err) > 0
}

// deriveDescription produces a human-readable summary for a transaction that
// arrived without one: native movement wins over token movement, then the
// type tag is humanized, then a generic fallback applies.
func deriveDescription(tx Transaction) string {
	switch {
	case len(tx.NativeTransfers) > 0:
		return "SOL Transfer"
	case len(tx.TokenTransfers) > 0:
		return "Token Transfer"
	case tx.Type != "":
		return humanizeTypeTag(tx.Type)
	default:
		return genericDescription
	}
}

// humanizeTypeTag converts a type tag such as "NFT_SALE" into "Nft Sale":
// underscores become spaces and each word is capitalized.
func humanizeTypeTag(tag string) string {
	words := strings.Split(strings.ReplaceAll(tag, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
