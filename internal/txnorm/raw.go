package txnorm

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gabapcia/solrelay/internal/pkg/types"
)

// feeToleranceLamports is the absolute tolerance used when pairing balance
// deltas into native transfers. Two deltas whose sum is within this bound of
// zero are considered the two legs of one transfer, the difference being
// absorbed by the fee. The pairing is a heuristic: it can mis-pair when more
// than two accounts change balance by similar magnitudes in one transaction.
const feeToleranceLamports = 1000

// rawTokenBalance mirrors one pre/post token balance entry from the RPC
// transaction metadata.
type rawTokenBalance struct {
	AccountIndex  int    `json:"accountIndex"`
	Mint          string `json:"mint"`
	Owner         string `json:"owner"`
	UITokenAmount struct {
		Amount   string `json:"amount"`
		Decimals uint8  `json:"decimals"`
	} `json:"uiTokenAmount"`
}

// rawPayload mirrors the unprocessed transaction shape carrying nested
// "transaction" and "meta" substructures straight from the RPC layer.
type rawPayload struct {
	Slot      uint64 `json:"slot"`
	BlockTime int64  `json:"blockTime"`

	Transaction struct {
		Signatures []string `json:"signatures"`
		Message    struct {
			AccountKeys []string `json:"accountKeys"`
		} `json:"message"`
	} `json:"transaction"`

	Meta struct {
		Fee               uint64            `json:"fee"`
		Err               json.RawMessage   `json:"err"`
		PreBalances       []int64           `json:"preBalances"`
		PostBalances      []int64           `json:"postBalances"`
		PreTokenBalances  []rawTokenBalance `json:"preTokenBalances"`
		PostTokenBalances []rawTokenBalance `json:"postTokenBalances"`
	} `json:"meta"`
}

// normalizeRaw derives a canonical transaction from a raw-shape payload,
// inferring transfers from the pre/post balance snapshots.
func normalizeRaw(raw json.RawMessage) (Transaction, error) {
	var payload rawPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Transaction{}, fmt.Errorf("decoding raw payload: %w", err)
	}

	var signature string
	if len(payload.Transaction.Signatures) > 0 {
		signature = payload.Transaction.Signatures[0]
	}
	if signature == "" {
		return Transaction{}, fmt.Errorf("raw payload has no signature")
	}

	var feePayer string
	if keys := payload.Transaction.Message.AccountKeys; len(keys) > 0 {
		feePayer = keys[0]
	}

	timestamp := payload.BlockTime
	if timestamp == 0 {
		timestamp = time.Now().UTC().Unix()
	}

	deltas := balanceDeltas(payload.Meta.PreBalances, payload.Meta.PostBalances)
	keys := payload.Transaction.Message.AccountKeys

	return Transaction{
		Signature:   signature,
		Slot:        payload.Slot,
		Timestamp:   timestamp,
		Fee:         types.Lamports(payload.Meta.Fee),
		FeePayer:    feePayer,
		Type:        TypeUnknown,
		Source:      sourceRaw,
		Description: rawTransactionDescription,
		Err:         payload.Meta.Err,

		NativeTransfers: inferNativeTransfers(keys, deltas),
		TokenTransfers:  inferTokenTransfers(keys, payload.Meta.PreTokenBalances, payload.Meta.PostTokenBalances),
		AccountDeltas:   accountDeltas(keys, deltas),
	}, nil
}

// balanceDeltas computes post-pre balance differences per account index,
// truncated to the shorter of the two snapshots.
func balanceDeltas(pre, post []int64) []int64 {
	n := min(len(pre), len(post))
	deltas := make([]int64, n)
	for i := range n {
		deltas[i] = post[i] - pre[i]
	}
	return deltas
}

// inferNativeTransfers pairs balance deltas into native transfers. For every
// account index i with a non-zero delta, the first index j (in index order)
// whose delta cancels i's within the fee tolerance forms one transfer: the
// account with the negative delta is the sender and the amount is the
// absolute value of i's delta. Each index participates in at most one
// transfer, so a matched pair is never emitted twice.
func inferNativeTransfers(keys []string, deltas []int64) []NativeTransfer {
	transfers := make([]NativeTransfer, 0)
	consumed := make([]bool, len(deltas))

	for i, deltaI := range deltas {
		if deltaI == 0 || consumed[i] || i >= len(keys) {
			continue
		}

		for j, deltaJ := range deltas {
			if j == i || consumed[j] || j >= len(keys) {
				continue
			}
			if abs(deltaI+deltaJ) > feeToleranceLamports {
				continue
			}

			from, to := keys[i], keys[j]
			if deltaI > 0 {
				from, to = keys[j], keys[i]
			}

			transfers = append(transfers, NativeTransfer{
				From:   from,
				To:     to,
				Amount: types.Lamports(abs(deltaI)),
			})

			consumed[i], consumed[j] = true, true
			break
		}
	}

	return transfers
}

// inferTokenTransfers emits one transfer per pre-token-balance entry whose
// matching post entry (same account index) carries a different raw amount.
// The pre owner is the sender, the post owner the receiver, and the amount
// is the absolute difference.
func inferTokenTransfers(keys []string, pre, post []rawTokenBalance) []TokenTransfer {
	postByIndex := make(map[int]rawTokenBalance, len(post))
	for _, balance := range post {
		postByIndex[balance.AccountIndex] = balance
	}

	transfers := make([]TokenTransfer, 0)
	for _, preBalance := range pre {
		postBalance, ok := postByIndex[preBalance.AccountIndex]
		if !ok {
			continue
		}

		preAmount, errPre := strconv.ParseUint(preBalance.UITokenAmount.Amount, 10, 64)
		postAmount, errPost := strconv.ParseUint(postBalance.UITokenAmount.Amount, 10, 64)
		if errPre != nil || errPost != nil || preAmount == postAmount {
			continue
		}

		diff := postAmount - preAmount
		if preAmount > postAmount {
			diff = preAmount - postAmount
		}

		var tokenAccount string
		if preBalance.AccountIndex >= 0 && preBalance.AccountIndex < len(keys) {
			tokenAccount = keys[preBalance.AccountIndex]
		}

		transfers = append(transfers, TokenTransfer{
			From:             preBalance.Owner,
			To:               postBalance.Owner,
			FromTokenAccount: tokenAccount,
			ToTokenAccount:   tokenAccount,
			Amount:           diff,
			Mint:             preBalance.Mint,
			Standard:         TokenStandardFungible,
		})
	}

	return transfers
}

// accountDeltas records one entry per account index with a non-zero balance
// difference.
func accountDeltas(keys []string, deltas []int64) []AccountDelta {
	result := make([]AccountDelta, 0)
	for i, delta := range deltas {
		if delta == 0 || i >= len(keys) {
			continue
		}
		result = append(result, AccountDelta{
			Account: keys[i],
			Change:  delta,
		})
	}
	return result
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
