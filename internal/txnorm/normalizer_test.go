package txnorm

import (
	"testing"
	"time"

	"github.com/gabapcia/solrelay/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Initialize logger for tests to prevent nil pointer dereference
	_ = logger.Init("error")
}

func TestNormalizeEnhancedShape(t *testing.T) {
	t.Run("full enhanced payload maps 1:1", func(t *testing.T) {
		body := []byte(`{
			"type": "TRANSFER",
			"signature": "sig-1",
			"slot": 250000000,
			"timestamp": 1700000000,
			"fee": 5000,
			"feePayer": "FeePayer111",
			"description": "wallet A transferred 1 SOL to wallet B",
			"source": "SYSTEM_PROGRAM",
			"nativeTransfers": [
				{"fromUserAccount": "A", "toUserAccount": "B", "amount": 1000000000}
			],
			"tokenTransfers": [
				{
					"fromUserAccount": "A",
					"toUserAccount": "B",
					"fromTokenAccount": "TokAccA",
					"toTokenAccount": "TokAccB",
					"tokenAmount": 150,
					"mint": "Mint111",
					"tokenStandard": "fungible"
				}
			],
			"accountData": [
				{"account": "A", "nativeBalanceChange": -1000005000},
				{"account": "B", "nativeBalanceChange": 1000000000},
				{"account": "C", "nativeBalanceChange": 0}
			]
		}`)

		transactions := Normalize(t.Context(), body)

		require.Len(t, transactions, 1)
		tx := transactions[0]

		assert.Equal(t, "sig-1", tx.Signature)
		assert.Equal(t, uint64(250000000), tx.Slot)
		assert.Equal(t, int64(1700000000), tx.Timestamp)
		assert.EqualValues(t, 5000, tx.Fee)
		assert.Equal(t, "FeePayer111", tx.FeePayer)
		assert.Equal(t, "TRANSFER", tx.Type)
		assert.Equal(t, "SYSTEM_PROGRAM", tx.Source)
		assert.Equal(t, "wallet A transferred 1 SOL to wallet B", tx.Description)
		assert.False(t, tx.Failed())

		require.Len(t, tx.NativeTransfers, 1)
		assert.Equal(t, NativeTransfer{From: "A", To: "B", Amount: 1000000000}, tx.NativeTransfers[0])

		require.Len(t, tx.TokenTransfers, 1)
		assert.Equal(t, "Mint111", tx.TokenTransfers[0].Mint)
		assert.Equal(t, uint64(150), tx.TokenTransfers[0].Amount)

		// Zero balance changes are never recorded.
		require.Len(t, tx.AccountDeltas, 2)
		assert.Equal(t, AccountDelta{Account: "A", Change: -1000005000}, tx.AccountDeltas[0])
		assert.Equal(t, AccountDelta{Account: "B", Change: 1000000000}, tx.AccountDeltas[1])
	})

	t.Run("defaults applied for absent fields", func(t *testing.T) {
		body := []byte(`{"type": "UNKNOWN", "signature": "sig-2"}`)

		transactions := Normalize(t.Context(), body)

		require.Len(t, transactions, 1)
		tx := transactions[0]

		assert.Equal(t, uint64(0), tx.Slot)
		assert.EqualValues(t, 0, tx.Fee)
		assert.Empty(t, tx.FeePayer)
		assert.Equal(t, sourceHelius, tx.Source)
		assert.Empty(t, tx.NativeTransfers)
		assert.Empty(t, tx.TokenTransfers)
		assert.Empty(t, tx.AccountDeltas)
		assert.WithinDuration(t, time.Now(), time.Unix(tx.Timestamp, 0), time.Minute)
	})

	t.Run("transaction error is carried as opaque value", func(t *testing.T) {
		body := []byte(`{"type": "TRANSFER", "signature": "sig-3", "transactionError": {"InstructionError": [0, "Custom"]}}`)

		transactions := Normalize(t.Context(), body)

		require.Len(t, transactions, 1)
		assert.True(t, transactions[0].Failed())
	})

	t.Run("empty signature makes the item unparseable", func(t *testing.T) {
		body := []byte(`{"type": "TRANSFER", "signature": ""}`)

		transactions := Normalize(t.Context(), body)

		assert.Empty(t, transactions)
	})
}

func TestNormalizeRawShape(t *testing.T) {
	t.Run("native transfer inferred from balance deltas within fee tolerance", func(t *testing.T) {
		body := []byte(`{
			"slot": 123,
			"blockTime": 1700000100,
			"transaction": {
				"signatures": ["raw-sig"],
				"message": {"accountKeys": ["A", "B"]}
			},
			"meta": {
				"fee": 5000,
				"preBalances": [1000000000, 500000000],
				"postBalances": [999995000, 500005000]
			}
		}`)

		transactions := Normalize(t.Context(), body)

		require.Len(t, transactions, 1)
		tx := transactions[0]

		assert.Equal(t, "raw-sig", tx.Signature)
		assert.Equal(t, "A", tx.FeePayer)
		assert.Equal(t, TypeUnknown, tx.Type)
		assert.Equal(t, sourceRaw, tx.Source)
		assert.Equal(t, rawTransactionDescription, tx.Description)

		require.Len(t, tx.NativeTransfers, 1)
		assert.Equal(t, NativeTransfer{From: "A", To: "B", Amount: 5000}, tx.NativeTransfers[0])

		require.Len(t, tx.AccountDeltas, 2)
		assert.Equal(t, AccountDelta{Account: "A", Change: -5000}, tx.AccountDeltas[0])
		assert.Equal(t, AccountDelta{Account: "B", Change: 5000}, tx.AccountDeltas[1])
	})

	t.Run("token transfer inferred from pre and post token balances", func(t *testing.T) {
		body := []byte(`{
			"transaction": {
				"signatures": ["raw-sig-2"],
				"message": {"accountKeys": ["Payer", "TokAcc"]}
			},
			"meta": {
				"fee": 5000,
				"preBalances": [10, 10],
				"postBalances": [10, 10],
				"preTokenBalances": [
					{"accountIndex": 1, "mint": "Mint222", "owner": "OwnerA", "uiTokenAmount": {"amount": "1000", "decimals": 6}}
				],
				"postTokenBalances": [
					{"accountIndex": 1, "mint": "Mint222", "owner": "OwnerB", "uiTokenAmount": {"amount": "400", "decimals": 6}}
				]
			}
		}`)

		transactions := Normalize(t.Context(), body)

		require.Len(t, transactions, 1)
		tx := transactions[0]

		require.Len(t, tx.TokenTransfers, 1)
		transfer := tx.TokenTransfers[0]
		assert.Equal(t, "OwnerA", transfer.From)
		assert.Equal(t, "OwnerB", transfer.To)
		assert.Equal(t, uint64(600), transfer.Amount)
		assert.Equal(t, "Mint222", transfer.Mint)
		assert.Equal(t, TokenStandardFungible, transfer.Standard)
	})

	t.Run("unchanged token balances emit no transfer", func(t *testing.T) {
		body := []byte(`{
			"transaction": {
				"signatures": ["raw-sig-3"],
				"message": {"accountKeys": ["Payer"]}
			},
			"meta": {
				"preTokenBalances": [
					{"accountIndex": 1, "mint": "Mint333", "owner": "O", "uiTokenAmount": {"amount": "1000", "decimals": 6}}
				],
				"postTokenBalances": [
					{"accountIndex": 1, "mint": "Mint333", "owner": "O", "uiTokenAmount": {"amount": "1000", "decimals": 6}}
				]
			}
		}`)

		transactions := Normalize(t.Context(), body)

		require.Len(t, transactions, 1)
		assert.Empty(t, transactions[0].TokenTransfers)
	})

	t.Run("missing signature list makes the item unparseable", func(t *testing.T) {
		body := []byte(`{"transaction": {"message": {"accountKeys": ["A"]}}, "meta": {"fee": 5000}}`)

		transactions := Normalize(t.Context(), body)

		assert.Empty(t, transactions)
	})

	t.Run("deltas cancelling beyond tolerance are not paired", func(t *testing.T) {
		body := []byte(`{
			"transaction": {
				"signatures": ["raw-sig-4"],
				"message": {"accountKeys": ["A", "B"]}
			},
			"meta": {
				"preBalances": [1000000, 500000],
				"postBalances": [900000, 550000]
			}
		}`)

		transactions := Normalize(t.Context(), body)

		require.Len(t, transactions, 1)
		assert.Empty(t, transactions[0].NativeTransfers)
		assert.Len(t, transactions[0].AccountDeltas, 2)
	})
}

func TestNormalizeBatch(t *testing.T) {
	t.Run("each array element normalized independently", func(t *testing.T) {
		body := []byte(`[
			{"type": "TRANSFER", "signature": "sig-a"},
			{"unexpected": true},
			{"type": "SWAP", "signature": "sig-b"}
		]`)

		transactions := Normalize(t.Context(), body)

		require.Len(t, transactions, 2)
		assert.Equal(t, "sig-a", transactions[0].Signature)
		assert.Equal(t, "sig-b", transactions[1].Signature)
	})

	t.Run("undecodable body yields nothing", func(t *testing.T) {
		assert.Empty(t, Normalize(t.Context(), []byte(`[not json`)))
		assert.Empty(t, Normalize(t.Context(), []byte(`"just a string"`)))
	})

	t.Run("unrecognized object shape yields nothing", func(t *testing.T) {
		assert.Empty(t, Normalize(t.Context(), []byte(`{"hello": "world"}`)))
	})
}

func TestDeriveDescription(t *testing.T) {
	t.Run("native transfers win", func(t *testing.T) {
		tx := Transaction{
			NativeTransfers: []NativeTransfer{{From: "A", To: "B", Amount: 1}},
			TokenTransfers:  []TokenTransfer{{Mint: "M"}},
			Type:            "SWAP",
		}

		assert.Equal(t, "SOL Transfer", deriveDescription(tx))
	})

	t.Run("token transfers next", func(t *testing.T) {
		tx := Transaction{
			TokenTransfers: []TokenTransfer{{Mint: "M"}},
			Type:           "SWAP",
		}

		assert.Equal(t, "Token Transfer", deriveDescription(tx))
	})

	t.Run("type tag is humanized", func(t *testing.T) {
		assert.Equal(t, "Nft Sale", deriveDescription(Transaction{Type: "NFT_SALE"}))
		assert.Equal(t, "Swap", deriveDescription(Transaction{Type: "SWAP"}))
	})

	t.Run("generic fallback", func(t *testing.T) {
		assert.Equal(t, genericDescription, deriveDescription(Transaction{}))
	})
}
