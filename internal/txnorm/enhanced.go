package txnorm

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gabapcia/solrelay/internal/pkg/types"
)

// enhancedPayload mirrors the pre-parsed transaction shape pushed by the
// indexing provider's enhanced webhook.
type enhancedPayload struct {
	Type        string `json:"type"`
	Signature   string `json:"signature"`
	Slot        uint64 `json:"slot"`
	Timestamp   int64  `json:"timestamp"`
	Fee         uint64 `json:"fee"`
	FeePayer    string `json:"feePayer"`
	Description string `json:"description"`
	Source      string `json:"source"`

	NativeTransfers []struct {
		FromUserAccount string `json:"fromUserAccount"`
		ToUserAccount   string `json:"toUserAccount"`
		Amount          uint64 `json:"amount"`
	} `json:"nativeTransfers"`

	TokenTransfers []struct {
		FromUserAccount  string `json:"fromUserAccount"`
		ToUserAccount    string `json:"toUserAccount"`
		FromTokenAccount string `json:"fromTokenAccount"`
		ToTokenAccount   string `json:"toTokenAccount"`
		TokenAmount      uint64 `json:"tokenAmount"`
		Mint             string `json:"mint"`
		TokenStandard    string `json:"tokenStandard"`
	} `json:"tokenTransfers"`

	AccountData []struct {
		Account             string `json:"account"`
		NativeBalanceChange int64  `json:"nativeBalanceChange"`
	} `json:"accountData"`

	TransactionError json.RawMessage `json:"transactionError"`
}

// normalizeEnhanced maps an enhanced-shape payload 1:1 onto the canonical
// model, applying the documented defaults for absent fields. An empty
// signature makes the item unparseable.
func normalizeEnhanced(raw json.RawMessage) (Transaction, error) {
	var payload enhancedPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Transaction{}, fmt.Errorf("decoding enhanced payload: %w", err)
	}

	if payload.Signature == "" {
		return Transaction{}, fmt.Errorf("enhanced payload has empty signature")
	}

	tx := Transaction{
		Signature: payload.Signature,
		Slot:      payload.Slot,
		Timestamp: payload.Timestamp,
		Fee:       types.Lamports(payload.Fee),
		FeePayer:  payload.FeePayer,
		Type:      payload.Type,
		Source:    payload.Source,
		Err:       payload.TransactionError,

		NativeTransfers: make([]NativeTransfer, 0, len(payload.NativeTransfers)),
		TokenTransfers:  make([]TokenTransfer, 0, len(payload.TokenTransfers)),
		AccountDeltas:   make([]AccountDelta, 0, len(payload.AccountData)),
	}

	if tx.Timestamp == 0 {
		tx.Timestamp = time.Now().UTC().Unix()
	}
	if tx.Source == "" {
		tx.Source = sourceHelius
	}

	for _, transfer := range payload.NativeTransfers {
		tx.NativeTransfers = append(tx.NativeTransfers, NativeTransfer{
			From:   transfer.FromUserAccount,
			To:     transfer.ToUserAccount,
			Amount: types.Lamports(transfer.Amount),
		})
	}

	for _, transfer := range payload.TokenTransfers {
		standard := transfer.TokenStandard
		if standard == "" {
			standard = TokenStandardFungible
		}

		tx.TokenTransfers = append(tx.TokenTransfers, TokenTransfer{
			From:             transfer.FromUserAccount,
			To:               transfer.ToUserAccount,
			FromTokenAccount: transfer.FromTokenAccount,
			ToTokenAccount:   transfer.ToTokenAccount,
			Amount:           transfer.TokenAmount,
			Mint:             transfer.Mint,
			Standard:         standard,
		})
	}

	for _, data := range payload.AccountData {
		if data.NativeBalanceChange == 0 {
			continue
		}
		tx.AccountDeltas = append(tx.AccountDeltas, AccountDelta{
			Account: data.Account,
			Change:  data.NativeBalanceChange,
		})
	}

	if payload.Description != "" {
		tx.Description = payload.Description
	} else {
		tx.Description = deriveDescription(tx)
	}

	return tx, nil
}
