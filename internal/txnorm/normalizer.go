// Package txnorm converts heterogeneous webhook transaction payloads into
// canonical transaction records. Parsing is best-effort: malformed items are
// logged and skipped, and a failure in one item of a batch never affects its
// siblings.
package txnorm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/gabapcia/solrelay/internal/pkg/logger"
)

// Normalize parses one webhook delivery body, which may be a single
// transaction-shaped object or an array of them, and returns zero or more
// canonical transactions. It never fails on malformed input: items that
// cannot be normalized are logged at warning level and dropped.
func Normalize(ctx context.Context, body []byte) []Transaction {
	trimmed := bytes.TrimSpace(body)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			logger.Warn(ctx, "dropping undecodable webhook batch", "error", err)
			return nil
		}

		transactions := make([]Transaction, 0, len(items))
		for i, item := range items {
			tx, err := normalizeItem(item)
			if err != nil {
				logger.Warn(ctx, "skipping unparseable webhook item", "index", i, "error", err)
				continue
			}
			transactions = append(transactions, tx)
		}
		return transactions
	}

	tx, err := normalizeItem(trimmed)
	if err != nil {
		logger.Warn(ctx, "skipping unparseable webhook payload", "error", err)
		return nil
	}
	return []Transaction{tx}
}

// normalizeItem classifies one payload item by shape and dispatches it to
// the matching normalization function.
func normalizeItem(raw json.RawMessage) (Transaction, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Transaction{}, fmt.Errorf("payload item is not an object: %w", err)
	}

	switch detectShape(fields) {
	case shapeEnhanced:
		return normalizeEnhanced(raw)
	case shapeRaw:
		return normalizeRaw(raw)
	default:
		return Transaction{}, fmt.Errorf("unrecognized payload shape")
	}
}
