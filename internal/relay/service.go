// Package relay orchestrates one webhook delivery end to end: normalize the
// payload into canonical transactions, match each against the tracked
// address set, and notify every implicated wallet. Failures are isolated at
// the (transaction, wallet) level so one bad item never silences the rest
// of a batch.
package relay

import (
	"context"
	"fmt"
	"time"

	"github.com/gabapcia/solrelay/internal/involvement"
	"github.com/gabapcia/solrelay/internal/pkg/logger"
	"github.com/gabapcia/solrelay/internal/pkg/types"
	"github.com/gabapcia/solrelay/internal/txnorm"

	"github.com/google/uuid"
)

// DeliveryReport summarizes the processing of one webhook delivery. The
// DeliveryID is a UUIDv7 generated per delivery for log correlation.
type DeliveryReport struct {
	DeliveryID   string    // unique id for this delivery
	ReceivedAt   time.Time // when processing started
	Transactions int       // canonical transactions parsed from the payload
	Matched      int       // transactions involving at least one tracked wallet
	Notified     int       // notifications delivered successfully
	Failed       int       // notifications that failed terminally
}

// Service processes inbound webhook deliveries.
type Service interface {
	// HandleDelivery processes one webhook body to completion and reports
	// what happened. It returns an error only when the tracked-address set
	// cannot be loaded; unparseable payloads and per-pair delivery failures
	// are absorbed into the report.
	HandleDelivery(ctx context.Context, body []byte) (DeliveryReport, error)
}

type service struct {
	registry AddressRegistry
	notifier Notifier
}

var _ Service = (*service)(nil)

// New creates the relay service from its collaborators.
func New(registry AddressRegistry, notifier Notifier) *service {
	return &service{
		registry: registry,
		notifier: notifier,
	}
}

func (s *service) HandleDelivery(ctx context.Context, body []byte) (DeliveryReport, error) {
	report := DeliveryReport{
		DeliveryID: uuid.Must(uuid.NewV7()).String(),
		ReceivedAt: time.Now().UTC(),
	}

	transactions := txnorm.Normalize(ctx, body)
	report.Transactions = len(transactions)
	if len(transactions) == 0 {
		return report, nil
	}

	addresses, err := s.registry.ListActiveAddresses(ctx)
	if err != nil {
		return report, fmt.Errorf("listing active addresses: %w", err)
	}
	tracked := types.NewSet(addresses...)

	for _, tx := range transactions {
		wallets := involvement.Implicated(tx, tracked)
		if len(wallets) == 0 {
			continue // no tracked wallet involved, silent no-op
		}
		report.Matched++

		for _, wallet := range wallets {
			if err := s.notifier.Notify(ctx, tx, wallet); err != nil {
				report.Failed++
				logger.Error(ctx, "notification failed",
					"delivery.id", report.DeliveryID,
					"tx.signature", tx.Signature,
					"wallet", wallet,
					"error", err,
				)
				continue
			}
			report.Notified++
		}
	}

	logger.Info(ctx, "webhook delivery processed",
		"delivery.id", report.DeliveryID,
		"transactions", report.Transactions,
		"matched", report.Matched,
		"notified", report.Notified,
		"failed", report.Failed,
	)

	return report, nil
}
