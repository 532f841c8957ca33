package rest

import (
	"crypto/subtle"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gabapcia/solrelay/internal/pkg/logger"
	"github.com/gabapcia/solrelay/internal/relay"
)

// maxWebhookBodySize bounds inbound payloads. Provider batches are at most a
// few hundred transactions, well under this.
const maxWebhookBodySize = 4 << 20 // 4MB

// webhookResponse is the JSON body answered to the webhook provider.
type webhookResponse struct {
	DeliveryID   string `json:"delivery_id"`
	Transactions int    `json:"transactions"`
	Matched      int    `json:"matched"`
	Notified     int    `json:"notified"`
	Failed       int    `json:"failed"`
}

// errorResponse is the JSON body for failed requests.
type errorResponse struct {
	Error string `json:"error"`
}

// handleWebhook returns the handler that accepts one provider delivery.
// POST /v1/webhook
func handleWebhook(relaySvc relay.Service, secret string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r, secret) {
			writeError(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodySize))
		if err != nil {
			logger.Warn(r.Context(), "failed to read webhook body", "error", err)
			writeError(w, "failed to read request body", http.StatusBadRequest)
			return
		}
		if len(body) == 0 {
			writeError(w, "empty request body", http.StatusBadRequest)
			return
		}

		report, err := relaySvc.HandleDelivery(r.Context(), body)
		if err != nil {
			logger.Error(r.Context(), "webhook processing failed", "error", err)
			writeError(w, "internal server error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, webhookResponse{
			DeliveryID:   report.DeliveryID,
			Transactions: report.Transactions,
			Matched:      report.Matched,
			Notified:     report.Notified,
			Failed:       report.Failed,
		}, http.StatusOK)
	})
}

// authorized checks the delivery's Authorization header against the shared
// secret. An empty secret disables authentication.
func authorized(r *http.Request, secret string) bool {
	if secret == "" {
		return true
	}
	header := r.Header.Get("Authorization")
	return subtle.ConstantTimeCompare([]byte(header), []byte(secret)) == 1
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, errorResponse{Error: msg}, status)
}
