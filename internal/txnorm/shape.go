package txnorm

import "encoding/json"

// payloadShape identifies which of the supported webhook payload shapes an
// item matches. The dispatch is a closed variant determined by a cheap
// structural probe, each mapping to exactly one normalization function.
type payloadShape int

const (
	// shapeUnrecognized marks items matching no supported shape. Such items
	// are logged and skipped, never failing the whole delivery.
	shapeUnrecognized payloadShape = iota

	// shapeEnhanced marks items that already carry "signature" and "type"
	// fields directly, pre-parsed by the indexing provider.
	shapeEnhanced

	// shapeRaw marks items carrying nested "transaction" and "meta"
	// substructures straight from the RPC layer.
	shapeRaw
)

// detectShape probes the top-level fields of a payload item to classify it.
// Enhanced payloads are checked first since they are the common case.
func detectShape(fields map[string]json.RawMessage) payloadShape {
	_, hasSignature := fields["signature"]
	_, hasType := fields["type"]
	if hasSignature && hasType {
		return shapeEnhanced
	}

	_, hasTransaction := fields["transaction"]
	_, hasMeta := fields["meta"]
	if hasTransaction || hasMeta {
		return shapeRaw
	}

	return shapeUnrecognized
}
