package notify

// Message colors, one per notification theme. Values are standard RGB
// integers understood by chat embeds.
const (
	colorBuy      = 0x2ECC71
	colorSell     = 0xE74C3C
	colorSwap     = 0x9B59B6
	colorTransfer = 0x3498DB
	colorGeneric  = 0x95A5A6
)

// Field is a single labeled value inside a notification message.
type Field struct {
	Name   string // field label
	Value  string // rendered field content
	Inline bool   // whether the field may share a row with its neighbors
}

// Message is one fully formatted notification for a single
// (transaction, wallet) pair. It is built completely in memory before any
// delivery attempt, so the downstream channel either receives a well-formed
// message or nothing at all.
type Message struct {
	Title       string  // theme title reflecting the dominant classification
	Color       int     // theme color
	Description string  // short summary naming the wallet's label
	Fields      []Field // ordered message fields
}

// truncatedAddressLimit is the length above which addresses are shortened
// for display.
const truncatedAddressLimit = 12

// TruncateAddress shortens long addresses for display: addresses of up to
// 12 characters are returned unchanged, longer ones become the first six
// characters, an ellipsis, and the last six.
func TruncateAddress(address string) string {
	if len(address) <= truncatedAddressLimit {
		return address
	}
	return address[:6] + "..." + address[len(address)-6:]
}
