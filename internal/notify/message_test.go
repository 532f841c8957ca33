package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateAddress(t *testing.T) {
	t.Run("short address is unchanged", func(t *testing.T) {
		assert.Equal(t, "abc", TruncateAddress("abc"))
	})

	t.Run("twelve characters are unchanged", func(t *testing.T) {
		assert.Equal(t, "123456789012", TruncateAddress("123456789012"))
	})

	t.Run("thirteen characters are truncated", func(t *testing.T) {
		assert.Equal(t, "123456...890123", TruncateAddress("1234567890123"))
	})

	t.Run("full-length address keeps first and last six", func(t *testing.T) {
		address := "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T"

		assert.Equal(t, "4Nd1mB...4gDB4T", TruncateAddress(address))
	})

	t.Run("empty address is unchanged", func(t *testing.T) {
		assert.Equal(t, "", TruncateAddress(""))
	})
}

func TestMessageTheme(t *testing.T) {
	t.Run("pure buys", func(t *testing.T) {
		title, color := messageTheme([]classifiedTransfer{{Kind: KindBuy}})

		assert.Equal(t, "🟢 New Buy", title)
		assert.Equal(t, colorBuy, color)
	})

	t.Run("pure sells", func(t *testing.T) {
		title, color := messageTheme([]classifiedTransfer{{Kind: KindSell}, {Kind: KindSell}})

		assert.Equal(t, "🔴 New Sell", title)
		assert.Equal(t, colorSell, color)
	})

	t.Run("mixed buys and sells are a swap", func(t *testing.T) {
		title, color := messageTheme([]classifiedTransfer{{Kind: KindBuy}, {Kind: KindSell}})

		assert.Equal(t, "🔄 New Swap", title)
		assert.Equal(t, colorSwap, color)
	})

	t.Run("transfers only", func(t *testing.T) {
		title, color := messageTheme([]classifiedTransfer{{Kind: KindTransfer}})

		assert.Equal(t, "💸 Transfer", title)
		assert.Equal(t, colorTransfer, color)
	})

	t.Run("no transfers at all", func(t *testing.T) {
		title, color := messageTheme(nil)

		assert.Equal(t, "📣 Wallet Activity", title)
		assert.Equal(t, colorGeneric, color)
	})
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "2", formatAmount(2.0))
	assert.Equal(t, "0.000005", formatAmount(0.000005))
	assert.Equal(t, "1.5", formatAmount(1.5))
	assert.Equal(t, "0", formatAmount(0))
}

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$12.34", formatUSD(12.34))
	assert.Equal(t, "$1.50K", formatUSD(1500))
	assert.Equal(t, "$2.30M", formatUSD(2_300_000))
	assert.Equal(t, "$1.20B", formatUSD(1_200_000_000))
}
