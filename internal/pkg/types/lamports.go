package types

import "strconv"

// lamportsPerSOL is the number of lamports in one SOL.
const lamportsPerSOL = 1_000_000_000

// Lamports represents an amount of the Solana native currency in its base
// unit. It provides conversion to SOL display units and fixed-precision
// formatting for human-facing output.
type Lamports uint64

// SOL converts the amount from lamports to SOL display units.
func (l Lamports) SOL() float64 {
	return float64(l) / lamportsPerSOL
}

// Format renders the amount in SOL with the given number of decimal places.
//
// Example: Lamports(5000).Format(6) == "0.000005".
func (l Lamports) Format(decimals int) string {
	return strconv.FormatFloat(l.SOL(), 'f', decimals, 64)
}

// RawAmountToDisplay scales a raw token amount by the given number of token
// decimals, producing the display-unit value.
//
// Example: RawAmountToDisplay(1500000, 6) == 1.5.
func RawAmountToDisplay(raw uint64, decimals uint8) float64 {
	scale := 1.0
	for i := uint8(0); i < decimals; i++ {
		scale *= 10
	}
	return float64(raw) / scale
}
