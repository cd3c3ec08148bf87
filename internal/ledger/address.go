package ledger

import (
	"fmt"
	"strings"
)

// WalletAddress derives a fixed-format mock address from an arbitrary wallet
// identifier. Same input, same address; distinct inputs are not guaranteed
// distinct. This is a checksum, not a cryptographic function.
func WalletAddress(walletID string) string {
	var h int32
	for _, c := range walletID {
		h = h*31 + int32(c) // (h<<5)-h+c with int32 wraparound
	}
	if h < 0 {
		h = -h // MinInt32 negates to itself; uint32 below renders it as 0x80000000
	}
	hex := fmt.Sprintf("%08x", uint32(h))
	return "0x" + hex + strings.Repeat("0", 32-len(hex)) + hex
}
