package common

import (
	"regexp"
	"strings"
)

const (
	DirectionFrom = "from" // transactions sent by the wallet
	DirectionTo   = "to"   // transactions received by the wallet
)

var walletPattern = regexp.MustCompile(`^0x[0-9a-f]{40}$`)

// NormalizeWallet lowercases a wallet address and reports whether it is a valid 0x-prefixed 20-byte hex address
func NormalizeWallet(wallet string) (string, bool) {
	addr := strings.ToLower(wallet)
	return addr, walletPattern.MatchString(addr)
}

// NormalizeDirection returns "to" only for a case-insensitive "to"; everything else becomes "from"
func NormalizeDirection(direction string) string {
	if strings.EqualFold(direction, DirectionTo) {
		return DirectionTo
	}
	return DirectionFrom
}

// ResultFileName returns the name of the result file for a normalized address
func ResultFileName(address string) string {
	return address + ".txt"
}

// PickOutput chooses the text persisted for a successful run:
// trimmed stdout, then trimmed stderr, then the given fallback
func PickOutput(stdout, stderr string, fallback func() string) string {
	if out := strings.TrimSpace(stdout); out != "" {
		return out
	}
	if errOut := strings.TrimSpace(stderr); errOut != "" {
		return errOut
	}
	return fallback()
}
