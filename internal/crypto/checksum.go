package crypto

import (
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/sha3"
)

const addressHexLen = 40

// ChecksumAddress returns the EIP-55 mixed-case form of a 0x-prefixed hex address.
// The input may be in any case.
func ChecksumAddress(address string) (string, error) {
	if len(address) != 2+addressHexLen || !strings.EqualFold(address[:2], "0x") {
		return "", errors.New("address must be 0x followed by 40 hex characters")
	}

	lower := strings.ToLower(address[2:])
	if _, err := hex.DecodeString(lower); err != nil {
		return "", errors.New("address contains non-hex characters")
	}

	// Keccak-256 of the lowercase hex text (not of the raw bytes)
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write([]byte(lower))
	hash := hex.EncodeToString(hasher.Sum(nil))

	out := make([]byte, 0, len(address))
	out = append(out, '0', 'x')
	for i := 0; i < addressHexLen; i++ {
		c := lower[i]
		// Uppercase letters whose hash nibble is >= 8
		if c >= 'a' && c <= 'f' && hash[i] >= '8' {
			c -= 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out), nil
}
