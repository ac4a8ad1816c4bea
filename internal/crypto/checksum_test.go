package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Vectors from EIP-55.
var eip55Vectors = []string{
	"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
	"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
	"0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
	"0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb",
}

func TestChecksumAddress_Vectors(t *testing.T) {
	for _, want := range eip55Vectors {
		t.Run(want, func(t *testing.T) {
			got, err := ChecksumAddress(strings.ToLower(want))
			require.NoError(t, err)
			assert.Equal(t, want, got)

			got, err = ChecksumAddress(strings.ToUpper(want[2:]))
			assert.Error(t, err, "missing prefix must be rejected")
			assert.Empty(t, got)
		})
	}
}

func TestChecksumAddress_Invalid(t *testing.T) {
	for _, in := range []string{
		"",
		"0x",
		"0x5aaeb6053f3e94c9b9a09f33669435e7ef1bea",
		"0xzzaeb6053f3e94c9b9a09f33669435e7ef1beaed",
		"1x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
	} {
		_, err := ChecksumAddress(in)
		assert.Error(t, err, in)
	}
}
