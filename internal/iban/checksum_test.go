package iban

import (
	"math/big"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// bigMod97 is the textbook computation on an arbitrary-precision integer.
func bigMod97(t *testing.T, s string) int {
	t.Helper()

	rearranged := s[4:] + s[:4]
	var b strings.Builder
	for _, c := range rearranged {
		if c >= 'A' && c <= 'Z' {
			b.WriteString(strconv.Itoa(int(c-'A') + 10))
			continue
		}
		b.WriteRune(c)
	}

	n, ok := new(big.Int).SetString(b.String(), 10)
	if !ok {
		t.Fatalf("not a numeral: %q", b.String())
	}
	return int(new(big.Int).Mod(n, big.NewInt(97)).Int64())
}

func TestMod97_MatchesBigInteger(t *testing.T) {
	inputs := []string{
		"ME25505000012345678951",
		"ME25505000012345638951",
		"LE25505000022345678951",
		"GB82WEST12345698765432",
		"DE89370400440532013000",
		"ZZ00ABCDEFGHIJKLMNOPQRSTUVWXYZ",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got, ok := Mod97(input)
			assert.True(t, ok)
			assert.Equal(t, bigMod97(t, input), got)
		})
	}
}

func TestHasValidChecksum(t *testing.T) {
	assert.True(t, HasValidChecksum("ME25505000012345678951"))
	assert.True(t, HasValidChecksum("GB82WEST12345698765432"))
	assert.False(t, HasValidChecksum("ME25505000012345638951"))
}

func TestMod97_RejectsMalformed(t *testing.T) {
	for _, input := range []string{"", "ME2", "me25505000", "ME25 5050", "ME25-50"} {
		_, ok := Mod97(input)
		assert.False(t, ok, input)
	}
}
