package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashText_Deterministic(t *testing.T) {
	assert.Equal(t, hashText("operator"), hashText("operator"))
	assert.NotEqual(t, hashText("operator"), hashText("operato"))
}

func TestHashText_EmptyIsZero(t *testing.T) {
	assert.Equal(t, uint32(0), hashText(""))
}

func TestHashText_RotateMixesAllBytes(t *testing.T) {
	// Strings longer than four bytes must still differ in the first
	// byte: the rotate wraps rather than shifting early bytes out.
	a := hashText("Xbcdefgh")
	b := hashText("Ybcdefgh")
	assert.NotEqual(t, a, b)
}

func TestCompress_Bound(t *testing.T) {
	// For all h and 0 < n <= 32, compress(h, n) < 2^n.
	hs := []uint32{0, 1, 0xFF, 0xFFFF, 0xDEADBEEF, 0xFFFFFFFF, 137, 1 << 31}
	for _, h := range hs {
		for n := uint32(1); n <= 32; n++ {
			got := compress(h, n)
			if n < 32 {
				require.Less(t, uint64(got), uint64(1)<<n,
					"compress(%#x, %d) out of range", h, n)
			}
		}
	}
}

func TestCompress_SpreadsHighBits(t *testing.T) {
	// Keys differing only in high-order bits must not all land in
	// bucket zero under a narrow index.
	a := compress(0x10000000, 4)
	b := compress(0x20000000, 4)
	c := compress(0x00000000, 4)
	assert.False(t, a == c && b == c, "high bits thrown away")
}

func TestHashIdentifierKey_LetterMatters(t *testing.T) {
	// Sequential numbers under different letters should not be forced
	// into identical buckets.
	same := 0
	for n := uint64(1); n <= 64; n++ {
		if hashIdentifierKey('S', n, 8) == hashIdentifierKey('O', n, 8) {
			same++
		}
	}
	assert.Less(t, same, 64, "letter ignored by identifier hash")
}

func TestHashFloatKey_UsesBitPattern(t *testing.T) {
	assert.Equal(t, hashFloatKey(1.5, 16), hashFloatKey(1.5, 16))
	// Exact equality is the contract; -0.0 and 0.0 may differ.
}
