package symbol

import "math"

// Content hash functions for the five symbol kinds.
//
// Text keys use an 8-bit rotate-left accumulator XORed with each byte.
// Numeric keys use the raw bit pattern truncated to 32 bits. Both are
// then folded down to the index's bucket width by compress, which
// spreads high-order bits into the low-order bits actually used as the
// bucket index. Naive truncation would cluster keys whose low bits share
// a pattern, which is exactly the shape of sequentially issued
// identifier numbers.

// hashText accumulates the bytes of s with an 8-bit rotate-left XOR.
func hashText(s string) uint32 {
	var h uint32
	for i := 0; i < len(s); i++ {
		h = ((h << 8) | (h >> 24)) ^ uint32(s[i])
	}
	return h
}

// compress folds a 32-bit hash down to numBits bits, 0 < numBits <= 32.
// The result is always < 2^numBits.
func compress(h uint32, numBits uint32) uint32 {
	if numBits < 16 {
		h = (h & 0xFFFF) ^ (h >> 16)
	}
	if numBits < 8 {
		h = (h & 0xFF) ^ (h >> 8)
	}
	mask := ^uint32(0)
	if numBits < 32 {
		mask = (uint32(1) << numBits) - 1
	}
	var result uint32
	for h != 0 {
		result ^= h & mask
		h >>= numBits
	}
	return result
}

func hashVariableKey(name string, log2 uint32) uint32 {
	return compress(hashText(name), log2)
}

func hashIdentifierKey(letter byte, number uint64, log2 uint32) uint32 {
	return compress(uint32(number)^(uint32(letter)<<24), log2)
}

func hashStringKey(name string, log2 uint32) uint32 {
	return compress(hashText(name), log2)
}

func hashIntKey(value int64, log2 uint32) uint32 {
	return compress(uint32(uint64(value)), log2)
}

func hashFloatKey(value float64, log2 uint32) uint32 {
	// Fold the full bit pattern before truncating: integral doubles
	// share all-zero low mantissa bits, so the low word alone clusters.
	bits := math.Float64bits(value)
	return compress(uint32(bits^(bits>>32)), log2)
}
