package util

import "math/big"

// CalculateTarget expands compact difficulty bits into the target a block hash
// must not exceed. A set sign bit yields a negative target.
func CalculateTarget(bits uint32) *big.Int {
	exponent := bits >> 24
	mantissa := int64(bits & 0x007fffff)

	var target *big.Int

	if exponent <= 3 {
		target = big.NewInt(mantissa >> (8 * (3 - exponent)))
	} else {
		target = big.NewInt(mantissa)
		target.Lsh(target, uint(8*(exponent-3)))
	}

	if bits&0x00800000 != 0 {
		target.Neg(target)
	}

	return target
}
