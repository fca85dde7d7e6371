package coinselect

import "math/bits"

// addSat adds two satoshi amounts, saturating at the uint64 maximum instead
// of wrapping. No third-party arbitrary-precision or checked-arithmetic
// library in the dependency set exposes this primitive for uint64; it is a
// two-line wrapper over the standard library's carry-reporting Add64.
func addSat(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return ^uint64(0)
	}
	return sum
}

// subSat subtracts b from a, flooring at zero rather than wrapping.
func subSat(a, b uint64) uint64 {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0
	}
	return diff
}
