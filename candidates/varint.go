package candidates

import "github.com/btcsuite/btcd/wire"

// VarIntSize returns the number of bytes wire.VarIntSerializeSize would use
// to serialize n as a Bitcoin CompactSize varint. It exists purely so the
// package's tests can cross-check coinselect's hand-rolled varint-growth
// arithmetic against btcd's reference serializer, rather than trusting two
// independent reimplementations of the same encoding to agree by
// construction.
func VarIntSize(n uint64) int {
	return wire.VarIntSerializeSize(n)
}
