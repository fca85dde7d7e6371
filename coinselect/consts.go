package coinselect

// Weight constants for a P2TR key-spend input/output, expressed in weight
// units (wu). A non-witness byte costs 4wu; a witness byte costs 1wu.
const (
	// txInBaseWeight is outpoint(36) + sequence(4) + empty scriptSig
	// varint(1), all non-witness, times 4.
	txInBaseWeight uint32 = (32 + 4 + 4 + 1) * 4

	// trKeyspendSatisfactionWeight is the witness stack for a taproot
	// key-path spend: count(1) + sig length(1) + schnorr sig(64), all
	// witness bytes so weight 1 each.
	trKeyspendSatisfactionWeight uint32 = 66

	// txOutBaseWeight is value(8) + scriptPubKey length varint(1), times 4.
	txOutBaseWeight uint32 = (8 + 1) * 4

	// trSpkWeight is a 34-byte P2TR scriptPubKey (OP_1 push-32), times 4.
	trSpkWeight uint32 = (1 + 1 + 32) * 4

	// baseTxWeight is version(4) + locktime(4) + two empty count varints(1+1),
	// all non-witness, times 4.
	baseTxWeight uint32 = 4*4 + 4*4 + 1*4 + 1*4

	// segwitHeaderWeight is the marker+flag added once when any selected
	// input is segwit.
	segwitHeaderWeight uint32 = 2
)

// TrKeyspendTxInWeight is the weight of spending a taproot key-path output:
// the base input fields plus its witness satisfaction.
const TrKeyspendTxInWeight = txInBaseWeight + trKeyspendSatisfactionWeight

// VarIntSize returns the serialized size, in bytes, of a Bitcoin CompactSize
// integer encoding v. Exported so boundary code that wants to cross-check
// this arithmetic against a reference wire serializer has something to
// compare against.
func VarIntSize(v uint64) uint32 {
	return varintSize(v)
}

// varintSize returns the serialized size, in bytes, of a Bitcoin CompactSize
// integer encoding v.
func varintSize(v uint64) uint32 {
	switch {
	case v <= 0xfc:
		return 1
	case v <= 0xffff:
		return 3
	case v <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// inputCountVarintGrowth and outputCountVarintGrowth return the weight delta,
// in 4wu increments, contributed by a count varint beyond the 1-byte
// baseline already folded into baseTxWeight.
func inputCountVarintGrowth(n uint64) uint32  { return (varintSize(n) - 1) * 4 }
func outputCountVarintGrowth(n uint64) uint32 { return (varintSize(n) - 1) * 4 }
