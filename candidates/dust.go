package candidates

import (
	"fmt"

	"github.com/btcsuite/btcd/txscript"

	"github.com/vulpemventures/utxoselect/coinselect"
)

// dustRelaySpendSize approximates the size, in vbytes, of the smallest
// standard transaction that spends an output of the given script class,
// following the same per-class constants Bitcoin Core's dust-relay rule
// assumes (output size + typical spend witness/scriptSig size).
// Each entry is value(8) + script length varint(1) + the class's
// scriptPubKey, plus the input that spends it.
var dustRelaySpendSize = map[txscript.ScriptClass]uint64{
	txscript.WitnessV1TaprootTy:    8 + 1 + 34 + witnessInputSize,
	txscript.WitnessV0PubKeyHashTy: 8 + 1 + 22 + witnessInputSize,
	txscript.WitnessV0ScriptHashTy: 8 + 1 + 34 + witnessInputSize,
	txscript.PubKeyHashTy:          8 + 1 + 25 + legacyInputSize,
	txscript.ScriptHashTy:          8 + 1 + 23 + legacyInputSize,
}

// witnessInputSize and legacyInputSize are outpoint(36) + scriptSig varint(1)
// + sequence(4) plus a 107-byte satisfaction, counted at a quarter of its
// size in a witness and in full in a scriptSig.
const (
	witnessInputSize = 32 + 4 + 1 + 107/4 + 4
	legacyInputSize  = 32 + 4 + 1 + 107 + 4
)

// DustLimit derives the dust-relay minimum output value for a script, at a
// given feerate, the same way coinselect.ChangePolicy.MinValue is meant to
// be populated: by a caller who knows about scripts, which coinselect
// itself deliberately does not (spec's Non-goals place dust-limit
// derivation outside the core).
func DustLimit(pkScript []byte, feerate coinselect.FeeRate) (uint64, error) {
	scriptClass := txscript.GetScriptClass(pkScript)
	spendSize, ok := dustRelaySpendSize[scriptClass]
	if !ok {
		return 0, fmt.Errorf("no dust-relay sizing known for script class %v", scriptClass)
	}
	return feerate.ImpliedFee(uint32(spendSize) * 4), nil
}

// DefaultDustRelayFeerate is the network's default 3 sat/vB dust-relay
// feerate. At this rate DustLimit derives coinselect.TRDustRelayMinValue,
// P2WPKHDustRelayMinValue and P2PKHDustRelayMinValue for the matching script
// classes instead of hardcoding them, so a caller can sanity-check the two
// agree.
var (
	DefaultDustRelayFeerate = coinselect.FeeRateFromSatPerVB(3)
)
