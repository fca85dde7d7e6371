// Package candidates adapts wallet-shaped UTXO data into coinselect's
// pure value types. None of this lives inside coinselect itself: the core
// package has no notion of scripts, addresses or wire formats, so turning a
// btcutil-denominated UTXO into a coinselect.Candidate is the caller's job.
package candidates

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"

	"github.com/vulpemventures/utxoselect/coinselect"
)

// Utxo is the shape a wallet-style repository hands back for a spendable
// output: enough to price it (value, script) and to know how it will be
// spent (witness vs. legacy, and how many signatures the witness needs).
type Utxo struct {
	TxID         string
	VOut         uint32
	Value        btcutil.Amount
	PkScript     []byte
	RedeemScript []byte
}

// ToCandidate prices a Utxo into a coinselect.Candidate with an input count
// of 1, which holds for every script type this repo models.
func ToCandidate(u Utxo) (coinselect.Candidate, error) {
	if u.Value < 0 {
		return coinselect.Candidate{}, fmt.Errorf("utxo %s:%d has negative value", u.TxID, u.VOut)
	}

	weight, isSegwit, err := inputWeight(u.PkScript, u.RedeemScript)
	if err != nil {
		return coinselect.Candidate{}, fmt.Errorf("utxo %s:%d: %w", u.TxID, u.VOut, err)
	}

	return coinselect.NewCandidate(uint64(u.Value), weight, 1, isSegwit)
}

// ToCandidates prices a whole UTXO set in one call, preserving order so the
// caller can recover the originating Utxo for any index coinselect reports
// as selected via coinselect.ApplySelection.
func ToCandidates(utxos []Utxo) ([]coinselect.Candidate, error) {
	out := make([]coinselect.Candidate, len(utxos))
	for i, u := range utxos {
		c, err := ToCandidate(u)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// inputWeight estimates the weight of spending an output locked by pkScript,
// in weight units, following the per-script-type satisfaction weights used
// throughout the pack's wallet fee-estimation code (txsizes/txrules-style
// constants), rather than coinselect's single Taproot-keyspend constant,
// since a real caller's UTXO set is rarely Taproot-only.
func inputWeight(pkScript, redeemScript []byte) (weight uint32, isSegwit bool, err error) {
	scriptClass := txscript.GetScriptClass(pkScript)

	switch scriptClass {
	case txscript.WitnessV1TaprootTy:
		return coinselect.TrKeyspendTxInWeight, true, nil
	case txscript.WitnessV0PubKeyHashTy:
		// base (164wu of non-witness input fields) + a 107wu witness stack
		// (signature + pubkey).
		return legacyInputBaseWeight + 107, true, nil
	case txscript.WitnessV0ScriptHashTy:
		if len(redeemScript) == 0 {
			return 0, false, fmt.Errorf("p2wsh utxo requires a redeem script to size its witness")
		}
		return legacyInputBaseWeight + uint32(len(redeemScript))*4 + 107, true, nil
	case txscript.PubKeyHashTy:
		return legacyInputBaseWeight + (1+72+1+33)*4, false, nil
	case txscript.ScriptHashTy:
		if len(redeemScript) == 0 {
			return 0, false, fmt.Errorf("p2sh utxo requires a redeem script to size its scriptSig")
		}
		return legacyInputBaseWeight + uint32(len(redeemScript)+1+72+1+33)*4, false, nil
	default:
		return 0, false, fmt.Errorf("unsupported script class %v", scriptClass)
	}
}

// legacyInputBaseWeight mirrors coinselect's internal txInBaseWeight
// (outpoint + sequence + empty scriptSig length byte, at 4wu/byte); it is
// duplicated here rather than exported from coinselect because the core
// package deliberately keeps this as an implementation detail of its own
// weight formula, not a published constant for callers to build on.
const legacyInputBaseWeight uint32 = (32 + 4 + 4 + 1) * 4
