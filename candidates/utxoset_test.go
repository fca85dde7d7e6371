package candidates

import (
	"testing"

	"github.com/btcsuite/btcd/txscript"
	"github.com/stretchr/testify/require"

	"github.com/vulpemventures/utxoselect/coinselect"
)

func p2wpkhScript(t *testing.T) []byte {
	script, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_0).
		AddData(make([]byte, 20)).
		Script()
	require.NoError(t, err)
	return script
}

func p2trScript(t *testing.T) []byte {
	script, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_1).
		AddData(make([]byte, 32)).
		Script()
	require.NoError(t, err)
	return script
}

func p2pkhScript(t *testing.T) []byte {
	script, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_DUP).
		AddOp(txscript.OP_HASH160).
		AddData(make([]byte, 20)).
		AddOp(txscript.OP_EQUALVERIFY).
		AddOp(txscript.OP_CHECKSIG).
		Script()
	require.NoError(t, err)
	return script
}

func TestToCandidateTaproot(t *testing.T) {
	u := Utxo{TxID: "abc", VOut: 0, Value: 50000, PkScript: p2trScript(t)}
	c, err := ToCandidate(u)
	require.NoError(t, err)
	require.True(t, c.IsSegwit)
	require.Equal(t, coinselect.TrKeyspendTxInWeight, c.Weight)
	require.Equal(t, uint64(50000), c.Value)
}

func TestToCandidateSegwitV0(t *testing.T) {
	u := Utxo{TxID: "abc", VOut: 1, Value: 10000, PkScript: p2wpkhScript(t)}
	c, err := ToCandidate(u)
	require.NoError(t, err)
	require.True(t, c.IsSegwit)
	require.Greater(t, c.Weight, uint32(0))
}

func TestToCandidateLegacy(t *testing.T) {
	u := Utxo{TxID: "abc", VOut: 2, Value: 10000, PkScript: p2pkhScript(t)}
	c, err := ToCandidate(u)
	require.NoError(t, err)
	require.False(t, c.IsSegwit)
}

func TestToCandidateNegativeValueRejected(t *testing.T) {
	u := Utxo{TxID: "abc", VOut: 0, Value: -1, PkScript: p2trScript(t)}
	_, err := ToCandidate(u)
	require.Error(t, err)
}

func TestToCandidatesPreservesOrder(t *testing.T) {
	utxos := []Utxo{
		{TxID: "a", VOut: 0, Value: 100, PkScript: p2trScript(t)},
		{TxID: "b", VOut: 0, Value: 200, PkScript: p2trScript(t)},
	}
	cs, err := ToCandidates(utxos)
	require.NoError(t, err)
	require.Len(t, cs, 2)
	require.Equal(t, uint64(100), cs[0].Value)
	require.Equal(t, uint64(200), cs[1].Value)
}

func TestDustLimitKnownScriptClass(t *testing.T) {
	limit, err := DustLimit(p2trScript(t), DefaultDustRelayFeerate)
	require.NoError(t, err)
	require.Greater(t, limit, uint64(0))
}

func TestDustLimitUnsupportedScriptClass(t *testing.T) {
	_, err := DustLimit([]byte{txscript.OP_RETURN}, DefaultDustRelayFeerate)
	require.Error(t, err)
}
