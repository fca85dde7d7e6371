package candidates

import (
	"testing"

	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"

	"github.com/vulpemventures/utxoselect/coinselect"
)

func TestVarIntSizeMatchesWireSerializer(t *testing.T) {
	cases := []uint64{0, 1, 0xfc, 0xfd, 0xffff, 0x10000, 0xffffffff, 0x100000000}
	for _, n := range cases {
		want := wire.VarIntSerializeSize(n)
		require.Equal(t, want, VarIntSize(n), "n=%d", n)
		require.Equal(t, uint32(want), coinselect.VarIntSize(n), "n=%d", n)
	}
}
