package coinselect

// Published dust-limit constants, for callers building Candidates and
// drain outputs. Deriving a dust limit from an arbitrary scriptPubKey is
// out of scope for the core; see the candidates package.
const (
	// TRDustRelayMinValue is the minimum value the default relay policy
	// accepts for a P2TR output.
	TRDustRelayMinValue uint64 = 330
	// P2WPKHDustRelayMinValue is the minimum value the default relay
	// policy accepts for a P2WPKH output.
	P2WPKHDustRelayMinValue uint64 = 294
	// P2PKHDustRelayMinValue is the minimum value the default relay
	// policy accepts for a legacy P2PKH output.
	P2PKHDustRelayMinValue uint64 = 546
)
