package coinselect

// Changeless and Waste are supplemental, non-stable metrics: unlike
// LowestFee they aren't guaranteed tight, but they're useful for callers
// that want a changeless-only search or a raw waste minimization.

// Changeless finds selections that meet the target without needing a
// change output at all.
type Changeless struct {
	Target       Target
	ChangePolicy ChangePolicy
}

// Score implements Metric: any target-met, drain-free selection scores 0;
// everything else is infeasible under this metric.
func (m Changeless) Score(cs *CoinSelector) (Score, bool) {
	if !cs.IsTargetMet(m.Target) {
		return 0, false
	}
	if _, hasDrain := cs.DrainValue(m.Target, m.ChangePolicy); hasDrain {
		return 0, false
	}
	return 0, true
}

// Bound implements Metric. It prunes only when even selecting every
// remaining candidate still can't meet the target; it never tries to prove
// that a changeless completion is unreachable, since that would require
// reasoning about every remaining subset.
func (m Changeless) Bound(cs *CoinSelector, k int) (Score, bool) {
	probe := cs.Clone()
	for _, idx := range cs.SortOrder()[k:] {
		if probe.IsBanned(idx) || probe.IsSelected(idx) {
			continue
		}
		probe.Select(idx)
	}
	if !probe.IsTargetMet(m.Target) {
		return 0, false
	}
	return 0, true
}

// RequiresDescendingValuePWUOrder implements Metric.
func (m Changeless) RequiresDescendingValuePWUOrder() bool { return true }

// Waste is Bitcoin Core's waste metric: current-fee cost over long-term
// cost, summed over selected inputs plus either the undrained excess or
// the drain's own waste. Minimizing it in general tends to over-consolidate
// funds whenever the long-term feerate is even slightly above the current
// one, which is why LowestFee rather than Waste is the stable metric.
type Waste struct {
	Target          Target
	LongTermFeerate FeeRate
	ChangePolicy    ChangePolicy
}

// Score implements Metric.
func (m Waste) Score(cs *CoinSelector) (Score, bool) {
	drain := cs.Drain(m.Target, m.ChangePolicy)
	if !cs.IsTargetMetWithDrain(m.Target, drain) {
		return 0, false
	}
	return Score(cs.Waste(m.Target, m.LongTermFeerate, drain, 1.0)), true
}

// RequiresDescendingValuePWUOrder implements Metric.
func (m Waste) RequiresDescendingValuePWUOrder() bool { return true }

// Bound implements Metric as a heuristic, not a tight one: when the current
// feerate is at or below the long-term feerate, consolidating more can only
// help or stay neutral, so selecting the full remaining suffix gives a
// valid (monotonically non-increasing) lower bound. Otherwise, once the
// target is already met, excluding everything left is itself a valid
// floor; short of that, the only thing asserted is reachability.
func (m Waste) Bound(cs *CoinSelector, k int) (Score, bool) {
	rateDiff := m.Target.Fee.Rate.SatPerWU() - m.LongTermFeerate.SatPerWU()

	if rateDiff <= 0 {
		probe := cs.Clone()
		for _, idx := range cs.SortOrder()[k:] {
			if probe.IsBanned(idx) || probe.IsSelected(idx) {
				continue
			}
			probe.Select(idx)
		}
		drain := probe.Drain(m.Target, m.ChangePolicy)
		if !probe.IsTargetMetWithDrain(m.Target, drain) {
			return 0, false
		}
		return Score(probe.Waste(m.Target, m.LongTermFeerate, drain, 0)), true
	}

	if cs.IsTargetMet(m.Target) {
		drain := cs.Drain(m.Target, m.ChangePolicy)
		return Score(cs.Waste(m.Target, m.LongTermFeerate, drain, 0)), true
	}

	probe := cs.Clone()
	for _, idx := range cs.SortOrder()[k:] {
		if probe.IsBanned(idx) || probe.IsSelected(idx) {
			continue
		}
		probe.Select(idx)
	}
	if !probe.IsTargetMet(m.Target) {
		return 0, false
	}
	return Score(-1e18), true
}
