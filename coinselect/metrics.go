package coinselect

// LowestFee is the one stable branch-and-bound metric: minimize the total
// satoshis paid now plus the amortized cost of spending a change output
// later at LongTermFeerate.
type LowestFee struct {
	Target          Target
	LongTermFeerate FeeRate
	ChangePolicy    ChangePolicy
}

// Score implements Metric.
func (m LowestFee) Score(cs *CoinSelector) (Score, bool) {
	if !cs.IsTargetMet(m.Target) {
		return 0, false
	}
	drain := cs.Drain(m.Target, m.ChangePolicy)
	currentFee := int64(cs.SelectedValue()) - int64(m.Target.Outputs.ValueSum) - int64(drain.Value)
	total := currentFee
	if drain.IsSome() {
		total += int64(drain.Weights.SpendFee(m.LongTermFeerate))
	}
	return Score(total), true
}

// RequiresDescendingValuePWUOrder implements Metric.
func (m LowestFee) RequiresDescendingValuePWUOrder() bool { return true }

// Bound implements Metric. When the target is already met at this node, the
// bound starts from the achieved score (achievable by excluding everything
// left) and tries to find a provably-better alternative where a low- or
// negative-effective-value remaining candidate is used to push the drain
// below its policy's min-value threshold, eliminating it. When the target
// isn't yet met, the bound assumes the remaining value comes in at the best
// available value-per-weight-unit rate in the sort-order suffix.
func (m LowestFee) Bound(cs *CoinSelector, k int) (Score, bool) {
	if cs.IsTargetMet(m.Target) {
		return m.boundWhenMet(cs), true
	}
	return m.boundWhenNotMet(cs, k)
}

func (m LowestFee) boundWhenMet(cs *CoinSelector) Score {
	currentScore, _ := m.Score(cs)

	drainValue, hasDrain := cs.DrainValue(m.Target, m.ChangePolicy)
	if !hasDrain {
		return currentScore
	}

	worst, ok := cs.worstUnselected()
	if !ok {
		return currentScore
	}
	ev := worst.EffectiveValue(m.Target.Fee.Rate)
	if ev >= 0 {
		return currentScore
	}

	amountAboveThreshold := float64(drainValue) - float64(m.ChangePolicy.MinValue)
	valuePerNegativeEV := float64(worst.Value) / -ev
	extraValueNeeded := amountAboveThreshold * valuePerNegativeEV
	costOfGettingRidOfChange := extraValueNeeded + float64(drainValue)
	costOfChange := m.ChangePolicy.DrainWeights.Waste(m.Target.Fee.Rate, m.LongTermFeerate, m.Target.Outputs.NOutputs)

	bestWithoutChange := Score(float64(currentScore) + costOfGettingRidOfChange - costOfChange)
	if bestWithoutChange < currentScore {
		return bestWithoutChange
	}
	return currentScore
}

func (m LowestFee) boundWhenNotMet(cs *CoinSelector, k int) (Score, bool) {
	suffix := cs.SortOrder()[k:]

	probe := cs.Clone()
	for _, idx := range suffix {
		if probe.IsBanned(idx) || probe.IsSelected(idx) {
			continue
		}
		probe.Select(idx)
	}
	if !probe.IsTargetMet(m.Target) {
		return 0, false
	}

	var bestRatio float64
	found := false
	for _, idx := range suffix {
		if cs.IsBanned(idx) || cs.IsSelected(idx) {
			continue
		}
		bestRatio = cs.Candidate(idx).ValuePerWeightUnit()
		found = true
		break
	}
	if !found {
		return 0, false
	}

	ev := bestRatio - m.Target.Fee.Rate.SatPerWU()
	if ev <= 0 {
		return 0, false
	}

	missing := float64(cs.Missing(m.Target))
	extraWeight := missing / ev
	totalWeight := float64(cs.Weight(m.Target, Drain{})) + extraWeight
	fee := m.Target.Fee.Rate.SatPerWU() * totalWeight
	if float64(m.Target.Fee.ReplaceMinFee) > fee {
		fee = float64(m.Target.Fee.ReplaceMinFee)
	}
	return Score(fee), true
}
