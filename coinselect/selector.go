package coinselect

import "sort"

// IndexedCandidate pairs a Candidate with its position in the catalog, the
// unit comparators and sort keys operate over.
type IndexedCandidate struct {
	Index     int
	Candidate Candidate
}

// CoinSelector is the mutable selection state: which candidates are
// selected, which are banned, and the order in which undecided candidates
// are considered next by greedy selection and branch-and-bound.
//
// The zero value is not usable; construct with NewCoinSelector.
type CoinSelector struct {
	candidates []Candidate
	selected   map[int]struct{}
	banned     map[int]struct{}
	order      []int
}

// NewCoinSelector builds a selector over candidates, all initially
// unselected, with the default sort order (input order).
func NewCoinSelector(candidates []Candidate) *CoinSelector {
	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	return &CoinSelector{
		candidates: candidates,
		selected:   make(map[int]struct{}),
		banned:     make(map[int]struct{}),
		order:      order,
	}
}

// Clone returns an independent copy of the selector's mutable state. The
// underlying candidate catalog is shared, never copied.
func (cs *CoinSelector) Clone() *CoinSelector {
	clone := &CoinSelector{
		candidates: cs.candidates,
		selected:   make(map[int]struct{}, len(cs.selected)),
		banned:     make(map[int]struct{}, len(cs.banned)),
		order:      make([]int, len(cs.order)),
	}
	for i := range cs.selected {
		clone.selected[i] = struct{}{}
	}
	for i := range cs.banned {
		clone.banned[i] = struct{}{}
	}
	copy(clone.order, cs.order)
	return clone
}

// Candidates returns the underlying catalog. The slice must not be mutated.
func (cs *CoinSelector) Candidates() []Candidate { return cs.candidates }

// SortOrder returns the current sort order: a permutation of candidate
// indices. The slice must not be mutated.
func (cs *CoinSelector) SortOrder() []int { return cs.order }

// Candidate returns the candidate at index i.
func (cs *CoinSelector) Candidate(i int) Candidate { return cs.candidates[i] }

func (cs *CoinSelector) checkIndex(i int) error {
	if i < 0 || i >= len(cs.candidates) {
		return &SelectionConflict{Index: i, Reason: ErrIndexOutOfRange}
	}
	return nil
}

// IsSelected reports whether candidate i is currently selected.
func (cs *CoinSelector) IsSelected(i int) bool {
	_, ok := cs.selected[i]
	return ok
}

// IsBanned reports whether candidate i is currently banned.
func (cs *CoinSelector) IsBanned(i int) bool {
	_, ok := cs.banned[i]
	return ok
}

// Select marks candidate i selected.
func (cs *CoinSelector) Select(i int) error {
	if err := cs.checkIndex(i); err != nil {
		return err
	}
	if cs.IsBanned(i) {
		return &SelectionConflict{Index: i, Reason: ErrBanned}
	}
	if cs.IsSelected(i) {
		return &SelectionConflict{Index: i, Reason: ErrAlreadySelected}
	}
	cs.selected[i] = struct{}{}
	return nil
}

// Deselect marks candidate i unselected. It is a no-op if i is already
// unselected.
func (cs *CoinSelector) Deselect(i int) error {
	if err := cs.checkIndex(i); err != nil {
		return err
	}
	delete(cs.selected, i)
	return nil
}

// Ban forbids candidate i from being selected, deselecting it first if
// necessary.
func (cs *CoinSelector) Ban(i int) error {
	if err := cs.checkIndex(i); err != nil {
		return err
	}
	delete(cs.selected, i)
	cs.banned[i] = struct{}{}
	return nil
}

// Unban lifts a previous ban on candidate i.
func (cs *CoinSelector) Unban(i int) error {
	if err := cs.checkIndex(i); err != nil {
		return err
	}
	delete(cs.banned, i)
	return nil
}

// SelectNext selects the first unselected, non-banned candidate in sort
// order, reporting ok=false if none remain.
func (cs *CoinSelector) SelectNext() (int, bool) {
	for _, i := range cs.order {
		if cs.IsSelected(i) || cs.IsBanned(i) {
			continue
		}
		cs.selected[i] = struct{}{}
		return i, true
	}
	return 0, false
}

// SelectIter is a stepper over the sort order that selects one candidate per
// call to Next or NextBack, front-to-back or back-to-front, returning the
// selector snapshot after each step alongside the index and Candidate just
// selected. It wraps its own independent clone of the selector it was built
// from, so stepping it never mutates the caller's CoinSelector.
type SelectIter struct {
	cs *CoinSelector
}

// SelectIter builds a SelectIter over an independent clone of cs's current
// state.
func (cs *CoinSelector) SelectIter() *SelectIter {
	return &SelectIter{cs: cs.Clone()}
}

// Next selects the first unselected, non-banned candidate in sort order,
// reporting ok=false once no unselected candidate remains.
func (it *SelectIter) Next() (cs *CoinSelector, index int, candidate Candidate, ok bool) {
	for _, i := range it.cs.order {
		if it.cs.IsSelected(i) || it.cs.IsBanned(i) {
			continue
		}
		_ = it.cs.Select(i)
		return it.cs, i, it.cs.Candidate(i), true
	}
	return nil, 0, Candidate{}, false
}

// NextBack selects the last unselected, non-banned candidate in sort order
// instead of the first, mirroring a double-ended iterator's other end.
func (it *SelectIter) NextBack() (cs *CoinSelector, index int, candidate Candidate, ok bool) {
	for k := len(it.cs.order) - 1; k >= 0; k-- {
		i := it.cs.order[k]
		if it.cs.IsSelected(i) || it.cs.IsBanned(i) {
			continue
		}
		_ = it.cs.Select(i)
		return it.cs, i, it.cs.Candidate(i), true
	}
	return nil, 0, Candidate{}, false
}

// SelectAll selects every unbanned candidate.
func (cs *CoinSelector) SelectAll() {
	for _, i := range cs.order {
		if !cs.IsBanned(i) {
			cs.selected[i] = struct{}{}
		}
	}
}

// SelectAllEffective selects every unbanned candidate whose effective value
// at the given feerate is positive, i.e. every candidate that's worth
// including regardless of the target.
func (cs *CoinSelector) SelectAllEffective(feerate FeeRate) {
	for _, i := range cs.order {
		if cs.IsSelected(i) || cs.IsBanned(i) {
			continue
		}
		if cs.candidates[i].EffectiveValue(feerate) > 0 {
			cs.selected[i] = struct{}{}
		}
	}
}

// SortCandidatesBy replaces the sort order with the stable sort induced by
// less, which reports whether candidate a should be considered before b.
func (cs *CoinSelector) SortCandidatesBy(less func(a, b IndexedCandidate) bool) {
	sort.SliceStable(cs.order, func(i, j int) bool {
		ai, aj := cs.order[i], cs.order[j]
		return less(IndexedCandidate{ai, cs.candidates[ai]}, IndexedCandidate{aj, cs.candidates[aj]})
	})
}

// SortCandidatesByDescendingValuePWU is the predefined ordering branch-and-
// bound relies on: descending value per weight unit, ties broken by
// descending value, then ascending index.
func (cs *CoinSelector) SortCandidatesByDescendingValuePWU() {
	cs.SortCandidatesBy(func(a, b IndexedCandidate) bool {
		pa, pb := a.Candidate.ValuePerWeightUnit(), b.Candidate.ValuePerWeightUnit()
		if pa != pb {
			return pa > pb
		}
		if a.Candidate.Value != b.Candidate.Value {
			return a.Candidate.Value > b.Candidate.Value
		}
		return a.Index < b.Index
	})
}

// SortCandidatesByKey is a convenience wrapper over SortCandidatesBy for a
// numeric or string sort key.
func SortCandidatesByKey[K ordered](cs *CoinSelector, key func(IndexedCandidate) K) {
	cs.SortCandidatesBy(func(a, b IndexedCandidate) bool {
		return key(a) < key(b)
	})
}

type ordered interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 | ~string
}

// SelectedIndices returns the indices of selected candidates in sort order.
func (cs *CoinSelector) SelectedIndices() []int {
	out := make([]int, 0, len(cs.selected))
	for _, i := range cs.order {
		if cs.IsSelected(i) {
			out = append(out, i)
		}
	}
	return out
}

// UnselectedIndices returns the indices of candidates that are neither
// selected nor banned, in sort order.
func (cs *CoinSelector) UnselectedIndices() []int {
	out := make([]int, 0, len(cs.order))
	for _, i := range cs.order {
		if !cs.IsSelected(i) && !cs.IsBanned(i) {
			out = append(out, i)
		}
	}
	return out
}

// worstUnselected returns the last unselected, unbanned candidate in sort
// order, i.e. with ordering applied, the one with the lowest value per
// weight unit currently available.
func (cs *CoinSelector) worstUnselected() (Candidate, bool) {
	for k := len(cs.order) - 1; k >= 0; k-- {
		i := cs.order[k]
		if cs.IsSelected(i) || cs.IsBanned(i) {
			continue
		}
		return cs.candidates[i], true
	}
	return Candidate{}, false
}

// SelectedValue is the sum of selected candidates' values.
func (cs *CoinSelector) SelectedValue() uint64 {
	var v uint64
	for i := range cs.selected {
		v = addSat(v, cs.candidates[i].Value)
	}
	return v
}

// SelectedInputCount is the sum of selected candidates' InputCount.
func (cs *CoinSelector) SelectedInputCount() uint32 {
	var n uint32
	for i := range cs.selected {
		n += cs.candidates[i].InputCount
	}
	return n
}

// hasSegwitSelected reports whether any selected candidate requires a
// witness, which forces the segwit marker+flag header onto the transaction.
func (cs *CoinSelector) hasSegwitSelected() bool {
	for i := range cs.selected {
		if cs.candidates[i].IsSegwit {
			return true
		}
	}
	return false
}

// SelectedInputWeight is the weight contribution of every selected
// candidate, including the input-count varint and the segwit header if
// applicable.
func (cs *CoinSelector) SelectedInputWeight() uint32 {
	segwit := cs.hasSegwitSelected()
	var weight uint32
	for i := range cs.selected {
		c := cs.candidates[i]
		w := c.Weight
		// A non-segwit input in an otherwise-segwit transaction still
		// needs its empty witness stack represented by one zero byte.
		if segwit && !c.IsSegwit {
			w++
		}
		weight += w
	}
	weight += inputCountVarintGrowth(uint64(cs.SelectedInputCount()))
	if segwit {
		weight += segwitHeaderWeight
	}
	return weight
}

// Weight is the full transaction weight implied by this selection, the
// target's recipient outputs and the given drain.
func (cs *CoinSelector) Weight(target Target, drain Drain) uint32 {
	outputWeight := target.Outputs.WeightSum + drain.Weights.OutputWeight +
		outputCountVarintGrowth(uint64(target.Outputs.NOutputs)+uint64(drain.Weights.NOutputs))
	return baseTxWeight + outputWeight + cs.SelectedInputWeight()
}

// ImpliedFee is the fee required by the rate-based weight computation,
// raised to the replacement floor if one applies.
func (cs *CoinSelector) ImpliedFee(target Target, drain Drain) uint64 {
	fee := target.Fee.Rate.ImpliedFee(cs.Weight(target, drain))
	if target.Fee.ReplaceMinFee > fee {
		return target.Fee.ReplaceMinFee
	}
	return fee
}

// Excess is selected value minus the target's recipient value, the drain's
// value, and the required fee. A non-negative excess means the target is
// met.
func (cs *CoinSelector) Excess(target Target, drain Drain) int64 {
	fee := int64(cs.ImpliedFee(target, drain))
	return int64(cs.SelectedValue()) - int64(target.Outputs.ValueSum) - int64(drain.Value) - fee
}

// IsTargetMetWithDrain reports whether the selection funds the target when
// the given drain is included.
func (cs *CoinSelector) IsTargetMetWithDrain(target Target, drain Drain) bool {
	if cs.SelectedInputCount() == 0 {
		return false
	}
	return cs.Excess(target, drain) >= 0
}

// IsTargetMet reports whether the selection funds the target with no drain.
func (cs *CoinSelector) IsTargetMet(target Target) bool {
	return cs.IsTargetMetWithDrain(target, Drain{})
}

// Missing is how many more satoshis of effective value are needed to meet
// the target with no drain; zero if the target is already met.
func (cs *CoinSelector) Missing(target Target) uint64 {
	required := addSat(target.Outputs.ValueSum, cs.ImpliedFee(target, Drain{}))
	return subSat(required, cs.SelectedValue())
}

// DrainValue applies policy and reports the value a change output would
// carry, and whether one should be emitted at all.
func (cs *CoinSelector) DrainValue(target Target, policy ChangePolicy) (uint64, bool) {
	excess := cs.Excess(target, Drain{Weights: policy.DrainWeights})
	if excess > int64(policy.MinValue) {
		return uint64(excess), true
	}
	return 0, false
}

// Drain applies policy and returns the resulting Drain, or the "no drain"
// sentinel if change isn't justified.
func (cs *CoinSelector) Drain(target Target, policy ChangePolicy) Drain {
	if value, ok := cs.DrainValue(target, policy); ok {
		return Drain{Weights: policy.DrainWeights, Value: value}
	}
	return Drain{}
}

// IsSelectionPossible reports whether, starting from the current selection,
// there exists some completion (from the unselected, unbanned remainder)
// that funds the target with no drain.
func (cs *CoinSelector) IsSelectionPossible(target Target) bool {
	probe := cs.Clone()
	probe.SelectAllEffective(target.Fee.Rate)
	return probe.IsTargetMet(target)
}

// IsEmpty reports whether no candidate is currently selected.
func (cs *CoinSelector) IsEmpty() bool { return len(cs.selected) == 0 }

// InputWaste is the sum, over selected candidates, of their weight times
// the difference between the current feerate and the long-term feerate:
// how much more (or less) it costs to pay for them now than later.
func (cs *CoinSelector) InputWaste(feerate, longTermFeerate FeeRate) float64 {
	diff := feerate.SatPerWU() - longTermFeerate.SatPerWU()
	var w float64
	for i := range cs.selected {
		w += float64(cs.candidates[i].Weight) * diff
	}
	return w
}

// Waste combines InputWaste with either the excess (discounted by
// excessDiscount, when there's no drain) or the drain's own waste.
func (cs *CoinSelector) Waste(target Target, longTermFeerate FeeRate, drain Drain, excessDiscount float64) float64 {
	waste := cs.InputWaste(target.Fee.Rate, longTermFeerate)
	if drain.IsNone() {
		waste += float64(cs.Excess(target, drain)) * excessDiscount
	} else {
		waste += drain.Weights.Waste(target.Fee.Rate, longTermFeerate, target.Outputs.NOutputs)
	}
	return waste
}

// SelectUntilTargetMet selects unselected, non-banned candidates in sort
// order until the target is met with no drain, or reports
// InsufficientFunds if the catalog is exhausted first.
func (cs *CoinSelector) SelectUntilTargetMet(target Target) error {
	for !cs.IsTargetMet(target) {
		if _, ok := cs.SelectNext(); !ok {
			return &InsufficientFunds{Missing: cs.Missing(target)}
		}
	}
	return nil
}

// ApplySelection returns the elements of original at the selected indices,
// in sort order (not input order).
func ApplySelection[T any](cs *CoinSelector, original []T) []T {
	indices := cs.SelectedIndices()
	out := make([]T, 0, len(indices))
	for _, i := range indices {
		out = append(out, original[i])
	}
	return out
}
