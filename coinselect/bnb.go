package coinselect

import "container/heap"

// Score is a branch-and-bound objective value. Smaller is better; ties are
// acceptable.
type Score float64

// Metric is the capability a branch-and-bound search needs from whatever
// objective it's minimizing: a way to score a fully-decided selection, and
// a way to bound what any completion of a partial one could still achieve.
type Metric interface {
	// Score returns the metric's value for the current selection, and
	// false if the selection is infeasible under this metric.
	Score(cs *CoinSelector) (Score, bool)
	// Bound returns a lower bound on the score achievable by any
	// completion of the partial selection decided up to index k in its
	// sort order, and false if no completion can be feasible at all.
	Bound(cs *CoinSelector, k int) (Score, bool)
	// RequiresDescendingValuePWUOrder reports whether the search should
	// sort candidates by descending value-per-weight-unit before starting,
	// which this metric's bound depends on for tightness.
	RequiresDescendingValuePWUOrder() bool
}

type bnbBranch struct {
	selector    *CoinSelector
	k           int
	bound       Score
	isExclusion bool
}

type branchQueue []*bnbBranch

func (q branchQueue) Len() int { return len(q) }

func (q branchQueue) Less(i, j int) bool {
	if q[i].bound != q[j].bound {
		return q[i].bound < q[j].bound
	}
	// Ties prefer the deeper node, hastening the first feasible discovery.
	return q[i].k > q[j].k
}

func (q branchQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *branchQueue) Push(x interface{}) { *q = append(*q, x.(*bnbBranch)) }

func (q *branchQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

type bnbIterator struct {
	metric Metric
	queue  branchQueue
	best   *Score
}

func newBnbIterator(cs *CoinSelector, metric Metric) *bnbIterator {
	if metric.RequiresDescendingValuePWUOrder() {
		cs.SortCandidatesByDescendingValuePWU()
	}
	it := &bnbIterator{metric: metric}
	heap.Init(&it.queue)
	if bound, ok := metric.Bound(cs, 0); ok {
		heap.Push(&it.queue, &bnbBranch{selector: cs, k: 0, bound: bound, isExclusion: false})
	}
	return it
}

// next pops the best-bound branch, scores it, expands its children, and
// reports whether the search is exhausted. improved reports whether best
// was updated by this pop.
func (it *bnbIterator) next() (selector *CoinSelector, score Score, improved bool, exhausted bool) {
	if it.queue.Len() == 0 {
		return nil, 0, false, true
	}
	branch := heap.Pop(&it.queue).(*bnbBranch)
	if it.best != nil && *it.best <= branch.bound {
		// Min-heap: nothing else remaining can beat the current best either.
		return nil, 0, false, true
	}

	if s, ok := it.metric.Score(branch.selector); ok {
		if it.best == nil || s < *it.best {
			it.best = &s
			improved = true
			score = s
			selector = branch.selector
		}
	}

	it.expand(branch.selector, branch.k)
	return selector, score, improved, false
}

func (it *bnbIterator) expand(cs *CoinSelector, k int) {
	if k >= len(cs.Candidates()) {
		return
	}
	order := cs.order
	idx := order[k]

	switch {
	case cs.IsBanned(idx):
		excl := cs.Clone()
		it.considerPush(excl, k+1, true)
	case cs.IsSelected(idx):
		incl := cs.Clone()
		it.considerPush(incl, k+1, false)
	default:
		incl := cs.Clone()
		_ = incl.Select(idx)
		it.considerPush(incl, k+1, false)

		excl := cs.Clone()
		it.considerPush(excl, k+1, true)
	}
}

func (it *bnbIterator) considerPush(cs *CoinSelector, k int, isExclusion bool) {
	bound, ok := it.metric.Bound(cs, k)
	if !ok {
		return
	}
	if it.best != nil && *it.best <= bound {
		return
	}
	heap.Push(&it.queue, &bnbBranch{selector: cs, k: k, bound: bound, isExclusion: isExclusion})
}

// RunBnB performs best-first branch-and-bound search over the lattice of
// selections, stopping when the search space is exhausted or maxRounds is
// reached. On success it overwrites cs's selection state with the best
// selector found and returns the metric's score for it, whether that score
// is proven optimal (the search wasn't cut short by maxRounds), and how many
// priority-queue pops the search performed.
func (cs *CoinSelector) RunBnB(metric Metric, maxRounds int) (Score, bool, int, error) {
	return cs.RunBnBWithProgress(metric, maxRounds, nil)
}

// RunBnBWithProgress behaves exactly like RunBnB, additionally invoking
// onImprove (if non-nil) with each new best score as the search finds it.
// A caller watching a long-running search uses this to push progress
// notifications without the core needing any notion of who's listening.
func (cs *CoinSelector) RunBnBWithProgress(
	metric Metric, maxRounds int, onImprove func(Score),
) (Score, bool, int, error) {
	it := newBnbIterator(cs, metric)

	var best *Score
	var bestSelector *CoinSelector
	rounds := 0
	proven := false

	for rounds < maxRounds {
		selector, score, improved, exhausted := it.next()
		if exhausted {
			proven = true
			break
		}
		rounds++
		if improved {
			best = &score
			bestSelector = selector
			if onImprove != nil {
				onImprove(score)
			}
		}
	}

	if best == nil {
		return 0, false, rounds, &BnbNoSolution{Rounds: rounds}
	}
	*cs = *bestSelector
	return *best, proven, rounds, nil
}
