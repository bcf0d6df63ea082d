// Package freqdist provides frequency distributions over discrete string
// outcomes, with lazily rebuilt derived views (sorted items, frequency-of-
// frequency histogram, max outcome). Distributions are single-writer: every
// mutation invalidates the caches and the next read rebuilds them.
package freqdist

import "sort"

// FreqDist records how many times each outcome of an experiment occurred.
// Outcomes are strings; n-gram outcomes are joined by the caller before
// being counted. The zero value is not usable; call New.
type FreqDist struct {
	counts map[string]int
	n      int

	// Derived views, valid only until the next mutation.
	itemCache []Item
	nrCache   []int
	maxCache  string
	maxValid  bool
}

// Item is an (outcome, count) pair.
type Item struct {
	Outcome string
	Count   int
}

// New returns an empty frequency distribution.
func New() *FreqDist {
	return &FreqDist{counts: make(map[string]int)}
}

// FromSamples counts each sample once, in order.
func FromSamples(samples []string) *FreqDist {
	fd := New()
	fd.Update(samples)
	return fd
}

// Increment adds by to the count for outcome x. A zero by is a no-op and
// leaves the caches intact.
func (fd *FreqDist) Increment(x string, by int) {
	if by == 0 {
		return
	}
	fd.counts[x] += by
	fd.n += by
	fd.resetCaches()
}

// Update increments the count of every sample by one.
func (fd *FreqDist) Update(samples []string) {
	for _, s := range samples {
		fd.Increment(s, 1)
	}
}

// Count returns the recorded count for x, zero if x was never seen.
func (fd *FreqDist) Count(x string) int {
	return fd.counts[x]
}

// N returns the total number of recorded outcomes.
func (fd *FreqDist) N() int {
	return fd.n
}

// B returns the number of distinct outcomes with count greater than zero.
func (fd *FreqDist) B() int {
	return len(fd.counts)
}

// Freq returns Count(x)/N(), or 0 when the distribution is empty.
func (fd *FreqDist) Freq(x string) float64 {
	if fd.n == 0 {
		return 0
	}
	return float64(fd.counts[x]) / float64(fd.n)
}

// Nr returns the number of outcomes with exactly count r. Nr(0) is 0; use
// NrWithBins when the experiment's bin count is known.
func (fd *FreqDist) Nr(r int) int {
	if r < 0 {
		return 0
	}
	if r == 0 {
		return 0
	}
	if fd.nrCache == nil {
		fd.buildNrCache()
	}
	if r >= len(fd.nrCache) {
		return 0
	}
	return fd.nrCache[r]
}

// NrWithBins is Nr extended with a bin count: Nr(0) becomes bins-B().
func (fd *FreqDist) NrWithBins(r, bins int) int {
	if r == 0 {
		return bins - fd.B()
	}
	return fd.Nr(r)
}

// Hapaxes returns the outcomes that occurred exactly once, in ascending
// outcome order.
func (fd *FreqDist) Hapaxes() []string {
	var out []string
	for x, c := range fd.counts {
		if c == 1 {
			out = append(out, x)
		}
	}
	sort.Strings(out)
	return out
}

// Keys returns the outcomes in non-increasing count order, ties broken by
// ascending outcome.
func (fd *FreqDist) Keys() []string {
	items := fd.Items()
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = it.Outcome
	}
	return keys
}

// Items returns (outcome, count) pairs in non-increasing count order, ties
// broken by ascending outcome. The returned slice is a copy.
func (fd *FreqDist) Items() []Item {
	if fd.itemCache == nil {
		fd.buildItemCache()
	}
	out := make([]Item, len(fd.itemCache))
	copy(out, fd.itemCache)
	return out
}

// Max returns the outcome with the greatest count. Ties are broken by the
// greatest outcome under string ordering. ok is false for an empty
// distribution.
func (fd *FreqDist) Max() (outcome string, ok bool) {
	if len(fd.counts) == 0 {
		return "", false
	}
	if !fd.maxValid {
		best, bestCount := "", -1
		for x, c := range fd.counts {
			if c > bestCount || (c == bestCount && x > best) {
				best, bestCount = x, c
			}
		}
		fd.maxCache = best
		fd.maxValid = true
	}
	return fd.maxCache, true
}

// Copy returns an independent copy of the distribution. Caches are not
// carried over.
func (fd *FreqDist) Copy() *FreqDist {
	clone := New()
	for x, c := range fd.counts {
		clone.counts[x] = c
	}
	clone.n = fd.n
	return clone
}

func (fd *FreqDist) resetCaches() {
	fd.itemCache = nil
	fd.nrCache = nil
	fd.maxValid = false
}

func (fd *FreqDist) buildItemCache() {
	items := make([]Item, 0, len(fd.counts))
	for x, c := range fd.counts {
		items = append(items, Item{Outcome: x, Count: c})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Outcome < items[j].Outcome
	})
	fd.itemCache = items
}

func (fd *FreqDist) buildNrCache() {
	nr := []int{0}
	for _, c := range fd.counts {
		if c >= len(nr) {
			nr = append(nr, make([]int, c+1-len(nr))...)
		}
		if c > 0 {
			nr[c]++
		}
	}
	fd.nrCache = nr
}
