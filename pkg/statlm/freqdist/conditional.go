package freqdist

import "sort"

// Conditional maps a condition to its own frequency distribution. A
// condition's distribution is created empty on first access, read or write,
// and from then on appears in Conditions.
type Conditional struct {
	table map[string]*FreqDist
}

// NewConditional returns an empty conditional frequency distribution.
func NewConditional() *Conditional {
	return &Conditional{table: make(map[string]*FreqDist)}
}

// Get returns the distribution for condition, creating an empty one if the
// condition was never touched before.
func (cd *Conditional) Get(condition string) *FreqDist {
	fd, ok := cd.table[condition]
	if !ok {
		fd = New()
		cd.table[condition] = fd
	}
	return fd
}

// Has reports whether condition was touched, without creating it.
func (cd *Conditional) Has(condition string) bool {
	_, ok := cd.table[condition]
	return ok
}

// Conditions returns every touched condition in ascending order.
func (cd *Conditional) Conditions() []string {
	out := make([]string, 0, len(cd.table))
	for c := range cd.table {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of touched conditions.
func (cd *Conditional) Len() int {
	return len(cd.table)
}

// Total sums N() across all conditions.
func (cd *Conditional) Total() int {
	total := 0
	for _, fd := range cd.table {
		total += fd.N()
	}
	return total
}
