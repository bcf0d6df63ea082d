// Package ngram counts n-grams of mixed orders: a plain frequency
// distribution for unigrams and, for each higher order, a conditional
// distribution keyed by the (k-1)-token context.
package ngram

import (
	"fmt"
	"strings"

	"github.com/cognicore/statlm/pkg/statlm/freqdist"
	"github.com/cognicore/statlm/pkg/statlm/internalerr"
)

// Gram is a single n-gram: one or more tokens, the last of which is the
// predicted word and the rest the context.
type Gram []string

// sep joins context tokens into a flat map key. The unit separator cannot
// appear in tokenized text.
const sep = "\x1f"

// Key flattens a token sequence into a context key.
func Key(tokens []string) string {
	return strings.Join(tokens, sep)
}

// SplitKey reverses Key. An empty key is the empty context.
func SplitKey(key string) []string {
	if key == "" {
		return nil
	}
	return strings.Split(key, sep)
}

// Counter accumulates n-gram counts across all orders fed to it.
type Counter struct {
	unigrams *freqdist.FreqDist
	orders   map[int]*freqdist.Conditional
	maxOrder int
}

// NewCounter returns an empty counter.
func NewCounter() *Counter {
	return &Counter{
		unigrams: freqdist.New(),
		orders:   make(map[int]*freqdist.Conditional),
		maxOrder: 1,
	}
}

// Update feeds sentences of n-gram tuples, mixed orders allowed. An empty
// gram fails with ErrTypeMismatch; counting stops at the first such gram.
func (c *Counter) Update(sentences [][]Gram) error {
	for _, sentence := range sentences {
		for _, gram := range sentence {
			if len(gram) == 0 {
				return fmt.Errorf("ngram: empty gram in update: %w", internalerr.ErrTypeMismatch)
			}
			c.Add(gram, 1)
		}
	}
	return nil
}

// Add increments the count of one gram by the given amount. Order-1 grams
// go to the unigram distribution; higher orders go to the per-order table
// under their context.
func (c *Counter) Add(gram Gram, by int) {
	k := len(gram)
	if k > c.maxOrder {
		c.maxOrder = k
	}
	if k == 1 {
		c.unigrams.Increment(gram[0], by)
		return
	}
	c.Order(k).Get(Key(gram[:k-1])).Increment(gram[k-1], by)
}

// Unigrams returns the order-1 distribution.
func (c *Counter) Unigrams() *freqdist.FreqDist {
	return c.unigrams
}

// Order returns the conditional table for order k >= 2, creating it on
// first access.
func (c *Counter) Order(k int) *freqdist.Conditional {
	cd, ok := c.orders[k]
	if !ok {
		cd = freqdist.NewConditional()
		c.orders[k] = cd
	}
	return cd
}

// ContextCounts returns the distribution of words following the given
// context. The empty context yields the unigram distribution. A context
// never observed yields an empty distribution, created on access.
func (c *Counter) ContextCounts(context []string) *freqdist.FreqDist {
	if len(context) == 0 {
		return c.unigrams
	}
	return c.Order(len(context) + 1).Get(Key(context))
}

// MaxOrder returns the largest gram order fed so far (1 for a fresh counter).
func (c *Counter) MaxOrder() int {
	return c.maxOrder
}

// N sums counts across all orders. Overlapping orders fed together are
// intentionally double-counted.
func (c *Counter) N() int {
	total := c.unigrams.N()
	for _, cd := range c.orders {
		total += cd.Total()
	}
	return total
}

// FreqOfFreq returns, per order, a histogram of how many (context, word)
// cells hold each observed count. Order 1 reuses the unigram histogram.
func (c *Counter) FreqOfFreq() map[int]map[int]int {
	out := make(map[int]map[int]int, len(c.orders)+1)

	uni := make(map[int]int)
	for _, it := range c.unigrams.Items() {
		uni[it.Count]++
	}
	out[1] = uni

	for k, cd := range c.orders {
		hist := make(map[int]int)
		for _, cond := range cd.Conditions() {
			for _, it := range cd.Get(cond).Items() {
				hist[it.Count]++
			}
		}
		out[k] = hist
	}
	return out
}

// Walk visits every recorded count, unigrams first, then higher orders in
// no particular order within each table.
func (c *Counter) Walk(fn func(order int, context []string, word string, count int)) {
	for _, it := range c.unigrams.Items() {
		fn(1, nil, it.Outcome, it.Count)
	}
	for k, cd := range c.orders {
		for _, cond := range cd.Conditions() {
			ctx := SplitKey(cond)
			for _, it := range cd.Get(cond).Items() {
				fn(k, ctx, it.Outcome, it.Count)
			}
		}
	}
}
