// Package smooth provides the interpolation strategies used by language
// models: given a word and its context, a strategy yields the blending
// terms alpha and gamma such that
//
//	score(word | context) = alpha + gamma * score(word | context[1:])
//
// with UnigramScore as the base case of the recursion.
package smooth

import (
	"math"

	"github.com/cognicore/statlm/pkg/statlm/freqdist"
	"github.com/cognicore/statlm/pkg/statlm/ngram"
)

// Strategy supplies the per-order blending terms for an interpolated model.
type Strategy interface {
	UnigramScore(word string) float64
	AlphaGamma(word string, context ngram.Gram) (alpha, gamma float64)
}

// fullDefer sends the whole probability mass to the next lower order. Used
// whenever a denominator would be zero.
func fullDefer() (float64, float64) { return 0, 1 }

// WittenBell interpolation. The backoff weight for a context grows with the
// number of distinct words ever seen after it.
type WittenBell struct {
	counts *ngram.Counter
}

func NewWittenBell(counts *ngram.Counter) *WittenBell {
	return &WittenBell{counts: counts}
}

func (s *WittenBell) UnigramScore(word string) float64 {
	return s.counts.Unigrams().Freq(word)
}

func (s *WittenBell) AlphaGamma(word string, context ngram.Gram) (float64, float64) {
	fd := s.counts.ContextCounts(context)
	if fd.B() == 0 {
		return fullDefer()
	}
	gamma := s.gamma(fd)
	return (1 - gamma) * fd.Freq(word), gamma
}

func (s *WittenBell) gamma(fd *freqdist.FreqDist) float64 {
	nPlus := float64(fd.B())
	return nPlus / (nPlus + float64(fd.N()))
}

// AbsoluteDiscounting subtracts a fixed discount from every observed count
// and redistributes the freed mass to the lower order.
type AbsoluteDiscounting struct {
	counts   *ngram.Counter
	discount float64
}

func NewAbsoluteDiscounting(counts *ngram.Counter, discount float64) *AbsoluteDiscounting {
	return &AbsoluteDiscounting{counts: counts, discount: discount}
}

func (s *AbsoluteDiscounting) UnigramScore(word string) float64 {
	return s.counts.Unigrams().Freq(word)
}

func (s *AbsoluteDiscounting) AlphaGamma(word string, context ngram.Gram) (float64, float64) {
	fd := s.counts.ContextCounts(context)
	n := float64(fd.N())
	if n == 0 {
		return fullDefer()
	}
	alpha := math.Max(float64(fd.Count(word))-s.discount, 0) / n
	gamma := s.discount * float64(fd.B()) / n
	return alpha, gamma
}

// KneserNey discounting. Below the highest order, raw occurrence counts are
// replaced by continuation counts: the number of distinct one-longer
// contexts in which the word follows the given context. At the highest
// order no longer table exists, so raw counts are used there.
type KneserNey struct {
	counts   *ngram.Counter
	order    int
	discount float64
}

func NewKneserNey(counts *ngram.Counter, order int, discount float64) *KneserNey {
	return &KneserNey{counts: counts, order: order, discount: discount}
}

func (s *KneserNey) UnigramScore(word string) float64 {
	cont, total := s.continuationCounts(word, nil)
	if total == 0 {
		return 0
	}
	return cont / total
}

func (s *KneserNey) AlphaGamma(word string, context ngram.Gram) (float64, float64) {
	fd := s.counts.ContextCounts(context)
	var cont, total float64
	if len(context)+1 == s.order {
		cont, total = float64(fd.Count(word)), float64(fd.N())
	} else {
		cont, total = s.continuationCounts(word, context)
	}
	if total == 0 {
		return fullDefer()
	}
	alpha := math.Max(cont-s.discount, 0) / total
	gamma := s.discount * float64(fd.B()) / total
	return alpha, gamma
}

// continuationCounts scans the table one order above the context for
// entries whose trailing words equal it. cont is the number of distinct
// extended contexts after which word appears; total is the number of
// distinct (extended context, word) pairs with nonzero count.
func (s *KneserNey) continuationCounts(word string, context ngram.Gram) (cont, total float64) {
	cd := s.counts.Order(len(context) + 2)
	for _, key := range cd.Conditions() {
		prefix := ngram.SplitKey(key)
		if !endsWith(prefix, context) {
			continue
		}
		fd := cd.Get(key)
		if fd.Count(word) > 0 {
			cont++
		}
		total += float64(fd.B())
	}
	return cont, total
}

func endsWith(prefix, context []string) bool {
	if len(prefix) != len(context)+1 {
		return false
	}
	for i, w := range context {
		if prefix[i+1] != w {
			return false
		}
	}
	return true
}
