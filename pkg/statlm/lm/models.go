package lm

import (
	"github.com/cognicore/statlm/pkg/statlm/ngram"
	"github.com/cognicore/statlm/pkg/statlm/smooth"
)

// Discounts applied when the caller does not supply one.
const (
	DefaultAbsoluteDiscount  = 0.75
	DefaultKneserNeyDiscount = 0.1
	DefaultBackoffAlpha      = 0.4
)

// StrategyFunc builds a smoothing strategy over a model's own counter.
type StrategyFunc func(counts *ngram.Counter) smooth.Strategy

// NewMLE scores by unsmoothed relative frequency. Unseen words get
// probability zero.
func NewMLE(order int, v Vocabulary) (*Model, error) {
	m, err := newModel(order, v)
	if err != nil {
		return nil, err
	}
	m.score = func(word string, context ngram.Gram) float64 {
		return m.counts.ContextCounts(context).Freq(word)
	}
	return m, nil
}

// NewLidstone adds gamma pseudo-counts to every vocabulary word:
// (c + γ) / (N + γ·|V|).
func NewLidstone(order int, v Vocabulary, gamma float64) (*Model, error) {
	m, err := newModel(order, v)
	if err != nil {
		return nil, err
	}
	m.score = func(word string, context ngram.Gram) float64 {
		fd := m.counts.ContextCounts(context)
		denom := float64(fd.N()) + gamma*float64(m.vocab.Size())
		if denom == 0 {
			return 0
		}
		return (float64(fd.Count(word)) + gamma) / denom
	}
	return m, nil
}

// NewLaplace is Lidstone with gamma 1.
func NewLaplace(order int, v Vocabulary) (*Model, error) {
	return NewLidstone(order, v, 1)
}

// NewStupidBackoff scores by raw relative frequency, backing off to the
// shortened context with a constant penalty when the word was never seen
// after the full one. Scores are not a normalized distribution.
func NewStupidBackoff(order int, v Vocabulary, alpha float64) (*Model, error) {
	m, err := newModel(order, v)
	if err != nil {
		return nil, err
	}
	m.score = func(word string, context ngram.Gram) float64 {
		factor := 1.0
		for len(context) > 0 {
			fd := m.counts.ContextCounts(context)
			if c := fd.Count(word); c > 0 {
				return factor * float64(c) / float64(fd.N())
			}
			factor *= alpha
			context = context[1:]
		}
		return factor * m.counts.Unigrams().Freq(word)
	}
	return m, nil
}

// NewInterpolated blends all orders using the smoothing strategy built over
// the model's counter: score = α + γ·score(shorter context), bottoming out
// at the strategy's unigram score. A context with no observed continuations
// defers fully to the next order down.
func NewInterpolated(order int, v Vocabulary, build StrategyFunc) (*Model, error) {
	m, err := newModel(order, v)
	if err != nil {
		return nil, err
	}
	strategy := build(m.counts)
	m.score = func(word string, context ngram.Gram) float64 {
		prob, weight := 0.0, 1.0
		for len(context) > 0 {
			if m.counts.ContextCounts(context).B() == 0 {
				context = context[1:]
				continue
			}
			alpha, gamma := strategy.AlphaGamma(word, context)
			prob += weight * alpha
			weight *= gamma
			context = context[1:]
		}
		return prob + weight*strategy.UnigramScore(word)
	}
	return m, nil
}

// NewWittenBellInterpolated is NewInterpolated with Witten-Bell smoothing.
func NewWittenBellInterpolated(order int, v Vocabulary) (*Model, error) {
	return NewInterpolated(order, v, func(c *ngram.Counter) smooth.Strategy {
		return smooth.NewWittenBell(c)
	})
}

// NewAbsoluteDiscountingInterpolated is NewInterpolated with a fixed
// discount subtracted from every observed count.
func NewAbsoluteDiscountingInterpolated(order int, v Vocabulary, discount float64) (*Model, error) {
	return NewInterpolated(order, v, func(c *ngram.Counter) smooth.Strategy {
		return smooth.NewAbsoluteDiscounting(c, discount)
	})
}

// NewKneserNeyInterpolated is NewInterpolated with Kneser-Ney continuation
// counting below the top order.
func NewKneserNeyInterpolated(order int, v Vocabulary, discount float64) (*Model, error) {
	return NewInterpolated(order, v, func(c *ngram.Counter) smooth.Strategy {
		return smooth.NewKneserNey(c, order, discount)
	})
}
