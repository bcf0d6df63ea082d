// Package estimate derives probability distributions from frozen frequency
// distributions. The estimator set is closed: maximum likelihood, the
// additive Lidstone family, Witten-Bell, Good-Turing, Simple Good-Turing,
// plus uniform, heldout and cross-validation estimates. Estimators never
// mutate the distribution they wrap.
package estimate

import (
	"fmt"
	"math"

	"github.com/cognicore/statlm/pkg/statlm/freqdist"
	"github.com/cognicore/statlm/pkg/statlm/internalerr"
)

// MinLogProb is returned by LogProb for zero-probability outcomes, keeping
// downstream log-sums finite instead of propagating infinities.
const MinLogProb = -1e300

// Distribution assigns a probability to every outcome.
type Distribution interface {
	// Prob returns the probability of the outcome, in [0, 1].
	Prob(sample string) float64
	// LogProb returns the base-2 log probability, MinLogProb when Prob is 0.
	LogProb(sample string) float64
	// Max returns the most probable outcome; ok is false when the
	// distribution has no samples.
	Max() (sample string, ok bool)
	// Samples returns the outcomes with observed evidence, most frequent
	// first.
	Samples() []string
	// Discount returns the fraction of probability mass reserved for
	// unseen outcomes.
	Discount() float64
	// SumsToOne reports whether probabilities over all bins sum to one.
	SumsToOne() bool
}

func logProb(p float64) float64 {
	if p <= 0 {
		return MinLogProb
	}
	return math.Log2(p)
}

// resolveBins applies the shared bins contract: non-positive bins defaults
// to the observed bin count; the result must cover every observed bin and
// must be positive.
func resolveBins(fd *freqdist.FreqDist, bins int, estimator string) (int, error) {
	if bins <= 0 {
		bins = fd.B()
	}
	if bins < fd.B() {
		return 0, fmt.Errorf("estimate: %s: bins %d smaller than %d observed: %w",
			estimator, bins, fd.B(), internalerr.ErrConfiguration)
	}
	if bins == 0 {
		return 0, fmt.Errorf("estimate: %s: needs at least one bin: %w",
			estimator, internalerr.ErrConfiguration)
	}
	return bins, nil
}

// Entropy returns the Shannon entropy of the distribution in bits, summed
// over its samples.
func Entropy(d Distribution) float64 {
	var h float64
	for _, s := range d.Samples() {
		p := d.Prob(s)
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}

// LogLikelihood returns the expected base-2 log likelihood of the test
// distribution under the actual one.
func LogLikelihood(test, actual Distribution) float64 {
	var ll float64
	for _, s := range actual.Samples() {
		ll += actual.Prob(s) * test.LogProb(s)
	}
	return ll
}
