package estimate

import "github.com/cognicore/statlm/pkg/statlm/freqdist"

// MLE is the maximum likelihood estimate: the probability of each outcome
// is its relative frequency. Unseen outcomes get probability zero.
type MLE struct {
	fd *freqdist.FreqDist
}

// NewMLE wraps a frequency distribution with the maximum likelihood
// estimate. The distribution must not be mutated afterwards.
func NewMLE(fd *freqdist.FreqDist) *MLE {
	return &MLE{fd: fd}
}

func (d *MLE) Prob(sample string) float64    { return d.fd.Freq(sample) }
func (d *MLE) LogProb(sample string) float64 { return logProb(d.Prob(sample)) }
func (d *MLE) Max() (string, bool)           { return d.fd.Max() }
func (d *MLE) Samples() []string             { return d.fd.Keys() }
func (d *MLE) Discount() float64             { return 0 }
func (d *MLE) SumsToOne() bool               { return true }
