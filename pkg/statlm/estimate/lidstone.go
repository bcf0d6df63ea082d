package estimate

import "github.com/cognicore/statlm/pkg/statlm/freqdist"

// Lidstone is the additive-smoothing estimate (c+γ)/(N+B·γ): γ pseudo-counts
// are added to each of B bins before taking the maximum likelihood estimate.
type Lidstone struct {
	fd      *freqdist.FreqDist
	gamma   float64
	bins    int
	n       int
	divisor float64
}

// NewLidstone builds a Lidstone estimate over bins possible outcomes.
// Non-positive bins defaults to the observed bin count.
func NewLidstone(fd *freqdist.FreqDist, gamma float64, bins int) (*Lidstone, error) {
	bins, err := resolveBins(fd, bins, "lidstone")
	if err != nil {
		return nil, err
	}
	d := &Lidstone{
		fd:      fd,
		gamma:   gamma,
		bins:    bins,
		n:       fd.N(),
		divisor: float64(fd.N()) + float64(bins)*gamma,
	}
	if d.divisor == 0 {
		// No data and γ=0: every probability is 0 anyway, avoid 0/0.
		d.gamma = 0
		d.divisor = 1
	}
	return d, nil
}

// NewLaplace is Lidstone with γ=1 (add-one smoothing).
func NewLaplace(fd *freqdist.FreqDist, bins int) (*Lidstone, error) {
	return NewLidstone(fd, 1, bins)
}

// NewELE is the expected likelihood estimate, Lidstone with γ=0.5.
func NewELE(fd *freqdist.FreqDist, bins int) (*Lidstone, error) {
	return NewLidstone(fd, 0.5, bins)
}

func (d *Lidstone) Prob(sample string) float64 {
	return (float64(d.fd.Count(sample)) + d.gamma) / d.divisor
}

func (d *Lidstone) LogProb(sample string) float64 { return logProb(d.Prob(sample)) }

// Max returns the most frequent outcome: additive smoothing is monotonic in
// frequency.
func (d *Lidstone) Max() (string, bool) { return d.fd.Max() }

func (d *Lidstone) Samples() []string { return d.fd.Keys() }

// Discount returns γB/(N+γB), the fraction of mass moved off the maximum
// likelihood estimate.
func (d *Lidstone) Discount() float64 {
	gb := d.gamma * float64(d.bins)
	if float64(d.n)+gb == 0 {
		return 0
	}
	return gb / (float64(d.n) + gb)
}

// SumsToOne is false in general: the estimate sums to one only when bins
// matches the true outcome space.
func (d *Lidstone) SumsToOne() bool { return false }

// Gamma returns the pseudo-count parameter.
func (d *Lidstone) Gamma() float64 { return d.gamma }
