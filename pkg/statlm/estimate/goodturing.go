package estimate

import "github.com/cognicore/statlm/pkg/statlm/freqdist"

// GoodTuring reassigns probability mass using the frequency-of-frequency
// histogram: an outcome seen c times is scored with the adjusted count
// (c+1)·Nr(c+1)/Nr(c). The mass for unseen outcomes is Nr(1)/N, split
// evenly over the unseen bins.
//
// The estimate has a known coverage gap: an observed count c whose Nr(c) is
// a hole in the histogram scores 0 rather than being interpolated. Use
// SimpleGoodTuring when the histogram is sparse.
type GoodTuring struct {
	fd   *freqdist.FreqDist
	bins int
}

// NewGoodTuring builds a Good-Turing estimate over bins possible outcomes.
func NewGoodTuring(fd *freqdist.FreqDist, bins int) (*GoodTuring, error) {
	bins, err := resolveBins(fd, bins, "good-turing")
	if err != nil {
		return nil, err
	}
	return &GoodTuring{fd: fd, bins: bins}, nil
}

func (d *GoodTuring) Prob(sample string) float64 {
	n := d.fd.N()
	if n == 0 {
		return 0
	}
	c := d.fd.Count(sample)
	if c == 0 {
		unseen := d.bins - d.fd.B()
		if unseen == 0 {
			return 0
		}
		p0 := float64(d.fd.Nr(1)) / float64(n)
		return p0 / float64(unseen)
	}
	nc := d.fd.Nr(c)
	if nc == 0 {
		// Hole in the frequency-of-frequency histogram.
		return 0
	}
	ncn := d.fd.Nr(c + 1)
	return float64(c+1) * float64(ncn) / (float64(nc) * float64(n))
}

func (d *GoodTuring) LogProb(sample string) float64 { return logProb(d.Prob(sample)) }
func (d *GoodTuring) Max() (string, bool)           { return d.fd.Max() }
func (d *GoodTuring) Samples() []string             { return d.fd.Keys() }

// Discount returns Nr(1)/N, the mass transferred to unseen outcomes.
func (d *GoodTuring) Discount() float64 {
	if d.fd.N() == 0 {
		return 0
	}
	return float64(d.fd.Nr(1)) / float64(d.fd.N())
}

func (d *GoodTuring) SumsToOne() bool { return true }
