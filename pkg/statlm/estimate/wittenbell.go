package estimate

import "github.com/cognicore/statlm/pkg/statlm/freqdist"

// WittenBell allocates uniform probability mass to unseen outcomes using
// the count of observed types: the unseen mass is T/(N+T) where T is the
// number of types seen and N the number of observed events. Seen outcomes
// keep c/(N+T); the unseen mass is split evenly over the Z = bins-T unseen
// bins.
type WittenBell struct {
	fd *freqdist.FreqDist
	t  int
	z  int
	n  int
	p0 float64
}

// NewWittenBell builds a flat Witten-Bell estimate over bins possible
// outcomes.
func NewWittenBell(fd *freqdist.FreqDist, bins int) (*WittenBell, error) {
	bins, err := resolveBins(fd, bins, "witten-bell")
	if err != nil {
		return nil, err
	}
	d := &WittenBell{
		fd: fd,
		t:  fd.B(),
		z:  bins - fd.B(),
		n:  fd.N(),
	}
	switch {
	case d.z == 0:
		// Every bin observed: no mass to reserve.
		d.p0 = 0
	case d.n == 0:
		// No data at all: degenerate to uniform over the unseen bins.
		d.p0 = 1 / float64(d.z)
	default:
		d.p0 = float64(d.t) / (float64(d.z) * float64(d.n+d.t))
	}
	return d, nil
}

func (d *WittenBell) Prob(sample string) float64 {
	c := d.fd.Count(sample)
	if c == 0 {
		return d.p0
	}
	return float64(c) / float64(d.n+d.t)
}

func (d *WittenBell) LogProb(sample string) float64 { return logProb(d.Prob(sample)) }
func (d *WittenBell) Max() (string, bool)           { return d.fd.Max() }
func (d *WittenBell) Samples() []string             { return d.fd.Keys() }

// Discount returns T/(N+T), the total mass reserved for unseen outcomes.
func (d *WittenBell) Discount() float64 {
	if d.n+d.t == 0 {
		return 0
	}
	return float64(d.t) / float64(d.n+d.t)
}

func (d *WittenBell) SumsToOne() bool { return true }
