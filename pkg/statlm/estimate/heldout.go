package estimate

import (
	"sort"

	"github.com/cognicore/statlm/pkg/statlm/freqdist"
)

// Heldout predicts the probability of an outcome from its count in a base
// distribution, using the average heldout frequency of all outcomes that
// share that base count: estimate[r] = Tr[r]/(Nr[r]·N), where Tr[r] is the
// total heldout count of outcomes seen r times in the base.
type Heldout struct {
	base     *freqdist.FreqDist
	heldout  *freqdist.FreqDist
	estimate []float64
}

// NewHeldout precomputes the per-count estimates from the base and heldout
// distributions.
func NewHeldout(base, heldout *freqdist.FreqDist, bins int) (*Heldout, error) {
	bins, err := resolveBins(base, bins, "heldout")
	if err != nil {
		return nil, err
	}

	maxR := 0
	if m, ok := base.Max(); ok {
		maxR = base.Count(m)
	}

	tr := make([]float64, maxR+1)
	for _, it := range heldout.Items() {
		tr[base.Count(it.Outcome)] += float64(it.Count)
	}

	n := heldout.N()
	est := make([]float64, maxR+1)
	for r := 0; r <= maxR; r++ {
		nr := base.NrWithBins(r, bins)
		if nr == 0 || n == 0 {
			est[r] = 0
			continue
		}
		est[r] = tr[r] / (float64(nr) * float64(n))
	}

	return &Heldout{base: base, heldout: heldout, estimate: est}, nil
}

func (d *Heldout) Prob(sample string) float64 {
	r := d.base.Count(sample)
	if r >= len(d.estimate) {
		return 0
	}
	return d.estimate[r]
}

func (d *Heldout) LogProb(sample string) float64 { return logProb(d.Prob(sample)) }

// Max follows the base distribution; heldout estimates are not strictly
// monotonic in base frequency, so this is a best effort.
func (d *Heldout) Max() (string, bool) { return d.base.Max() }

func (d *Heldout) Samples() []string { return d.base.Keys() }
func (d *Heldout) Discount() float64 { return 0 }
func (d *Heldout) SumsToOne() bool   { return false }

// CrossValidation averages the heldout estimates over every ordered pair of
// frequency distributions.
type CrossValidation struct {
	fds      []*freqdist.FreqDist
	heldouts []*Heldout
}

// NewCrossValidation builds the pairwise heldout estimates for the given
// distributions.
func NewCrossValidation(fds []*freqdist.FreqDist, bins int) (*CrossValidation, error) {
	cv := &CrossValidation{fds: fds}
	for i, base := range fds {
		for j, heldout := range fds {
			if i == j {
				continue
			}
			h, err := NewHeldout(base, heldout, bins)
			if err != nil {
				return nil, err
			}
			cv.heldouts = append(cv.heldouts, h)
		}
	}
	return cv, nil
}

func (d *CrossValidation) Prob(sample string) float64 {
	if len(d.heldouts) == 0 {
		return 0
	}
	var p float64
	for _, h := range d.heldouts {
		p += h.Prob(sample)
	}
	return p / float64(len(d.heldouts))
}

func (d *CrossValidation) LogProb(sample string) float64 { return logProb(d.Prob(sample)) }

func (d *CrossValidation) Max() (string, bool) {
	best, bestP, ok := "", -1.0, false
	for _, s := range d.Samples() {
		if p := d.Prob(s); p > bestP {
			best, bestP, ok = s, p, true
		}
	}
	return best, ok
}

// Samples returns the union of samples across the underlying distributions,
// in ascending order.
func (d *CrossValidation) Samples() []string {
	set := make(map[string]struct{})
	for _, fd := range d.fds {
		for _, s := range fd.Keys() {
			set[s] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func (d *CrossValidation) Discount() float64 { return 0 }
func (d *CrossValidation) SumsToOne() bool   { return false }
