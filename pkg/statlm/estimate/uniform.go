package estimate

import (
	"fmt"
	"sort"

	"github.com/cognicore/statlm/pkg/statlm/internalerr"
)

// Uniform assigns equal probability to each sample in a fixed set and zero
// to everything else.
type Uniform struct {
	set     map[string]struct{}
	samples []string
	p       float64
}

// NewUniform builds a uniform distribution over the distinct samples.
func NewUniform(samples []string) (*Uniform, error) {
	set := make(map[string]struct{}, len(samples))
	for _, s := range samples {
		set[s] = struct{}{}
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("estimate: uniform: needs at least one sample: %w",
			internalerr.ErrConfiguration)
	}
	sorted := make([]string, 0, len(set))
	for s := range set {
		sorted = append(sorted, s)
	}
	sort.Strings(sorted)
	return &Uniform{set: set, samples: sorted, p: 1 / float64(len(set))}, nil
}

func (d *Uniform) Prob(sample string) float64 {
	if _, ok := d.set[sample]; ok {
		return d.p
	}
	return 0
}

func (d *Uniform) LogProb(sample string) float64 { return logProb(d.Prob(sample)) }
func (d *Uniform) Max() (string, bool)           { return d.samples[0], true }
func (d *Uniform) Samples() []string             { return d.samples }
func (d *Uniform) Discount() float64             { return 0 }
func (d *Uniform) SumsToOne() bool               { return true }
