package estimate

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/cognicore/statlm/pkg/statlm/freqdist"
)

// SimpleGoodTuring is the Gale & Sampson rendering of Good-Turing
// smoothing: the frequency-of-frequency histogram is smoothed with a power
// curve Nr = a·r^b fitted by least squares in log-log space, and adjusted
// counts switch from the measured histogram to the fitted curve at the
// first count where the two estimates are statistically indistinguishable
// (or where the histogram has a gap). Seen-count probabilities are then
// renormalized so the total mass, including the unseen reserve Nr(1)/N,
// is exactly one.
//
// References: Gale & Sampson, "Good-Turing Smoothing Without Tears",
// Journal of Quantitative Linguistics 2, 1995.
type SimpleGoodTuring struct {
	fd   *freqdist.FreqDist
	bins int

	slope     float64
	intercept float64
	switchAt  int
	renorm    float64
}

// NewSimpleGoodTuring fits a Simple Good-Turing estimate over bins possible
// outcomes.
func NewSimpleGoodTuring(fd *freqdist.FreqDist, bins int) (*SimpleGoodTuring, error) {
	bins, err := resolveBins(fd, bins, "simple-good-turing")
	if err != nil {
		return nil, err
	}
	d := &SimpleGoodTuring{fd: fd, bins: bins, renorm: 1}
	r, nr := d.collect()
	d.fit(r, nr)
	d.findSwitch(r, nr)
	d.renormalize(r, nr)
	return d, nil
}

// collect builds the ascending (r, Nr) pairs with Nr(r) > 0, stopping once
// the accumulated type count reaches B.
func (d *SimpleGoodTuring) collect() (r, nr []int) {
	seen := 0
	for i := 1; seen < d.fd.B(); i++ {
		if n := d.fd.Nr(i); n > 0 {
			seen += n
			r = append(r, i)
			nr = append(nr, n)
		}
	}
	return r, nr
}

// fit estimates slope and intercept of log(Zr) on log(r), where Zr averages
// each Nr over the gap to its neighbors (Church & Gale, 1991). A histogram
// with no spread in r degenerates to slope 0.
func (d *SimpleGoodTuring) fit(r, nr []int) {
	if len(r) == 0 {
		return
	}
	logR := make([]float64, len(r))
	logZr := make([]float64, len(r))
	for j := range r {
		prev := 0
		if j > 0 {
			prev = r[j-1]
		}
		next := 2*r[j] - prev
		if j != len(r)-1 {
			next = r[j+1]
		}
		zr := 2 * float64(nr[j]) / float64(next-prev)
		logR[j] = math.Log(float64(r[j]))
		logZr[j] = math.Log(zr)
	}

	intercept, slope := stat.LinearRegression(logR, logZr, nil, false)
	if math.IsNaN(slope) || math.IsInf(slope, 0) {
		// Zero variance in log(r): fall back to a flat fit.
		slope = 0
		intercept = stat.Mean(logZr, nil)
	}
	d.slope = slope
	d.intercept = intercept
}

// smoothedNr evaluates the fitted curve S(r) = exp(a + b·log r).
func (d *SimpleGoodTuring) smoothedNr(r int) float64 {
	return math.Exp(d.intercept + d.slope*math.Log(float64(r)))
}

// findSwitch scans r ascending while consecutive counts are contiguous and
// picks the first count where the unsmoothed and smoothed adjusted counts
// agree within 1.96 standard deviations. A contiguity break switches
// immediately: beyond it the measured histogram has holes.
func (d *SimpleGoodTuring) findSwitch(r, nr []int) {
	for i, ri := range r {
		if i+1 == len(r) || r[i+1] != ri+1 {
			d.switchAt = ri
			break
		}
		smoothed := float64(ri+1) * d.smoothedNr(ri+1) / d.smoothedNr(ri)
		unsmoothed := float64(ri+1) * float64(nr[i+1]) / float64(nr[i])

		std := math.Sqrt(d.variance(ri, nr[i], nr[i+1]))
		if math.Abs(unsmoothed-smoothed) <= 1.96*std {
			d.switchAt = ri
			break
		}
	}
}

func (d *SimpleGoodTuring) variance(r, nr, nr1 int) float64 {
	fr, fnr, fnr1 := float64(r), float64(nr), float64(nr1)
	return (fr + 1) * (fr + 1) * (fnr1 / (fnr * fnr)) * (1 + fnr1/fnr)
}

// renormalize scales the seen-count estimates so that together with the
// unseen reserve they sum to one.
func (d *SimpleGoodTuring) renormalize(r, nr []int) {
	var cover float64
	for i := range r {
		cover += float64(nr[i]) * d.probMeasure(r[i])
	}
	if cover > 0 {
		d.renorm = (1 - d.probMeasure(0)) / cover
	}
}

// probMeasure returns the raw (unnormalized) probability for a count: the
// unseen reserve for 0, otherwise the adjusted count r* over N, using the
// measured histogram below the switch point and the fitted curve at and
// above it.
func (d *SimpleGoodTuring) probMeasure(count int) float64 {
	n := d.fd.N()
	if count == 0 {
		if n == 0 {
			return 1
		}
		return float64(d.fd.Nr(1)) / float64(n)
	}

	var er, er1 float64
	if d.switchAt > count {
		er = float64(d.fd.Nr(count))
		er1 = float64(d.fd.Nr(count + 1))
	} else {
		er = d.smoothedNr(count)
		er1 = d.smoothedNr(count + 1)
	}
	rstar := float64(count+1) * er1 / er
	return rstar / float64(n)
}

func (d *SimpleGoodTuring) Prob(sample string) float64 {
	c := d.fd.Count(sample)
	p := d.probMeasure(c)
	if c == 0 {
		unseen := d.bins - d.fd.B()
		if unseen == 0 {
			return 0
		}
		return p / float64(unseen)
	}
	return p * d.renorm
}

func (d *SimpleGoodTuring) LogProb(sample string) float64 { return logProb(d.Prob(sample)) }
func (d *SimpleGoodTuring) Max() (string, bool)           { return d.fd.Max() }
func (d *SimpleGoodTuring) Samples() []string             { return d.fd.Keys() }

// Discount returns S(1)/N, the smoothed estimate of the mass transferred
// to unseen outcomes.
func (d *SimpleGoodTuring) Discount() float64 {
	if d.fd.N() == 0 {
		return 0
	}
	return d.smoothedNr(1) / float64(d.fd.N())
}

func (d *SimpleGoodTuring) SumsToOne() bool { return true }

// SwitchAt exposes the count at which the estimate switches from the
// measured histogram to the fitted curve.
func (d *SimpleGoodTuring) SwitchAt() int { return d.switchAt }
