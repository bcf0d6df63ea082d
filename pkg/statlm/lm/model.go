// Package lm builds n-gram language models on top of the counting and
// smoothing layers. A model is trained once with Fit and then queried for
// conditional probabilities, entropy over held-out n-grams, and generated
// text.
package lm

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/cognicore/statlm/pkg/statlm/freqdist"
	"github.com/cognicore/statlm/pkg/statlm/internalerr"
	"github.com/cognicore/statlm/pkg/statlm/ngram"
)

// Vocabulary masks raw tokens onto a closed set of words.
type Vocabulary interface {
	Lookup(word string) string
	LookupSeq(words []string) []string
	Size() int
	Empty() bool
	Update(words []string)
}

// Model is an n-gram language model. The scoring rule is fixed by the
// constructor; everything else (training, entropy, generation) is shared.
type Model struct {
	order  int
	vocab  Vocabulary
	counts *ngram.Counter

	// score computes the conditional probability of an already-masked word
	// given an already-masked context.
	score func(word string, context ngram.Gram) float64
}

func newModel(order int, v Vocabulary) (*Model, error) {
	if order < 1 {
		return nil, fmt.Errorf("%w: model order %d, must be at least 1", internalerr.ErrConfiguration, order)
	}
	if v == nil {
		return nil, fmt.Errorf("%w: model requires a vocabulary", internalerr.ErrConfiguration)
	}
	return &Model{order: order, vocab: v, counts: ngram.NewCounter()}, nil
}

// Order returns the highest n-gram order the model scores with.
func (m *Model) Order() int { return m.order }

// Counts exposes the underlying n-gram counter.
func (m *Model) Counts() *ngram.Counter { return m.counts }

// Vocab exposes the vocabulary the model masks through.
func (m *Model) Vocab() Vocabulary { return m.vocab }

// Fit counts padded everygrams of each sentence, masking tokens through the
// vocabulary first. An empty vocabulary is built from the padded text, so
// the padding symbols themselves become members.
func (m *Model) Fit(text [][]string) error {
	if m.vocab.Empty() {
		for _, sent := range text {
			m.vocab.Update(ngram.Pad(sent, m.order))
		}
	}
	grams := make([][]ngram.Gram, 0, len(text))
	for _, sent := range text {
		masked := m.vocab.LookupSeq(ngram.Pad(sent, m.order))
		grams = append(grams, ngram.Everygrams(masked, m.order))
	}
	return m.counts.Update(grams)
}

// Score returns P(word | context) after masking both through the vocabulary.
func (m *Model) Score(word string, context []string) float64 {
	return m.UnmaskedScore(m.vocab.Lookup(word), m.vocab.LookupSeq(context))
}

// UnmaskedScore scores a word and context that are already vocabulary
// members (or the unknown label).
func (m *Model) UnmaskedScore(word string, context ngram.Gram) float64 {
	return m.score(word, context)
}

// LogScore is the base-2 log of Score. A zero probability yields -Inf.
func (m *Model) LogScore(word string, context []string) float64 {
	return math.Log2(m.Score(word, context))
}

// ContextCounts returns the distribution of words observed after the given
// (already masked) context.
func (m *Model) ContextCounts(context []string) *freqdist.FreqDist {
	return m.counts.ContextCounts(context)
}

// Entropy is the average negative base-2 log score over the given n-grams,
// each scored as its last word conditioned on the rest.
func (m *Model) Entropy(grams []ngram.Gram) float64 {
	if len(grams) == 0 {
		return 0
	}
	var sum float64
	for _, g := range grams {
		sum += m.LogScore(g[len(g)-1], g[:len(g)-1])
	}
	return -sum / float64(len(grams))
}

// Perplexity is two to the power of Entropy.
func (m *Model) Perplexity(grams []ngram.Gram) float64 {
	return math.Exp2(m.Entropy(grams))
}

// Generate draws numWords words one at a time, each conditioned on the tail
// of seed plus the words generated so far. A context with no observed
// continuations is shortened from the left until one is found. A nil rng
// falls back to the default source.
func (m *Model) Generate(numWords int, seed []string, rng *rand.Rand) ([]string, error) {
	history := append([]string(nil), seed...)
	generated := make([]string, 0, numWords)
	for i := 0; i < numWords; i++ {
		word, err := m.generateOne(history, rng)
		if err != nil {
			return generated, err
		}
		generated = append(generated, word)
		history = append(history, word)
	}
	return generated, nil
}

func (m *Model) generateOne(history []string, rng *rand.Rand) (string, error) {
	context := history
	if len(context) > m.order-1 {
		context = context[len(context)-m.order+1:]
	}
	context = m.vocab.LookupSeq(context)

	fd := m.counts.ContextCounts(context)
	for len(context) > 0 && fd.B() == 0 {
		context = context[1:]
		fd = m.counts.ContextCounts(context)
	}
	if fd.B() == 0 {
		return "", fmt.Errorf("%w: no observed continuations to sample from", internalerr.ErrNotFound)
	}

	samples := fd.Keys()
	sort.Strings(samples)
	weights := make([]float64, len(samples))
	for i, w := range samples {
		weights[i] = m.UnmaskedScore(w, context)
	}
	return weightedChoice(samples, weights, rng), nil
}

func weightedChoice(samples []string, weights []float64, rng *rand.Rand) string {
	var total float64
	cum := make([]float64, len(weights))
	for i, w := range weights {
		total += w
		cum[i] = total
	}
	if total == 0 {
		return samples[0]
	}
	x := total
	if rng == nil {
		x *= rand.Float64()
	} else {
		x *= rng.Float64()
	}
	for i, c := range cum {
		if x < c {
			return samples[i]
		}
	}
	return samples[len(samples)-1]
}
