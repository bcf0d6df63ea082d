package lm

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/cognicore/statlm/pkg/statlm/internalerr"
	"github.com/cognicore/statlm/pkg/statlm/ngram"
	"github.com/cognicore/statlm/pkg/statlm/vocab"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func trainingText() [][]string {
	return [][]string{
		{"a", "b", "c", "d"},
		{"e", "g", "a", "d", "b", "e"},
	}
}

// testVocab covers a, b, c, d, z plus the padding symbols; e and g stay out
// and get masked. Size is 8 counting the unknown slot.
func testVocab(t *testing.T) *vocab.Vocab {
	t.Helper()
	v, err := vocab.FromWords([]string{"a", "b", "c", "d", "z", ngram.LeftPad, ngram.RightPad}, 1)
	if err != nil {
		t.Fatalf("building vocabulary: %v", err)
	}
	return v
}

// fitted trains a freshly constructed model on the shared corpus.
func fitted(t *testing.T, m *Model, err error) *Model {
	t.Helper()
	if err != nil {
		t.Fatalf("constructor failed: %v", err)
	}
	if err := m.Fit(trainingText()); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	return m
}

func TestFitCountsPaddedUnigrams(t *testing.T) {
	bigram, err := NewMLE(2, testVocab(t))
	bigram = fitted(t, bigram, err)
	if n := bigram.Counts().Unigrams().N(); n != 14 {
		t.Errorf("bigram model unigram total = %d, want 14", n)
	}

	trigram, err := NewMLE(3, testVocab(t))
	trigram = fitted(t, trigram, err)
	if n := trigram.Counts().Unigrams().N(); n != 18 {
		t.Errorf("trigram model unigram total = %d, want 18", n)
	}
}

func TestMLEBigramScores(t *testing.T) {
	m, err := NewMLE(2, testVocab(t))
	m = fitted(t, m, err)

	// "c" is always followed by "d".
	if got := m.Score("d", []string{"c"}); !almostEqual(got, 1) {
		t.Errorf("score(d|c) = %v, want 1", got)
	}
	// "a" is followed once by "b" and once by "d".
	if got := m.Score("d", []string{"a"}); !almostEqual(got, 0.5) {
		t.Errorf("score(d|a) = %v, want 0.5", got)
	}
	// "d" occurs twice among 14 unigrams.
	if got := m.Score("d", nil); !almostEqual(got, 2.0/14) {
		t.Errorf("score(d) = %v, want 2/14", got)
	}
	// "e" masks to the unknown label, which occurs three times.
	if got := m.Score("e", nil); !almostEqual(got, 3.0/14) {
		t.Errorf("score(e) = %v, want 3/14", got)
	}
	// "z" is in the vocabulary but never observed.
	if got := m.Score("z", nil); got != 0 {
		t.Errorf("score(z) = %v, want 0", got)
	}
	if got := m.LogScore("z", nil); !math.IsInf(got, -1) {
		t.Errorf("logscore of zero probability = %v, want -Inf", got)
	}
}

func TestMLETrigramScoresAreRelativeFrequencies(t *testing.T) {
	m, err := NewMLE(3, testVocab(t))
	m = fitted(t, m, err)

	// "a b" is followed only by "c".
	if got := m.Score("c", []string{"a", "b"}); !almostEqual(got, 1) {
		t.Errorf("score(c|a b) = %v, want 1", got)
	}
	// The double left pad precedes "a" once and the masked "e" once.
	if got := m.Score("a", []string{ngram.LeftPad, ngram.LeftPad}); !almostEqual(got, 0.5) {
		t.Errorf("score(a|<s> <s>) = %v, want 0.5", got)
	}
	if got := m.Score("z", []string{"a", "b"}); got != 0 {
		t.Errorf("score(z|a b) = %v, want 0", got)
	}
}

func TestMLEEntropyPerplexity(t *testing.T) {
	m, err := NewMLE(2, testVocab(t))
	m = fitted(t, m, err)

	grams := []ngram.Gram{
		{ngram.LeftPad, "a"},
		{"a", "b"},
		{"b", "c"},
		{"c", "d"},
		{"d", ngram.RightPad},
	}
	// Four of the five bigrams score 0.5, one scores 1.
	if got := m.Entropy(grams); !almostEqual(got, 0.8) {
		t.Errorf("entropy = %v, want 0.8", got)
	}
	if got := m.Perplexity(grams); !almostEqual(got, math.Exp2(0.8)) {
		t.Errorf("perplexity = %v, want 2^0.8", got)
	}
}

func TestLidstoneBigramScores(t *testing.T) {
	m, err := NewLidstone(2, testVocab(t), 0.1)
	m = fitted(t, m, err)

	// (1 + 0.1) / (1 + 0.1*8) with vocabulary size 8.
	if got := m.Score("d", []string{"c"}); !almostEqual(got, 1.1/1.8) {
		t.Errorf("score(d|c) = %v, want 1.1/1.8", got)
	}
	if got := m.Score("d", nil); !almostEqual(got, 2.1/14.8) {
		t.Errorf("score(d) = %v, want 2.1/14.8", got)
	}
	// Unseen vocabulary words keep nonzero mass.
	if got := m.Score("z", nil); !almostEqual(got, 0.1/14.8) {
		t.Errorf("score(z) = %v, want 0.1/14.8", got)
	}
}

func TestLaplaceIsLidstoneOne(t *testing.T) {
	m, err := NewLaplace(2, testVocab(t))
	m = fitted(t, m, err)

	if got := m.Score("d", nil); !almostEqual(got, 3.0/22) {
		t.Errorf("score(d) = %v, want 3/22", got)
	}
	if got := m.Score("d", []string{"c"}); !almostEqual(got, 2.0/9) {
		t.Errorf("score(d|c) = %v, want 2/9", got)
	}
}

func TestStupidBackoffPenalizesShorterContext(t *testing.T) {
	m, err := NewStupidBackoff(2, testVocab(t), DefaultBackoffAlpha)
	m = fitted(t, m, err)

	// Seen bigram: plain relative frequency.
	if got := m.Score("d", []string{"c"}); !almostEqual(got, 1) {
		t.Errorf("score(d|c) = %v, want 1", got)
	}
	// "z" never follows "c": back off to the unigram with the alpha penalty.
	if got := m.Score("z", []string{"c"}); got != DefaultBackoffAlpha*0 {
		t.Errorf("score(z|c) = %v, want 0", got)
	}
	want := DefaultBackoffAlpha * 2.0 / 14
	if got := m.Score("d", []string{"z"}); !almostEqual(got, want) {
		t.Errorf("score(d|z) = %v, want %v", got, want)
	}
}

func sumOverVocabulary(m *Model, context []string) float64 {
	words := append(m.Vocab().(*vocab.Vocab).Members(), vocab.UnkLabel)
	var sum float64
	for _, w := range words {
		sum += m.Score(w, context)
	}
	return sum
}

func TestWittenBellScoresSumToOne(t *testing.T) {
	m, err := NewWittenBellInterpolated(3, testVocab(t))
	m = fitted(t, m, err)

	for _, context := range [][]string{nil, {"a"}, {"b", "c"}, {"never-seen"}} {
		if sum := sumOverVocabulary(m, context); math.Abs(sum-1) > 1e-9 {
			t.Errorf("context %v: scores sum to %v, want 1", context, sum)
		}
	}
}

func TestAbsoluteDiscountingScoresSumToOne(t *testing.T) {
	m, err := NewAbsoluteDiscountingInterpolated(2, testVocab(t), DefaultAbsoluteDiscount)
	m = fitted(t, m, err)

	for _, context := range [][]string{nil, {"a"}, {"d"}} {
		if sum := sumOverVocabulary(m, context); math.Abs(sum-1) > 1e-9 {
			t.Errorf("context %v: scores sum to %v, want 1", context, sum)
		}
	}
}

func TestKneserNeyScoresSumToOne(t *testing.T) {
	m, err := NewKneserNeyInterpolated(2, testVocab(t), DefaultKneserNeyDiscount)
	m = fitted(t, m, err)

	for _, context := range [][]string{nil, {"a"}, {"c"}} {
		if sum := sumOverVocabulary(m, context); math.Abs(sum-1) > 1e-9 {
			t.Errorf("context %v: scores sum to %v, want 1", context, sum)
		}
	}
}

func TestKneserNeyTrigramScoresSumToOne(t *testing.T) {
	m, err := NewKneserNeyInterpolated(3, testVocab(t), DefaultKneserNeyDiscount)
	m = fitted(t, m, err)

	// Fully observed, partially observed and never observed contexts.
	for _, context := range [][]string{nil, {"a"}, {"a", "b"}, {"z", "b"}, {"x", "y"}} {
		if sum := sumOverVocabulary(m, context); math.Abs(sum-1) > 1e-9 {
			t.Errorf("context %v: scores sum to %v, want 1", context, sum)
		}
	}
}

func TestKneserNeyUnigramUsesContinuationCounts(t *testing.T) {
	m, err := NewKneserNeyInterpolated(2, testVocab(t), DefaultKneserNeyDiscount)
	m = fitted(t, m, err)

	// The unigram base case scores by the number of distinct contexts a word
	// follows, not raw frequency, so it diverges from the MLE unigram.
	mle, err := NewMLE(2, testVocab(t))
	mle = fitted(t, mle, err)
	if almostEqual(m.Score("e", nil), mle.Score("e", nil)) {
		t.Error("continuation-based unigram score should differ from relative frequency")
	}
}

func TestInterpolatedUnseenContextDefers(t *testing.T) {
	m, err := NewWittenBellInterpolated(2, testVocab(t))
	m = fitted(t, m, err)

	// A context with no observed continuations contributes nothing: the
	// score equals the pure unigram score.
	got := m.Score("d", []string{"z"})
	want := m.Score("d", nil)
	if !almostEqual(got, want) {
		t.Errorf("score(d|z) = %v, want unigram fallback %v", got, want)
	}
}

func TestGenerate(t *testing.T) {
	m, err := NewMLE(2, testVocab(t))
	m = fitted(t, m, err)
	rng := rand.New(rand.NewSource(3))

	words, err := m.Generate(10, []string{"c"}, rng)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(words) != 10 {
		t.Fatalf("generated %d words, want 10", len(words))
	}
	// "c" is always followed by "d".
	if words[0] != "d" {
		t.Errorf("first word after seed c = %q, want d", words[0])
	}
}

func TestGenerateIsDeterministicPerSeed(t *testing.T) {
	m, err := NewMLE(2, testVocab(t))
	m = fitted(t, m, err)

	a, err := m.Generate(8, nil, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, err := m.Generate(8, nil, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("runs diverge at %d: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestGenerateUnfittedModel(t *testing.T) {
	m, err := NewMLE(2, testVocab(t))
	if err != nil {
		t.Fatalf("NewMLE failed: %v", err)
	}
	if _, err := m.Generate(1, nil, rand.New(rand.NewSource(1))); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("generate on empty counts should fail with ErrNotFound, got %v", err)
	}
}

func TestFitBuildsVocabularyWhenEmpty(t *testing.T) {
	v, err := vocab.New(1)
	if err != nil {
		t.Fatalf("vocab.New failed: %v", err)
	}
	m, err := NewMLE(2, v)
	m = fitted(t, m, err)

	// Every training token, including padding, meets cutoff 1.
	if !v.Has("e") || !v.Has(ngram.LeftPad) {
		t.Error("fit should populate an empty vocabulary from the padded text")
	}
	if got := m.Score("e", nil); got == 0 {
		t.Error("in-vocabulary token should score above zero")
	}
}

func TestInvalidOrder(t *testing.T) {
	if _, err := NewMLE(0, testVocab(t)); !errors.Is(err, internalerr.ErrConfiguration) {
		t.Errorf("order 0 should fail with ErrConfiguration, got %v", err)
	}
}
