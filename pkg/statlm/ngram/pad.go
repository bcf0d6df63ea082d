package ngram

// Sentence boundary symbols used when padding.
const (
	LeftPad  = "<s>"
	RightPad = "</s>"
)

// Pad surrounds a sentence with order-1 boundary symbols on each side.
// Order 1 needs no context and returns the sentence unchanged.
func Pad(sentence []string, order int) []string {
	if order <= 1 {
		out := make([]string, len(sentence))
		copy(out, sentence)
		return out
	}
	n := order - 1
	out := make([]string, 0, len(sentence)+2*n)
	for i := 0; i < n; i++ {
		out = append(out, LeftPad)
	}
	out = append(out, sentence...)
	for i := 0; i < n; i++ {
		out = append(out, RightPad)
	}
	return out
}

// Grams returns the contiguous n-grams of exactly order n. Sentences
// shorter than n yield nothing.
func Grams(tokens []string, n int) []Gram {
	if n < 1 || len(tokens) < n {
		return nil
	}
	grams := make([]Gram, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		grams = append(grams, Gram(tokens[i:i+n]))
	}
	return grams
}

// Everygrams returns every contiguous n-gram of the tokens with order
// between 1 and maxOrder, shortest first at each position.
func Everygrams(tokens []string, maxOrder int) []Gram {
	var grams []Gram
	for i := range tokens {
		for k := 1; k <= maxOrder && i+k <= len(tokens); k++ {
			grams = append(grams, Gram(tokens[i:i+k]))
		}
	}
	return grams
}
