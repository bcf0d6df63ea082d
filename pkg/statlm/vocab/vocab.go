// Package vocab maps raw tokens onto a closed vocabulary. Words seen fewer
// times than the cutoff are replaced by a single unknown label, so every
// downstream distribution stays finite.
package vocab

import (
	"fmt"
	"sort"

	"github.com/cognicore/statlm/pkg/statlm/freqdist"
	"github.com/cognicore/statlm/pkg/statlm/internalerr"
)

// UnkLabel stands in for every word below the cutoff.
const UnkLabel = "<UNK>"

type Vocab struct {
	counts *freqdist.FreqDist
	cutoff int
	unk    string
}

// New returns an empty vocabulary. Words must be seen at least cutoff times
// before Lookup stops masking them.
func New(cutoff int) (*Vocab, error) {
	return NewWithUnk(cutoff, UnkLabel)
}

// NewWithUnk is New with a caller-chosen unknown label.
func NewWithUnk(cutoff int, unk string) (*Vocab, error) {
	if cutoff < 1 {
		return nil, fmt.Errorf("%w: vocabulary cutoff %d, must be at least 1", internalerr.ErrConfiguration, cutoff)
	}
	if unk == "" {
		return nil, fmt.Errorf("%w: unknown label must not be empty", internalerr.ErrConfiguration)
	}
	return &Vocab{counts: freqdist.New(), cutoff: cutoff, unk: unk}, nil
}

// FromWords builds a vocabulary from a token stream.
func FromWords(words []string, cutoff int) (*Vocab, error) {
	v, err := New(cutoff)
	if err != nil {
		return nil, err
	}
	v.Update(words)
	return v, nil
}

// Update counts additional tokens toward the cutoff.
func (v *Vocab) Update(words []string) {
	for _, w := range words {
		v.counts.Increment(w, 1)
	}
}

// Cutoff returns the membership threshold.
func (v *Vocab) Cutoff() int { return v.cutoff }

// Empty reports whether no tokens have been counted yet.
func (v *Vocab) Empty() bool { return v.counts.N() == 0 }

// Has reports whether the word meets the cutoff.
func (v *Vocab) Has(word string) bool {
	return v.counts.Count(word) >= v.cutoff
}

// Lookup returns the word itself when it is in the vocabulary and the
// unknown label otherwise.
func (v *Vocab) Lookup(word string) string {
	if v.Has(word) {
		return word
	}
	return v.unk
}

// Unk returns the label substituted for out-of-vocabulary words.
func (v *Vocab) Unk() string { return v.unk }

// LookupSeq masks a whole sequence.
func (v *Vocab) LookupSeq(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = v.Lookup(w)
	}
	return out
}

// Size is the number of member words plus one slot for the unknown label.
// An empty vocabulary has size 0: the unknown slot only exists once there is
// something to mask.
func (v *Vocab) Size() int {
	if v.Empty() {
		return 0
	}
	return len(v.Members()) + 1
}

// Items exposes every counted token with its raw count, members and
// below-cutoff words alike, so a vocabulary can be persisted and rebuilt.
func (v *Vocab) Items() []freqdist.Item {
	return v.counts.Items()
}

// FromItems rebuilds a vocabulary from persisted raw counts.
func FromItems(items []freqdist.Item, cutoff int) (*Vocab, error) {
	return FromItemsWithUnk(items, cutoff, UnkLabel)
}

// FromItemsWithUnk is FromItems with a caller-chosen unknown label.
func FromItemsWithUnk(items []freqdist.Item, cutoff int, unk string) (*Vocab, error) {
	v, err := NewWithUnk(cutoff, unk)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		v.counts.Increment(it.Outcome, it.Count)
	}
	return v, nil
}

// Members lists the words meeting the cutoff in ascending order. The
// unknown label is not included.
func (v *Vocab) Members() []string {
	members := make([]string, 0, v.counts.B())
	for _, w := range v.counts.Keys() {
		if v.counts.Count(w) >= v.cutoff {
			members = append(members, w)
		}
	}
	sort.Strings(members)
	return members
}
