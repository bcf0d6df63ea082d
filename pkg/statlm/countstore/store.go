// Package countstore persists trained n-gram counts. A snapshot captures a
// counter together with the raw vocabulary counts it was masked through, so
// a model can be rebuilt later without the training corpus.
package countstore

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/statlm/pkg/statlm/freqdist"
	"github.com/cognicore/statlm/pkg/statlm/ngram"
)

// Store persists and retrieves snapshots.
type Store interface {
	Close() error

	SaveSnapshot(ctx context.Context, s Snapshot) error
	LoadSnapshot(ctx context.Context, id string) (Snapshot, error)
	ListSnapshots(ctx context.Context) ([]Info, error)
}

// Snapshot is a persisted image of a trained counter.
type Snapshot struct {
	ID        string
	Order     int
	Cutoff    int
	CreatedAt time.Time
	Vocab     []TokenCount
	Counts    []Entry
}

// Info is the listing view of a snapshot, without its payload.
type Info struct {
	ID        string
	Order     int
	CreatedAt time.Time
}

// TokenCount is one raw vocabulary count.
type TokenCount struct {
	Token string
	Count int
}

// Entry is one (order, context, word) cell of a counter.
type Entry struct {
	Order   int
	Context []string
	Word    string
	Count   int
}

// NewID returns a fresh lexicographically sortable snapshot ID.
func NewID() string {
	return ulid.Make().String()
}

// FromCounter flattens a counter into a snapshot with a fresh ID.
func FromCounter(counts *ngram.Counter, order, cutoff int, vocabItems []freqdist.Item) Snapshot {
	snap := Snapshot{
		ID:        NewID(),
		Order:     order,
		Cutoff:    cutoff,
		CreatedAt: time.Now().UTC(),
	}
	for _, it := range vocabItems {
		snap.Vocab = append(snap.Vocab, TokenCount{Token: it.Outcome, Count: it.Count})
	}
	counts.Walk(func(order int, context []string, word string, count int) {
		snap.Counts = append(snap.Counts, Entry{
			Order:   order,
			Context: append([]string(nil), context...),
			Word:    word,
			Count:   count,
		})
	})
	return snap
}

// Counter rebuilds the n-gram counter the snapshot was taken from.
func (s Snapshot) Counter() *ngram.Counter {
	counts := ngram.NewCounter()
	for _, e := range s.Counts {
		gram := make(ngram.Gram, 0, len(e.Context)+1)
		gram = append(gram, e.Context...)
		gram = append(gram, e.Word)
		counts.Add(gram, e.Count)
	}
	return counts
}

// VocabItems converts the stored vocabulary counts back to items.
func (s Snapshot) VocabItems() []freqdist.Item {
	items := make([]freqdist.Item, len(s.Vocab))
	for i, tc := range s.Vocab {
		items[i] = freqdist.Item{Outcome: tc.Token, Count: tc.Count}
	}
	return items
}
