package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cognicore/statlm/pkg/statlm/countstore"
	"github.com/cognicore/statlm/pkg/statlm/internalerr"
)

func sampleSnapshot(id string) countstore.Snapshot {
	return countstore.Snapshot{
		ID:        id,
		Order:     2,
		Cutoff:    1,
		CreatedAt: time.Now().UTC(),
		Vocab:     []countstore.TokenCount{{Token: "a", Count: 2}},
		Counts: []countstore.Entry{
			{Order: 1, Word: "a", Count: 2},
			{Order: 2, Context: []string{"a"}, Word: "b", Count: 1},
		},
	}
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	s := New()
	defer s.Close()

	snap := sampleSnapshot(countstore.NewID())
	if err := s.SaveSnapshot(ctx, snap); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	got, err := s.LoadSnapshot(ctx, snap.ID)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if got.Order != 2 || len(got.Counts) != 2 {
		t.Errorf("loaded snapshot order=%d counts=%d, want 2 and 2", got.Order, len(got.Counts))
	}

	// Mutating the loaded copy must not affect the stored one.
	got.Counts[0].Count = 99
	again, _ := s.LoadSnapshot(ctx, snap.ID)
	if again.Counts[0].Count != 2 {
		t.Error("store should hand out independent copies")
	}
}

func TestLoadMissing(t *testing.T) {
	s := New()
	if _, err := s.LoadSnapshot(context.Background(), "no-such-id"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestListSnapshotsOrderedByID(t *testing.T) {
	ctx := context.Background()
	s := New()

	first := sampleSnapshot(countstore.NewID())
	second := sampleSnapshot(countstore.NewID())
	if err := s.SaveSnapshot(ctx, second); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveSnapshot(ctx, first); err != nil {
		t.Fatal(err)
	}

	infos, err := s.ListSnapshots(ctx)
	if err != nil {
		t.Fatalf("ListSnapshots failed: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("listed %d snapshots, want 2", len(infos))
	}
	if infos[0].ID > infos[1].ID {
		t.Error("snapshots should be ordered by ID")
	}
}
