// Package statlm ties the configuration, vocabulary, counting and modeling
// layers together behind a small facade.
package statlm

import (
	"context"
	"fmt"

	"github.com/cognicore/statlm/pkg/statlm/config"
	"github.com/cognicore/statlm/pkg/statlm/countstore"
	"github.com/cognicore/statlm/pkg/statlm/internalerr"
	"github.com/cognicore/statlm/pkg/statlm/lm"
	"github.com/cognicore/statlm/pkg/statlm/vocab"
)

// Build constructs an untrained model from a validated configuration.
func Build(cfg *config.Config) (*lm.Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	v, err := vocab.NewWithUnk(cfg.Vocab.Cutoff, cfg.Vocab.Unk)
	if err != nil {
		return nil, err
	}
	return New(cfg, v)
}

// Train builds a model from the configuration and fits it on the corpus.
func Train(cfg *config.Config, sentences [][]string) (*lm.Model, error) {
	m, err := Build(cfg)
	if err != nil {
		return nil, err
	}
	if err := m.Fit(sentences); err != nil {
		return nil, err
	}
	return m, nil
}

// Save persists a trained model's counts and vocabulary, returning the
// snapshot ID.
func Save(ctx context.Context, store countstore.Store, m *lm.Model) (string, error) {
	v, ok := m.Vocab().(*vocab.Vocab)
	if !ok {
		return "", fmt.Errorf("%w: only cutoff vocabularies can be persisted", internalerr.ErrTypeMismatch)
	}
	snap := countstore.FromCounter(m.Counts(), m.Order(), v.Cutoff(), v.Items())
	if err := store.SaveSnapshot(ctx, snap); err != nil {
		return "", err
	}
	return snap.ID, nil
}

// Restore rebuilds a scoring-ready model from a stored snapshot. The
// configuration supplies the smoothing method; order and cutoff come from
// the snapshot itself.
func Restore(ctx context.Context, store countstore.Store, id string, cfg *config.Config) (*lm.Model, error) {
	snap, err := store.LoadSnapshot(ctx, id)
	if err != nil {
		return nil, err
	}
	v, err := vocab.FromItemsWithUnk(snap.VocabItems(), snap.Cutoff, cfg.Vocab.Unk)
	if err != nil {
		return nil, err
	}

	restoredCfg := *cfg
	restoredCfg.Model.Order = snap.Order
	m, err := New(&restoredCfg, v)
	if err != nil {
		return nil, err
	}
	for _, e := range snap.Counts {
		gram := make([]string, 0, len(e.Context)+1)
		gram = append(gram, e.Context...)
		gram = append(gram, e.Word)
		m.Counts().Add(gram, e.Count)
	}
	return m, nil
}

// New constructs an untrained model over a caller-supplied vocabulary, so
// trainers can populate the vocabulary in a separate pass.
func New(cfg *config.Config, v *vocab.Vocab) (*lm.Model, error) {
	mc := cfg.Model
	switch mc.Smoothing {
	case config.SmoothingMLE:
		return lm.NewMLE(mc.Order, v)
	case config.SmoothingLidstone:
		return lm.NewLidstone(mc.Order, v, mc.Gamma)
	case config.SmoothingLaplace:
		return lm.NewLaplace(mc.Order, v)
	case config.SmoothingWittenBell:
		return lm.NewWittenBellInterpolated(mc.Order, v)
	case config.SmoothingAbsoluteDiscounting:
		return lm.NewAbsoluteDiscountingInterpolated(mc.Order, v, discountOr(mc.Discount, lm.DefaultAbsoluteDiscount))
	case config.SmoothingKneserNey:
		return lm.NewKneserNeyInterpolated(mc.Order, v, discountOr(mc.Discount, lm.DefaultKneserNeyDiscount))
	case config.SmoothingStupidBackoff:
		return lm.NewStupidBackoff(mc.Order, v, discountOr(mc.Alpha, lm.DefaultBackoffAlpha))
	default:
		return nil, fmt.Errorf("%w: unknown smoothing %q", internalerr.ErrConfiguration, mc.Smoothing)
	}
}

// discountOr applies the method default only when the field was left unset,
// so an explicit zero survives.
func discountOr(value *float64, fallback float64) float64 {
	if value == nil {
		return fallback
	}
	return *value
}
