// lm-train fits an n-gram language model on a text corpus and stores the
// resulting counts as a snapshot in a SQLite database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/cheggaaa/pb/v3"

	"github.com/cognicore/statlm/internal/corpus"
	"github.com/cognicore/statlm/pkg/statlm"
	"github.com/cognicore/statlm/pkg/statlm/config"
	"github.com/cognicore/statlm/pkg/statlm/countstore/sqlite"
	"github.com/cognicore/statlm/pkg/statlm/ngram"
	"github.com/cognicore/statlm/pkg/statlm/vocab"
)

func main() {
	var (
		corpusPath = flag.String("corpus", "", "Corpus file or directory of .txt/.html files (required)")
		configPath = flag.String("config", "", "Optional: model config YAML")
		dbPath     = flag.String("db", "statlm.db", "SQLite database for snapshots")
		order      = flag.Int("order", 0, "Override: n-gram order")
		cutoff     = flag.Int("cutoff", 0, "Override: vocabulary cutoff")
		smoothing  = flag.String("smoothing", "", "Override: smoothing method")
	)
	flag.Parse()

	if *corpusPath == "" {
		log.Fatal("-corpus is required")
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *order > 0 {
		cfg.Model.Order = *order
	}
	if *cutoff > 0 {
		cfg.Vocab.Cutoff = *cutoff
	}
	if *smoothing != "" {
		cfg.Model.Smoothing = *smoothing
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	sentences, err := corpus.Load(*corpusPath)
	if err != nil {
		log.Fatalf("Failed to load corpus: %v", err)
	}
	if len(sentences) == 0 {
		log.Fatal("Corpus contains no sentences")
	}
	log.Printf("Loaded %d sentences from %s", len(sentences), *corpusPath)

	// Vocabulary pass first, so counting sees the full membership.
	v, err := vocab.NewWithUnk(cfg.Vocab.Cutoff, cfg.Vocab.Unk)
	if err != nil {
		log.Fatalf("Failed to create vocabulary: %v", err)
	}
	for _, sent := range sentences {
		v.Update(ngram.Pad(sent, cfg.Model.Order))
	}
	log.Printf("Vocabulary: %d words (cutoff %d)", v.Size(), v.Cutoff())

	model, err := statlm.New(cfg, v)
	if err != nil {
		log.Fatalf("Failed to build model: %v", err)
	}

	bar := pb.StartNew(len(sentences))
	for _, sent := range sentences {
		if err := model.Fit([][]string{sent}); err != nil {
			log.Fatalf("Failed to count sentence: %v", err)
		}
		bar.Increment()
	}
	bar.Finish()

	ctx := context.Background()
	store, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	id, err := statlm.Save(ctx, store, model)
	if err != nil {
		log.Fatalf("Failed to save snapshot: %v", err)
	}

	log.Printf("Trained order-%d %s model: %d unigram events", cfg.Model.Order, cfg.Model.Smoothing, model.Counts().Unigrams().N())
	fmt.Println(id)
}
