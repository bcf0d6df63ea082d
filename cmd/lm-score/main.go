// lm-score restores a trained snapshot and either reports perplexity on a
// test corpus or generates text from the model.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/cognicore/statlm/internal/corpus"
	"github.com/cognicore/statlm/pkg/statlm"
	"github.com/cognicore/statlm/pkg/statlm/config"
	"github.com/cognicore/statlm/pkg/statlm/countstore/sqlite"
	"github.com/cognicore/statlm/pkg/statlm/ngram"
)

func main() {
	var (
		dbPath     = flag.String("db", "statlm.db", "SQLite database with snapshots")
		snapshotID = flag.String("snapshot", "", "Snapshot ID (default: most recent)")
		configPath = flag.String("config", "", "Optional: model config YAML (smoothing method)")
		testPath   = flag.String("test", "", "Test corpus to compute perplexity on")
		generate   = flag.Int("generate", 0, "Number of words to generate")
		seedText   = flag.String("seed", "", "Space-separated seed context for generation")
		randSeed   = flag.Int64("rand-seed", 0, "Random seed for generation (0 = time-based)")
	)
	flag.Parse()

	if *testPath == "" && *generate <= 0 {
		log.Fatal("Nothing to do: pass -test and/or -generate")
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	ctx := context.Background()
	store, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	id := *snapshotID
	if id == "" {
		infos, err := store.ListSnapshots(ctx)
		if err != nil {
			log.Fatalf("Failed to list snapshots: %v", err)
		}
		if len(infos) == 0 {
			log.Fatal("No snapshots in database; run lm-train first")
		}
		id = infos[len(infos)-1].ID
	}

	model, err := statlm.Restore(ctx, store, id, cfg)
	if err != nil {
		log.Fatalf("Failed to restore snapshot %s: %v", id, err)
	}
	log.Printf("Restored order-%d %s model from snapshot %s", model.Order(), cfg.Model.Smoothing, id)

	if *testPath != "" {
		sentences, err := corpus.Load(*testPath)
		if err != nil {
			log.Fatalf("Failed to load test corpus: %v", err)
		}
		var grams []ngram.Gram
		for _, sent := range sentences {
			grams = append(grams, ngram.Grams(ngram.Pad(sent, model.Order()), model.Order())...)
		}
		if len(grams) == 0 {
			log.Fatal("Test corpus yields no n-grams")
		}
		entropy := model.Entropy(grams)
		fmt.Printf("ngrams: %d\nentropy: %.4f bits/word\nperplexity: %.4f\n",
			len(grams), entropy, model.Perplexity(grams))
	}

	if *generate > 0 {
		seed := time.Now().UnixNano()
		if *randSeed != 0 {
			seed = *randSeed
		}
		rng := rand.New(rand.NewSource(seed))

		var seedWords []string
		if *seedText != "" {
			seedWords = strings.Fields(*seedText)
		}
		words, err := model.Generate(*generate, seedWords, rng)
		if err != nil {
			log.Fatalf("Failed to generate: %v", err)
		}
		fmt.Println(strings.Join(words, " "))
	}
}
