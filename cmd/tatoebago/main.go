// Command tatoebago loads the Tatoeba corpus files into an in-memory
// index and persists it to sqlite. Annotated Japanese sentences come
// from jpn_indices; the rest can optionally be annotated with a
// morphological analyzer.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/japaniel/tatoebago/pkg/analyze"
	"github.com/japaniel/tatoebago/pkg/corpus"
	"github.com/japaniel/tatoebago/pkg/db"
	"github.com/japaniel/tatoebago/pkg/dictionary"
	"github.com/japaniel/tatoebago/pkg/ingest"
	"github.com/japaniel/tatoebago/pkg/tanaka"

	_ "github.com/mattn/go-sqlite3"
)

// config holds the environment defaults; flags override them.
type config struct {
	DBPath    string `env:"TATOEBAGO_DB" envDefault:"tatoebago.db"`
	DictPath  string `env:"TATOEBAGO_DICT" envDefault:"jmdict-eng-common.json"`
	Languages string `env:"TATOEBAGO_LANGS" envDefault:"jpn,eng"`
	Workers   int    `env:"TATOEBAGO_WORKERS" envDefault:"4"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("Failed to parse environment: %v", err)
	}

	sentencesFlag := flag.String("sentences", "", "Path to sentences.csv or sentences_detailed.csv (required)")
	linksFlag := flag.String("links", "", "Path to links.csv")
	indicesFlag := flag.String("indices", "", "Path to jpn_indices.csv")
	dbFlag := flag.String("db", cfg.DBPath, "Path to SQLite database")
	dictFlag := flag.String("dict", cfg.DictPath, "Path to JMdict-Simplified JSON file for reading resolution")
	langsFlag := flag.String("langs", cfg.Languages, "Comma-separated language filter, 'all' to disable")
	workersFlag := flag.Int("workers", cfg.Workers, "Concurrent ingest workers")
	annotateFlag := flag.Bool("annotate", false, "Annotate unindexed Japanese sentences with the kagome analyzer")
	flag.Parse()

	if *sentencesFlag == "" {
		log.Fatal("Please provide -sentences")
	}

	// Graceful shutdown on interrupt.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	conn, err := sql.Open("sqlite3", *dbFlag)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer conn.Close()

	if err := db.InitDB(conn); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	fmt.Printf("Database initialized at %s\n", *dbFlag)

	// Reading resolution is optional; a missing dictionary file just
	// means annotations keep only their inline readings.
	var dict tanaka.Dictionary
	if *dictFlag != "" && *indicesFlag != "" {
		if err := dictionary.EnsureDictionary(ctx, *dictFlag); err != nil {
			log.Printf("Warning: failed to ensure dictionary at %s: %v. Continuing without readings.", *dictFlag, err)
		}
		if _, err := os.Stat(*dictFlag); err == nil {
			start := time.Now()
			entries, err := dictionary.LoadJMdictSimplified(*dictFlag)
			if err != nil {
				log.Printf("Warning: failed to load dictionary: %v", err)
			} else {
				idx := dictionary.NewReadingIndex(entries)
				dict = idx
				fmt.Printf("Dictionary loaded (%d headwords) in %v\n", idx.Len(), time.Since(start))
			}
		}
	}

	var sentenceOpts []corpus.SentenceOption
	if *langsFlag == "all" {
		sentenceOpts = append(sentenceOpts, corpus.WithAllLanguages())
	} else if *langsFlag != "" {
		sentenceOpts = append(sentenceOpts, corpus.WithLanguages(strings.Split(*langsFlag, ",")...))
	}

	sentences, err := corpus.LoadSentenceFile(*sentencesFlag, sentenceOpts...)
	if err != nil {
		log.Fatalf("Failed to load sentences: %v", err)
	}
	fmt.Printf("Loaded %d sentences from %s\n", sentences.Len(), *sentencesFlag)

	var links *corpus.LinksReader
	if *linksFlag != "" {
		if links, err = corpus.LoadLinksFile(*linksFlag); err != nil {
			log.Fatalf("Failed to load links: %v", err)
		}
		fmt.Printf("Loaded %d linked sentences in %d translation groups\n", links.Len(), len(links.Groups()))
	}

	var indices *corpus.IndexReader
	if *indicesFlag != "" {
		var indexOpts []corpus.IndexOption
		if dict != nil {
			indexOpts = append(indexOpts, corpus.WithDictionary(dict))
		}
		if indices, err = corpus.LoadIndexFile(*indicesFlag, indexOpts...); err != nil {
			log.Fatalf("Failed to load indices: %v", err)
		}
		fmt.Printf("Loaded annotations for %d sentences\n", indices.Len())
	}

	index, err := corpus.NewIndex(sentences, links, indices)
	if err != nil {
		log.Fatalf("Failed to build index: %v", err)
	}

	ingester := ingest.NewIngester(conn)
	ingester.Workers = *workersFlag
	ingester.Logger = log.Default()
	ingester.OnProgress = func(current, total int) {
		fmt.Printf("\rIngesting %d/%d sentences", current, total)
	}

	if *annotateFlag {
		analyzer, err := analyze.NewAnalyzer()
		if err != nil {
			log.Fatalf("Failed to create analyzer: %v", err)
		}
		ingester.Annotator = analyzer
	}

	count, err := ingester.Ingest(ctx, index)
	fmt.Println()
	if err != nil {
		log.Fatalf("Ingestion failed: %v", err)
	}
	fmt.Printf("Processing complete. Wrote %d word annotations.\n", count)
}
