// Package ingest persists a loaded corpus index into sqlite. Row
// preparation (including optional morphological annotation of
// sentences the annotation source does not cover) runs on a worker
// pool; writes are batched into transactions and checkpointed so an
// interrupted load can resume.
package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/japaniel/tatoebago/pkg/corpus"
	"github.com/japaniel/tatoebago/pkg/db"
	"github.com/japaniel/tatoebago/pkg/tanaka"
)

// loadName keys the resume checkpoint in the load_state table.
const loadName = "corpus"

// WorkerPoolInterface abstracts the worker pool so tests can inject
// failing implementations.
type WorkerPoolInterface interface {
	Start(ctx context.Context)
	Submit(Job) error
	// SubmitCtx attempts to enqueue a job but returns promptly if ctx is canceled.
	SubmitCtx(ctx context.Context, job Job) error
	Close()
}

// Annotator produces word annotations for sentences the annotation
// source does not cover. *analyze.Analyzer implements it.
type Annotator interface {
	Annotate(text string) ([]tanaka.Word, error)
}

// Ingester writes a corpus index into the database.
type Ingester struct {
	DB        *sql.DB
	BatchSize int
	Workers   int

	// Logger is used for informational messages (e.g. resume status). nil means no logging.
	Logger *log.Logger
	// OnProgress is called periodically with the number of processed sentences and the total.
	OnProgress func(current, total int)

	// Annotator, when set, annotates Japanese sentences that have no
	// entry in the annotation source.
	Annotator Annotator

	// PoolFactory allows tests to inject custom worker pool implementations.
	PoolFactory func(workers, queue int) WorkerPoolInterface
}

// NewIngester creates a new Ingester with default batching and
// concurrency settings.
func NewIngester(conn *sql.DB) *Ingester {
	return &Ingester{
		DB:        conn,
		BatchSize: 50,
		Workers:   4,
	}
}

// preparedSentence holds the rows for one sentence before they are written.
type preparedSentence struct {
	Index int
	Row   db.SentenceRow
	Words []db.WordRow
	Error error
}

// Ingest writes every sentence of the index, in id order, into the
// database. It resumes from the last checkpoint and returns the number
// of word annotations written in this run.
func (ig *Ingester) Ingest(ctx context.Context, index *corpus.Index) (int, error) {
	ids := index.Sentences().IDs()
	total := len(ids)

	lastProcessed, err := db.GetLoadProgress(ig.DB, loadName)
	if err != nil {
		if ig.Logger != nil {
			ig.Logger.Printf("Warning: failed to retrieve progress: %v", err)
		}
		lastProcessed = -1
	}
	if lastProcessed >= 0 && ig.Logger != nil {
		ig.Logger.Printf("Resuming from sentence index %d (skipping %d sentences)", lastProcessed+1, lastProcessed+1)
	}

	startIdx := lastProcessed + 1
	if startIdx >= total {
		return 0, nil
	}

	var wp WorkerPoolInterface
	if ig.PoolFactory != nil {
		wp = ig.PoolFactory(ig.Workers, ig.Workers*2)
	} else {
		wp = NewWorkerPool(ig.Workers, ig.Workers*2)
	}

	resultCh := make(chan preparedSentence, ig.Workers*2)
	doneCh := make(chan error, 1)

	var totalWords int64

	bw := NewBatchWriter(ig.DB, ig.BatchSize, 100*time.Millisecond)
	var batchErr error
	var batchErrMu sync.Mutex
	bw.OnError = func(e error) {
		batchErrMu.Lock()
		if batchErr == nil {
			batchErr = e
		}
		batchErrMu.Unlock()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	wp.Start(ctx)

	// Consumer: writes prepared sentences in index order so the
	// checkpoint always covers a contiguous prefix.
	go func() {
		defer close(doneCh)

		buffer := make(map[int]preparedSentence)
		nextIdx := startIdx

		writeItem := func(item preparedSentence) error {
			return bw.Submit(func(ctx context.Context, tx *sql.Tx) error {
				if err := db.UpsertSentence(tx, item.Row); err != nil {
					return fmt.Errorf("failed to persist sentence %d: %w", item.Row.ID, err)
				}
				if len(item.Words) > 0 {
					if err := db.ReplaceWords(tx, item.Row.ID, item.Words); err != nil {
						return fmt.Errorf("failed to persist words of sentence %d: %w", item.Row.ID, err)
					}
					atomic.AddInt64(&totalWords, int64(len(item.Words)))
				}
				if err := db.UpdateLoadProgress(tx, loadName, item.Index); err != nil {
					return fmt.Errorf("failed to save progress: %w", err)
				}
				return nil
			})
		}

		drain := func() error {
			for {
				item, ok := buffer[nextIdx]
				if !ok {
					return nil
				}
				delete(buffer, nextIdx)
				if err := writeItem(item); err != nil {
					return err
				}
				if ig.OnProgress != nil && (nextIdx+1)%ig.BatchSize == 0 {
					ig.OnProgress(nextIdx+1, total)
				}
				nextIdx++
			}
		}

		for res := range resultCh {
			if res.Error != nil {
				cancel()
				doneCh <- res.Error
				return
			}
			buffer[res.Index] = res
			if err := drain(); err != nil {
				cancel()
				doneCh <- err
				return
			}
		}

		// resultCh closed: flush whatever is still contiguous.
		if err := drain(); err != nil {
			cancel()
			doneCh <- err
			return
		}
		if ig.OnProgress != nil {
			ig.OnProgress(nextIdx, total)
		}
		doneCh <- nil
	}()

	// Producer: one preparation job per sentence.
Loop:
	for i := startIdx; i < total; i++ {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		idx, id := i, ids[i]
		job := func(jobCtx context.Context) error {
			res := ig.prepare(index, idx, id)
			select {
			case resultCh <- res:
			case <-jobCtx.Done():
			}
			return nil
		}

		if err := wp.SubmitCtx(ctx, job); err != nil {
			if err == ctx.Err() || err == ErrPoolClosed {
				break Loop
			}
			cancel()
			wp.Close()
			close(resultCh)
			<-doneCh
			_ = bw.Close()
			return int(atomic.LoadInt64(&totalWords)), err
		}
	}

	// All workers have exited after Close, so closing resultCh is safe.
	wp.Close()
	close(resultCh)

	consumerErr := <-doneCh

	if err := bw.Close(); err != nil && consumerErr == nil {
		consumerErr = err
	}

	batchErrMu.Lock()
	if batchErr != nil && consumerErr == nil {
		consumerErr = batchErr
	}
	batchErrMu.Unlock()

	if consumerErr == nil {
		// A canceled load that produced no write error still reports
		// the cancellation.
		select {
		case <-ctx.Done():
			consumerErr = ctx.Err()
		default:
		}
	}

	return int(atomic.LoadInt64(&totalWords)), consumerErr
}

// prepare builds the database rows for one sentence: its metadata,
// translation group and word annotations. Sentences without an
// annotation entry fall back to the Annotator when one is configured.
func (ig *Ingester) prepare(index *corpus.Index, idx int, id corpus.SentenceID) preparedSentence {
	text, err := index.SentenceText(id)
	if err != nil {
		return preparedSentence{Index: idx, Error: err}
	}
	lang, err := index.Language(id)
	if err != nil {
		return preparedSentence{Index: idx, Error: err}
	}

	row := db.SentenceRow{
		ID: int64(id), Lang: lang, Text: text,
		GroupID: -1, MeaningID: -1,
	}

	if details, err := index.Details(id); err == nil {
		row.Username = details.Username
		row.DateAdded = details.DateAdded
		row.DateModified = details.DateModified
	}
	if group, err := index.Group(id); err == nil {
		// The smallest member id names the group in the database;
		// construction-time group ids are not stable across runs.
		row.GroupID = int64(group.IDs()[0])
	}
	if meaning, err := index.LinkedMeaning(id); err == nil {
		row.MeaningID = int64(meaning)
	}

	var words []tanaka.Word
	if ws, err := index.AnnotatedWords(id); err == nil {
		words = ws
	} else if ig.Annotator != nil && lang == "jpn" {
		ws, aerr := ig.Annotator.Annotate(text)
		if aerr != nil {
			return preparedSentence{Index: idx, Error: aerr}
		}
		words = ws
	}

	rows := make([]db.WordRow, 0, len(words))
	for i, w := range words {
		rows = append(rows, db.WordRow{
			SentenceID: int64(id),
			Position:   i,
			Headword:   w.Headword,
			Reading:    w.Reading,
			Sense:      w.Sense,
			Display:    w.Display,
			Example:    w.Example,
		})
	}

	return preparedSentence{Index: idx, Row: row, Words: rows}
}
