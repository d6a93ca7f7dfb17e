package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/flashdeck/internal/models"
	"github.com/desertthunder/flashdeck/internal/shared"
	"github.com/desertthunder/flashdeck/internal/vocab"
	"golang.org/x/time/rate"
)

// Catalog is the write side of the card catalog.
type Catalog interface {
	Upsert(card models.Card, source string) (bool, error)
	DeleteAll() (int64, error)
}

// Opener resolves a source string into a [vocab.Source].
type Opener func(spec string) (vocab.Source, error)

// ImportOpts configures an import run.
type ImportOpts struct {
	RateLimit  float64 // Source fetches per second (default: 2)
	NumWorkers int     // Concurrent fetchers (default: 2, max: 5)
	Replace    bool    // Soft-delete the live catalog before storing
}

// SourceResult is the outcome of importing one source.
type SourceResult struct {
	Source   string
	Cards    int
	Inserted int
	Updated  int
	Error    error
}

// ImportResult summarizes an import run. Sources keeps the order they were given in.
type ImportResult struct {
	Sources   []SourceResult
	Removed   int64
	Inserted  int
	Updated   int
	Succeeded int
	Failed    int
}

type fetchJob struct {
	index int
	src   vocab.Source
}

type fetchResult struct {
	index int
	src   string
	cards []models.Card
	err   error
}

// ImportEngine loads vocabulary sources into the catalog.
type ImportEngine struct {
	catalog Catalog
	open    Opener
}

// NewImportEngine creates an ImportEngine writing to catalog. A nil opener uses [vocab.Open]
// with default options.
func NewImportEngine(catalog Catalog, open Opener) *ImportEngine {
	if open == nil {
		open = func(spec string) (vocab.Source, error) { return vocab.Open(spec, vocab.OpenOpts{}) }
	}
	return &ImportEngine{catalog: catalog, open: open}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *ImportEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Import fetches every source and upserts its cards into the catalog.
//
// Fetches run on a worker pool throttled by a shared limiter; catalog writes happen on
// the calling goroutine once every fetch has finished. With Replace, the catalog is
// cleared only when at least one source loaded. Per-source failures are collected in the result. The returned
// error is non-nil only when the run itself could not proceed.
func (e *ImportEngine) Import(ctx context.Context, prog chan<- ProgressUpdate, specs []string, opts ImportOpts) (*ImportResult, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog not opened", shared.ErrInvalidInput)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: at least one source is required", shared.ErrMissingArgument)
	}

	if opts.RateLimit <= 0 {
		opts.RateLimit = 2.0
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 2
	}
	if opts.NumWorkers > 5 {
		opts.NumWorkers = 5
	}

	result := &ImportResult{Sources: make([]SourceResult, len(specs))}

	jobs := make([]fetchJob, 0, len(specs))
	for i, spec := range specs {
		src, err := e.open(spec)
		if err != nil {
			result.Sources[i] = SourceResult{Source: spec, Error: err}
			continue
		}
		if vocab.IsCatalog(src.String()) {
			result.Sources[i] = SourceResult{Source: spec, Error: fmt.Errorf("%w: cannot import the catalog into itself", shared.ErrInvalidArgument)}
			continue
		}
		jobs = append(jobs, fetchJob{index: i, src: src})
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	queue := make(chan fetchJob, len(jobs))
	fetched := make(chan fetchResult, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.fetchWorker(ctx, &wg, limiter, queue, fetched)
	}

	for i, j := range jobs {
		e.sendProgress(prog, fetchSourceUpdate(i+1, len(jobs), j.src.String()))
		queue <- j
	}
	close(queue)

	go func() {
		wg.Wait()
		close(fetched)
	}()

	var loaded []fetchResult
	for res := range fetched {
		loaded = append(loaded, res)
	}

	// The live catalog is only cleared once something can replace it.
	if opts.Replace && anyFetched(loaded) {
		removed, err := e.catalog.DeleteAll()
		if err != nil {
			return nil, fmt.Errorf("failed to clear catalog: %w", err)
		}
		result.Removed = removed
		e.sendProgress(prog, clearCatalogUpdate(removed))
	}

	for _, res := range loaded {
		result.Sources[res.index] = e.store(res)
	}

	for i, res := range result.Sources {
		if res.Source == "" {
			res = SourceResult{Source: specs[i], Error: ctx.Err()}
			if res.Error == nil {
				res.Error = fmt.Errorf("%w: source was not fetched", shared.ErrLoadFailed)
			}
			result.Sources[i] = res
		}

		if res.Error != nil {
			result.Failed++
			e.sendProgress(prog, failedSourceUpdate(i+1, len(specs), res))
			continue
		}
		result.Succeeded++
		result.Inserted += res.Inserted
		result.Updated += res.Updated
		e.sendProgress(prog, storedSourceUpdate(i+1, len(specs), res))
	}

	e.sendProgress(prog, completeUpdate(result))
	return result, nil
}

// fetchWorker loads sources from the queue, waiting on the limiter before each fetch.
func (e *ImportEngine) fetchWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	queue <-chan fetchJob,
	fetched chan<- fetchResult,
) {
	defer wg.Done()

	for job := range queue {
		if err := limiter.Wait(ctx); err != nil {
			fetched <- fetchResult{index: job.index, src: job.src.String(), err: err}
			continue
		}

		cards, err := vocab.LoadCards(ctx, job.src)
		fetched <- fetchResult{index: job.index, src: job.src.String(), cards: cards, err: err}
	}
}

func anyFetched(results []fetchResult) bool {
	for _, res := range results {
		if res.err == nil {
			return true
		}
	}
	return false
}

// store upserts the cards of one fetched source.
func (e *ImportEngine) store(res fetchResult) SourceResult {
	out := SourceResult{Source: res.src, Error: res.err}
	if res.err != nil {
		return out
	}

	out.Cards = len(res.cards)
	for _, card := range res.cards {
		inserted, err := e.catalog.Upsert(card, res.src)
		if err != nil {
			out.Error = fmt.Errorf("failed to store %q: %w", card.Word, err)
			return out
		}
		if inserted {
			out.Inserted++
		} else {
			out.Updated++
		}
	}
	return out
}
