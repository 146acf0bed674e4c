package scoring

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the number of packages evaluated at once.
const DefaultWorkers = 4

// Evaluator scores one input URL.
type Evaluator interface {
	Evaluate(ctx context.Context, url string) Record
}

// BatchOptions configures a [Batch].
type BatchOptions struct {
	// Workers bounds concurrent package evaluations. Zero means [DefaultWorkers].
	Workers int

	// Unordered emits records as they complete instead of in input order.
	Unordered bool

	// RunID tags the run. Empty means a fresh [NewRunID].
	RunID string

	// Logger receives progress and secondary sink failures. Nil discards them.
	Logger *log.Logger
}

// Summary describes a finished batch.
type Summary struct {
	RunID    string
	Total    int
	Failed   int
	Records  []Record // in emission order
	Duration time.Duration
}

// Batch evaluates many URLs with bounded concurrency.
type Batch struct {
	eval      Evaluator
	workers   int
	unordered bool
	runID     string
	logger    *log.Logger
}

// NewRunID returns a fresh identifier for a batch run.
func NewRunID() string { return uuid.NewString() }

// NewBatch creates a Batch evaluating URLs with eval.
func NewBatch(eval Evaluator, opts BatchOptions) *Batch {
	b := &Batch{
		eval:      eval,
		workers:   opts.Workers,
		unordered: opts.Unordered,
		runID:     opts.RunID,
		logger:    opts.Logger,
	}
	if b.workers <= 0 {
		b.workers = DefaultWorkers
	}
	if b.runID == "" {
		b.runID = NewRunID()
	}
	if b.logger == nil {
		b.logger = log.New(io.Discard)
	}
	return b
}

type indexed struct {
	i   int
	rec Record
}

// Run evaluates urls and writes every record to out, then to each of extra.
//
// A single goroutine performs all writes. A failing write to out stops the
// run and is returned; failures of extra sinks are logged and ignored.
// Cancelling ctx stops scheduling new URLs and discards evaluations in
// flight; records already finished are still written.
func (b *Batch) Run(ctx context.Context, urls []string, out Sink, extra ...Sink) (Summary, error) {
	start := time.Now()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	summary := Summary{RunID: b.runID}
	results := make(chan indexed, b.workers)

	var writeErr error
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		writeErr = b.drain(ctx, results, &summary, out, extra)
		if writeErr != nil {
			cancel()
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for i, url := range urls {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			rec := b.eval.Evaluate(gctx, url)
			if gctx.Err() != nil {
				// interrupted evaluations are incomplete
				return nil
			}
			select {
			case results <- indexed{i: i, rec: rec}:
			case <-gctx.Done():
			}
			return nil
		})
	}
	_ = g.Wait()
	close(results)
	<-writerDone

	summary.Duration = time.Since(start)
	b.logger.Debug("batch finished", "run", b.runID, "total", summary.Total, "failed", summary.Failed, "elapsed", summary.Duration)
	if writeErr != nil {
		return summary, writeErr
	}
	return summary, context.Cause(ctx)
}

// drain is the single writer. In ordered mode it holds records back until
// every earlier index has been written.
func (b *Batch) drain(ctx context.Context, results <-chan indexed, summary *Summary, out Sink, extra []Sink) error {
	ctx = context.WithoutCancel(ctx)
	emit := func(rec Record) error {
		if err := out.Write(ctx, rec); err != nil {
			return err
		}
		for _, s := range extra {
			if err := s.Write(ctx, rec); err != nil {
				b.logger.Warn("sink write failed", "url", rec.URL, "err", err)
			}
		}
		summary.Total++
		if rec.Failed() {
			summary.Failed++
		}
		summary.Records = append(summary.Records, rec)
		return nil
	}

	pending := make(map[int]Record)
	next := 0
	for r := range results {
		if b.unordered {
			if err := emit(r.rec); err != nil {
				return err
			}
			continue
		}
		pending[r.i] = r.rec
		for {
			rec, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			if err := emit(rec); err != nil {
				return err
			}
		}
	}

	// Gaps remain only after cancellation; flush what finished, in order.
	rest := make([]int, 0, len(pending))
	for i := range pending {
		rest = append(rest, i)
	}
	sort.Ints(rest)
	for _, i := range rest {
		if err := emit(pending[i]); err != nil {
			return err
		}
	}
	return nil
}
