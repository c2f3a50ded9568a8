// Package runner orchestrates one screening pass over the instrument
// universe: fetch series, analyze, collect candidates. Instruments are
// independent units of work; a failed one is logged and skipped, never
// aborting the batch.
package runner

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lzx-sdu/stock-picker-auto/internal/logging"
	"github.com/lzx-sdu/stock-picker-auto/internal/model"
	"github.com/lzx-sdu/stock-picker-auto/internal/provider"
	"github.com/lzx-sdu/stock-picker-auto/internal/strategy"
)

// Options control batch size, concurrency and the inclusion policy.
type Options struct {
	MaxInstruments int
	LookbackDays   int
	WorkerCount    int
	BatchSize      int
	FetchDelay     time.Duration // sequential-path throttle between fetches
	IncludeAll     bool          // keep every analyzed candidate, not only BUYs
	MinPrice       float64
	MaxPrice       float64
}

// Runner applies the analysis pipeline to every instrument of the universe.
type Runner struct {
	series   provider.SeriesProvider
	universe provider.UniverseProvider
	analyzer *strategy.Analyzer
	opts     Options
	log      logging.Logger
}

// New creates a Runner. The analyzer is shared by all workers; it is
// immutable and safe for concurrent use.
func New(series provider.SeriesProvider, universe provider.UniverseProvider,
	analyzer *strategy.Analyzer, opts Options, log logging.Logger) *Runner {
	if opts.WorkerCount < 1 {
		opts.WorkerCount = 1
	}
	if opts.BatchSize < 1 {
		opts.BatchSize = 20
	}
	return &Runner{series: series, universe: universe, analyzer: analyzer, opts: opts, log: log}
}

// result is the explicit success-or-failure outcome of one instrument task.
type result struct {
	candidate *model.ScoredCandidate
	code      string
	err       error
}

// Run executes one full screening pass and returns the included candidates
// sorted by composite score descending. Only a universe-provider failure is
// returned as an error; per-instrument failures are logged and skipped.
func (r *Runner) Run(ctx context.Context) ([]*model.ScoredCandidate, error) {
	instruments, err := r.universe.FetchUniverse(ctx)
	if err != nil {
		return nil, err
	}
	if r.opts.MaxInstruments > 0 && len(instruments) > r.opts.MaxInstruments {
		instruments = instruments[:r.opts.MaxInstruments]
	}
	r.log.Infof("screening %d instruments via %s (workers=%d)",
		len(instruments), r.series.Name(), r.opts.WorkerCount)

	start := time.Now()
	var candidates []*model.ScoredCandidate
	if r.opts.WorkerCount <= 1 {
		candidates = r.runSequential(ctx, instruments)
	} else {
		candidates = r.runConcurrent(ctx, instruments)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].CompositeScore > candidates[j].CompositeScore
	})
	r.log.Infof("screening done: %d candidates from %d instruments in %s",
		len(candidates), len(instruments), time.Since(start).Round(time.Millisecond))
	return candidates, nil
}

// runSequential processes instruments one by one with a courtesy delay
// between fetches to throttle the data source.
func (r *Runner) runSequential(ctx context.Context, instruments []model.Instrument) []*model.ScoredCandidate {
	var out []*model.ScoredCandidate
	for i, inst := range instruments {
		if ctx.Err() != nil {
			r.log.Warnf("screening cancelled after %d instruments", i)
			break
		}
		if i > 0 && r.opts.FetchDelay > 0 {
			select {
			case <-ctx.Done():
				return out
			case <-time.After(r.opts.FetchDelay):
			}
		}
		res := r.processOne(ctx, inst)
		if res.err != nil {
			r.log.Errorf("instrument %s: %v", res.code, res.err)
			continue
		}
		if res.candidate != nil {
			out = append(out, res.candidate)
		}
	}
	return out
}

// runConcurrent fans instruments out over a fixed worker pool in fixed-size
// batches. Workers share no mutable state: each sends its result over the
// channel and the orchestrator collects.
func (r *Runner) runConcurrent(ctx context.Context, instruments []model.Instrument) []*model.ScoredCandidate {
	var out []*model.ScoredCandidate
	total := len(instruments)
	for offset := 0; offset < total; offset += r.opts.BatchSize {
		if ctx.Err() != nil {
			r.log.Warnf("screening cancelled after %d instruments", offset)
			break
		}
		end := offset + r.opts.BatchSize
		if end > total {
			end = total
		}
		batch := instruments[offset:end]

		jobs := make(chan model.Instrument, len(batch))
		results := make(chan result, len(batch))
		var wg sync.WaitGroup
		workers := r.opts.WorkerCount
		if workers > len(batch) {
			workers = len(batch)
		}
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for inst := range jobs {
					results <- r.processOne(ctx, inst)
				}
			}()
		}
		for _, inst := range batch {
			jobs <- inst
		}
		close(jobs)
		wg.Wait()
		close(results)

		for res := range results {
			if res.err != nil {
				r.log.Errorf("instrument %s: %v", res.code, res.err)
				continue
			}
			if res.candidate != nil {
				out = append(out, res.candidate)
			}
		}
		r.log.Infof("processed %d/%d instruments", end, total)
	}
	return out
}

// processOne fetches and analyzes a single instrument. A nil candidate with a
// nil error means the instrument was skipped (short series, price filter, or
// inclusion policy), which is not a failure.
func (r *Runner) processOne(ctx context.Context, inst model.Instrument) result {
	series, err := r.series.FetchSeries(ctx, inst.Code, r.opts.LookbackDays)
	if err != nil {
		return result{code: inst.Code, err: err}
	}
	if series == nil || series.Len() < r.analyzer.MinDataPoints() {
		return result{code: inst.Code}
	}
	if inst.Name != "" {
		series.Name = inst.Name
	}

	if lastClose := series.Points[series.Len()-1].Close; !r.priceInRange(lastClose) {
		return result{code: inst.Code}
	}

	candidate := r.analyzer.Analyze(series)
	if candidate == nil {
		return result{code: inst.Code}
	}
	if !r.opts.IncludeAll {
		if candidate.Advice.Action != model.ActionBuy ||
			candidate.CompositeScore < r.analyzer.ConfidenceThreshold() {
			return result{code: inst.Code}
		}
	}
	return result{code: inst.Code, candidate: candidate}
}

func (r *Runner) priceInRange(price float64) bool {
	if r.opts.MinPrice > 0 && price < r.opts.MinPrice {
		return false
	}
	if r.opts.MaxPrice > 0 && price > r.opts.MaxPrice {
		return false
	}
	return true
}
