package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/encodeous/dvsim/state"
	"github.com/panjf2000/ants/v2"
)

type BatchResult struct {
	Trials []*Result // indexed by trial, nil when the trial failed to start
	Errors []error   // indexed by trial
}

type BatchSummary struct {
	Trials      int
	Converged   int
	Failed      int
	MeanEndTime float64
	MaxEndTime  float64
	MeanSent    float64
	MaxSent     int
}

// RunBatch runs trials independent simulations of topo on a pool of workers.
// Trial i uses seed topo.Seed+i.
func RunBatch(ctx context.Context, topo *state.Topology, trials, workers int, log *slog.Logger) (*BatchResult, error) {
	if trials <= 0 {
		return nil, fmt.Errorf("trials must be positive, got %d", trials)
	}
	if workers <= 0 {
		return nil, fmt.Errorf("workers must be positive, got %d", workers)
	}
	if log == nil {
		log = slog.Default()
	}
	res := &BatchResult{
		Trials: make([]*Result, trials),
		Errors: make([]error, trials),
	}
	var mu sync.Mutex
	var wg sync.WaitGroup

	pool, err := ants.NewPool(workers, ants.WithPanicHandler(func(p any) {
		log.Error("trial panicked", "panic", p)
	}))
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := pool.ReleaseTimeout(5 * time.Second); err != nil {
			log.Warn("worker pool did not stop", "err", err)
		}
	}()

	for i := range trials {
		t := topo.Clone()
		t.Seed = topo.Seed + uint64(i)
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			r, err := runTrial(ctx, t, log.With("trial", i))
			mu.Lock()
			res.Trials[i] = r
			res.Errors[i] = err
			mu.Unlock()
		})
		if err != nil {
			wg.Done()
			res.Errors[i] = err
		}
	}
	wg.Wait()
	return res, errors.Join(res.Errors...)
}

func runTrial(ctx context.Context, topo *state.Topology, log *slog.Logger) (*Result, error) {
	s, err := New(topo, Options{Log: log})
	if err != nil {
		return nil, err
	}
	return s.Run(ctx)
}

func (b *BatchResult) Summary() BatchSummary {
	sum := BatchSummary{Trials: len(b.Trials)}
	done := 0
	for i, r := range b.Trials {
		if r == nil || b.Errors[i] != nil {
			sum.Failed++
		}
		if r == nil {
			continue
		}
		done++
		if r.Converged && b.Errors[i] == nil {
			sum.Converged++
		}
		sum.MeanEndTime += r.EndTime
		sum.MaxEndTime = max(sum.MaxEndTime, r.EndTime)
		sum.MeanSent += float64(r.Sent)
		sum.MaxSent = max(sum.MaxSent, r.Sent)
	}
	if done > 0 {
		sum.MeanEndTime /= float64(done)
		sum.MeanSent /= float64(done)
	}
	return sum
}
