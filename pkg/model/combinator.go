package model

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

var ErrCandidateLimit = errors.New("candidate timetable limit exceeded")

// Combinator turns the per-course block lists into every conflict-free timetable holding one block per course
type Combinator interface {
	Enumerate(ctx context.Context, courseBlocks [][]Block) ([]Timetable, error)
}

// mergeFunction extends every accumulated timetable with every block of the next course
type mergeFunction func(ctx context.Context, accumulated []Timetable, blocks []Block, budget *candidateBudget) ([]Timetable, error)

// enumerate folds the block lists left to right. Starting from a single empty timetable, the first step
// reinterprets the first course's blocks as single-course timetables
func enumerate(ctx context.Context, courseBlocks [][]Block, maxCandidates int, merge mergeFunction) ([]Timetable, error) {
	if len(courseBlocks) == 0 {
		return []Timetable{}, nil
	}

	accumulated := []Timetable{NewTimetable()}
	for _, blocks := range courseBlocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var err error
		budget := newCandidateBudget(maxCandidates)
		if accumulated, err = merge(ctx, accumulated, blocks, budget); err != nil {
			return nil, err
		}
		if len(accumulated) == 0 { // No later course can revive an empty fold
			return []Timetable{}, nil
		}
	}
	return accumulated, nil
}

// mergeInto appends to merger every accepted (timetable, block) candidate
func mergeInto(ctx context.Context, merger []Timetable, accumulated []Timetable, blocks []Block, budget *candidateBudget) ([]Timetable, error) {
	for _, timetable := range accumulated {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for _, block := range blocks {
			candidate := timetable // InsertAll works on a private copy and only publishes it on success
			if !candidate.InsertAll(block.sections, Timetable{}) {
				continue
			}
			if err := budget.take(); err != nil {
				return nil, err
			}
			merger = append(merger, candidate)
		}
	}
	return merger, nil
}

type candidateBudget struct {
	limit    int64
	accepted atomic.Int64
}

func newCandidateBudget(limit int) *candidateBudget {
	return &candidateBudget{limit: int64(limit)}
}

func (budget *candidateBudget) take() error {
	accepted := budget.accepted.Add(1)
	if budget.limit > 0 && accepted > budget.limit {
		return fmt.Errorf("%w: more than %d candidates", ErrCandidateLimit, budget.limit)
	}
	return nil
}

type sequentialCombinator struct {
	maxCandidates int
}

// NewSequentialCombinator builds a combinator that folds on the calling goroutine. A maxCandidates of 0 means no limit
func NewSequentialCombinator(maxCandidates int) Combinator {
	return &sequentialCombinator{maxCandidates: maxCandidates}
}

func (combinator *sequentialCombinator) Enumerate(ctx context.Context, courseBlocks [][]Block) ([]Timetable, error) {
	return enumerate(ctx, courseBlocks, combinator.maxCandidates, func(ctx context.Context, accumulated []Timetable, blocks []Block, budget *candidateBudget) ([]Timetable, error) {
		return mergeInto(ctx, make([]Timetable, 0, len(accumulated)*len(blocks)), accumulated, blocks, budget)
	})
}

type parallelCombinator struct {
	workers       int
	maxCandidates int
}

// NewParallelCombinator builds a combinator that shards every fold step across workers goroutines.
// Shards are concatenated in order, so the output matches the sequential combinator's
func NewParallelCombinator(workers, maxCandidates int) Combinator {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &parallelCombinator{workers: workers, maxCandidates: maxCandidates}
}

func (combinator *parallelCombinator) Enumerate(ctx context.Context, courseBlocks [][]Block) ([]Timetable, error) {
	return enumerate(ctx, courseBlocks, combinator.maxCandidates, combinator.merge)
}

func (combinator *parallelCombinator) merge(ctx context.Context, accumulated []Timetable, blocks []Block, budget *candidateBudget) ([]Timetable, error) {
	shardSize := (len(accumulated) + combinator.workers - 1) / combinator.workers
	shards := lo.Chunk(accumulated, shardSize)
	results := make([][]Timetable, len(shards))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(combinator.workers)
	for i, shard := range shards {
		group.Go(func() error {
			merger, err := mergeInto(groupCtx, make([]Timetable, 0, len(shard)*len(blocks)), shard, blocks, budget)
			results[i] = merger // Each goroutine owns its own slot
			return err
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return lo.Flatten(results), nil
}
