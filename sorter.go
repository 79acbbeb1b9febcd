package parsort

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	perrors "github.com/tamirms/parsort/errors"
	"github.com/tamirms/parsort/internal/pagesort"
)

// Sorter sorts uint64 values with a fixed pool of workers sharing one job
// queue.
//
// Usage:
//
//	s, err := parsort.New(runtime.NumCPU())
//	if err != nil { return err }
//	if err := s.LoadFile("numbers.txt"); err != nil { return err }
//	if err := s.Sort(); err != nil { return err }
//	_, err = s.WriteTo(os.Stdout)
//
// Loading splits the input into pages and queues one sort job per page.
// Sort starts the workers and returns once every one of them has found the
// queue empty; the queue's leftover page then holds the whole sorted input.
//
// A Sorter is not safe for concurrent use; its workers are internal.
type Sorter struct {
	cfg     *sortConfig
	workers int
	queue   *Queue

	// Loaded input
	total int          // number of values
	pages int          // number of sort jobs queued at load time
	input multisetHash // fingerprint of the input (only with WithVerify)

	// Last run
	stats   []WorkerStats
	elapsed time.Duration
}

// New creates a Sorter that runs exactly workers goroutines per Sort.
// Returns ErrInvalidCoreCount if workers <= 0 and ErrInvalidPageSize if the
// configured page cannot hold a single value.
func New(workers int, opts ...Option) (*Sorter, error) {
	if workers <= 0 {
		return nil, fmt.Errorf("%w: got %d", perrors.ErrInvalidCoreCount, workers)
	}

	cfg := defaultSortConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.capacity() < 1 {
		return nil, fmt.Errorf("%w: page size %d bytes, capacity %d",
			perrors.ErrInvalidPageSize, cfg.pageSize, cfg.pageCapacity)
	}

	return &Sorter{
		cfg:     cfg,
		workers: workers,
		queue:   NewQueue(0),
	}, nil
}

// Load reads whitespace-separated decimal values from r, replacing any
// previously loaded input. Reading stops quietly at the first malformed
// token; only read errors are returned.
func (s *Sorter) Load(r io.Reader) error {
	s.reset()
	err := newPageReader(r, s.cfg.capacity()).readAll(s.addPage)
	s.logLoaded()
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// LoadSlice loads values, replacing any previously loaded input.
// The values are copied; the caller keeps ownership of the slice.
func (s *Sorter) LoadSlice(values []uint64) {
	s.reset()
	for _, chunk := range lo.Chunk(slices.Clone(values), s.cfg.capacity()) {
		s.addPage(chunk)
	}
	s.logLoaded()
}

func (s *Sorter) reset() {
	s.queue = NewQueue(0)
	s.total = 0
	s.pages = 0
	s.input = multisetHash{}
	s.stats = nil
	s.elapsed = 0
}

// addPage queues a sort job for p. Empty pages are dropped.
func (s *Sorter) addPage(p Page) {
	if len(p) == 0 {
		return
	}
	if s.cfg.verify {
		s.input.addAll(p)
	}
	s.total += len(p)
	s.pages++
	s.queue.Push(SortJob(p))
}

func (s *Sorter) logLoaded() {
	s.cfg.logger.LogAttrs(context.Background(), slog.LevelDebug, "input loaded",
		slog.Int("values", s.total),
		slog.Int("pages", s.pages),
		slog.Int("page_capacity", s.cfg.capacity()))
}

// Sort runs the worker pool to completion. There is no cancellation: once
// started, the workers run until the queue is drained.
//
// With WithVerify, Sort returns ErrNotSorted or ErrConservation if the
// result fails its checks.
func (s *Sorter) Sort() error {
	s.queue.setQuota(claimQuota(s.total, s.workers))

	workers := make([]*worker, s.workers)
	var g errgroup.Group
	start := time.Now()
	for i := range workers {
		w := &worker{id: i, queue: s.queue, logger: s.cfg.logger}
		workers[i] = w
		g.Go(w.run)
	}
	err := g.Wait()
	s.elapsed = time.Since(start)

	s.stats = make([]WorkerStats, len(workers))
	for i, w := range workers {
		s.stats[i] = w.stats
	}
	if err != nil {
		return fmt.Errorf("worker error: %w", err)
	}

	s.cfg.logger.LogAttrs(context.Background(), slog.LevelDebug, "sort finished",
		slog.Int("workers", s.workers),
		slog.Int("quota", s.queue.Quota()),
		slog.Duration("elapsed", s.elapsed))

	if s.cfg.verify {
		return s.verify()
	}
	return nil
}

// verify checks the finished queue: no jobs left, leftover ordered and
// holding exactly the loaded values.
func (s *Sorter) verify() error {
	if n := s.queue.Len(); n != 0 {
		return fmt.Errorf("%w: %d jobs still queued", perrors.ErrConservation, n)
	}
	result := s.queue.Leftover()
	if !pagesort.IsSorted(result) {
		return perrors.ErrNotSorted
	}
	if got := multisetOf(result); got != s.input {
		return fmt.Errorf("%w: got %d values, want %d",
			perrors.ErrConservation, got.count, s.input.count)
	}
	return nil
}

// Result returns the sorted values after Sort. Before Sort, or for empty
// input, it returns nil. The returned page must not be modified.
func (s *Sorter) Result() Page {
	return s.queue.Leftover()
}

// Queue returns the job queue, for inspection.
func (s *Sorter) Queue() *Queue {
	return s.queue
}

// Len returns the number of loaded values.
func (s *Sorter) Len() int {
	return s.total
}

// Pages returns the number of sort jobs created by the last load.
func (s *Sorter) Pages() int {
	return s.pages
}

// PageCapacity returns the number of values per input page.
func (s *Sorter) PageCapacity() int {
	return s.cfg.capacity()
}

// Workers returns the size of the worker pool.
func (s *Sorter) Workers() int {
	return s.workers
}

// Stats returns per-worker counters from the last Sort.
func (s *Sorter) Stats() []WorkerStats {
	return slices.Clone(s.stats)
}

// Elapsed returns the wall time of the last Sort.
func (s *Sorter) Elapsed() time.Duration {
	return s.elapsed
}

// Digest returns the xxh3 digest of the current result (see Digest).
func (s *Sorter) Digest() uint64 {
	return Digest(s.Result())
}

// WriteTo writes the result to w, one decimal value per line.
func (s *Sorter) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriterSize(w, 64*1024)
	var n int64
	var buf [24]byte
	for _, v := range s.Result() {
		line := strconv.AppendUint(buf[:0], v, 10)
		line = append(line, '\n')
		m, err := bw.Write(line)
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// Sort sorts a copy of values with the given number of workers.
func Sort(values []uint64, workers int, opts ...Option) ([]uint64, error) {
	s, err := New(workers, opts...)
	if err != nil {
		return nil, err
	}
	s.LoadSlice(values)
	if err := s.Sort(); err != nil {
		return nil, err
	}
	return s.Result(), nil
}
