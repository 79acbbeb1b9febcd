package parsort

import (
	"context"
	"log/slog"
)

// WorkerStats counts the work done by one worker during a Sort.
type WorkerStats struct {
	Rounds    int // batches claimed and processed
	SortJobs  int
	MergeJobs int
	Elements  int // summed job sizes
	MaxBatch  int // largest batch claimed, in jobs
}

// worker runs the claim/process/publish loop against a shared queue.
type worker struct {
	id     int
	queue  *Queue
	logger *slog.Logger
	stats  WorkerStats
}

// run loops until a claim comes back empty.
//
//	fetching -> processing -> publishing (+ fetching) -> ... -> terminated
//
// Publishing a round and claiming the next batch share one critical section
// (Queue.Exchange), so no other worker can slip in between and take the
// leftover slot this worker is about to fill.
func (w *worker) run() error {
	batch := w.queue.Claim()
	for len(batch) > 0 {
		w.observe(batch)
		newJobs, last := w.process(batch)
		batch = w.queue.Exchange(newJobs, last)
	}
	w.logger.LogAttrs(context.Background(), slog.LevelDebug, "worker done",
		slog.Int("worker", w.id),
		slog.Int("rounds", w.stats.Rounds),
		slog.Int("sort_jobs", w.stats.SortJobs),
		slog.Int("merge_jobs", w.stats.MergeJobs))
	return nil
}

func (w *worker) observe(batch []Job) {
	w.stats.Rounds++
	w.stats.MaxBatch = max(w.stats.MaxBatch, len(batch))
	for _, job := range batch {
		w.stats.Elements += job.Size()
		switch job.Kind() {
		case KindSort:
			w.stats.SortJobs++
		case KindMerge:
			w.stats.MergeJobs++
		}
	}
	w.logger.LogAttrs(context.Background(), slog.LevelDebug, "claimed batch",
		slog.Int("worker", w.id),
		slog.Int("round", w.stats.Rounds),
		slog.Int("jobs", len(batch)))
}

// process runs every job of the batch in order and folds consecutive results
// into merge jobs. With an odd number of jobs the final result is returned
// as last; otherwise last is nil.
func (w *worker) process(batch []Job) (newJobs []Job, last Page) {
	newJobs = make([]Job, 0, len(batch)/2)
	pending := false
	for i := range batch {
		result := batch[i].Run()
		batch[i] = Job{} // consumed
		if pending {
			newJobs = append(newJobs, MergeJob(last, result))
			last, pending = nil, false
		} else {
			last, pending = result, true
		}
	}
	return newJobs, last
}
