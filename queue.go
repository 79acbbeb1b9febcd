package parsort

import (
	"slices"
	"sync"
)

// Queue is the shared job queue. It holds pending jobs in publication order
// plus at most one leftover page: a finished result still waiting for a
// merge partner.
//
// All methods are safe for concurrent use. Workers use Exchange so that
// publishing a round's results and claiming the next batch happen in a
// single critical section.
type Queue struct {
	mu       sync.Mutex
	jobs     []Job
	leftover Page
	quota    int // desired elements per claim, fixed for the whole run
}

// NewQueue returns an empty queue whose claims target quota elements.
func NewQueue(quota int) *Queue {
	return &Queue{quota: quota}
}

// claimQuota returns ceil(total / workers), the per-claim element target.
// It is computed once from the original input size and never shrinks as
// the run progresses.
func claimQuota(total, workers int) int {
	if workers <= 0 {
		return total
	}
	return (total + workers - 1) / workers
}

// Push appends jobs to the tail of the queue.
func (q *Queue) Push(jobs ...Job) {
	q.mu.Lock()
	q.jobs = append(q.jobs, jobs...)
	q.mu.Unlock()
}

// Claim removes and returns the oldest jobs, taking the shortest prefix whose
// accumulated size exceeds the quota (the crossing job included). If the
// whole queue stays within the quota, every job is returned. An empty queue
// yields a nil batch.
func (q *Queue) Claim() []Job {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.claimLocked()
}

// Publish appends newJobs to the queue and hands last to the leftover slot.
// If the slot is empty, last becomes the leftover. Otherwise the leftover and
// last are queued together as a merge job and the slot is cleared. An empty
// last leaves the slot untouched.
func (q *Queue) Publish(newJobs []Job, last Page) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.publishLocked(newJobs, last)
}

// Exchange publishes a worker's round and claims its next batch atomically.
func (q *Queue) Exchange(newJobs []Job, last Page) []Job {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.publishLocked(newJobs, last)
	return q.claimLocked()
}

func (q *Queue) claimLocked() []Job {
	if len(q.jobs) == 0 {
		return nil
	}

	n := 0
	work := 0
	for _, job := range q.jobs {
		n++
		work += job.Size()
		if work > q.quota {
			break
		}
	}

	batch := slices.Clone(q.jobs[:n])
	// Drop the queue's references so claimed pages belong to the caller only
	clear(q.jobs[:n])
	q.jobs = q.jobs[n:]
	if len(q.jobs) == 0 {
		q.jobs = nil
	}
	return batch
}

func (q *Queue) publishLocked(newJobs []Job, last Page) {
	q.jobs = append(q.jobs, newJobs...)

	if len(last) == 0 {
		return
	}
	if len(q.leftover) == 0 {
		q.leftover = last
		return
	}
	q.jobs = append(q.jobs, MergeJob(q.leftover, last))
	q.leftover = nil
}

// Len returns the number of pending jobs.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

// Kinds returns the kinds of the pending jobs, oldest first.
func (q *Queue) Kinds() []JobKind {
	q.mu.Lock()
	defer q.mu.Unlock()
	kinds := make([]JobKind, len(q.jobs))
	for i, job := range q.jobs {
		kinds[i] = job.Kind()
	}
	return kinds
}

// PendingElements returns the summed size of all pending jobs.
func (q *Queue) PendingElements() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	total := 0
	for _, job := range q.jobs {
		total += job.Size()
	}
	return total
}

// Leftover returns the leftover page, or nil if the slot is empty.
// The page must not be modified.
func (q *Queue) Leftover() Page {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.leftover
}

// Quota returns the per-claim element target.
func (q *Queue) Quota() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.quota
}

// setQuota changes the claim target. Called by the Sorter before workers start.
func (q *Queue) setQuota(quota int) {
	q.mu.Lock()
	q.quota = quota
	q.mu.Unlock()
}
