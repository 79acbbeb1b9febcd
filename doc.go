// Package parsort sorts large sequences of uint64 values on a fixed pool of
// workers that share a single, continuously refilled job queue.
//
// # Basic Usage
//
// Sorting a file of whitespace-separated decimal numbers:
//
//	s, err := parsort.New(runtime.NumCPU())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := s.LoadFile("numbers.txt"); err != nil {
//	    log.Fatal(err)
//	}
//	if err := s.Sort(); err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := s.WriteTo(os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
//
// Sorting an in-memory slice:
//
//	sorted, err := parsort.Sort(values, 8)
//
// # Scheduling
//
// Input is cut into pages of one virtual memory page each (512 values with
// 4 KiB pages) and every page becomes a sort job. Workers repeatedly claim
// the oldest jobs until the claimed size passes ceil(total/workers), run
// them, and pair consecutive results into merge jobs. A batch with an odd
// number of jobs leaves one result over; it is parked in the queue's single
// leftover slot, or merged with the page already parked there. A worker
// stops as soon as a claim comes back empty. When the last worker stops,
// the queue is empty and the leftover page is the sorted input.
//
// # Package Structure
//
//   - Public API: sorter.go (New, Load*, Sort, Result, WriteTo)
//   - Configuration: options.go (Option, With* functions)
//   - Scheduling: queue.go (Claim, Publish, Exchange), worker.go
//   - Jobs: job.go (Page, Job, SortJob, MergeJob)
//   - Kernels: internal/pagesort/ (page sort and two-way merge)
//   - Input: ingest.go (mmap'd file tokenizer)
//   - Checks: fingerprint.go (multiset fingerprint, output digest)
//   - Platform: pagesize_*.go, madvise_*.go
package parsort
