package parsort

import "github.com/tamirms/parsort/internal/pagesort"

// Page is an ordered run of values. Pages produced from raw input hold at
// most the configured page capacity; pages produced by merges are unbounded.
// A page is owned by exactly one job, worker, or the queue's leftover slot.
type Page []uint64

// JobKind identifies the variant of a Job.
type JobKind uint8

const (
	// KindSort sorts a single page in place.
	KindSort JobKind = iota
	// KindMerge merges two sorted pages into a new one.
	KindMerge
)

// String returns the kind's name.
func (k JobKind) String() string {
	switch k {
	case KindSort:
		return "sort"
	case KindMerge:
		return "merge"
	default:
		return "unknown"
	}
}

// Job is a unit of work over one or two pages. There are exactly two kinds,
// dispatched by a switch on the kind tag:
//
//   - sort: owns one raw page (a); Run sorts it in place and returns it.
//   - merge: owns two pages (a, b) that must each already be sorted
//     ascending; Run returns a newly allocated merged page. The inputs are
//     not checked for order.
//
// A job is executed at most once. After Run the job no longer owns its pages.
type Job struct {
	kind JobKind
	a, b Page
}

// SortJob returns a job that sorts p.
func SortJob(p Page) Job {
	return Job{kind: KindSort, a: p}
}

// MergeJob returns a job that merges the sorted pages a and b.
func MergeJob(a, b Page) Job {
	return Job{kind: KindMerge, a: a, b: b}
}

// Kind returns the job variant.
func (j Job) Kind() JobKind {
	return j.kind
}

// Size returns the number of elements the job processes.
// For merges this is len(a)+len(b).
func (j Job) Size() int {
	return len(j.a) + len(j.b)
}

// Run executes the job and returns its result page.
func (j Job) Run() Page {
	switch j.kind {
	case KindSort:
		pagesort.Sort(j.a)
		return j.a
	case KindMerge:
		return pagesort.Merge(j.a, j.b)
	default:
		panic("parsort: unknown job kind")
	}
}
