package parsort

import (
	"log/slog"
	"unsafe"
)

// elementSize is the in-memory size of one value.
const elementSize = int(unsafe.Sizeof(uint64(0)))

// Option is a functional option for configuring a Sorter.
type Option func(*sortConfig)

type sortConfig struct {
	pageSize     int // bytes per page
	pageCapacity int // elements per page; overrides pageSize when > 0
	verify       bool
	logger       *slog.Logger
}

func defaultSortConfig() *sortConfig {
	return &sortConfig{
		pageSize: osPageSize(),
		logger:   slog.New(slog.DiscardHandler),
	}
}

// capacity returns the number of elements per input page.
func (c *sortConfig) capacity() int {
	if c.pageCapacity > 0 {
		return c.pageCapacity
	}
	return c.pageSize / elementSize
}

// WithPageSize sets the input page size in bytes. Each input page holds
// size/8 values. Defaults to the operating system's page size.
func WithPageSize(size int) Option {
	return func(c *sortConfig) {
		c.pageSize = size
	}
}

// WithPageCapacity sets the number of values per input page directly,
// overriding WithPageSize.
func WithPageCapacity(n int) Option {
	return func(c *sortConfig) {
		c.pageCapacity = n
	}
}

// WithVerify enables a post-sort check that the output is ordered and holds
// exactly the input values. Costs one extra hash per value at load time.
func WithVerify(enabled bool) Option {
	return func(c *sortConfig) {
		c.verify = enabled
	}
}

// WithLogger sets the logger used for per-worker debug output.
// A nil logger keeps the default, which discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *sortConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}
