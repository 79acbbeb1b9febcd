//go:build unix

package parsort

import "golang.org/x/sys/unix"

// osPageSize returns the virtual memory page size in bytes.
func osPageSize() int {
	return unix.Getpagesize()
}
