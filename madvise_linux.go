//go:build linux

package parsort

import "golang.org/x/sys/unix"

// adviseSequential hints to the kernel that the mapped input will be read
// front to back, enabling aggressive readahead.
// Best-effort: errors are silently ignored.
func adviseSequential(data []byte) {
	if len(data) == 0 {
		return
	}
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)
}
