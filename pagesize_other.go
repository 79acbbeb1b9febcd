//go:build !unix

package parsort

// defaultPageSize is used where the page size cannot be queried.
const defaultPageSize = 4096

// osPageSize returns 4 KiB on platforms without golang.org/x/sys/unix.
func osPageSize() int {
	return defaultPageSize
}
