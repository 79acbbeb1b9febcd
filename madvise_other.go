//go:build !linux

package parsort

// adviseSequential is a no-op on non-Linux platforms.
func adviseSequential(data []byte) {
	// No-op
}
