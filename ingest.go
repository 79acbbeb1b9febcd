package parsort

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/bits"
	"os"

	"github.com/edsrzf/mmap-go"

	perrors "github.com/tamirms/parsort/errors"
)

// maxTokenSize bounds a single whitespace-separated token. Anything longer
// cannot be a uint64 and ends the read like any other malformed token.
const maxTokenSize = 64

// pageReader splits a stream of decimal tokens into pages of fixed capacity.
type pageReader struct {
	scanner  *bufio.Scanner
	capacity int
}

func newPageReader(r io.Reader, capacity int) *pageReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024)
	scanner.Split(bufio.ScanWords)
	return &pageReader{scanner: scanner, capacity: capacity}
}

// readAll calls emit for every full page and for the final partial page.
// Reading stops at end of input or at the first token that is not an
// unsigned 64-bit decimal; values read before that point are kept.
// Only I/O failures are returned as errors.
func (pr *pageReader) readAll(emit func(Page)) error {
	page := make(Page, 0, pr.capacity)
	for pr.scanner.Scan() {
		v, ok := parseDecimal(pr.scanner.Bytes())
		if !ok {
			break
		}
		page = append(page, v)
		if len(page) == pr.capacity {
			emit(page)
			page = make(Page, 0, pr.capacity)
		}
	}
	if len(page) > 0 {
		emit(page)
	}

	err := pr.scanner.Err()
	if errors.Is(err, bufio.ErrTooLong) {
		// Oversized token: malformed input, not an I/O failure
		return nil
	}
	return err
}

// parseDecimal parses an unsigned base-10 integer without allocating.
// An optional leading '+' is accepted. Returns false on empty input, any
// non-digit byte, or overflow.
func parseDecimal(b []byte) (uint64, bool) {
	if len(b) > 0 && b[0] == '+' {
		b = b[1:]
	}
	if len(b) == 0 || len(b) > maxTokenSize {
		return 0, false
	}
	var v uint64
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		hi, lo := bits.Mul64(v, 10)
		if hi != 0 {
			return 0, false
		}
		lo, carry := bits.Add64(lo, uint64(c-'0'), 0)
		if carry != 0 {
			return 0, false
		}
		v = lo
	}
	return v, true
}

// LoadFile memory-maps path and loads its values, replacing any previously
// loaded input. Failure to open or map the file returns an error wrapping
// ErrInputUnreadable.
func (s *Sorter) LoadFile(path string) (err error) {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", perrors.ErrInputUnreadable, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close input: %w", cerr))
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%w: stat: %w", perrors.ErrInputUnreadable, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", perrors.ErrInputUnreadable, path)
	}
	if info.Size() == 0 {
		// mmap rejects zero-length mappings
		return s.Load(bytes.NewReader(nil))
	}

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return fmt.Errorf("%w: mmap: %w", perrors.ErrInputUnreadable, err)
	}
	adviseSequential(mm)

	loadErr := s.Load(bytes.NewReader(mm))
	if uerr := mm.Unmap(); uerr != nil {
		return errors.Join(loadErr, fmt.Errorf("munmap: %w", uerr))
	}
	return loadErr
}
