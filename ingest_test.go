package parsort

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"testing"

	perrors "github.com/tamirms/parsort/errors"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		in     string
		want   uint64
		wantOK bool
	}{
		{"0", 0, true},
		{"42", 42, true},
		{"+7", 7, true},
		{"007", 7, true},
		{"18446744073709551615", math.MaxUint64, true},
		{"18446744073709551616", 0, false},
		{"99999999999999999999", 0, false},
		{"", 0, false},
		{"+", 0, false},
		{"-1", 0, false},
		{"12a", 0, false},
		{"1.5", 0, false},
		{strings.Repeat("0", 65), 0, false},
	}
	for _, tt := range tests {
		got, ok := parseDecimal([]byte(tt.in))
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("parseDecimal(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func readPages(t *testing.T, input string, capacity int) []Page {
	t.Helper()
	var out []Page
	if err := newPageReader(strings.NewReader(input), capacity).readAll(func(p Page) {
		out = append(out, p)
	}); err != nil {
		t.Fatalf("readAll: %v", err)
	}
	return out
}

func TestPageReaderChunks(t *testing.T) {
	got := readPages(t, "5 3 1\n4\t2  9\r\n8 7 6 0\n", 4)
	want := []Page{{5, 3, 1, 4}, {2, 9, 8, 7}, {6, 0}}
	if !slices.EqualFunc(got, want, slices.Equal[Page]) {
		t.Fatalf("pages = %v, want %v", got, want)
	}
	for i, p := range got[:2] {
		if cap(p) != 4 {
			t.Errorf("page %d cap = %d, want 4", i, cap(p))
		}
	}
}

func TestPageReaderExactMultiple(t *testing.T) {
	got := readPages(t, "1 2 3 4", 2)
	if len(got) != 2 {
		t.Fatalf("got %d pages, want 2 (no trailing empty page)", len(got))
	}
}

// TestPageReaderStopsAtMalformed checks that the first bad token ends the
// read and keeps the values before it.
func TestPageReaderStopsAtMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []uint64
	}{
		{"letters", "1 2 x 3", []uint64{1, 2}},
		{"negative", "4 -5 6", []uint64{4}},
		{"overflow", "1 18446744073709551616 2", []uint64{1}},
		{"leading garbage", "abc 1 2", nil},
		{"oversized token", "1 " + strings.Repeat("9", 70*1024) + " 2", []uint64{1}},
		{"empty", "", nil},
		{"whitespace only", " \n\t ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []uint64
			for _, p := range readPages(t, tt.input, 3) {
				got = append(got, p...)
			}
			if !slices.Equal(got, tt.want) {
				t.Fatalf("values = %v, want %v", got, tt.want)
			}
		})
	}
}

type failingReader struct{}

var errDisk = errors.New("disk on fire")

func (failingReader) Read([]byte) (int, error) { return 0, errDisk }

func TestLoadReadError(t *testing.T) {
	s := mustNew(t, 1)
	if err := s.Load(failingReader{}); !errors.Is(err, errDisk) {
		t.Fatalf("Load() error = %v, want %v", err, errDisk)
	}
}

func writeInput(t *testing.T, values []uint64) string {
	t.Helper()
	var sb strings.Builder
	for i, v := range values {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatUint(v, 10))
	}
	sb.WriteByte('\n')
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte(sb.String()), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	rng := newTestRNG(t)
	values := generateValues(rng, 5000, 0)
	path := writeInput(t, values)

	s := mustNew(t, 4, WithPageSize(4096), WithVerify(true))
	if err := s.LoadFile(path); err != nil {
		t.Fatal(err)
	}
	if s.Len() != len(values) {
		t.Fatalf("Len() = %d, want %d", s.Len(), len(values))
	}
	if want := (len(values) + 511) / 512; s.Pages() != want {
		t.Fatalf("Pages() = %d, want %d", s.Pages(), want)
	}
	if err := s.Sort(); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(s.Result(), sortedCopy(values)) {
		t.Fatal("result mismatch")
	}
}

func TestLoadFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	s := mustNew(t, 2)
	if err := s.LoadFile(path); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 0 || s.Queue().Len() != 0 {
		t.Fatalf("empty file loaded %d values, %d jobs", s.Len(), s.Queue().Len())
	}
}

func TestLoadFileUnreadable(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(dir, "nope.txt")},
		{"directory", dir},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustNew(t, 1)
			if err := s.LoadFile(tt.path); !errors.Is(err, perrors.ErrInputUnreadable) {
				t.Fatalf("LoadFile() error = %v, want ErrInputUnreadable", err)
			}
		})
	}
}
