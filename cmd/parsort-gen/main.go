// Parsort-gen writes reproducible pseudo-random input files for parsort.
//
// Usage:
//
//	go run ./cmd/parsort-gen -n 1000000 -o numbers.txt
//
// Flags:
//
//	-n       Number of values to generate (default: 1,000,000)
//	-seed    Seed for value derivation (default: 0x1234)
//	-max     Exclusive upper bound on values, 0 for the full uint64 range (default: 0)
//	-sorted  Emit values in ascending order (default: false)
//	-o       Output path, "-" for stdout (default: "-")
//
// Value i is murmur3.Sum64WithSeed(le64(i), seed), so the same flags always
// produce the same file.
package main

import (
	"bufio"
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/spaolacci/murmur3"
)

func main() {
	nFlag := flag.Int("n", 1_000_000, "number of values")
	seedFlag := flag.Uint("seed", 0x1234, "seed for value derivation")
	maxFlag := flag.Uint64("max", 0, "exclusive upper bound on values (0 = full range)")
	sortedFlag := flag.Bool("sorted", false, "emit values in ascending order")
	outFlag := flag.String("o", "-", `output path ("-" for stdout)`)
	flag.Parse()

	if *nFlag < 0 {
		fmt.Fprintf(os.Stderr, "-n must be >= 0, got %d\n", *nFlag)
		os.Exit(1)
	}

	values := generate(*nFlag, uint32(*seedFlag), *maxFlag)
	if *sortedFlag {
		slices.Sort(values)
	}

	var out io.Writer = os.Stdout
	if *outFlag != "-" {
		f, err := os.Create(*outFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "create output: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if err := writeValues(out, values); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		os.Exit(1)
	}
}

// generate derives n values from seed. With limit > 0 every value is
// reduced modulo limit.
func generate(n int, seed uint32, limit uint64) []uint64 {
	values := make([]uint64, n)
	var buf [8]byte
	for i := range values {
		binary.LittleEndian.PutUint64(buf[:], uint64(i))
		v := murmur3.Sum64WithSeed(buf[:], seed)
		if limit > 0 {
			v %= limit
		}
		values[i] = v
	}
	return values
}

// writeValues writes values separated by newlines.
func writeValues(w io.Writer, values []uint64) error {
	bw := bufio.NewWriterSize(w, 64*1024)
	var buf [24]byte
	for _, v := range values {
		line := strconv.AppendUint(buf[:0], v, 10)
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}
