// Parsort sorts a file of unsigned 64-bit integers on a fixed number of
// worker goroutines and prints them in ascending order, one per line.
//
// Usage:
//
//	parsort [flags] <cores> <input-file>
//
// Flags:
//
//	-verify    Check that the output is sorted and holds the input values
//	-digest    Print the xxh3 digest of the sorted output to stderr
//	-page      Page size in bytes (default: OS page size)
//	-v         Debug logging to stderr
//
// The sort duration is reported on stderr so stdout carries only numbers.
//
// Exit codes:
//
//	0  success
//	1  wrong number of arguments
//	2  core count is not a positive integer
//	3  input file cannot be read
//	4  verification failed
//	5  output could not be written
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/tamirms/parsort"
	perrors "github.com/tamirms/parsort/errors"
)

const (
	exitSuccess = iota
	exitInvalidArgs
	exitInvalidCores
	exitInvalidInput
	exitVerifyFailed
	exitOutputFailed
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("parsort", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verifyFlag := fs.Bool("verify", false, "check the output is sorted and holds the input values")
	digestFlag := fs.Bool("digest", false, "print the xxh3 digest of the output to stderr")
	pageFlag := fs.Int("page", 0, "page size in bytes (0 = OS page size)")
	verboseFlag := fs.Bool("v", false, "debug logging to stderr")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: parsort [flags] <cores> <input-file>\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(endFlagsAtNumber(args)); err != nil {
		return exitInvalidArgs
	}
	if fs.NArg() != 2 {
		fmt.Fprintf(stderr, "ERROR: %v\n", perrors.ErrInvalidArguments)
		fs.Usage()
		return exitInvalidArgs
	}

	cores, err := strconv.Atoi(fs.Arg(0))
	if err != nil || cores <= 0 {
		fmt.Fprintf(stderr, "ERROR: %v (got %q)\n", perrors.ErrInvalidCoreCount, fs.Arg(0))
		return exitInvalidCores
	}

	opts := []parsort.Option{parsort.WithVerify(*verifyFlag)}
	if *pageFlag > 0 {
		opts = append(opts, parsort.WithPageSize(*pageFlag))
	}
	if *verboseFlag {
		logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, parsort.WithLogger(logger))
	}

	s, err := parsort.New(cores, opts...)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return exitCode(err)
	}

	if err := s.LoadFile(fs.Arg(1)); err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return exitInvalidInput
	}

	sortErr := s.Sort()
	fmt.Fprintf(stderr, "sort: %d ms\n", s.Elapsed().Milliseconds())
	if sortErr != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", sortErr)
		return exitCode(sortErr)
	}

	if _, err := s.WriteTo(stdout); err != nil {
		fmt.Fprintf(stderr, "ERROR: write output: %v\n", err)
		return exitOutputFailed
	}
	if *digestFlag {
		fmt.Fprintf(stderr, "digest: %016x\n", s.Digest())
	}
	return exitSuccess
}

// endFlagsAtNumber inserts "--" before the first argument that is a
// negative integer, so "parsort -4 file" reaches the core count check
// instead of failing as an unknown flag.
func endFlagsAtNumber(args []string) []string {
	for i, arg := range args {
		if arg == "--" {
			return args
		}
		if len(arg) > 1 && arg[0] == '-' {
			if _, err := strconv.Atoi(arg); err == nil {
				out := make([]string, 0, len(args)+1)
				out = append(out, args[:i]...)
				out = append(out, "--")
				return append(out, args[i:]...)
			}
		}
	}
	return args
}

// exitCode maps a library error to the process exit code.
func exitCode(err error) int {
	switch {
	case errors.Is(err, perrors.ErrInvalidArguments),
		errors.Is(err, perrors.ErrInvalidPageSize):
		return exitInvalidArgs
	case errors.Is(err, perrors.ErrInvalidCoreCount):
		return exitInvalidCores
	case errors.Is(err, perrors.ErrInputUnreadable):
		return exitInvalidInput
	case errors.Is(err, perrors.ErrNotSorted),
		errors.Is(err, perrors.ErrConservation):
		return exitVerifyFailed
	default:
		return exitOutputFailed
	}
}
