package main

// dataset_gen.go is a tiny helper utility to generate deterministic key
// datasets for standalone benchmarking of flatcache (outside `go test`).
// It emits newline-separated uint64 numbers which can later be passed to
// service load-testers or external benchmarking suites.
//
// Usage:
//   go run ./tools/dataset_gen -n 1000000 --dist=zipf --seed=42 --out keys.txt
//
// Flags:
//   -n, --n      number of keys to generate (default 1e6)
//   --dist       distribution: "uniform" or "zipf" (default uniform)
//   --zipfs      Zipf s parameter (>1)  (default 1.2)
//   --zipfv      Zipf v parameter (>=1) (default 1.0)
//   --seed       RNG seed (default current time)
//   -o, --out    output file (default stdout)
//
// The program is *embarassingly simple* but placed under version control so
// that any contributor can regenerate the exact dataset used in performance
// regressions hunting.
//
// © 2025 flatcache authors. MIT License.

import (
	"bufio"
	"bytes"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/natefinch/atomic"
	"github.com/spf13/pflag"
)

func main() {
	var (
		n       = pflag.IntP("n", "n", 1_000_000, "number of keys to generate")
		dist    = pflag.String("dist", "uniform", "distribution: uniform or zipf")
		zipfS   = pflag.Float64("zipfs", 1.2, "zipf s parameter (>1)")
		zipfV   = pflag.Float64("zipfv", 1.0, "zipf v parameter (>=1)")
		seedVal = pflag.Int64("seed", time.Now().UnixNano(), "PRNG seed")
		outPath = pflag.StringP("out", "o", "", "output file (default stdout)")
	)
	pflag.Parse()

	rnd := rand.New(rand.NewSource(*seedVal))

	var gen func() uint64
	switch *dist {
	case "uniform":
		gen = rnd.Uint64
	case "zipf":
		if *zipfS <= 1.0 || *zipfV < 1.0 {
			fmt.Fprintln(os.Stderr, "zipfs must be >1 and zipfv >=1")
			os.Exit(1)
		}
		z := rand.NewZipf(rnd, *zipfS, *zipfV, ^uint64(0))
		gen = z.Uint64
	default:
		fmt.Fprintln(os.Stderr, "unknown dist:", *dist)
		os.Exit(1)
	}

	if *outPath == "" {
		w := bufio.NewWriterSize(os.Stdout, 1<<20)
		defer w.Flush()
		for i := 0; i < *n; i++ {
			fmt.Fprintln(w, gen())
		}
		return
	}

	// Buffer the whole dataset and write it out in one atomic rename, so a
	// reader racing this generator never observes a half-written file.
	var buf bytes.Buffer
	buf.Grow(*n * 8)
	for i := 0; i < *n; i++ {
		fmt.Fprintln(&buf, gen())
	}
	if err := atomic.WriteFile(*outPath, &buf); err != nil {
		fmt.Fprintln(os.Stderr, "cannot write file:", err)
		os.Exit(1)
	}
}
