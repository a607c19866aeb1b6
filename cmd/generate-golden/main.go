// Command generate-golden writes the Fibonacci golden file used by the
// calculator tests. Values come from a plain big.Int loop that shares no
// code with the calculators under test.
//
//	go run ./cmd/generate-golden -o internal/fibonacci/testdata/fibonacci_golden.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
)

// goldenIndices are the indices recorded in the golden file. They cover the
// base cases, both sides of the uint64 boundary and the parallel threshold.
var goldenIndices = []uint64{0, 1, 2, 10, 50, 92, 93, 94, 100, 200, 500, 1000, 2000, 4096, 10000}

type goldenEntry struct {
	N      uint64 `json:"n"`
	Result string `json:"result"`
}

// fibBig is the reference oracle.
func fibBig(n uint64) *big.Int {
	a, b := big.NewInt(0), big.NewInt(1)
	for i := uint64(0); i < n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return a
}

func buildEntries(indices []uint64) []goldenEntry {
	entries := make([]goldenEntry, 0, len(indices))
	for _, n := range indices {
		entries = append(entries, goldenEntry{N: n, Result: fibBig(n).String()})
	}
	return entries
}

func main() {
	out := flag.String("o", "internal/fibonacci/testdata/fibonacci_golden.json", "output file")
	flag.Parse()

	data, err := json.MarshalIndent(buildEntries(goldenIndices), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode: %v\n", err)
		os.Exit(1)
	}
	data = append(data, '\n')
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d entries to %s\n", len(goldenIndices), *out)
}
