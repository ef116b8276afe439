// bench - tokenizer throughput runner
//
// Tokenizes synthetic corpora with and without the arena and reports:
//   - Tokens and bytes per case
//   - Throughput in MB/s for each mode
//   - Whether both modes produced the same token digest
//
// Output: CSV and markdown summary
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/Neumenon/lovetoken/lt"
)

type CaseResult struct {
	Name        string
	Bytes       int
	Tokens      int
	Assertions  bool
	ArenaMBps   float64
	NoArenaMBps float64
	Speedup     float64
	Digest      lt.Digest
	Match       bool
}

type corpus struct {
	name string
	gen  func(r *rand.Rand, size int) []byte
}

var corpora = []corpus{
	{"identifiers", genIdentifiers},
	{"numbers", genNumbers},
	{"operators", genOperators},
	{"strings", genStrings},
	{"escapes", genEscapes},
	{"source-like", genSource},
	{"binary", genBinary},
}

func main() {
	size := flag.Int("size", 1<<20, "bytes per corpus")
	rounds := flag.Int("rounds", 5, "timed rounds per mode")
	seed := flag.Int64("seed", 1, "corpus seed")
	csvPath := flag.String("csv", "bench_results.csv", "CSV output path, empty to skip")
	mdPath := flag.String("md", "BENCH.md", "markdown output path, empty to skip")
	flag.Parse()

	fmt.Fprintf(os.Stderr, "lt Benchmark Runner\n")
	fmt.Fprintf(os.Stderr, "===================\n")
	fmt.Fprintf(os.Stderr, "Corpora: %d x %d bytes, %d rounds\n\n", len(corpora), *size, *rounds)

	var results []CaseResult
	for _, c := range corpora {
		data := c.gen(rand.New(rand.NewSource(*seed)), *size)

		res, err := runCase(c.name, data, *rounds)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skip %s: %v\n", c.name, err)
			continue
		}
		fmt.Fprintf(os.Stderr, "%-12s %8d tokens  arena %7.1f MB/s  no-arena %7.1f MB/s\n",
			res.Name, res.Tokens, res.ArenaMBps, res.NoArenaMBps)
		results = append(results, res)
	}

	if *csvPath != "" {
		if f, err := os.Create(*csvPath); err == nil {
			writeCSV(f, results)
			f.Close()
			fmt.Fprintf(os.Stderr, "CSV written to: %s\n", *csvPath)
		}
	}
	if *mdPath != "" {
		if f, err := os.Create(*mdPath); err == nil {
			writeMarkdown(f, results, *size, *rounds)
			f.Close()
			fmt.Fprintf(os.Stderr, "Markdown written to: %s\n", *mdPath)
		}
	}

	var totalBytes, totalTokens int
	mismatches := 0
	for _, r := range results {
		totalBytes += r.Bytes
		totalTokens += r.Tokens
		if !r.Match {
			mismatches++
		}
	}

	fmt.Printf("\n=== SUMMARY ===\n")
	fmt.Printf("Cases:       %d\n", len(results))
	fmt.Printf("Total:       %d bytes, %d tokens\n", totalBytes, totalTokens)
	fmt.Printf("Mismatches:  %d\n", mismatches)
	if mismatches > 0 {
		os.Exit(1)
	}
}

// runCase times both arena modes over data and compares their digests.
func runCase(name string, data []byte, rounds int) (CaseResult, error) {
	res := CaseResult{Name: name, Bytes: len(data)}

	arenaDigest, tokens, failed, arenaTime, err := timeMode(data, rounds)
	if err != nil {
		return res, err
	}
	plainDigest, _, _, plainTime, err := timeMode(data, rounds, lt.WithoutArena())
	if err != nil {
		return res, err
	}

	res.Tokens = tokens
	res.Assertions = failed
	res.ArenaMBps = mbps(len(data), arenaTime)
	res.NoArenaMBps = mbps(len(data), plainTime)
	if res.ArenaMBps > 0 {
		res.Speedup = res.NoArenaMBps / res.ArenaMBps
	}
	res.Digest = arenaDigest
	res.Match = arenaDigest == plainDigest
	return res, nil
}

// timeMode tokenizes data rounds times and returns the fastest round.
func timeMode(data []byte, rounds int, opts ...lt.Option) (lt.Digest, int, bool, time.Duration, error) {
	var (
		best   time.Duration
		digest lt.Digest
		tokens int
		failed bool
	)
	for i := 0; i < rounds; i++ {
		s := lt.New(opts...)
		if err := s.OpenReader(bytes.NewReader(data)); err != nil {
			return digest, 0, false, 0, err
		}

		sum := lt.NewDigester()
		start := time.Now()
		for {
			tok, err := s.Next()
			if lt.IsFatal(err) {
				return digest, 0, false, 0, err
			}
			sum.Add(tok)
			if tok.Kind == lt.EndOfStream {
				break
			}
		}
		s.Teardown()
		elapsed := time.Since(start)

		if i == 0 || elapsed < best {
			best = elapsed
		}
		digest, tokens = sum.Sum(), sum.Count()
		failed, _ = s.Check()
	}
	return digest, tokens, failed, best, nil
}

func mbps(n int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / d.Seconds() / (1 << 20)
}

// ============================================================
// Corpus generators
// ============================================================

const identChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_0123456789"

var operatorList = []string{
	"&&", "||", "^^", "++", "--", "==", ">=", ">>", "<=", "<<", "<>", "!=", "~=",
	"//", "/*", "/+", "*/", "**", "->", "+/", "+", "-", "*", "/", "=", "<", ">",
	"!", "&", "|", "^", ":", ",", ".", ";", "%", "?", "$", "#",
	"(", ")", "[", "]", "{", "}",
}

func fill(size int, next func(w *bytes.Buffer)) []byte {
	var buf bytes.Buffer
	buf.Grow(size + 64)
	for buf.Len() < size {
		next(&buf)
	}
	return buf.Bytes()
}

func word(r *rand.Rand, w io.ByteWriter, n int) {
	w.WriteByte(identChars[r.Intn(53)])
	for i := 1; i < n; i++ {
		w.WriteByte(identChars[r.Intn(len(identChars))])
	}
}

func genIdentifiers(r *rand.Rand, size int) []byte {
	return fill(size, func(w *bytes.Buffer) {
		word(r, w, 1+r.Intn(16))
		w.WriteByte(' ')
	})
}

func genNumbers(r *rand.Rand, size int) []byte {
	return fill(size, func(w *bytes.Buffer) {
		fmt.Fprintf(w, "%d ", r.Int63())
		if r.Intn(4) == 0 {
			fmt.Fprintf(w, "0x%X ", r.Uint32())
		}
	})
}

func genOperators(r *rand.Rand, size int) []byte {
	return fill(size, func(w *bytes.Buffer) {
		w.WriteString(operatorList[r.Intn(len(operatorList))])
		w.WriteByte(' ')
	})
}

func genStrings(r *rand.Rand, size int) []byte {
	return fill(size, func(w *bytes.Buffer) {
		w.WriteByte('"')
		n := r.Intn(2 * lt.BlockSize)
		for i := 0; i < n; i++ {
			w.WriteByte(byte(' ' + r.Intn(95)))
			if w.Bytes()[w.Len()-1] == '"' || w.Bytes()[w.Len()-1] == '\\' {
				w.Bytes()[w.Len()-1] = 'q'
			}
		}
		w.WriteString("\" ")
	})
}

func genEscapes(r *rand.Rand, size int) []byte {
	escapes := []string{`\n`, `\t`, `\\`, `\"`, `\x41`, `\101`, `\0`, `\a`}
	return fill(size, func(w *bytes.Buffer) {
		w.WriteByte('"')
		for i := r.Intn(32); i > 0; i-- {
			if r.Intn(2) == 0 {
				w.WriteString(escapes[r.Intn(len(escapes))])
			} else {
				word(r, w, 1+r.Intn(4))
			}
		}
		w.WriteString("\" ")
	})
}

func genSource(r *rand.Rand, size int) []byte {
	return fill(size, func(w *bytes.Buffer) {
		switch r.Intn(4) {
		case 0:
			w.WriteString("if (")
			word(r, w, 6)
			fmt.Fprintf(w, " >= %d) {\n", r.Intn(1000))
		case 1:
			w.WriteString("  ")
			word(r, w, 8)
			fmt.Fprintf(w, " = %q;\n", strings.Repeat("x", r.Intn(40)))
		case 2:
			w.WriteString("  // ")
			word(r, w, 20)
			w.WriteByte('\n')
		default:
			w.WriteString("}\n")
		}
	})
}

func genBinary(r *rand.Rand, size int) []byte {
	data := make([]byte, size)
	r.Read(data)
	return data
}

// ============================================================
// Reports
// ============================================================

func writeCSV(w io.Writer, results []CaseResult) {
	fmt.Fprintln(w, "name,bytes,tokens,assertions,arena_mbps,no_arena_mbps,speedup,digest,match")
	for _, r := range results {
		fmt.Fprintf(w, "%s,%d,%d,%t,%.1f,%.1f,%.2f,%s,%t\n",
			r.Name, r.Bytes, r.Tokens, r.Assertions, r.ArenaMBps, r.NoArenaMBps,
			r.Speedup, r.Digest, r.Match)
	}
}

func writeMarkdown(w io.Writer, results []CaseResult, size, rounds int) {
	fmt.Fprintf(w, "# lt Benchmark Results\n\n")
	fmt.Fprintf(w, "**Date:** %s  \n", time.Now().Format("2006-01-02"))
	fmt.Fprintf(w, "**Corpora:** %d x %d bytes, best of %d rounds  \n\n", len(results), size, rounds)

	fmt.Fprintf(w, "## Fastest Cases (arena)\n\n")
	sorted := make([]CaseResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ArenaMBps > sorted[j].ArenaMBps
	})
	fmt.Fprintf(w, "| Case | MB/s | Tokens |\n")
	fmt.Fprintf(w, "|------|------|--------|\n")
	for i := 0; i < min(3, len(sorted)); i++ {
		r := sorted[i]
		fmt.Fprintf(w, "| %s | %.1f | %d |\n", r.Name, r.ArenaMBps, r.Tokens)
	}

	fmt.Fprintf(w, "\n## Digest Mismatches\n\n")
	var bad []CaseResult
	for _, r := range results {
		if !r.Match {
			bad = append(bad, r)
		}
	}
	if len(bad) == 0 {
		fmt.Fprintf(w, "_None - both modes produced identical tokens._\n\n")
	} else {
		for _, r := range bad {
			fmt.Fprintf(w, "- %s\n", r.Name)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "## Detailed Results\n\n")
	fmt.Fprintf(w, "| Case | Bytes | Tokens | Assert | Arena MB/s | No-arena MB/s | Ratio | Digest |\n")
	fmt.Fprintf(w, "|------|-------|--------|--------|------------|---------------|-------|--------|\n")
	for _, r := range results {
		fmt.Fprintf(w, "| %s | %d | %d | %t | %.1f | %.1f | %.2f | %s |\n",
			truncateName(r.Name, 25), r.Bytes, r.Tokens, r.Assertions,
			r.ArenaMBps, r.NoArenaMBps, r.Speedup, r.Digest.String()[:12])
	}
}

func truncateName(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
