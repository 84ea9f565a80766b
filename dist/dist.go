// Copyright © 2026 Alan Collins
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package dist implements pairwise genetic distances
// between allele profiles.
package dist

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Alan-Collins/pn-distance-clustering-cs/profile"
	"gonum.org/v1/gonum/mat"
)

// Metric is a pairwise distance definition
// over a pair of allele profiles.
type Metric int

// Valid metrics.
const (
	// Absolute is the count of loci
	// in which both samples have an allele call
	// and the calls differ.
	Absolute Metric = iota

	// Normalized is the fraction of differing loci
	// over the loci in which both samples
	// have an allele call.
	// It is zero if no locus can be compared.
	Normalized
)

// ParseMetric returns the metric
// for a configuration string.
// An empty string defaults to the absolute metric.
func ParseMetric(s string) (Metric, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "absolute":
		return Absolute, nil
	case "normalized":
		return Normalized, nil
	}
	return 0, fmt.Errorf("unknown distance metric %q", s)
}

// String returns the configuration name of a metric.
func (m Metric) String() string {
	switch m {
	case Absolute:
		return "absolute"
	case Normalized:
		return "normalized"
	}
	return "unknown"
}

// Distance returns the distance between two allele vectors.
// Loci in which any of the two samples
// is missing an allele call
// are skipped.
func (m Metric) Distance(a, b []string) float64 {
	var diff, comp int
	for i, va := range a {
		vb := b[i]
		if va == "" || vb == "" {
			continue
		}
		comp++
		if va != vb {
			diff++
		}
	}

	if m == Normalized {
		if comp == 0 {
			return 0
		}
		return float64(diff) / float64(comp)
	}
	return float64(diff)
}

// A Matrix is a symmetric pairwise distance matrix
// with a zero diagonal,
// with rows and columns identified by sample names.
type Matrix struct {
	names []string
	pos   map[string]int
	d     *mat.SymDense
}

// New computes the distance matrix
// of a profile collection
// under the given metric.
// Rows are computed concurrently;
// use cpu to define the number of processes,
// the default (zero) uses all available CPU.
func New(p *profile.Profiles, metric Metric, cpu int) *Matrix {
	if cpu == 0 {
		cpu = runtime.NumCPU()
	}

	names := p.Names()
	n := len(names)
	pos := make(map[string]int, n)
	alleles := make([][]string, n)
	for i, nm := range names {
		pos[nm] = i
		alleles[i] = p.Alleles(nm)
	}

	m := &Matrix{
		names: names,
		pos:   pos,
		d:     mat.NewSymDense(max(n, 1), nil),
	}

	// Each goroutine works on whole rows
	// of the upper triangle,
	// so all writes are on disjoint cells.
	rows := make(chan int, cpu*2)
	var wg sync.WaitGroup
	for range cpu {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rows {
				for j := i + 1; j < n; j++ {
					m.d.SetSym(i, j, metric.Distance(alleles[i], alleles[j]))
				}
			}
		}()
	}
	for i := range n {
		rows <- i
	}
	close(rows)
	wg.Wait()

	return m
}

// At returns the distance between samples i and j.
func (m *Matrix) At(i, j int) float64 {
	return m.d.At(i, j)
}

// Distance returns the distance
// between two named samples.
// It returns -1 if any of the samples
// is not in the matrix.
func (m *Matrix) Distance(a, b string) float64 {
	i, ok := m.pos[a]
	if !ok {
		return -1
	}
	j, ok := m.pos[b]
	if !ok {
		return -1
	}
	return m.d.At(i, j)
}

// Len returns the number of samples in the matrix.
func (m *Matrix) Len() int {
	return len(m.names)
}

// Names returns the sample names,
// in row order.
func (m *Matrix) Names() []string {
	return slices.Clone(m.names)
}

// Rows returns a copy of the matrix
// as a slice of rows.
// The copy is free for the caller to modify.
func (m *Matrix) Rows() [][]float64 {
	n := len(m.names)
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			rows[i][j] = m.d.At(i, j)
		}
	}
	return rows
}

// Reorder returns a new matrix
// with the rows and columns of m
// permuted to the given name order.
// The names must be a permutation
// of the names of m.
func (m *Matrix) Reorder(names []string) (*Matrix, error) {
	if len(names) != len(m.names) {
		return nil, fmt.Errorf("got %d names, want %d", len(names), len(m.names))
	}
	perm := make([]int, len(names))
	pos := make(map[string]int, len(names))
	for i, nm := range names {
		j, ok := m.pos[nm]
		if !ok {
			return nil, fmt.Errorf("sample %q not in matrix", nm)
		}
		if _, dup := pos[nm]; dup {
			return nil, fmt.Errorf("sample %q repeated in name order", nm)
		}
		perm[i] = j
		pos[nm] = i
	}

	n := len(names)
	nm := &Matrix{
		names: slices.Clone(names),
		pos:   pos,
		d:     mat.NewSymDense(max(n, 1), nil),
	}
	for i := range n {
		for j := i + 1; j < n; j++ {
			nm.d.SetSym(i, j, m.d.At(perm[i], perm[j]))
		}
	}
	return nm, nil
}

// TSV writes the matrix to a TSV file,
// with a header row of sample names
// and one row per sample.
func (m *Matrix) TSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# pairwise distance matrix\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))

	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	header := append([]string{"sample"}, m.names...)
	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}
	for i, n := range m.names {
		row := make([]string, 0, len(m.names)+1)
		row = append(row, n)
		for j := range m.names {
			row = append(row, strconv.FormatFloat(m.d.At(i, j), 'f', 6, 64))
		}
		if err := tsv.Write(row); err != nil {
			return fmt.Errorf("while writing sample %q: %v", n, err)
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}
