// Copyright © 2026 Alan Collins
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package profile implements reading and writing
// of allele profile tables.
//
// An allele profile is an ordered vector
// of genetic marker calls
// (one per locus)
// for a named sample.
// An empty value indicates a missing call.
package profile

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"
)

// ErrDupSample is returned when two samples
// share the same name after sanitization.
var ErrDupSample = errors.New("duplicated sample name")

// sanitizer removes the characters
// that have a structural meaning
// in parenthetical (Newick) tree notation.
var sanitizer = strings.NewReplacer(
	"(", "_",
	")", "_",
	",", "_",
	`"`, "_",
	" ", "_",
	":", "_",
	";", "_",
)

// Sanitize returns a sample name
// safe to use as a tree terminal,
// replacing any Newick-reserved character
// with an underscore.
func Sanitize(name string) string {
	return sanitizer.Replace(strings.TrimSpace(name))
}

// Profiles is an ordered collection
// of allele profiles,
// one per sample.
//
// All profiles in a collection
// have the same number of loci,
// and all sample names are unique
// after sanitization.
type Profiles struct {
	loci    []string
	names   []string
	alleles map[string][]string
}

// New creates an empty profile collection
// for the given loci.
func New(loci []string) *Profiles {
	return &Profiles{
		loci:    slices.Clone(loci),
		alleles: make(map[string][]string),
	}
}

// Add adds a sample with its allele vector
// to the collection.
// The name is sanitized before any check.
// It is an error to add a sample
// whose sanitized name is already in use,
// or an allele vector
// with a size different from the loci
// of the collection.
func (p *Profiles) Add(name string, alleles []string) error {
	name = Sanitize(name)
	if name == "" {
		return errors.New("empty sample name")
	}
	if _, dup := p.alleles[name]; dup {
		return fmt.Errorf("sample %q: %w", name, ErrDupSample)
	}
	if len(alleles) != len(p.loci) {
		return fmt.Errorf("sample %q: got %d alleles, want %d", name, len(alleles), len(p.loci))
	}

	p.names = append(p.names, name)
	p.alleles[name] = slices.Clone(alleles)
	return nil
}

// Alleles returns the allele vector of a sample.
// It returns nil if the sample is not in the collection.
func (p *Profiles) Alleles(name string) []string {
	return slices.Clone(p.alleles[Sanitize(name)])
}

// Len returns the number of samples in the collection.
func (p *Profiles) Len() int {
	return len(p.names)
}

// Loci returns the locus names,
// in column order.
func (p *Profiles) Loci() []string {
	return slices.Clone(p.loci)
}

// Names returns the sample names,
// in the order in which they were added.
func (p *Profiles) Names() []string {
	return slices.Clone(p.names)
}

// ReadTSV reads a profile collection from a TSV file.
//
// The TSV must contain a field called "sample"
// with the sample names;
// any other field is interpreted as a locus,
// in file order.
// Empty cells are missing allele calls.
//
// Here is an example file:
//
//	sample	locus1	locus2	locus3
//	sampleA	1	2	3
//	sampleB	1	2	4
//	sampleC	5		3
func ReadTSV(r io.Reader) (*Profiles, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	sample := -1
	var loci []string
	var cols []int
	for i, h := range head {
		if strings.ToLower(strings.TrimSpace(h)) == "sample" && sample < 0 {
			sample = i
			continue
		}
		loci = append(loci, strings.TrimSpace(h))
		cols = append(cols, i)
	}
	if sample < 0 {
		return nil, fmt.Errorf("expecting field %q", "sample")
	}
	if len(loci) == 0 {
		return nil, errors.New("expecting at least one locus field")
	}

	p := New(loci)
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		alleles := make([]string, 0, len(cols))
		for _, c := range cols {
			alleles = append(alleles, strings.TrimSpace(row[c]))
		}
		if err := p.Add(row[sample], alleles); err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
	}

	return p, nil
}

// TSV writes a profile collection to a TSV file.
func (p *Profiles) TSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# allele profiles\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))

	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	header := append([]string{"sample"}, p.loci...)
	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}
	for _, n := range p.names {
		row := append([]string{n}, p.alleles[n]...)
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
