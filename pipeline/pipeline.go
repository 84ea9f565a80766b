// Copyright © 2026 Alan Collins
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package pipeline implements the distance clustering pipeline:
// allele profiles to a pairwise distance matrix,
// the matrix to an UPGMA tree in Newick notation,
// and the matrix reordered
// to the terminal order of the tree.
//
// Each stage is computed once,
// in dependency order,
// and its result is cached and immutable.
package pipeline

import (
	"fmt"
	"strings"

	"github.com/Alan-Collins/pn-distance-clustering-cs/dist"
	"github.com/Alan-Collins/pn-distance-clustering-cs/newick"
	"github.com/Alan-Collins/pn-distance-clustering-cs/profile"
	"github.com/Alan-Collins/pn-distance-clustering-cs/upgma"
)

// Algorithm is a clustering algorithm selector.
type Algorithm int

// Valid algorithms.
const (
	// UPGMA is the unweighted pair group method
	// with arithmetic mean.
	UPGMA Algorithm = iota
)

// ParseAlgorithm returns the algorithm
// for a configuration string.
// An empty string defaults to UPGMA.
func ParseAlgorithm(s string) (Algorithm, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "upgma":
		return UPGMA, nil
	}
	return 0, fmt.Errorf("unknown clustering algorithm %q", s)
}

// String returns the configuration name of an algorithm.
func (a Algorithm) String() string {
	if a == UPGMA {
		return "upgma"
	}
	return "unknown"
}

// Config is a validated pipeline configuration.
type Config struct {
	// Metric is the pairwise distance metric.
	Metric dist.Metric

	// Algorithm is the clustering algorithm.
	Algorithm Algorithm

	// MaxHeight caps the height of the tree nodes
	// at MaxHeight/2.
	// Zero means no cap.
	//
	// With the normalized metric
	// the cap must be at most one;
	// with the absolute metric
	// it must be zero or at least one,
	// as values between zero and one
	// are incompatible with integer count distances.
	MaxHeight float64

	// CPU is the number of processes
	// used for the distance matrix.
	// Zero uses all available CPU.
	CPU int
}

// Validate returns an error
// for an invalid configuration.
func (c Config) Validate() error {
	if c.Algorithm != UPGMA {
		return fmt.Errorf("unknown clustering algorithm %q", c.Algorithm)
	}
	if c.MaxHeight < 0 {
		return fmt.Errorf("max height %g: must not be negative", c.MaxHeight)
	}
	switch c.Metric {
	case dist.Absolute:
		if c.MaxHeight > 0 && c.MaxHeight < 1 {
			return fmt.Errorf("max height %g: must be 0 or at least 1 with metric %q", c.MaxHeight, c.Metric)
		}
	case dist.Normalized:
		if c.MaxHeight > 1 {
			return fmt.Errorf("max height %g: must be at most 1 with metric %q", c.MaxHeight, c.Metric)
		}
	default:
		return fmt.Errorf("unknown distance metric %q", c.Metric)
	}
	return nil
}

// A Pipeline holds a profile collection
// with the results of each clustering stage.
type Pipeline struct {
	p   *profile.Profiles
	cfg Config

	d     *dist.Matrix // distances, in input order
	tree  string       // Newick text
	terms []string     // terminal order of the tree
	td    *dist.Matrix // distances, in terminal order
}

// New creates a pipeline
// for a profile collection
// and a configuration.
func New(p *profile.Profiles, cfg Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if p.Len() == 0 {
		return nil, fmt.Errorf("empty profile collection")
	}
	return &Pipeline{p: p, cfg: cfg}, nil
}

// Distances returns the pairwise distance matrix,
// with samples in input order,
// computing it on the first call.
func (pp *Pipeline) Distances() *dist.Matrix {
	if pp.d == nil {
		pp.d = dist.New(pp.p, pp.cfg.Metric, pp.cfg.CPU)
	}
	return pp.d
}

// Tree returns the Newick text of the clustering tree,
// computing it on the first call.
// Zero length internal branches,
// as produced by the height cap,
// are collapsed into polytomies.
func (pp *Pipeline) Tree() (string, error) {
	if pp.tree != "" {
		return pp.tree, nil
	}

	d := pp.Distances()
	root, err := upgma.Cluster(d.Rows(), d.Names(), pp.cfg.MaxHeight)
	if err != nil {
		return "", err
	}
	root.Collapse()
	pp.tree = newick.String(root)
	return pp.tree, nil
}

// TermOrder returns the sample names
// in the terminal order of the tree.
func (pp *Pipeline) TermOrder() ([]string, error) {
	if pp.terms != nil {
		return pp.terms, nil
	}

	t, err := pp.Tree()
	if err != nil {
		return nil, err
	}
	terms, err := newick.TermOrder(t)
	if err != nil {
		return nil, fmt.Errorf("on tree %q: %v", t, err)
	}
	pp.terms = terms
	return pp.terms, nil
}

// TreeDistances returns the pairwise distance matrix
// with the samples in the terminal order of the tree,
// computing it on the first call.
func (pp *Pipeline) TreeDistances() (*dist.Matrix, error) {
	if pp.td != nil {
		return pp.td, nil
	}

	terms, err := pp.TermOrder()
	if err != nil {
		return nil, err
	}
	td, err := pp.Distances().Reorder(terms)
	if err != nil {
		return nil, err
	}
	pp.td = td
	return pp.td, nil
}
