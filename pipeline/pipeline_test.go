// Copyright © 2026 Alan Collins
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package pipeline_test

import (
	"reflect"
	"testing"

	"github.com/Alan-Collins/pn-distance-clustering-cs/dist"
	"github.com/Alan-Collins/pn-distance-clustering-cs/pipeline"
	"github.com/Alan-Collins/pn-distance-clustering-cs/profile"
)

func TestParseAlgorithm(t *testing.T) {
	if a, err := pipeline.ParseAlgorithm(""); err != nil || a != pipeline.UPGMA {
		t.Errorf("default: got %v, %v", a, err)
	}
	if a, err := pipeline.ParseAlgorithm(" UPGMA "); err != nil || a != pipeline.UPGMA {
		t.Errorf("upgma: got %v, %v", a, err)
	}
	if _, err := pipeline.ParseAlgorithm("neighbor-joining"); err == nil {
		t.Errorf("unknown algorithm: expecting error")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := map[string]struct {
		cfg pipeline.Config
		err bool
	}{
		"defaults":            {cfg: pipeline.Config{}},
		"absolute cap":        {cfg: pipeline.Config{MaxHeight: 10}},
		"absolute unit cap":   {cfg: pipeline.Config{MaxHeight: 1}},
		"normalized cap":      {cfg: pipeline.Config{Metric: dist.Normalized, MaxHeight: 0.5}},
		"normalized unit cap": {cfg: pipeline.Config{Metric: dist.Normalized, MaxHeight: 1}},
		"absolute fraction":   {cfg: pipeline.Config{MaxHeight: 0.5}, err: true},
		"normalized too big":  {cfg: pipeline.Config{Metric: dist.Normalized, MaxHeight: 1.5}, err: true},
		"negative":            {cfg: pipeline.Config{MaxHeight: -1}, err: true},
		"bad algorithm":       {cfg: pipeline.Config{Algorithm: pipeline.Algorithm(10)}, err: true},
		"bad metric":          {cfg: pipeline.Config{Metric: dist.Metric(10)}, err: true},
	}

	for name, test := range tests {
		err := test.cfg.Validate()
		if test.err {
			if err == nil {
				t.Errorf("%s: expecting error", name)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
		}
	}
}

func newProfiles(t testing.TB, samples []string) *profile.Profiles {
	t.Helper()

	alleles := map[string][]string{
		"sampleA": {"1", "2", "3"},
		"sampleB": {"1", "2", "4"},
		"sampleC": {"5", "2", "3"},
	}

	p := profile.New([]string{"locus1", "locus2", "locus3"})
	for _, s := range samples {
		if err := p.Add(s, alleles[s]); err != nil {
			t.Fatalf("unable to add sample %q: %v", s, err)
		}
	}
	return p
}

func TestPipeline(t *testing.T) {
	p := newProfiles(t, []string{"sampleA", "sampleB", "sampleC"})
	pp, err := pipeline.New(p, pipeline.Config{})
	if err != nil {
		t.Fatalf("unable to create pipeline: %v", err)
	}

	tree, err := pp.Tree()
	if err != nil {
		t.Fatalf("unable to build tree: %v", err)
	}
	want := "((sampleA:0.50000,sampleB:0.50000):0.25000,sampleC:0.75000);"
	if tree != want {
		t.Errorf("tree: got %q, want %q", tree, want)
	}

	terms, err := pp.TermOrder()
	if err != nil {
		t.Fatalf("unable to read terminals: %v", err)
	}
	if wantT := []string{"sampleA", "sampleB", "sampleC"}; !reflect.DeepEqual(terms, wantT) {
		t.Errorf("terminals: got %v, want %v", terms, wantT)
	}

	td, err := pp.TreeDistances()
	if err != nil {
		t.Fatalf("unable to reorder distances: %v", err)
	}
	if got := td.Names(); !reflect.DeepEqual(got, terms) {
		t.Errorf("ordered matrix samples: got %v, want %v", got, terms)
	}
}

func TestPipelineReorder(t *testing.T) {
	// input order differs from the terminal order of the tree
	p := newProfiles(t, []string{"sampleB", "sampleC", "sampleA"})
	pp, err := pipeline.New(p, pipeline.Config{})
	if err != nil {
		t.Fatalf("unable to create pipeline: %v", err)
	}

	tree, err := pp.Tree()
	if err != nil {
		t.Fatalf("unable to build tree: %v", err)
	}
	want := "((sampleB:0.50000,sampleA:0.50000):0.25000,sampleC:0.75000);"
	if tree != want {
		t.Errorf("tree: got %q, want %q", tree, want)
	}

	m := pp.Distances()
	td, err := pp.TreeDistances()
	if err != nil {
		t.Fatalf("unable to reorder distances: %v", err)
	}
	if got, wantT := td.Names(), []string{"sampleB", "sampleA", "sampleC"}; !reflect.DeepEqual(got, wantT) {
		t.Errorf("ordered matrix samples: got %v, want %v", got, wantT)
	}
	for _, a := range m.Names() {
		for _, b := range m.Names() {
			if td.Distance(a, b) != m.Distance(a, b) {
				t.Errorf("distance %s-%s: got %.6f, want %.6f", a, b, td.Distance(a, b), m.Distance(a, b))
			}
		}
	}

	// reordering back to input order restores the matrix
	om, err := td.Reorder(m.Names())
	if err != nil {
		t.Fatalf("unable to reorder distances: %v", err)
	}
	if !reflect.DeepEqual(om.Rows(), m.Rows()) {
		t.Errorf("restored matrix: got %v, want %v", om.Rows(), m.Rows())
	}
}

func TestPipelineSingle(t *testing.T) {
	p := newProfiles(t, []string{"sampleA"})
	pp, err := pipeline.New(p, pipeline.Config{})
	if err != nil {
		t.Fatalf("unable to create pipeline: %v", err)
	}

	tree, err := pp.Tree()
	if err != nil {
		t.Fatalf("unable to build tree: %v", err)
	}
	if want := "sampleA;"; tree != want {
		t.Errorf("tree: got %q, want %q", tree, want)
	}

	terms, err := pp.TermOrder()
	if err != nil {
		t.Fatalf("unable to read terminals: %v", err)
	}
	if want := []string{"sampleA"}; !reflect.DeepEqual(terms, want) {
		t.Errorf("terminals: got %v, want %v", terms, want)
	}
}

func TestPipelineErrors(t *testing.T) {
	p := profile.New([]string{"locus1"})
	if _, err := pipeline.New(p, pipeline.Config{}); err == nil {
		t.Errorf("empty profiles: expecting error")
	}

	full := newProfiles(t, []string{"sampleA", "sampleB"})
	if _, err := pipeline.New(full, pipeline.Config{MaxHeight: 0.5}); err == nil {
		t.Errorf("invalid configuration: expecting error")
	}
}
