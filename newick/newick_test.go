// Copyright © 2026 Alan Collins
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package newick_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/Alan-Collins/pn-distance-clustering-cs/newick"
	"github.com/Alan-Collins/pn-distance-clustering-cs/upgma"
)

func TestString(t *testing.T) {
	ab := &upgma.Node{
		Children: []upgma.Child{
			{Node: &upgma.Node{Name: "A"}, Length: 0.5},
			{Node: &upgma.Node{Name: "B"}, Length: 0.5},
		},
	}
	root := &upgma.Node{
		Children: []upgma.Child{
			{Node: ab, Length: 0.25},
			{Node: &upgma.Node{Name: "C"}, Length: 0.75},
		},
	}

	want := "((A:0.50000,B:0.50000):0.25000,C:0.75000);"
	if got := newick.String(root); got != want {
		t.Errorf("tree: got %q, want %q", got, want)
	}

	term := &upgma.Node{Name: "sampleA"}
	if got, want := newick.String(term), "sampleA;"; got != want {
		t.Errorf("single terminal: got %q, want %q", got, want)
	}
}

func TestTermOrder(t *testing.T) {
	tests := map[string]struct {
		tree string
		want []string
	}{
		"binary": {
			tree: "((A:0.50000,B:0.50000):0.25000,C:0.75000);",
			want: []string{"A", "B", "C"},
		},
		"polytomy": {
			tree: "(A:0.50000,B:0.50000,C:0.50000);",
			want: []string{"A", "B", "C"},
		},
		"nested": {
			tree: "((t_1:1.00000,(t_2:0.50000,t_3:0.50000):0.50000):2.00000,t_4:3.00000);",
			want: []string{"t_1", "t_2", "t_3", "t_4"},
		},
		"single": {
			tree: "sampleA;",
			want: []string{"sampleA"},
		},
	}

	for name, test := range tests {
		got, err := newick.TermOrder(test.tree)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
			continue
		}
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("%s: got %v, want %v", name, got, test.want)
		}
	}
}

func TestTermOrderErrors(t *testing.T) {
	tests := map[string]string{
		"empty":        "",
		"blank":        "   ",
		"no terminals": "(:0.50000,:0.50000);",
		"lone colon":   ";",
	}

	for name, tree := range tests {
		if _, err := newick.TermOrder(tree); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}

	// scan errors report the position where the scan stopped
	_, err := newick.TermOrder("(:0.50000,:0.50000);")
	if err == nil {
		t.Fatalf("no terminals: expecting error")
	}
	if !strings.Contains(err.Error(), "at position 20") {
		t.Errorf("no terminals: got error %q, want scan position", err)
	}
}
