// Copyright © 2026 Alan Collins
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package upgma implements the unweighted pair group method
// with arithmetic mean
// (UPGMA),
// an agglomerative clustering of a distance matrix
// that repeatedly merges the closest pair of clusters
// and averages their distances.
//
// The resulting tree is ultrametric:
// all terminals are at the same distance from the root,
// except for the distortion introduced
// by an explicit height cap.
package upgma

import (
	"errors"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// A Node is a node of a clustering tree.
// A node without children is a terminal
// and stores a sample name.
type Node struct {
	Name     string
	Children []Child
}

// A Child is a child subtree
// with the length of the branch
// that connects it to its parent.
type Child struct {
	Node   *Node
	Length float64
}

// IsTerm reports whether the node is a terminal.
func (n *Node) IsTerm() bool {
	return len(n.Children) == 0
}

// Terms returns the sample names of the terminals,
// in tree order.
func (n *Node) Terms() []string {
	if n.IsTerm() {
		return []string{n.Name}
	}
	var terms []string
	for _, c := range n.Children {
		terms = append(terms, c.Node.Terms()...)
	}
	return terms
}

// Cluster builds an UPGMA tree
// from a symmetric distance matrix
// and its sample names.
//
// In each of the n-1 merges
// the closest pair of clusters is joined
// at half its distance;
// ties are broken by the smallest row
// and then the smallest column
// of the matrix.
// Distances from the merged cluster
// are the arithmetic mean
// of the distances of the two joined clusters.
//
// If maxHeight is greater than zero,
// a merge distance larger than maxHeight
// is capped to maxHeight,
// so no node height exceeds maxHeight/2.
// Capping can produce zero length internal branches;
// use Collapse to remove them.
func Cluster(d [][]float64, names []string, maxHeight float64) (*Node, error) {
	if len(names) == 0 {
		return nil, errors.New("no samples to cluster")
	}
	if len(d) != len(names) {
		return nil, fmt.Errorf("got %d matrix rows, want %d", len(d), len(names))
	}
	for i, r := range d {
		if len(r) != len(names) {
			return nil, fmt.Errorf("row %d: got %d columns, want %d", i, len(r), len(names))
		}
	}

	nodes := make([]*Node, len(names))
	heights := make([]float64, len(names))
	for i, nm := range names {
		nodes[i] = &Node{Name: nm}
	}

	m := make([][]float64, len(d))
	for i, r := range d {
		m[i] = slices.Clone(r)
	}

	for len(nodes) > 1 {
		i, j := closestPair(m)

		h := m[i][j] / 2
		if maxHeight > 0 && m[i][j] > maxHeight {
			h = maxHeight / 2
		}
		nodes[i] = &Node{
			Children: []Child{
				{Node: nodes[i], Length: h - heights[i]},
				{Node: nodes[j], Length: h - heights[j]},
			},
		}
		heights[i] = h

		// Unweighted average of the distances
		// of the two merged clusters.
		row := slices.Clone(m[i])
		floats.Add(row, m[j])
		floats.Scale(0.5, row)
		row[i] = 0
		m[i] = row
		for k := range m {
			if k == i {
				continue
			}
			m[k][i] = row[k]
		}

		m = slices.Delete(m, j, j+1)
		for k, r := range m {
			m[k] = slices.Delete(r, j, j+1)
		}
		nodes = slices.Delete(nodes, j, j+1)
		heights = slices.Delete(heights, j, j+1)
	}

	return nodes[0], nil
}

// closestPair returns the indexes
// of the minimum off-diagonal value of a matrix,
// scanning in row-major order
// so that ties resolve to the smallest row
// and then the smallest column.
func closestPair(m [][]float64) (i, j int) {
	i, j = 0, 1
	for r := range m {
		for c := r + 1; c < len(m); c++ {
			if m[r][c] < m[i][j] {
				i, j = r, c
			}
		}
	}
	return i, j
}

// Collapse removes any internal branch
// with a zero length
// (as printed with five decimals),
// splicing the children of the collapsed node
// into its parent as a polytomy.
// Chains of zero length branches
// collapse into a single polytomy.
//
// Collapse is idempotent:
// running it on an already collapsed tree
// is a no-op.
func (n *Node) Collapse() {
	if n.IsTerm() {
		return
	}
	children := make([]Child, 0, len(n.Children))
	for _, c := range n.Children {
		c.Node.Collapse()
		if !c.Node.IsTerm() && zeroLength(c.Length) {
			children = append(children, c.Node.Children...)
			continue
		}
		children = append(children, c)
	}
	n.Children = children
}

func zeroLength(l float64) bool {
	return fmt.Sprintf("%.5f", l) == "0.00000"
}
