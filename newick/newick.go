// Copyright © 2026 Alan Collins
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package newick implements writing of clustering trees
// in parenthetical (Newick) notation,
// and scanning of terminal names
// from Newick tree text.
package newick

import (
	"fmt"
	"strings"

	"github.com/Alan-Collins/pn-distance-clustering-cs/upgma"
)

// String returns the Newick text of a tree,
// with branch lengths printed with five decimals
// and a closing semicolon.
// A single terminal is printed
// as its name and the semicolon,
// without parentheses.
func String(n *upgma.Node) string {
	var sb strings.Builder
	writeNode(&sb, n)
	sb.WriteByte(';')
	return sb.String()
}

func writeNode(sb *strings.Builder, n *upgma.Node) {
	if n.IsTerm() {
		sb.WriteString(n.Name)
		return
	}
	sb.WriteByte('(')
	for i, c := range n.Children {
		if i > 0 {
			sb.WriteByte(',')
		}
		writeNode(sb, c.Node)
		fmt.Fprintf(sb, ":%.5f", c.Length)
	}
	sb.WriteByte(')')
}

// TermOrder returns the terminal names of a Newick tree text,
// in the left to right order
// in which they appear in the text.
//
// A terminal is a name token
// immediately preceded by an open parenthesis or a comma,
// and immediately followed by a colon.
// A tree without parentheses is a single terminal
// closed by the semicolon.
func TermOrder(s string) ([]string, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil, fmt.Errorf("empty tree text")
	}

	if !strings.ContainsAny(t, "(),:") {
		name := strings.TrimSpace(strings.TrimSuffix(t, ";"))
		if name == "" {
			return nil, fmt.Errorf("at position 0: no terminals in tree %q", s)
		}
		return []string{name}, nil
	}

	var order []string
	prev := byte(0)
	for i := 0; i < len(t); i++ {
		c := t[i]
		if isSep(c) {
			prev = c
			continue
		}
		j := i
		for j < len(t) && !isSep(t[j]) {
			j++
		}
		if (prev == '(' || prev == ',') && j < len(t) && t[j] == ':' {
			order = append(order, t[i:j])
		}
		prev = 0
		i = j - 1
	}
	if len(order) == 0 {
		return nil, fmt.Errorf("at position %d: no terminals in tree %q", len(t), s)
	}
	return order, nil
}

func isSep(c byte) bool {
	switch c {
	case '(', ')', ',', ':', ';':
		return true
	}
	return false
}
