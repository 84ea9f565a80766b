// Copyright © 2026 Alan Collins
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// PNDist is a tool to cluster samples
// by the pairwise distances of their allele profiles.
package main

import (
	"github.com/Alan-Collins/pn-distance-clustering-cs/cmd/pndist/add"
	"github.com/Alan-Collins/pn-distance-clustering-cs/cmd/pndist/export"
	"github.com/Alan-Collins/pn-distance-clustering-cs/cmd/pndist/matrix"
	"github.com/Alan-Collins/pn-distance-clustering-cs/cmd/pndist/tree"
	"github.com/js-arias/command"
)

var app = &command.Command{
	Usage: "pndist <command> [<argument>...]",
	Short: "a tool for allele profile distance clustering",
}

func init() {
	app.Add(add.Command)
	app.Add(export.Command)
	app.Add(matrix.Command)
	app.Add(tree.Command)
}

func main() {
	app.Main()
}
