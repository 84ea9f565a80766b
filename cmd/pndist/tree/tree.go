// Copyright © 2026 Alan Collins
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package tree implements a command to build the UPGMA tree
// of the profiles in a clustering project.
package tree

import (
	"fmt"
	"os"

	"github.com/Alan-Collins/pn-distance-clustering-cs/dist"
	"github.com/Alan-Collins/pn-distance-clustering-cs/pipeline"
	"github.com/Alan-Collins/pn-distance-clustering-cs/project"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: `tree [--metric <metric>] [--algorithm <algorithm>]
	[--max <value>] [--cpu <number>]
	[-o|--output <tree-file>] <project-file>`,
	Short: "build the UPGMA tree of a project",
	Long: `
Command tree reads the allele profiles of a clustering project, computes the
pairwise distance matrix, clusters the samples with UPGMA, and writes the
resulting tree, in Newick (parenthetical) notation, to the tree file of the
project.

The argument of the command is the name of the project file.

By default, distances are counts of differing allele calls over the loci in
which both samples have a call. Use the flag --metric to select the distance
metric, either "absolute" or "normalized".

Use the flag --algorithm to select the clustering algorithm; "upgma" is the
only implemented algorithm, and the default.

By default, the tree grows to the height required by the profile distances.
Use the flag --max to cap the node heights at half the given value. With the
normalized metric the value must be at most 1; with the absolute metric it
must be at least 1. Internal branches collapsed to a zero length by the cap
are removed, and their children become part of a polytomy.

By default, all available CPUs will be used for the distance matrix. Use the
flag --cpu to set the number of used CPUs.

By default, the tree will be stored in the tree file currently defined for
the project. If the project does not have a tree file, a new one will be
created with the name 'tree.nwk'. A different file name can be defined with
the flag --output, or -o. If this flag is used, the new file will be set as
the tree file of the project.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var metricFlag string
var algoFlag string
var maxHeight float64
var numCPU int
var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&metricFlag, "metric", "", "")
	c.Flags().StringVar(&algoFlag, "algorithm", "", "")
	c.Flags().Float64Var(&maxHeight, "max", 0, "")
	c.Flags().IntVar(&numCPU, "cpu", 0, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	prof, err := p.Profiles()
	if err != nil {
		return err
	}

	metric, err := dist.ParseMetric(metricFlag)
	if err != nil {
		return err
	}
	algo, err := pipeline.ParseAlgorithm(algoFlag)
	if err != nil {
		return err
	}
	pp, err := pipeline.New(prof, pipeline.Config{
		Metric:    metric,
		Algorithm: algo,
		MaxHeight: maxHeight,
		CPU:       numCPU,
	})
	if err != nil {
		return err
	}

	t, err := pp.Tree()
	if err != nil {
		return err
	}

	if output == "" {
		output = p.Path(project.Trees)
		if output == "" {
			output = "tree.nwk"
		}
	}
	if err := writeTree(output, t); err != nil {
		return err
	}

	p.Add(project.Trees, output)
	if err := p.Write(); err != nil {
		return err
	}
	return nil
}

func writeTree(name, t string) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if _, err := fmt.Fprintf(f, "%s\n", t); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}
