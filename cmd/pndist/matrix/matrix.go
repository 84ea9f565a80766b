// Copyright © 2026 Alan Collins
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package matrix implements a command to write
// the pairwise distance matrix of a clustering project.
package matrix

import (
	"os"

	"github.com/Alan-Collins/pn-distance-clustering-cs/dist"
	"github.com/Alan-Collins/pn-distance-clustering-cs/pipeline"
	"github.com/Alan-Collins/pn-distance-clustering-cs/project"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: `matrix [--metric <metric>] [--algorithm <algorithm>]
	[--max <value>] [--cpu <number>] [--input-order]
	[-o|--output <matrix-file>] <project-file>`,
	Short: "write the distance matrix of a project",
	Long: `
Command matrix reads the allele profiles of a clustering project, computes
the pairwise distance matrix, and writes it as a tab-delimited file to the
matrix file of the project.

The argument of the command is the name of the project file.

By default, distances are counts of differing allele calls over the loci in
which both samples have a call. Use the flag --metric to select the distance
metric, either "absolute" or "normalized".

By default, the samples of the matrix are ordered as the terminals of the
UPGMA tree of the profiles, so the matrix can be read alongside the tree;
the flags --algorithm and --max select the clustering algorithm ("upgma" is
the only implemented algorithm) and the tree height cap, as in the tree
command. Use the flag --input-order to keep the samples in the order of the
profile file instead.

By default, all available CPUs will be used for the distance matrix. Use the
flag --cpu to set the number of used CPUs.

By default, the matrix will be stored in the matrix file currently defined
for the project. If the project does not have a matrix file, a new one will
be created with the name 'distances.tab'. A different file name can be
defined with the flag --output, or -o. If this flag is used, the new file
will be set as the matrix file of the project.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var metricFlag string
var algoFlag string
var maxHeight float64
var numCPU int
var inputOrder bool
var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&metricFlag, "metric", "", "")
	c.Flags().StringVar(&algoFlag, "algorithm", "", "")
	c.Flags().Float64Var(&maxHeight, "max", 0, "")
	c.Flags().IntVar(&numCPU, "cpu", 0, "")
	c.Flags().BoolVar(&inputOrder, "input-order", false, "")
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

	m := pp.Distances()
	if !inputOrder {
		m, err = pp.TreeDistances()
		if err != nil {
			return err
		}
	}

	if output == "" {
		output = p.Path(project.Distances)
		if output == "" {
			output = "distances.tab"
		}
	}
	if err := writeMatrix(output, m); err != nil {
		return err
	}

	p.Add(project.Distances, output)
	if err := p.Write(); err != nil {
		return err
	}
	return nil
}

func writeMatrix(name string, m *dist.Matrix) (err error) {
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

	if err := m.TSV(f); err != nil {
		return err
	}
	return nil
}
