// Copyright © 2026 Alan Collins
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package export implements a command to export the clustering tree
// of a project as a tab-delimited tree file.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/Alan-Collins/pn-distance-clustering-cs/project"
	"github.com/js-arias/command"
	"github.com/js-arias/timetree"
)

var Command = &command.Command{
	Usage: `export [--name <tree-name>]
	[-f|--file <tree-file>] <project-file>`,
	Short: "export the clustering tree as a tree file",
	Long: `
Command export reads the Newick tree of a clustering project and writes it
as a tab-delimited tree file, the format used by tools that require internal
node identifiers and node ages, such as PhyGeo.

The argument of the command is the name of the project file.

Branch lengths of the clustering tree are interpreted as million years, and
the age of the root is taken from the largest distance between the root and
any terminal.

By default, the exported tree is called "cluster"; use the flag --name to
set a different name.

By default, the tree will be written to the file 'trees.tab'. A different
file name can be defined with the flag --file, or -f.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var treeFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "name", "cluster", "")
	c.Flags().StringVar(&treeFile, "file", "trees.tab", "")
	c.Flags().StringVar(&treeFile, "f", "trees.tab", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	t, err := p.Tree()
	if err != nil {
		return err
	}

	tc, err := timetree.Newick(strings.NewReader(t), treeName, 0)
	if err != nil {
		return fmt.Errorf("on tree of project %q: %v", args[0], err)
	}

	if err := writeTrees(tc); err != nil {
		return err
	}
	return nil
}

func writeTrees(tc *timetree.Collection) (err error) {
	f, err := os.Create(treeFile)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := tc.TSV(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", treeFile, err)
	}
	return nil
}
