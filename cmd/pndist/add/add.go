// Copyright © 2026 Alan Collins
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package add implements a command to add an allele profile file
// to a clustering project.
package add

import (
	"errors"
	"fmt"
	"os"

	"github.com/Alan-Collins/pn-distance-clustering-cs/profile"
	"github.com/Alan-Collins/pn-distance-clustering-cs/project"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: "add <project-file> <profile-file>",
	Short: "add an allele profile file to a project",
	Long: `
Command add reads an allele profile file and adds it to a clustering project.
The profiles are validated before the project is updated: all samples must
have the same number of loci, and sample names must be unique after the
removal of tree-reserved characters.

The first argument of the command is the name of the project file. If no
project file exists, a new project will be created.

The second argument is the name of the profile file, a tab-delimited file
with a "sample" column for the sample names and one column per locus. Empty
cells are missing allele calls.
	`,
	Run: run,
}

func run(c *command.Command, args []string) error {
	if len(args) < 2 {
		return c.UsageError("expecting project and profile files")
	}
	pFile := args[0]
	p, err := openProject(pFile)
	if err != nil {
		return err
	}

	name := args[1]
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	prof, err := profile.ReadTSV(f)
	if err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	if prof.Len() == 0 {
		return fmt.Errorf("on file %q: no samples found", name)
	}

	p.Add(project.Profiles, name)
	if err := p.Write(); err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout(), "%s: %d samples, %d loci\n", name, prof.Len(), len(prof.Loci()))
	return nil
}

func openProject(name string) (*project.Project, error) {
	p, err := project.Read(name)
	if errors.Is(err, os.ErrNotExist) {
		p := project.New()
		p.SetName(name)
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open project %q: %v", name, err)
	}
	return p, nil
}
