// Copyright © 2026 Alan Collins
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"fmt"
	"os"
	"strings"

	"github.com/Alan-Collins/pn-distance-clustering-cs/profile"
)

// Profiles reads an allele profile file
// as defined in a project.
func (p *Project) Profiles() (*profile.Profiles, error) {
	name := p.Path(Profiles)
	if name == "" {
		return nil, fmt.Errorf("allele profiles not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	prof, err := profile.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("when reading file %q: %v", name, err)
	}
	return prof, nil
}

// Tree reads the Newick tree text
// as defined in a project.
func (p *Project) Tree() (string, error) {
	name := p.Path(Trees)
	if name == "" {
		return "", fmt.Errorf("clustering tree not defined in project %q", p.name)
	}

	d, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}
	t := strings.TrimSpace(string(d))
	if t == "" {
		return "", fmt.Errorf("when reading file %q: empty tree", name)
	}
	return t, nil
}
