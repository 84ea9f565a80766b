// Copyright © 2026 Alan Collins
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project_test

import (
	"os"
	"reflect"
	"slices"
	"testing"

	"github.com/Alan-Collins/pn-distance-clustering-cs/project"
)

type setPath struct {
	set  project.Dataset
	path string
}

func TestProject(t *testing.T) {
	p := project.New()

	sets := []setPath{
		{project.Profiles, "profiles.tab"},
		{project.Trees, "tree.nwk"},
		{project.Distances, "distances.tab"},
	}

	for _, s := range sets {
		p.Add(s.set, s.path)
	}
	testProject(t, p, sets)

	name := "tmp-project-for-test.tab"
	defer os.Remove(name)

	p.SetName(name)
	if err := p.Write(); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}

	np, err := project.Read(name)
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	testProject(t, np, sets)
}

func TestProjectRemove(t *testing.T) {
	p := project.New()
	p.Add(project.Profiles, "profiles.tab")
	p.Add(project.Trees, "tree.nwk")

	if prev := p.Add(project.Trees, ""); prev != "tree.nwk" {
		t.Errorf("remove: got previous path %q, want %q", prev, "tree.nwk")
	}
	if sets := p.Sets(); !reflect.DeepEqual(sets, []project.Dataset{project.Profiles}) {
		t.Errorf("remove: got sets %v", sets)
	}
}

func testProject(t testing.TB, p *project.Project, sets []setPath) {
	t.Helper()

	for _, s := range sets {
		if path := p.Path(s.set); path != s.path {
			t.Errorf("set %s: got path %q, want %q", s.set, path, s.path)
		}
	}
	datasets := make([]project.Dataset, 0, len(sets))
	for _, v := range sets {
		datasets = append(datasets, v.set)
	}
	slices.Sort(datasets)

	if ls := p.Sets(); !reflect.DeepEqual(ls, datasets) {
		t.Errorf("sets: got %v, want %v", ls, datasets)
	}
}
