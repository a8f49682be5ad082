package main

import (
	"testing"

	"github.com/funvibe/apisearch/internal/apimatch"
	"github.com/funvibe/apisearch/internal/lowtype"
)

type stubResolver struct{}

func (stubResolver) ResolveTypeDefinition(lowtype.Identity) (lowtype.FullTypeDefinition, bool) {
	return lowtype.FullTypeDefinition{}, false
}

func TestWithResolverReplacesConstraintSolverOnly(t *testing.T) {
	pipeline, err := apimatch.Pipeline("name", "constraintSolver")
	if err != nil {
		t.Fatalf("Pipeline: %v", err)
	}
	out := withResolver(pipeline, stubResolver{})
	if len(out) != len(pipeline) {
		t.Fatalf("expected the same stage count, got %d want %d", len(out), len(pipeline))
	}
	if out[0].Name() != "NameMatcher" {
		t.Fatalf("expected the first stage untouched, got %q", out[0].Name())
	}
	if out[1].Name() != "ConstraintSolver" {
		t.Fatalf("expected the second stage to stay ConstraintSolver, got %q", out[1].Name())
	}
	if out[1] == pipeline[1] {
		t.Fatalf("expected the ConstraintSolver stage to be replaced by one backed by the resolver")
	}
}

func TestWithResolverNoOpWhenResolverNil(t *testing.T) {
	pipeline, err := apimatch.Pipeline("name")
	if err != nil {
		t.Fatalf("Pipeline: %v", err)
	}
	out := withResolver(pipeline, nil)
	if len(out) != len(pipeline) || out[0].Name() != pipeline[0].Name() {
		t.Fatalf("expected pipeline returned unchanged when resolver is nil")
	}
}

func TestLoadOptionsDefaultsWhenNoPathGiven(t *testing.T) {
	opts, err := loadOptions("")
	if err != nil {
		t.Fatalf("loadOptions: %v", err)
	}
	if opts.SwapOrderDepth == 0 && opts.ComplementDepth == 0 {
		t.Fatalf("expected DefaultOptions' non-zero depths, got %#v", opts)
	}
}

func TestLoadDictionariesRequiresCatalogOrPkg(t *testing.T) {
	_, _, err := loadDictionaries("", "", "")
	if err == nil {
		t.Fatal("expected an error when neither -catalog nor -pkg is set")
	}
}
