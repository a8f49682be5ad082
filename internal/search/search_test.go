package search

import (
	"testing"

	"github.com/funvibe/apisearch/internal/apimatch"
	"github.com/funvibe/apisearch/internal/config"
	"github.com/funvibe/apisearch/internal/equations"
	"github.com/funvibe/apisearch/internal/lowtype"
	"github.com/funvibe/apisearch/internal/matcher"
	"github.com/funvibe/apisearch/internal/query"
)

func nm(name string) lowtype.DisplayName {
	return lowtype.DisplayName{{Part: lowtype.Symbol(name)}}
}

func identity(name string) lowtype.Type {
	return lowtype.IdentityType{Identity: lowtype.NewPartialIdentity(nm(name), 0)}
}

func TestRunPreservesDictionaryOrderUnderSerial(t *testing.T) {
	dicts := []lowtype.ApiDictionary{
		{
			AssemblyName: "FSharp.Core",
			Apis: []lowtype.Api{
				{Name: nm("zip"), Signature: lowtype.ApiSignature{Kind: lowtype.ModuleValueKind, ValueType: identity("int")}},
				{Name: nm("map"), Signature: lowtype.ApiSignature{Kind: lowtype.ModuleValueKind, ValueType: identity("int")}},
			},
		},
	}
	q, err := query.ParseQuery("int")
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	opts := config.DefaultOptions()
	pipeline, err := apimatch.Pipeline("name", "signature", "activePattern", "constraintSolver")
	if err != nil {
		t.Fatalf("Pipeline: %v", err)
	}
	initial := equations.New(opts)

	results := Run(dicts, opts, matcher.Test, pipeline, q, initial)
	if len(results) != 2 {
		t.Fatalf("expected both apis to match an int query, got %d", len(results))
	}
	if results[0].Api.Name.String() != "zip" || results[1].Api.Name.String() != "map" {
		t.Fatalf("serial scan must preserve catalog order, got %v then %v", results[0].Api.Name, results[1].Api.Name)
	}
}

func TestRunFiltersNonMatchingApis(t *testing.T) {
	dicts := []lowtype.ApiDictionary{
		{
			AssemblyName: "FSharp.Core",
			Apis: []lowtype.Api{
				{Name: nm("pi"), Signature: lowtype.ApiSignature{Kind: lowtype.ModuleValueKind, ValueType: identity("float")}},
				{Name: nm("zero"), Signature: lowtype.ApiSignature{Kind: lowtype.ModuleValueKind, ValueType: identity("int")}},
			},
		},
	}
	q, err := query.ParseQuery("int")
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	opts := config.DefaultOptions()
	pipeline, err := apimatch.Pipeline("name", "signature")
	if err != nil {
		t.Fatalf("Pipeline: %v", err)
	}
	results := Run(dicts, opts, matcher.Test, pipeline, q, equations.New(opts))
	if len(results) != 1 || results[0].Api.Name.String() != "zero" {
		t.Fatalf("expected only `zero` to match, got %v", results)
	}
}

func TestRunParallelFindsSameSetAsSerial(t *testing.T) {
	apis := make([]lowtype.Api, 0, 20)
	for i := 0; i < 20; i++ {
		kind := "int"
		if i%2 == 0 {
			kind = "float"
		}
		apis = append(apis, lowtype.Api{
			Name:      nm(string(rune('a' + i))),
			Signature: lowtype.ApiSignature{Kind: lowtype.ModuleValueKind, ValueType: identity(kind)},
		})
	}
	dicts := []lowtype.ApiDictionary{{AssemblyName: "FSharp.Core", Apis: apis}}
	q, err := query.ParseQuery("int")
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	pipeline, err := apimatch.Pipeline("name", "signature")
	if err != nil {
		t.Fatalf("Pipeline: %v", err)
	}

	serialOpts := config.DefaultOptions()
	serial := Run(dicts, serialOpts, matcher.Test, pipeline, q, equations.New(serialOpts))

	parallelOpts := serialOpts
	parallelOpts.Parallel = config.Enabled
	parallel := Run(dicts, parallelOpts, matcher.Test, pipeline, q, equations.New(parallelOpts))

	if len(serial) != len(parallel) {
		t.Fatalf("parallel scan found %d matches, serial found %d", len(parallel), len(serial))
	}
	serialRanked, parallelRanked := Rank(serial), Rank(parallel)
	for i := range serialRanked {
		if serialRanked[i].Api.Name.String() != parallelRanked[i].Api.Name.String() {
			t.Fatalf("parallel equivalence broken at %d: %v vs %v", i, serialRanked[i].Api.Name, parallelRanked[i].Api.Name)
		}
	}
}

func TestRankOrdersByDistanceThenCollectionOrder(t *testing.T) {
	results := []Result{
		{Api: lowtype.Api{Name: nm("b")}, Distance: 1},
		{Api: lowtype.Api{Name: nm("a")}, Distance: 2},
		{Api: lowtype.Api{Name: nm("c")}, Distance: 1},
	}
	ranked := Rank(results)
	if ranked[0].Api.Name.String() != "b" || ranked[1].Api.Name.String() != "c" || ranked[2].Api.Name.String() != "a" {
		t.Fatalf("unexpected rank order: %v", ranked)
	}
}

func TestComputationExpressionTwoPhaseSearch(t *testing.T) {
	asyncType := identity("Async")
	builderIdentity := lowtype.NewPartialIdentity(nm("AsyncBuilder"), 0)
	dicts := []lowtype.ApiDictionary{
		{
			AssemblyName: "FSharp.Core",
			Apis: []lowtype.Api{
				{
					Name: nm("async"),
					Signature: lowtype.ApiSignature{
						Kind: lowtype.ComputationExpressionBuilderKind,
						Builder: lowtype.Builder{
							BuilderType:                builderIdentity,
							ComputationExpressionTypes: []lowtype.Type{asyncType},
							Syntaxes:                   map[string]bool{"let!": true, "return": true},
						},
					},
				},
				{
					Name: nm("startAsTask"),
					Signature: lowtype.ApiSignature{
						Kind:      lowtype.ModuleValueKind,
						ValueType: lowtype.IdentityType{Identity: builderIdentity},
					},
				},
				{
					Name: nm("unrelated"),
					Signature: lowtype.ApiSignature{
						Kind:      lowtype.ModuleValueKind,
						ValueType: identity("int"),
					},
				},
			},
		},
	}
	q, err := query.ParseQuery("ce: Async {let!}")
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	opts := config.DefaultOptions()
	results := Run(dicts, opts, matcher.Test, nil, q, equations.New(opts))

	if len(results) != 2 {
		t.Fatalf("expected the builder plus one applicable api, got %d: %v", len(results), results)
	}
	if results[0].Api.Name.String() != "async" || results[0].Distance != 0 {
		t.Fatalf("expected the builder first at distance 0, got %v", results[0])
	}
	if results[1].Api.Name.String() != "startAsTask" {
		t.Fatalf("expected startAsTask as the applicable api, got %v", results[1])
	}
}

func TestExtractComputationTargetUsesFinalSegmentOfCurriedModuleFunction(t *testing.T) {
	builderIdentity := lowtype.NewPartialIdentity(nm("AsyncBuilder"), 0)
	sig := lowtype.ApiSignature{
		Kind: lowtype.ModuleFunctionKind,
		Function: lowtype.Member{
			Name: "bind",
			Parameters: lowtype.ParameterGroups{
				{{Type: identity("int")}},
				{{Type: lowtype.IdentityType{Identity: builderIdentity}}},
			},
			ReturnParameter: lowtype.Parameter{Type: identity("string")},
		},
	}
	target, ok := extractComputationTarget(sig)
	if !ok {
		t.Fatalf("expected extraction to succeed")
	}
	got, ok := target.(lowtype.IdentityType)
	if !ok || got.Identity.Name.String() != "AsyncBuilder" {
		t.Fatalf("expected the final segment's AsyncBuilder, got %#v", target)
	}
}

func TestExtractComputationTargetTakesFirstElementOfTupledFinalSegment(t *testing.T) {
	sig := lowtype.ApiSignature{
		Kind: lowtype.ModuleFunctionKind,
		Function: lowtype.Member{
			Name: "zip3",
			Parameters: lowtype.ParameterGroups{
				{{Type: identity("int")}},
				{{Type: identity("string")}, {Type: identity("bool")}},
			},
			ReturnParameter: lowtype.Parameter{Type: identity("unit")},
		},
	}
	target, ok := extractComputationTarget(sig)
	if !ok {
		t.Fatalf("expected extraction to succeed")
	}
	got, ok := target.(lowtype.IdentityType)
	if !ok || got.Identity.Name.String() != "string" {
		t.Fatalf("expected the tupled final segment's first element (string), got %#v", target)
	}
}
