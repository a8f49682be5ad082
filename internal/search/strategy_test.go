package search

import (
	"testing"

	"github.com/funvibe/apisearch/internal/config"
	"github.com/funvibe/apisearch/internal/lowtype"
	"github.com/funvibe/apisearch/internal/query"
)

func TestInitializeQueryBindsKnownIdentity(t *testing.T) {
	dictionaries := []lowtype.ApiDictionary{
		{
			AssemblyName: "FSharp.Core",
			TypeDefinitions: []lowtype.FullTypeDefinition{
				{Name: nm("Map"), Assembly: "FSharp.Core"},
			},
		},
	}
	q, err := query.ParseQuery("Map")
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	strategy := PrimaryStrategy{}
	out := strategy.InitializeQuery(q, dictionaries, config.DefaultOptions())

	id, ok := out.Method.Signature.Type.(lowtype.IdentityType)
	if !ok || !id.Identity.IsFull() {
		t.Fatalf("expected Map to be bound to a FullIdentity, got %#v", out.Method.Signature.Type)
	}
	if id.Identity.AssemblyName != "FSharp.Core" {
		t.Fatalf("unexpected assembly: %q", id.Identity.AssemblyName)
	}
}

func TestInitializeQueryTagsFreeVariablesAsQuerySource(t *testing.T) {
	q, err := query.ParseQuery("'a -> 'a")
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	strategy := PrimaryStrategy{}
	out := strategy.InitializeQuery(q, nil, config.DefaultOptions())

	arrow := out.Method.Signature.Type.(lowtype.Arrow)
	for _, e := range arrow.Elements {
		v, ok := e.(lowtype.Variable)
		if !ok || v.Source != lowtype.Query {
			t.Fatalf("expected every variable tagged source=Query, got %#v", e)
		}
	}
}

func TestSecondaryStrategyCanonicalizesBuiltinAlias(t *testing.T) {
	q, err := query.ParseQuery("int")
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	strategy := SecondaryStrategy{}
	out := strategy.InitializeQuery(q, nil, config.DefaultOptions())

	id, ok := out.Method.Signature.Type.(lowtype.IdentityType)
	if !ok || id.Identity.Name.String() != "Int32" {
		t.Fatalf("expected int to canonicalize to Int32, got %#v", out.Method.Signature.Type)
	}
}

func TestSecondaryStrategyCompressesArrowChain(t *testing.T) {
	q, err := query.ParseQuery("int -> int -> int")
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	strategy := SecondaryStrategy{}
	out := strategy.InitializeQuery(q, nil, config.DefaultOptions())

	g, ok := out.Method.Signature.Type.(lowtype.Generic)
	if !ok || g.Constructor.String() != functionConstructorName {
		t.Fatalf("expected the arrow chain compressed to %s, got %#v", functionConstructorName, out.Method.Signature.Type)
	}
	if _, ok := g.Args[1].(lowtype.Generic); !ok {
		t.Fatalf("expected the nested result to itself be a compressed function, got %#v", g.Args[1])
	}
}

func TestInitialContextSeedsWildcardAntiMatch(t *testing.T) {
	q, err := query.ParseQuery("?x -> ?y")
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	strategy := PrimaryStrategy{}
	ctx := strategy.InitialContext(q, nil, config.DefaultOptions())

	if ctx.Distance != 0 {
		t.Fatalf("expected Distance=0, got %d", ctx.Distance)
	}
	found := false
	for _, p := range ctx.Equations.Inequalities() {
		wa, aok := p.A.(lowtype.Wildcard)
		wb, bok := p.B.(lowtype.Wildcard)
		if aok && bok && ((wa.Tag == "x" && wb.Tag == "y") || (wa.Tag == "y" && wb.Tag == "x")) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an anti-match inequality between ?x and ?y, got %v", ctx.Equations.Inequalities())
	}
}

func TestForModeSelectsStrategyByMode(t *testing.T) {
	opts := config.DefaultOptions()
	if _, ok := ForMode(opts).(PrimaryStrategy); !ok {
		t.Fatalf("expected PrimaryStrategy for default mode")
	}
	opts.Mode = config.Secondary
	if _, ok := ForMode(opts).(SecondaryStrategy); !ok {
		t.Fatalf("expected SecondaryStrategy when Mode=Secondary")
	}
}
