package matcher

import (
	"testing"

	"github.com/funvibe/apisearch/internal/config"
	"github.com/funvibe/apisearch/internal/equations"
	"github.com/funvibe/apisearch/internal/lowtype"
)

func ident(name string, genericParamCount int) lowtype.Type {
	return lowtype.IdentityType{Identity: lowtype.NewPartialIdentity(
		lowtype.DisplayName{{Part: lowtype.Symbol(name)}}, genericParamCount,
	)}
}

func queryVar(name string) lowtype.Type {
	return lowtype.Variable{Source: lowtype.Query, Var: lowtype.TypeVariable{Name: name}}
}

func newCtx(opts config.Options) equations.Context { return equations.New(opts) }

func TestIdentityVsIdentity(t *testing.T) {
	ctx := newCtx(config.DefaultOptions())
	res := Test(ident("int", 0), ident("int", 0), ctx)
	if !res.OK() {
		t.Fatalf("int vs int should match")
	}
	res = Test(ident("int", 0), ident("string", 0), ctx)
	if res.OK() {
		t.Fatalf("int vs string should not match")
	}
}

func TestWildcardMatchesAnything(t *testing.T) {
	ctx := newCtx(config.DefaultOptions())
	res := Test(lowtype.Wildcard{}, ident("SomeReallyObscureType", 3), ctx)
	if !res.OK() {
		t.Fatalf("untagged wildcard must match anything")
	}
}

func TestTaggedWildcardConsistency(t *testing.T) {
	ctx := newCtx(config.DefaultOptions())
	tagged := lowtype.Wildcard{Tag: "x"}
	res := Test(tagged, ident("int", 0), ctx)
	if !res.OK() {
		t.Fatalf("first binding should succeed")
	}
	res = Test(tagged, ident("int", 0), res.Context())
	if !res.OK() {
		t.Fatalf("consistent rebinding should succeed")
	}
	res = Test(tagged, ident("string", 0), res.Context())
	if res.OK() {
		t.Fatalf("inconsistent rebinding of a tagged wildcard must fail")
	}
}

func TestVariableBindingConsistency(t *testing.T) {
	ctx := newCtx(config.DefaultOptions())
	v := queryVar("'a")
	res := Test(v, ident("int", 0), ctx)
	if !res.OK() {
		t.Fatalf("first binding should succeed")
	}
	res = Test(v, ident("string", 0), res.Context())
	if res.OK() {
		t.Fatalf("variable already bound to int must not also bind to string")
	}
}

func TestArrowElementwise(t *testing.T) {
	ctx := newCtx(config.DefaultOptions())
	a := lowtype.Arrow{Elements: []lowtype.Type{ident("int", 0), ident("string", 0)}}
	b := lowtype.Arrow{Elements: []lowtype.Type{ident("int", 0), ident("string", 0)}}
	if res := Test(a, b, ctx); !res.OK() {
		t.Fatalf("matching arrows should match")
	}
	c := lowtype.Arrow{Elements: []lowtype.Type{ident("int", 0), ident("bool", 0)}}
	if res := Test(a, c, ctx); res.OK() {
		t.Fatalf("arrows differing in return type should not match")
	}
}

func TestOptionalParameterComplementation(t *testing.T) {
	// target(a, b=?) -> ret, queried as just `a -> ret`.
	target := lowtype.Arrow{
		Elements: []lowtype.Type{ident("int", 0), ident("string", 0), ident("bool", 0)},
		Optional: []bool{false, true, false},
	}
	query := lowtype.Arrow{Elements: []lowtype.Type{ident("int", 0), ident("bool", 0)}}

	enabled := config.DefaultOptions()
	enabled.ComplementDepth = 1
	res := Test(query, target, newCtx(enabled))
	if !res.OK() {
		t.Fatalf("dropping one optional trailing parameter within depth should succeed")
	}
	if res.Context().Distance != 1 {
		t.Errorf("Distance = %d, want 1", res.Context().Distance)
	}

	zeroDepth := enabled
	zeroDepth.ComplementDepth = 0
	if res := Test(query, target, newCtx(zeroDepth)); res.OK() {
		t.Fatalf("complementation must be rejected when ComplementDepth is 0")
	}
}

func TestComplementationRejectsRequiredParameter(t *testing.T) {
	target := lowtype.Arrow{
		Elements: []lowtype.Type{ident("int", 0), ident("string", 0), ident("bool", 0)},
		Optional: []bool{false, false, false},
	}
	query := lowtype.Arrow{Elements: []lowtype.Type{ident("int", 0), ident("bool", 0)}}
	opts := config.DefaultOptions()
	opts.ComplementDepth = 2
	if res := Test(query, target, newCtx(opts)); res.OK() {
		t.Fatalf("dropping a required (non-optional) parameter must fail")
	}
}

func TestTupleSwapWithinDepth(t *testing.T) {
	query := lowtype.Tuple{Elements: []lowtype.Type{ident("string", 0), ident("int", 0)}}
	target := lowtype.Tuple{Elements: []lowtype.Type{ident("int", 0), ident("string", 0)}}

	opts := config.DefaultOptions()
	opts.SwapOrderDepth = 1
	res := Test(query, target, newCtx(opts))
	if !res.OK() {
		t.Fatalf("one adjacent swap within depth should succeed")
	}
	if res.Context().Distance != 1 {
		t.Errorf("Distance = %d, want 1", res.Context().Distance)
	}

	opts.SwapOrderDepth = 0
	if res := Test(query, target, newCtx(opts)); res.OK() {
		t.Fatalf("swap must be rejected when SwapOrderDepth is 0")
	}
}

func TestTupleStructMismatch(t *testing.T) {
	query := lowtype.Tuple{Elements: []lowtype.Type{ident("int", 0), ident("string", 0)}, IsStruct: true}
	target := lowtype.Tuple{Elements: []lowtype.Type{ident("int", 0), ident("string", 0)}, IsStruct: false}
	if res := Test(query, target, newCtx(config.DefaultOptions())); res.OK() {
		t.Fatalf("a struct tuple must not match a reference tuple")
	}
}

func TestGenericVsGeneric(t *testing.T) {
	list := func(arg lowtype.Type) lowtype.Type {
		return lowtype.Generic{Constructor: ident("list", 1), Args: []lowtype.Type{arg}}
	}
	ctx := newCtx(config.DefaultOptions())
	if res := Test(list(ident("int", 0)), list(ident("int", 0)), ctx); !res.OK() {
		t.Fatalf("list<int> should match list<int>")
	}
	if res := Test(list(ident("int", 0)), list(ident("string", 0)), ctx); res.OK() {
		t.Fatalf("list<int> should not match list<string>")
	}
}

func TestGenericVsIdentityPartialReference(t *testing.T) {
	g := lowtype.Generic{Constructor: ident("list", 1), Args: []lowtype.Type{queryVar("'a")}}
	id := ident("list", 1)
	if res := Test(g, id, newCtx(config.DefaultOptions())); !res.OK() {
		t.Fatalf("list<'a> should match the bare identity `list` of the same arity")
	}
	wrongArity := ident("list", 2)
	if res := Test(g, wrongArity, newCtx(config.DefaultOptions())); res.OK() {
		t.Fatalf("a generic-parameter-count mismatch must fail")
	}
}

func TestChoicePicksLeastDistanceAlternative(t *testing.T) {
	opts := config.DefaultOptions()
	opts.IgnoreParameterStyle = true
	target := ident("seq", 1)
	// alt1 requires an abbreviation unwrap (distance 1); alt2 is an exact
	// match (distance 0) and is declared second, so least-distance must
	// override declaration order.
	alt1 := lowtype.TypeAbbreviation{Abbreviation: ident("list", 1), Original: target}
	alt2 := target
	choice := lowtype.Choice{Alternatives: []lowtype.Type{alt1, alt2}}

	res := Test(choice, target, newCtx(opts))
	if !res.OK() {
		t.Fatalf("choice should match")
	}
	if res.Context().Distance != 0 {
		t.Errorf("the exact-match alternative should win with zero distance, got %d", res.Context().Distance)
	}
}

func TestAbbreviationTransparency(t *testing.T) {
	original := ident("seq", 1)
	abbrev := lowtype.TypeAbbreviation{Abbreviation: ident("list", 1), Original: original}

	enabled := config.DefaultOptions()
	enabled.IgnoreParameterStyle = true
	res := Test(abbrev, original, newCtx(enabled))
	if !res.OK() {
		t.Fatalf("abbreviation transparency should unwrap to the original form")
	}
	if res.Context().Distance != 1 {
		t.Errorf("Distance = %d, want 1 for a single unwrap", res.Context().Distance)
	}

	disabled := config.DefaultOptions()
	disabled.IgnoreParameterStyle = false
	if res := Test(abbrev, original, newCtx(disabled)); res.OK() {
		t.Fatalf("abbreviation transparency must be off when IgnoreParameterStyle is disabled")
	}
}

func TestSymmetricAbbreviationUnwrapChargedOnce(t *testing.T) {
	original := ident("seq", 1)
	left := lowtype.TypeAbbreviation{Abbreviation: ident("list", 1), Original: original}
	right := lowtype.TypeAbbreviation{Abbreviation: ident("vector", 1), Original: original}

	opts := config.DefaultOptions()
	opts.IgnoreParameterStyle = true
	res := Test(left, right, newCtx(opts))
	if !res.OK() {
		t.Fatalf("two abbreviations of the same original should match")
	}
	if res.Context().Distance != 1 {
		t.Errorf("Distance = %d, want 1 for a symmetric unwrap", res.Context().Distance)
	}
}

func TestUntaggedWildcardRefusesCompositeSubtreeWhenGreedyMatchingDisabled(t *testing.T) {
	opts := config.DefaultOptions()
	opts.GreedyMatching = config.Disabled
	ctx := newCtx(opts)

	composite := lowtype.Arrow{Elements: []lowtype.Type{ident("int", 0), ident("string", 0)}}
	if res := Test(lowtype.Wildcard{}, composite, ctx); res.OK() {
		t.Fatalf("untagged wildcard must not absorb an Arrow when GreedyMatching is disabled")
	}
	if res := Test(lowtype.Wildcard{}, ident("int", 0), ctx); !res.OK() {
		t.Fatalf("untagged wildcard should still match a leaf type when GreedyMatching is disabled")
	}
}

func TestUntaggedWildcardAbsorbsCompositeSubtreeWhenGreedyMatchingEnabled(t *testing.T) {
	opts := config.DefaultOptions()
	opts.GreedyMatching = config.Enabled
	ctx := newCtx(opts)

	composite := lowtype.Arrow{Elements: []lowtype.Type{ident("int", 0), ident("string", 0)}}
	if res := Test(lowtype.Wildcard{}, composite, ctx); !res.OK() {
		t.Fatalf("untagged wildcard must absorb an entire Arrow when GreedyMatching is enabled")
	}
}
