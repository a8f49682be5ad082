package apimatch

import (
	"testing"

	"github.com/funvibe/apisearch/internal/config"
	"github.com/funvibe/apisearch/internal/equations"
	"github.com/funvibe/apisearch/internal/lowtype"
	"github.com/funvibe/apisearch/internal/query"
)

func partial(name string, genericParamCount int) lowtype.Type {
	return lowtype.IdentityType{Identity: lowtype.NewPartialIdentity(
		lowtype.DisplayName{{Part: lowtype.Symbol(name)}}, genericParamCount,
	)}
}

func displayName(innermostFirst ...string) lowtype.DisplayName {
	items := make(lowtype.DisplayName, len(innermostFirst))
	for i, s := range innermostFirst {
		items[i] = lowtype.DisplayNameItem{Part: lowtype.Symbol(s)}
	}
	return items
}

func identityMatch(q, target lowtype.Type, ctx equations.Context) equations.Result {
	a, aok := q.(lowtype.IdentityType)
	b, bok := target.(lowtype.IdentityType)
	if aok && bok && lowtype.MatchIdentity(a.Identity, b.Identity, false) {
		return equations.Matched(ctx)
	}
	if lowtype.Equal(q, target) {
		return equations.Matched(ctx)
	}
	return equations.Failure
}

func TestNameMatcherZipsInnermostFirst(t *testing.T) {
	api := lowtype.Api{Name: displayName("map", "List")}
	q, err := query.ParseQuery("name: List.map")
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	ctx := equations.New(config.DefaultOptions())
	if res := NameMatcher{}.Test(identityMatch, q, api, ctx); !res.OK() {
		t.Fatalf("List.map should match api named List.map")
	}

	wrong := lowtype.Api{Name: displayName("map", "Seq")}
	if res := (NameMatcher{}).Test(identityMatch, q, wrong, ctx); res.OK() {
		t.Fatalf("List.map must not match Seq.map")
	}
}

func TestSignatureMatcherExtractsModuleValue(t *testing.T) {
	api := lowtype.Api{
		Name: displayName("pi"),
		Signature: lowtype.ApiSignature{
			Kind:      lowtype.ModuleValueKind,
			ValueType: partial("float", 0),
		},
	}
	q, err := query.ParseQuery("float")
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	ctx := equations.New(config.DefaultOptions())
	if res := SignatureMatcher{}.Test(identityMatch, q, api, ctx); !res.OK() {
		t.Fatalf("expected ModuleValue float to match a float query")
	}
}

func TestSignatureMatcherSkipsWhenNoSignaturePresent(t *testing.T) {
	api := lowtype.Api{Name: displayName("map", "List")}
	q, err := query.ParseQuery("name: List.map")
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	ctx := equations.New(config.DefaultOptions())
	if res := SignatureMatcher{}.Test(identityMatch, q, api, ctx); !res.OK() {
		t.Fatalf("SignatureMatcher must pass through a ByName query with no signature portion")
	}
}

func TestPipelineShortCircuitsOnFirstFailure(t *testing.T) {
	pipeline, err := Pipeline("name", "signature")
	if err != nil {
		t.Fatalf("Pipeline: %v", err)
	}
	api := lowtype.Api{
		Name: displayName("map", "Seq"),
		Signature: lowtype.ApiSignature{
			Kind:      lowtype.ModuleValueKind,
			ValueType: partial("float", 0),
		},
	}
	q, err := query.ParseQuery("name: List.map(float)")
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	ctx := equations.New(config.DefaultOptions())
	if res := RunPipeline(pipeline, identityMatch, q, api, ctx); res.OK() {
		t.Fatalf("pipeline should fail on the NameMatcher stage before reaching SignatureMatcher")
	}
}

func TestConstraintSolverSatisfiesWithoutResolver(t *testing.T) {
	solver := NewConstraintSolver(nil)
	api := lowtype.Api{
		Constraints: []lowtype.TypeConstraint{
			{
				Variables:  []lowtype.TypeVariable{{Name: "a"}},
				Constraint: lowtype.Constraint{Kind: lowtype.ValueType},
			},
		},
	}
	ctx := equations.New(config.DefaultOptions())
	if res := solver.Test(identityMatch, query.Query{}, api, ctx); !res.OK() {
		t.Fatalf("an unresolvable constraint (no resolver, unbound variable) must not fail the match")
	}
}

type fakeResolver struct {
	defs map[string]lowtype.FullTypeDefinition
}

func (f fakeResolver) ResolveTypeDefinition(id lowtype.Identity) (lowtype.FullTypeDefinition, bool) {
	d, ok := f.defs[id.String()]
	return d, ok
}

func TestConstraintSolverRejectsNotSatisfy(t *testing.T) {
	intIdentity := lowtype.NewPartialIdentity(displayName("int"), 0)
	resolver := fakeResolver{defs: map[string]lowtype.FullTypeDefinition{
		intIdentity.String(): {IsValueType: lowtype.StatusSatisfy, IsReferenceType: lowtype.StatusNotSatisfy},
	}}
	solver := NewConstraintSolver(resolver)

	api := lowtype.Api{
		Constraints: []lowtype.TypeConstraint{
			{
				Variables:  []lowtype.TypeVariable{{Name: "a"}},
				Constraint: lowtype.Constraint{Kind: lowtype.ReferenceType},
			},
		},
	}
	ctx := equations.New(config.DefaultOptions())
	eq, ok := ctx.Equations.TryAddEquality(
		lowtype.Variable{Source: lowtype.Target, Var: lowtype.TypeVariable{Name: "a"}},
		lowtype.IdentityType{Identity: intIdentity},
	)
	if !ok {
		t.Fatalf("TryAddEquality should succeed")
	}
	ctx = ctx.WithEquations(eq)

	if res := solver.Test(identityMatch, query.Query{}, api, ctx); res.OK() {
		t.Fatalf("ReferenceType constraint must fail for a type whose definition marks it NotSatisfy")
	}
}
