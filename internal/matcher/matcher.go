// Package matcher implements the Low-Type Matcher (§4.2): the
// unification-like engine that decides whether a query LowType and a
// target (catalog) LowType can be made to agree, accumulating Distance,
// Equations, and Substitutions into an equations.Context as it goes.
//
// Test is commutative in the sense that matching concrete Identity,
// Tuple, Generic, and Choice shapes never cares which side is which —
// but two rules (adjacent-swap permutation and optional-parameter
// complementation) are defined relative to "the query side", so Test
// takes query and target as distinct, named parameters rather than an
// unordered pair. Callers (the API matchers in package apimatch) always
// pass the text-derived query type first.
package matcher

import (
	"github.com/funvibe/apisearch/internal/equations"
	"github.com/funvibe/apisearch/internal/lowtype"
)

// Test is the single entry point for §4.2: it dispatches on the
// (query, target) pair's concrete variants in a fixed order — Wildcard
// (rule 2) and Variable (rule 3) first, then Identity (rule 1),
// TypeAbbreviation (rule 4), Delegate (rule 10), Arrow (rules 5/6),
// Tuple (rule 7), Generic (rule 8), and Choice (rule 9) — threading ctx
// through each sub-match.
func Test(query, target lowtype.Type, ctx equations.Context) equations.Result {
	// Rule 2: Wildcard, either side.
	if w, ok := query.(lowtype.Wildcard); ok {
		return testWildcard(w, target, ctx)
	}
	if w, ok := target.(lowtype.Wildcard); ok {
		return testWildcard(w, query, ctx)
	}

	// Rule 3: Variable, either side.
	if v, ok := query.(lowtype.Variable); ok {
		return testVariable(v, target, ctx)
	}
	if v, ok := target.(lowtype.Variable); ok {
		return testVariable(v, query, ctx)
	}

	// Rule 1: Identity vs Identity.
	if qi, ok := query.(lowtype.IdentityType); ok {
		if ti, ok2 := target.(lowtype.IdentityType); ok2 {
			return testIdentity(qi, ti, ctx)
		}
	}

	// Rule 4: TypeAbbreviation transparency, either side. When both sides
	// are abbreviations, try unwrapping both at once first — a symmetric
	// unwrap is charged a single +1, not +1 per side.
	if qa, okq := query.(lowtype.TypeAbbreviation); okq {
		if ta, okt := target.(lowtype.TypeAbbreviation); okt {
			if !ctx.Options.IgnoreParameterStyle {
				return equations.Failure
			}
			if res := Test(qa.Original, ta.Original, ctx); res.OK() {
				return equations.Matched(res.Context().WithDistance(1))
			}
		}
		return testAbbreviation(qa, target, ctx)
	}
	if ta, ok := target.(lowtype.TypeAbbreviation); ok {
		return testAbbreviation(ta, query, ctx)
	}

	// Rule 10: Delegate unwraps to an Arrow before any further dispatch.
	if qd, ok := query.(lowtype.Delegate); ok {
		if td, ok2 := target.(lowtype.Delegate); ok2 {
			if !lowtype.MatchIdentity(qd.DelegateType, td.DelegateType, bool(ctx.Options.IgnoreCase)) {
				return equations.Failure
			}
			return Test(qd.AsArrow(), td.AsArrow(), ctx)
		}
		return Test(qd.AsArrow(), target, ctx)
	}
	if td, ok := target.(lowtype.Delegate); ok {
		return Test(query, td.AsArrow(), ctx)
	}

	// Rules 5/6: Arrow vs Arrow, including the tupled/curried reshape and
	// optional-parameter complementation that apply only when element
	// counts disagree. A bare Arrow against any non-Arrow, non-Delegate,
	// non-abbreviation type always fails (rule 6's default).
	if qArrow, ok := query.(lowtype.Arrow); ok {
		if tArrow, ok2 := target.(lowtype.Arrow); ok2 {
			return testArrowArrow(qArrow, tArrow, ctx)
		}
		return equations.Failure
	}
	if _, ok := target.(lowtype.Arrow); ok {
		return equations.Failure
	}

	// Rule 7: Tuple vs Tuple (adjacent-swap permutations, query side).
	if qt, ok := query.(lowtype.Tuple); ok {
		if tt, ok2 := target.(lowtype.Tuple); ok2 {
			return testTupleTuple(qt, tt, ctx)
		}
	}

	// Rule 8: Generic vs Generic, Generic vs Identity (partial references).
	if qg, ok := query.(lowtype.Generic); ok {
		if tg, ok2 := target.(lowtype.Generic); ok2 {
			return testGenericGeneric(qg, tg, ctx)
		}
		if ti, ok2 := target.(lowtype.IdentityType); ok2 {
			return testGenericIdentity(qg, ti, ctx)
		}
	}
	if tg, ok := target.(lowtype.Generic); ok {
		if qi, ok2 := query.(lowtype.IdentityType); ok2 {
			return testGenericIdentity(tg, qi, ctx)
		}
	}

	// Rule 9: Choice, either side.
	if qc, ok := query.(lowtype.Choice); ok {
		return testChoice(qc, target, ctx)
	}
	if tc, ok := target.(lowtype.Choice); ok {
		return testChoice(tc, query, ctx)
	}

	return equations.Failure
}

// testWildcard implements rule 2. An untagged Wildcard matches anything
// for free when GreedyMatching is enabled; otherwise it only absorbs a
// leaf (Identity or Variable), not an entire composite subtree (Arrow,
// Tuple, Generic, Choice, Delegate, TypeAbbreviation) — the query must
// recurse into that structure explicitly instead. A tagged wildcard must
// resolve consistently with every prior binding recorded for the same
// tag (checked through the equations store, same as a Variable) before
// recording a new equality, regardless of GreedyMatching.
func testWildcard(w lowtype.Wildcard, other lowtype.Type, ctx equations.Context) equations.Result {
	if w.Tag == "" {
		if !ctx.Options.GreedyMatching && isComposite(other) {
			return equations.Failure
		}
		return equations.Matched(ctx)
	}
	return bindConsistently(w, other, ctx)
}

// isComposite reports whether t is a multi-part LowType shape rather than
// a leaf — the distinction GreedyMatching gates an untagged Wildcard on.
func isComposite(t lowtype.Type) bool {
	switch t.(type) {
	case lowtype.Arrow, lowtype.Tuple, lowtype.Generic, lowtype.Choice, lowtype.Delegate, lowtype.TypeAbbreviation:
		return true
	default:
		return false
	}
}

// testVariable implements rule 3: record (v ≡ other), checking every
// existing binding for v resolves consistently first.
func testVariable(v lowtype.Variable, other lowtype.Type, ctx equations.Context) equations.Result {
	return bindConsistently(v, other, ctx)
}

// bindConsistently is rules 2 and 3's shared machinery: v (a Wildcard or
// a Variable) must unify with other under every equality already on
// record for v, then a fresh equality (v ≡ other) is added.
func bindConsistently(v lowtype.Type, other lowtype.Type, ctx equations.Context) equations.Result {
	cur := ctx
	for _, p := range ctx.Equations.FindEqualities(v) {
		bound := p.B
		if lowtype.Equal(p.B, v) {
			bound = p.A
		}
		if lowtype.Equal(bound, v) {
			continue
		}
		res := Test(bound, other, cur)
		if !res.OK() {
			return equations.Failure
		}
		cur = res.Context()
	}
	eq, ok := cur.Equations.TryAddEquality(v, other)
	if !ok {
		return equations.Failure
	}
	return equations.Matched(cur.WithEquations(eq))
}

// testIdentity implements rule 1 plus the name-difference cost: two
// Identities unify per lowtype.MatchIdentity, and when RespectNameDifference
// is enabled a mismatch between compiled forms under an otherwise-matching
// display name adds +1 distance rather than failing the match.
func testIdentity(a, b lowtype.IdentityType, ctx equations.Context) equations.Result {
	if !lowtype.MatchIdentity(a.Identity, b.Identity, bool(ctx.Options.IgnoreCase)) {
		return equations.Failure
	}
	if ctx.Options.RespectNameDifference {
		ctx = ctx.WithDistance(nameDifferenceCost(a.Identity, b.Identity, bool(ctx.Options.IgnoreCase)))
	}
	return equations.Matched(ctx)
}

// nameDifferenceCost charges +1 when either identity's innermost name
// segment carries a compiled form that disagrees between the two sides
// (e.g. an operator whose compiled encoding differs) even though
// MatchIdentity already accepted the pair on display-name grounds.
func nameDifferenceCost(a, b lowtype.Identity, ignoreCase bool) int {
	ha, hb := a.Name.Head().Part, b.Name.Head().Part
	if !ha.HasCompiledForm() && !hb.HasCompiledForm() {
		return 0
	}
	ca, cb := ha.CompiledForm, hb.CompiledForm
	if ca == "" {
		ca = ha.Display
	}
	if cb == "" {
		cb = hb.Display
	}
	if ignoreCase {
		if !equalFold(ca, cb) {
			return 1
		}
		return 0
	}
	if ca != cb {
		return 1
	}
	return 0
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
