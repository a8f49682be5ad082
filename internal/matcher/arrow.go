package matcher

import (
	"github.com/funvibe/apisearch/internal/equations"
	"github.com/funvibe/apisearch/internal/lowtype"
)

// testArrowArrow implements rules 5 and 6. Equal-length arrows are
// matched elementwise. Unequal lengths first try the tupled/curried
// reshape (splitting a single tuple parameter into several, or the
// reverse) when IgnoreParameterStyle is Enabled, then fall back to
// optional-parameter complementation bounded by ComplementDepth.
func testArrowArrow(a, b lowtype.Arrow, ctx equations.Context) equations.Result {
	if len(a.Elements) == len(b.Elements) {
		return testZip(a.Elements, b.Elements, ctx)
	}
	if ctx.Options.IgnoreParameterStyle {
		if res := tryTupleSplitReshape(a, b, ctx); res.OK() {
			return res
		}
	}
	return tryComplement(a, b, ctx)
}

// testZip threads ctx through each elementwise Test, short-circuiting on
// the first failure.
func testZip(a, b []lowtype.Type, ctx equations.Context) equations.Result {
	cur := ctx
	for i := range a {
		res := Test(a[i], b[i], cur)
		if !res.OK() {
			return equations.Failure
		}
		cur = res.Context()
	}
	return equations.Matched(cur)
}

// tryTupleSplitReshape implements rule 6: "a non-curried function with a
// single tuple argument matches the curried form obtained by splitting
// that tuple". It looks for a single parameter position in the shorter
// arrow whose type is a Tuple whose arity exactly closes the length gap,
// splits it in place, and zip-tests the expanded form against the
// longer arrow. Costs +1 distance; tries the shorter side first, then
// the longer, since splitting only ever widens an arrow.
func tryTupleSplitReshape(a, b lowtype.Arrow, ctx equations.Context) equations.Result {
	if len(a.Elements) < len(b.Elements) {
		if res, ok := trySplitInto(a, len(b.Elements), ctx); ok {
			return testSplitResult(res, b.Elements, ctx)
		}
		return equations.Failure
	}
	if res, ok := trySplitInto(b, len(a.Elements), ctx); ok {
		return testSplitResult(res, a.Elements, ctx)
	}
	return equations.Failure
}

// trySplitInto tries every non-return element of short for a Tuple whose
// arity closes the gap to targetLen, returning the first expansion that
// has exactly targetLen elements.
func trySplitInto(short lowtype.Arrow, targetLen int, ctx equations.Context) ([]lowtype.Type, bool) {
	gap := targetLen - len(short.Elements)
	if gap <= 0 {
		return nil, false
	}
	for i := 0; i < len(short.Elements)-1; i++ {
		tup, ok := short.Elements[i].(lowtype.Tuple)
		if !ok || len(tup.Elements) != gap+1 {
			continue
		}
		expanded := make([]lowtype.Type, 0, targetLen)
		expanded = append(expanded, short.Elements[:i]...)
		expanded = append(expanded, tup.Elements...)
		expanded = append(expanded, short.Elements[i+1:]...)
		return expanded, true
	}
	return nil, false
}

func testSplitResult(expanded, other []lowtype.Type, ctx equations.Context) equations.Result {
	res := testZip(expanded, other, ctx)
	if !res.OK() {
		return equations.Failure
	}
	return equations.Matched(res.Context().WithDistance(1))
}

// tryComplement implements the optional-parameter complementation §4.2
// describes: up to ComplementDepth trailing parameters may be dropped
// from the longer arrow's parameter list (never its return slot), each
// drop costing +1 distance, but only when every dropped position was
// recorded Optional on that side.
func tryComplement(a, b lowtype.Arrow, ctx equations.Context) equations.Result {
	longer, shorter := a, b
	if len(b.Elements) > len(a.Elements) {
		longer, shorter = b, a
	}
	diff := len(longer.Elements) - len(shorter.Elements)
	if diff <= 0 || diff > ctx.Options.ComplementDepth {
		return equations.Failure
	}
	// Parameters are every element except the trailing return slot.
	paramCount := len(longer.Elements) - 1
	if diff > paramCount {
		return equations.Failure
	}
	dropStart := paramCount - diff
	for i := dropStart; i < paramCount; i++ {
		if longer.Optional == nil || !longer.Optional[i] {
			return equations.Failure
		}
	}
	kept := make([]lowtype.Type, 0, len(shorter.Elements))
	kept = append(kept, longer.Elements[:dropStart]...)
	kept = append(kept, longer.Elements[paramCount]) // return slot
	res := testZip(kept, shorter.Elements, ctx)
	if !res.OK() {
		return equations.Failure
	}
	return equations.Matched(res.Context().WithDistance(diff))
}
