package matcher

import (
	"github.com/funvibe/apisearch/internal/equations"
	"github.com/funvibe/apisearch/internal/lowtype"
)

// testTupleTuple implements rule 7: value/struct-ness must agree
// outright, lengths must agree, and then up to SwapOrderDepth adjacent
// swaps of the query side's elements are tried (breadth-first, so the
// fewest-swaps success wins), each swap costing +1 distance.
func testTupleTuple(query, target lowtype.Tuple, ctx equations.Context) equations.Result {
	if query.IsStruct != target.IsStruct {
		return equations.Failure
	}
	if len(query.Elements) != len(target.Elements) {
		return equations.Failure
	}
	return trySwapPermutations(query.Elements, target.Elements, ctx, ctx.Options.SwapOrderDepth)
}

// trySwapPermutations breadth-first explores adjacent-transposition
// permutations of the query elements, trying the identity ordering first
// (zero swaps) and only reaching for a mutation if that fails, so the
// minimal-swap-count success is always the one returned.
func trySwapPermutations(query, target []lowtype.Type, ctx equations.Context, maxDepth int) equations.Result {
	type state struct {
		perm  []lowtype.Type
		swaps int
	}
	start := append([]lowtype.Type(nil), query...)
	visited := map[string]bool{permKey(start): true}
	queue := []state{{perm: start, swaps: 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if res := testZip(cur.perm, target, ctx); res.OK() {
			return equations.Matched(res.Context().WithDistance(cur.swaps))
		}
		if cur.swaps >= maxDepth {
			continue
		}
		for i := 0; i+1 < len(cur.perm); i++ {
			next := append([]lowtype.Type(nil), cur.perm...)
			next[i], next[i+1] = next[i+1], next[i]
			key := permKey(next)
			if visited[key] {
				continue
			}
			visited[key] = true
			queue = append(queue, state{perm: next, swaps: cur.swaps + 1})
		}
	}
	return equations.Failure
}

func permKey(elems []lowtype.Type) string {
	out := ""
	for i, e := range elems {
		if i > 0 {
			out += ","
		}
		out += lowtype.Key(e)
	}
	return out
}
