package matcher

import (
	"github.com/funvibe/apisearch/internal/equations"
	"github.com/funvibe/apisearch/internal/lowtype"
)

// testChoice implements rule 9: a Choice succeeds if any alternative
// matches; among the alternatives that do, the one contributing the
// least additional distance wins, ties breaking toward the earliest
// alternative (the order they were declared in).
func testChoice(c lowtype.Choice, other lowtype.Type, ctx equations.Context) equations.Result {
	var best equations.Result
	haveBest := false
	bestDelta := 0

	for _, alt := range c.Alternatives {
		res := Test(alt, other, ctx)
		if !res.OK() {
			continue
		}
		delta := res.Context().Distance - ctx.Distance
		if !haveBest || delta < bestDelta {
			best, bestDelta, haveBest = res, delta, true
		}
	}
	if !haveBest {
		return equations.Failure
	}
	return best
}
