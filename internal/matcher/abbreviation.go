package matcher

import (
	"github.com/funvibe/apisearch/internal/equations"
	"github.com/funvibe/apisearch/internal/lowtype"
)

// testAbbreviation implements the single-sided half of rule 4: ta is a
// TypeAbbreviation on one side, other is a concrete (non-abbreviation)
// type on the other. Disabled unless IgnoreParameterStyle is Enabled.
//
// The shallower unwrap — matching via ta.Abbreviation, the form as
// written — is tried first and costs nothing extra, since it means the
// query's literal syntax already agrees with the target; only falling
// through to ta.Original, the fully-resolved form, counts as a real
// unwrap and costs +1 (§4.2 rule 4).
func testAbbreviation(ta lowtype.TypeAbbreviation, other lowtype.Type, ctx equations.Context) equations.Result {
	if !ctx.Options.IgnoreParameterStyle {
		return equations.Failure
	}
	if res := Test(ta.Abbreviation, other, ctx); res.OK() {
		return res
	}
	if res := Test(ta.Original, other, ctx); res.OK() {
		return equations.Matched(res.Context().WithDistance(1))
	}
	return equations.Failure
}
