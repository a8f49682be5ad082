package matcher

import (
	"github.com/funvibe/apisearch/internal/equations"
	"github.com/funvibe/apisearch/internal/lowtype"
)

// testGenericGeneric implements the Generic/Generic half of rule 8:
// constructors must unify and argument lists must agree positionally
// (swap and complement tolerance don't apply to generic arguments).
func testGenericGeneric(a, b lowtype.Generic, ctx equations.Context) equations.Result {
	if len(a.Args) != len(b.Args) {
		return equations.Failure
	}
	res := Test(a.Constructor, b.Constructor, ctx)
	if !res.OK() {
		return equations.Failure
	}
	return testZip(a.Args, b.Args, res.Context())
}

// testGenericIdentity implements the Generic/Identity half of rule 8,
// used for partial references: "a Generic(ctor, [...]) may match an
// Identity when that identity carries the same generic-parameter count
// and the arguments would be fresh Variables". The constructor must
// itself name the same type as id; since the Generic's arguments stand
// for fresh (unconstrained) variables in this comparison, they impose no
// further requirement.
func testGenericIdentity(g lowtype.Generic, id lowtype.IdentityType, ctx equations.Context) equations.Result {
	ctorIdentity, ok := g.Constructor.(lowtype.IdentityType)
	if !ok {
		return equations.Failure
	}
	if !lowtype.MatchIdentity(ctorIdentity.Identity, id.Identity, bool(ctx.Options.IgnoreCase)) {
		return equations.Failure
	}
	if len(g.Args) != id.Identity.GenericParamCount {
		return equations.Failure
	}
	return equations.Matched(ctx)
}
