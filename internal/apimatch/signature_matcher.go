package apimatch

import (
	"github.com/funvibe/apisearch/internal/equations"
	"github.com/funvibe/apisearch/internal/lowtype"
	"github.com/funvibe/apisearch/internal/query"
)

// SignatureMatcher applies when the query method is ByName (with a
// signature portion) or BySignature (§4.3): it extracts a LowType from
// the API signature and invokes the low-type matcher against the
// query's own signature LowType.
type SignatureMatcher struct{}

func (SignatureMatcher) Name() string { return "SignatureMatcher" }

func (SignatureMatcher) Test(lowTypeMatch LowTypeMatcherFunc, q query.Query, api lowtype.Api, ctx equations.Context) equations.Result {
	if !q.Method.HasSignature() {
		return equations.Matched(ctx)
	}
	sig := q.Method.Signature
	if sig.Kind == query.WildcardSignature {
		return equations.Matched(ctx)
	}
	target, ok := ExtractSignatureType(api)
	if !ok {
		return equations.Failure
	}
	return lowTypeMatch(sig.Type, target, ctx)
}
