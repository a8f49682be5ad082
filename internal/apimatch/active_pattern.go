package apimatch

import (
	"github.com/funvibe/apisearch/internal/equations"
	"github.com/funvibe/apisearch/internal/lowtype"
	"github.com/funvibe/apisearch/internal/query"
)

// ActivePatternMatcher matches ApiSignature.ActivePatten only (§4.3): it
// compares the pattern's arrow shape against the query's
// ActivePatternSignature, treating AnyParameter as permission for the
// API's arrow to carry extra leading parameters the query didn't spell
// out — those are implicitly wildcarded.
type ActivePatternMatcher struct{}

func (ActivePatternMatcher) Name() string { return "ActivePatternMatcher" }

func (ActivePatternMatcher) Test(lowTypeMatch LowTypeMatcherFunc, q query.Query, api lowtype.Api, ctx equations.Context) equations.Result {
	if q.Method.Kind != query.ByActivePattern {
		return equations.Matched(ctx)
	}
	if api.Signature.Kind != lowtype.ActivePatternFullKind && api.Signature.Kind != lowtype.ActivePatternPartialKind {
		return equations.Failure
	}
	apiElements := arrowElements(api.Signature.Function.Arrow())
	queryElements := arrowElements(q.Method.ActivePattern.Arrow)

	if len(apiElements) == len(queryElements) {
		return lowTypeMatch(buildArrow(queryElements), buildArrow(apiElements), ctx)
	}
	if !q.Method.ActivePattern.AnyParameter || len(apiElements) < len(queryElements) {
		return equations.Failure
	}
	padded := make([]lowtype.Type, 0, len(apiElements))
	gap := len(apiElements) - len(queryElements)
	for i := 0; i < gap; i++ {
		padded = append(padded, lowtype.Wildcard{})
	}
	padded = append(padded, queryElements...)
	return lowTypeMatch(buildArrow(padded), buildArrow(apiElements), ctx)
}

func arrowElements(t lowtype.Type) []lowtype.Type {
	if a, ok := t.(lowtype.Arrow); ok {
		return a.Elements
	}
	return []lowtype.Type{t}
}

func buildArrow(elements []lowtype.Type) lowtype.Type {
	if len(elements) == 1 {
		return elements[0]
	}
	return lowtype.Arrow{Elements: elements}
}
