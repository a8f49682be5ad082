package apimatch

import (
	"github.com/funvibe/apisearch/internal/equations"
	"github.com/funvibe/apisearch/internal/lowtype"
	"github.com/funvibe/apisearch/internal/query"
)

// NameMatcher applies when the query method is ByName (§4.3): the
// expected name list is zipped with the innermost portion of the API's
// DisplayName, lengths must agree, and each position's generic
// parameter count is checked when the query specified one.
type NameMatcher struct{}

func (NameMatcher) Name() string { return "NameMatcher" }

func (NameMatcher) Test(_ LowTypeMatcherFunc, q query.Query, api lowtype.Api, ctx equations.Context) equations.Result {
	if q.Method.Kind != query.ByName {
		return equations.Matched(ctx)
	}
	names := q.Method.Names
	if len(names) != len(api.Name) {
		return equations.Failure
	}
	for i, expected := range names {
		item := api.Name[i]
		if !matchNameItem(expected, item, bool(ctx.Options.IgnoreCase)) {
			return equations.Failure
		}
	}
	return equations.Matched(ctx)
}

func matchNameItem(expected query.ByNameItem, item lowtype.DisplayNameItem, ignoreCase bool) bool {
	switch expected.Method {
	case query.AnyName:
		// still honor an explicit generic-parameter-count check.
	case query.RegexMatch:
		if expected.Compiled == nil || !expected.Compiled.MatchString(item.Part.Display) {
			return false
		}
	default: // StringCompare
		expectedPart := lowtype.Symbol(expected.Expected)
		if !expectedPart.Equal(item.Part, ignoreCase) {
			return false
		}
	}
	if expected.HasGenericParamCount && len(item.GenericParams) != expected.GenericParamCount {
		return false
	}
	return true
}
