package search

import (
	"github.com/funvibe/apisearch/internal/apimatch"
	"github.com/funvibe/apisearch/internal/config"
	"github.com/funvibe/apisearch/internal/equations"
	"github.com/funvibe/apisearch/internal/lowtype"
	"github.com/funvibe/apisearch/internal/query"
)

// RunComputationExpression implements §4.6's two-phase builder search.
//
// Phase 1 discovers every ComputationExpressionBuilder API whose
// ComputationExpressionTypes unify with the query's type and whose
// syntax set is a superset of the query's (the empty query syntax set
// meaning "any non-empty builder"). Phase 2 forms a Choice over the
// matched builders' BuilderTypes and tests every other API's
// extracted target LowType against that Choice.
//
// The output is the phase 1 builders (each at distance 0) followed by
// the phase 2 applicable APIs (each at its own match distance).
func RunComputationExpression(dictionaries []lowtype.ApiDictionary, opts config.Options, lowTypeMatch apimatch.LowTypeMatcherFunc, q query.Query, initial equations.Context) []Result {
	ceQuery := q.Method.ComputationExpression
	items := flatten(dictionaries)

	var builders []Result
	var builderTypes []lowtype.Type
	for _, it := range items {
		if it.api.Signature.Kind != lowtype.ComputationExpressionBuilderKind {
			continue
		}
		builder := it.api.Signature.Builder
		if !hasRequiredSyntax(builder, ceQuery.Syntaxes) {
			continue
		}
		if !anyTypeUnifies(lowTypeMatch, ceQuery.Type, builder.ComputationExpressionTypes, initial) {
			continue
		}
		builders = append(builders, Result{Api: it.api, AssemblyName: it.assemblyName, Distance: 0})
		builderTypes = append(builderTypes, lowtype.IdentityType{Identity: builder.BuilderType})
	}

	if len(builderTypes) == 0 {
		return builders
	}
	choice := lowtype.Choice{Alternatives: builderTypes}

	var applicable []Result
	for _, it := range items {
		if it.api.Signature.Kind == lowtype.ComputationExpressionBuilderKind {
			continue
		}
		target, ok := extractComputationTarget(it.api.Signature)
		if !ok {
			continue
		}
		res := lowTypeMatch(choice, target, initial)
		if !res.OK() {
			continue
		}
		applicable = append(applicable, Result{Api: it.api, AssemblyName: it.assemblyName, Distance: res.Context().Distance})
	}

	return append(builders, applicable...)
}

// hasRequiredSyntax implements "the empty query syntax meaning 'any
// non-empty builder'": an empty required set only demands the builder
// support at least one syntax form.
func hasRequiredSyntax(b lowtype.Builder, required map[string]bool) bool {
	if len(required) == 0 {
		return len(b.Syntaxes) > 0
	}
	return b.HasSyntax(required)
}

func anyTypeUnifies(lowTypeMatch apimatch.LowTypeMatcherFunc, queryType lowtype.Type, candidates []lowtype.Type, ctx equations.Context) bool {
	for _, c := range candidates {
		if lowTypeMatch(queryType, c, ctx).OK() {
			return true
		}
	}
	return false
}

// extractComputationTarget implements §4.6 phase 2's per-variant
// extraction:
//
//	ModuleValue wrapping an abbreviated arrow -> the arrow's last element
//	ModuleValue(t)                            -> t
//	ModuleFunction(fn)                        -> the final segment's first parameter
//	anything else                             -> Failure
func extractComputationTarget(sig lowtype.ApiSignature) (lowtype.Type, bool) {
	switch sig.Kind {
	case lowtype.ModuleValueKind:
		if abbr, ok := sig.ValueType.(lowtype.TypeAbbreviation); ok {
			if arrow, ok := abbr.Original.(lowtype.Arrow); ok && len(arrow.Elements) > 0 {
				return arrow.Elements[len(arrow.Elements)-1], true
			}
			if arrow, ok := abbr.Abbreviation.(lowtype.Arrow); ok && len(arrow.Elements) > 0 {
				return arrow.Elements[len(arrow.Elements)-1], true
			}
		}
		return sig.ValueType, true
	case lowtype.ModuleFunctionKind:
		arrowType := sig.Function.Arrow()
		arrow, ok := arrowType.(lowtype.Arrow)
		if !ok || len(arrow.Elements) < 2 {
			return nil, false
		}
		finalSegment := arrow.Elements[len(arrow.Elements)-2]
		if tuple, ok := finalSegment.(lowtype.Tuple); ok && len(tuple.Elements) > 0 {
			return tuple.Elements[0], true
		}
		return finalSegment, true
	default:
		return nil, false
	}
}
