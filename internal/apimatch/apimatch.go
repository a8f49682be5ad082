// Package apimatch implements the API Matchers (§4.3): the pluggable
// pipeline stages an Initialization Strategy assembles — NameMatcher,
// SignatureMatcher, ActivePatternMatcher, and the ConstraintSolver final
// stage — composed as an ordered sequence over a query and a catalog
// Api.
package apimatch

import (
	"github.com/funvibe/apisearch/internal/equations"
	"github.com/funvibe/apisearch/internal/lowtype"
	"github.com/funvibe/apisearch/internal/query"
)

// LowTypeMatcherFunc is the Low-Type Matcher's contract (§4.2), taken as
// a parameter so API matchers never import package matcher directly —
// the dependency runs the other way (matcher has no knowledge of
// queries or APIs), matching the spec's "test(lowTypeMatcher,
// queryMethod, api, ctx)" signature.
type LowTypeMatcherFunc func(queryType, targetType lowtype.Type, ctx equations.Context) equations.Result

// Matcher is "a capability {name, test}" (§9): an API matcher has a
// name and a single Test operation. Composed as an ordered sequence,
// never through embedding or inheritance.
type Matcher interface {
	Name() string
	Test(lowTypeMatch LowTypeMatcherFunc, q query.Query, api lowtype.Api, ctx equations.Context) equations.Result
}

// registeredMatchers is a global map of every Matcher constructor
// available for use, keyed by name. You should never touch this map
// directly — use Register. Grounded on purpleidea-mgmt's
// lang/unification Register/Lookup solver registry.
var registeredMatchers = make(map[string]func() Matcher)

// MatcherNotFoundError reports a Lookup for a name nothing registered.
type MatcherNotFoundError struct {
	Name string
}

func (e *MatcherNotFoundError) Error() string {
	return "apisearch: no API matcher registered under name " + e.Name
}

// Register makes a matcher constructor available for use under name.
// Commonly called from an init() function at program startup. There is
// no matching Unregister.
func Register(name string, ctor func() Matcher) {
	if _, exists := registeredMatchers[name]; exists {
		panic("apisearch: an API matcher named " + name + " is already registered")
	}
	registeredMatchers[name] = ctor
}

// Lookup constructs a fresh Matcher instance for name.
func Lookup(name string) (Matcher, error) {
	ctor, exists := registeredMatchers[name]
	if !exists {
		return nil, &MatcherNotFoundError{Name: name}
	}
	return ctor(), nil
}

func init() {
	Register("name", func() Matcher { return NameMatcher{} })
	Register("signature", func() Matcher { return SignatureMatcher{} })
	Register("activePattern", func() Matcher { return ActivePatternMatcher{} })
	Register("constraintSolver", func() Matcher { return NewConstraintSolver(nil) })
}

// Pipeline builds an ordered matcher sequence by name, the shape
// Initialization Strategy's Matchers() hands to the search driver.
func Pipeline(names ...string) ([]Matcher, error) {
	out := make([]Matcher, 0, len(names))
	for _, n := range names {
		m, err := Lookup(n)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// RunPipeline runs every matcher in sequence, short-circuiting on the
// first Failure and threading ctx forward otherwise — "the composite
// succeeds iff every matcher succeeds" (§4.3).
func RunPipeline(pipeline []Matcher, lowTypeMatch LowTypeMatcherFunc, q query.Query, api lowtype.Api, ctx equations.Context) equations.Result {
	cur := equations.Matched(ctx)
	for _, m := range pipeline {
		cur = cur.Then(func(c equations.Context) equations.Result {
			return m.Test(lowTypeMatch, q, api, c)
		})
		if !cur.OK() {
			return equations.Failure
		}
	}
	return cur
}
