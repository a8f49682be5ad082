package equations

import (
	"github.com/funvibe/apisearch/internal/config"
	"github.com/funvibe/apisearch/internal/lowtype"
)

// Context bundles the per-match accumulator threaded through the low-type
// matcher and API matchers (§4.1): a non-negative Distance, the Equations
// store, a map of naming substitutions, a map of subtype-constraint
// residuals, and the active Options. A Context is never shared across
// items in the catalog scan — each (dictionary, api) pair gets its own
// starting from InitialContext (§4.4, §5 "Context is per-item and never
// shared").
type Context struct {
	Distance     int
	Equations    Equations
	Substitutions map[string]lowtype.Type
	SubtypeResiduals map[string][]lowtype.Type
	Options      config.Options
}

// New creates a fresh, zero-distance Context for the given Options.
func New(opts config.Options) Context {
	return Context{
		Distance:      0,
		Equations:     Empty(),
		Substitutions: make(map[string]lowtype.Type),
		SubtypeResiduals: make(map[string][]lowtype.Type),
		Options:       opts,
	}
}

// WithDistance returns a copy of the Context with Distance incremented by
// delta. Distance only ever increases (§4.1: "starts at 0 and increases
// monotonically").
func (c Context) WithDistance(delta int) Context {
	c.Distance += delta
	return c
}

// WithEquations returns a copy of the Context with its Equations store
// replaced.
func (c Context) WithEquations(eq Equations) Context {
	c.Equations = eq
	return c
}

// WithSubstitution returns a copy of the Context recording that name now
// maps to t, cloning the substitution map so the original Context (e.g.
// on a failed branch) is untouched.
func (c Context) WithSubstitution(name string, t lowtype.Type) Context {
	next := make(map[string]lowtype.Type, len(c.Substitutions)+1)
	for k, v := range c.Substitutions {
		next[k] = v
	}
	next[name] = t
	c.Substitutions = next
	return c
}

// WithSubtypeResidual records that name still owes a subtype-constraint
// check against supertype, deferred until the constraint solver runs.
func (c Context) WithSubtypeResidual(name string, supertype lowtype.Type) Context {
	next := make(map[string][]lowtype.Type, len(c.SubtypeResiduals)+1)
	for k, v := range c.SubtypeResiduals {
		next[k] = v
	}
	next[name] = append(append([]lowtype.Type{}, next[name]...), supertype)
	c.SubtypeResiduals = next
	return c
}

// Result is either Matched(ctx) or Failure. There is no partial result
// (§4.1 MatchingResult): testing composes by threading ctx through each
// step, short-circuiting on Failure.
type Result struct {
	ok  bool
	ctx Context
}

// Matched wraps a successful Context.
func Matched(ctx Context) Result { return Result{ok: true, ctx: ctx} }

// Failure is the shared failed result — it carries no context because
// none survives a failed match.
var Failure = Result{ok: false}

// OK reports whether this Result is Matched.
func (r Result) OK() bool { return r.ok }

// Context returns the matched Context. Only valid when OK() is true.
func (r Result) Context() Context { return r.ctx }

// Then runs f against this Result's Context if it matched, propagating
// Failure otherwise. This is the composition primitive every matcher
// pipeline uses to thread ctx through successive steps (§4.1).
func (r Result) Then(f func(Context) Result) Result {
	if !r.ok {
		return Failure
	}
	return f(r.ctx)
}
