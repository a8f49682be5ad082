package apimatch

import (
	"github.com/funvibe/apisearch/internal/equations"
	"github.com/funvibe/apisearch/internal/lowtype"
	"github.com/funvibe/apisearch/internal/query"
)

// DefinitionResolver looks up a nominal type's FullTypeDefinition by
// Identity, the way the ConstraintSolver needs to inspect a bound
// variable's precomputed constraint-status flags or base-type chain.
// Implemented by package catalog against a loaded ApiDictionary set.
type DefinitionResolver interface {
	ResolveTypeDefinition(id lowtype.Identity) (lowtype.FullTypeDefinition, bool)
}

// ConstraintSolver is the final API matcher stage (§4.3): after every
// structural rule has succeeded, every constraint on the target
// signature's bound variables must be satisfiable against the query's
// bindings (§4.2 "Constraint propagation").
type ConstraintSolver struct {
	resolver DefinitionResolver
}

// NewConstraintSolver builds a ConstraintSolver. resolver may be nil —
// constraints on variables whose bound type can't be resolved to a
// definition are treated as unresolved rather than failed, matching
// "Dependence... may require recursion; must terminate" without ever
// blocking on missing catalog data.
func NewConstraintSolver(resolver DefinitionResolver) Matcher {
	return ConstraintSolver{resolver: resolver}
}

func (ConstraintSolver) Name() string { return "ConstraintSolver" }

func (c ConstraintSolver) Test(_ LowTypeMatcherFunc, _ query.Query, api lowtype.Api, ctx equations.Context) equations.Result {
	for _, tc := range api.Constraints {
		if !c.satisfies(tc, ctx, map[string]bool{}) {
			return equations.Failure
		}
	}
	return equations.Matched(ctx)
}

// satisfies checks one TypeConstraint's variables, recursing through
// Dependence statuses. visited guards against a Dependence cycle so the
// recursion always terminates on the (necessarily finite) variable set.
func (c ConstraintSolver) satisfies(tc lowtype.TypeConstraint, ctx equations.Context, visited map[string]bool) bool {
	for _, v := range tc.Variables {
		if visited[v.Name] {
			continue
		}
		visited[v.Name] = true

		bound, ok := resolveBinding(v, ctx)
		if !ok {
			continue // still free: nothing to check yet
		}
		status, ok := c.statusFor(bound, tc.Constraint)
		if !ok {
			continue // unresolvable against the catalog: not a failure
		}
		switch status.Kind {
		case lowtype.NotSatisfy:
			return false
		case lowtype.Dependence:
			dep := lowtype.TypeConstraint{Variables: status.DependsOn, Constraint: tc.Constraint}
			if !c.satisfies(dep, ctx, visited) {
				return false
			}
		}
	}
	return true
}

// resolveBinding finds the concrete type a target-side variable was
// unified with, if any, by scanning the equations store the low-type
// matcher populated.
func resolveBinding(v lowtype.TypeVariable, ctx equations.Context) (lowtype.Type, bool) {
	target := lowtype.Variable{Source: lowtype.Target, Var: v}
	for _, p := range ctx.Equations.FindEqualities(target) {
		other := p.B
		if lowtype.Equal(p.B, target) {
			other = p.A
		}
		if !lowtype.Equal(other, target) {
			return other, true
		}
	}
	return nil, false
}

// statusFor resolves a Constraint against a bound concrete type. Only
// an IdentityType can be checked (constraints are nominal); anything
// else is unresolvable, not a failure.
func (c ConstraintSolver) statusFor(bound lowtype.Type, constraint lowtype.Constraint) (lowtype.ConstraintStatus, bool) {
	id, ok := bound.(lowtype.IdentityType)
	if !ok || c.resolver == nil {
		return lowtype.ConstraintStatus{}, false
	}
	def, ok := c.resolver.ResolveTypeDefinition(id.Identity)
	if !ok {
		return lowtype.ConstraintStatus{}, false
	}
	if constraint.Kind == lowtype.SubtypeOf {
		return c.subtypeStatus(def, constraint.Supertype), true
	}
	return def.StatusFor(constraint.Kind)
}

// subtypeStatus walks the base-type chain (one hop; transitive
// supertypes are out of scope for this resolver) looking for
// constraint.Supertype among def's BaseType and Interfaces.
func (c ConstraintSolver) subtypeStatus(def lowtype.FullTypeDefinition, supertype lowtype.Type) lowtype.ConstraintStatus {
	superIdentity, ok := supertype.(lowtype.IdentityType)
	if !ok {
		return lowtype.StatusNotSatisfy
	}
	if def.BaseType != nil && lowtype.MatchIdentity(*def.BaseType, superIdentity.Identity, false) {
		return lowtype.StatusSatisfy
	}
	for _, iface := range def.Interfaces {
		if lowtype.MatchIdentity(iface, superIdentity.Identity, false) {
			return lowtype.StatusSatisfy
		}
	}
	return lowtype.StatusNotSatisfy
}
