package catalog

import "github.com/funvibe/apisearch/internal/lowtype"

// Resolver implements apimatch.DefinitionResolver against a fixed set of
// loaded ApiDictionary values, indexing every FullTypeDefinition by its
// Identity's rendered form so the ConstraintSolver can look one up by the
// concrete type a target-side variable was bound to.
type Resolver struct {
	definitions map[string]lowtype.FullTypeDefinition
}

// NewResolver indexes every TypeDefinition across dictionaries.
func NewResolver(dictionaries []lowtype.ApiDictionary) *Resolver {
	r := &Resolver{definitions: map[string]lowtype.FullTypeDefinition{}}
	for _, dict := range dictionaries {
		for _, def := range dict.TypeDefinitions {
			id := lowtype.NewFullIdentity(def.Assembly, def.Name, len(def.GenericParams))
			r.definitions[id.String()] = def
		}
	}
	return r
}

// ResolveTypeDefinition implements apimatch.DefinitionResolver.
func (r *Resolver) ResolveTypeDefinition(id lowtype.Identity) (lowtype.FullTypeDefinition, bool) {
	def, ok := r.definitions[id.String()]
	return def, ok
}
