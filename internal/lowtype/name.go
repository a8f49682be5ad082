// Package lowtype holds the type-structural data model the matcher and
// search driver operate over (§3): names, identities, the LowType
// language, members, constraints, and the catalog types (Api,
// ApiDictionary) they compose into.
package lowtype

import "strings"

// TypeVariable is a variable name plus a flag marking variables that must
// be resolved statically (the "compile-time-solve" family, e.g. a
// member-constraint's receiver). Two variables are equal iff both fields
// are equal.
type TypeVariable struct {
	Name            string
	NeedsStaticSolve bool
}

func (v TypeVariable) Equal(o TypeVariable) bool {
	return v.Name == o.Name && v.NeedsStaticSolve == o.NeedsStaticSolve
}

func (v TypeVariable) String() string { return v.Name }

// NamePartKind tags the variants of NamePart.
type NamePartKind int

const (
	// SymbolPart is a plain name segment ("List", "map").
	SymbolPart NamePartKind = iota
	// OperatorPart is an operator name carrying its compiled form
	// (e.g. display "+" compiles to "op_Addition").
	OperatorPart
	// WithCompiledNamePart is a symbol whose compiled form differs from
	// its displayed form for reasons other than operator encoding (case
	// transforms, escaped keywords).
	WithCompiledNamePart
)

// NamePart is a tagged value distinguishing plain symbols, operator names
// (with a compiled form), and symbols with a distinct compiled form.
// Equality is by displayed form; compiled forms only add distance, when
// RespectNameDifference is enabled (§4.2 "Name-difference cost").
type NamePart struct {
	Kind         NamePartKind
	Display      string
	CompiledForm string // only meaningful for Operator/WithCompiledName
}

// Symbol constructs a plain NamePart.
func Symbol(name string) NamePart { return NamePart{Kind: SymbolPart, Display: name} }

// Operator constructs an operator NamePart with its compiled form.
func Operator(display, compiled string) NamePart {
	return NamePart{Kind: OperatorPart, Display: display, CompiledForm: compiled}
}

// WithCompiledName constructs a NamePart whose compiled form differs from
// its display form without being an operator.
func WithCompiledName(display, compiled string) NamePart {
	return NamePart{Kind: WithCompiledNamePart, Display: display, CompiledForm: compiled}
}

// HasCompiledForm reports whether this part carries a compiled form
// distinct from its display form (§4.2 rule 10, "Name-difference cost").
func (n NamePart) HasCompiledForm() bool {
	return n.Kind != SymbolPart && n.CompiledForm != "" && n.CompiledForm != n.Display
}

// Equal compares two NameParts by displayed form, per §3 "Equality is by
// displayed form unless an equality variant specifies otherwise".
func (n NamePart) Equal(o NamePart, ignoreCase bool) bool {
	if ignoreCase {
		return strings.EqualFold(n.Display, o.Display)
	}
	return n.Display == o.Display
}

// DisplayNameItem is a NamePart together with the generic parameters
// declared at that segment (e.g. the `'a` in `List<'a>`'s own definition).
type DisplayNameItem struct {
	Part            NamePart
	GenericParams []TypeVariable
}

// DisplayName is an ordered sequence of DisplayNameItems, stored
// innermost-first: the type itself is index 0, enclosing modules/
// namespaces follow. Every algorithm that prints or compares names must
// honor this orientation (§3 invariant 5).
type DisplayName []DisplayNameItem

// Head is the innermost (leaf) segment, or the zero item if empty.
func (d DisplayName) Head() DisplayNameItem {
	if len(d) == 0 {
		return DisplayNameItem{}
	}
	return d[0]
}

// String renders outermost-first, the conventional reading order
// ("Module.Sub.Type"), by walking the innermost-first slice in reverse.
func (d DisplayName) String() string {
	parts := make([]string, len(d))
	for i, item := range d {
		parts[len(d)-1-i] = item.Part.Display
	}
	return strings.Join(parts, ".")
}

// Tail returns every segment but the innermost — the enclosing scope.
func (d DisplayName) Tail() DisplayName {
	if len(d) == 0 {
		return nil
	}
	return d[1:]
}
