package lowtype

import (
	"fmt"
	"strings"
)

// VariableSource tags which side of a match a Variable came from.
// Variables from different sources never alias by name (§3 invariant 4):
// they may only be related through the Equations store.
type VariableSource int

const (
	Query VariableSource = iota
	Target
)

func (s VariableSource) String() string {
	if s == Target {
		return "target"
	}
	return "query"
}

// Type is the LowType language (§3). It is a closed, tagged variant —
// every implementation lives in this file and the matcher dispatches on
// the tag, never on dynamic method behavior (§9 "Avoid dynamic dispatch").
type Type interface {
	isLowType()
	String() string
}

// Wildcard matches anything; Tag is a correlation label. Two Wildcards
// sharing a Tag are required to resolve to the same type (§4.2 rule 2).
type Wildcard struct {
	Tag string // "" when untagged
}

func (Wildcard) isLowType() {}
func (w Wildcard) String() string {
	if w.Tag == "" {
		return "?"
	}
	return "?" + w.Tag
}

// Variable is a type variable carrying which side of the match it came
// from (§3 invariant 4).
type Variable struct {
	Source VariableSource
	Var    TypeVariable
}

func (Variable) isLowType() {}
func (v Variable) String() string { return "'" + v.Var.Name }

// IdentityType is a named type reference.
type IdentityType struct {
	Identity Identity
}

func (IdentityType) isLowType() {}
func (t IdentityType) String() string { return t.Identity.String() }

// Arrow is a curried function type; length must be >= 2 (§3 invariant 2).
// Optional runs parallel to Elements: Optional[i] records whether the
// originating Parameter at that position was declared optional, so the
// matcher's complementation rule (§4.2 "Optional-parameter
// complementation") can tell a droppable trailing parameter from a
// required one after ParameterGroups.Arrow has flattened that structure
// away. It is nil (all required) for Arrows built directly from query
// text rather than from a catalog Member.
type Arrow struct {
	Elements []Type
	Optional []bool
}

func (Arrow) isLowType() {}
func (a Arrow) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return strings.Join(parts, " -> ")
}

// Tuple is an ordered tuple, value/reference flavor; length must be >= 2.
type Tuple struct {
	Elements []Type
	IsStruct bool
}

func (Tuple) isLowType() {}
func (t Tuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	open := "("
	if t.IsStruct {
		open = "struct ("
	}
	return open + strings.Join(parts, " * ") + ")"
}

// Generic is an applied type constructor; Args must be non-empty
// (§3 invariant 2).
type Generic struct {
	Constructor Type
	Args        []Type
}

func (Generic) isLowType() {}
func (g Generic) String() string {
	parts := make([]string, len(g.Args))
	for i, a := range g.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", g.Constructor.String(), strings.Join(parts, ", "))
}

// TypeAbbreviation preserves both the abbreviation and the original form
// it stands for (§3 invariant 3: Original is never itself an
// abbreviation).
type TypeAbbreviation struct {
	Abbreviation Type
	Original     Type
}

func (TypeAbbreviation) isLowType() {}
func (t TypeAbbreviation) String() string { return t.Abbreviation.String() }

// Delegate is a callable with a nominal wrapper (e.g. a .NET delegate
// type or, here, a named function-object type distinct from a plain
// Arrow).
type Delegate struct {
	DelegateType   Identity
	SignatureTypes []Type // treated as an Arrow for matching (§4.2 rule 10)
}

func (Delegate) isLowType() {}
func (d Delegate) String() string { return d.DelegateType.String() }

// AsArrow returns the Delegate's signature as an Arrow, for the unwrap
// step in §4.2 rule 10.
func (d Delegate) AsArrow() Arrow { return Arrow{Elements: d.SignatureTypes} }

// Choice is a disjunction; it matches if any alternative matches
// (§4.2 rule 9).
type Choice struct {
	Alternatives []Type
}

func (Choice) isLowType() {}
func (c Choice) String() string {
	parts := make([]string, len(c.Alternatives))
	for i, a := range c.Alternatives {
		parts[i] = a.String()
	}
	return "(" + strings.Join(parts, " | ") + ")"
}
