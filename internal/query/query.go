// Package query holds the abstract query surface the (out-of-scope)
// textual parser produces (§6 "Parser → core"): the Query type and its
// four QueryMethod shapes. Only this surface is specified; ParseQuery in
// this package is a minimal stand-in for the real parser, enough to
// drive the core's tests and the CLI front end.
package query

import (
	"regexp"

	"github.com/funvibe/apisearch/internal/lowtype"
)

// NameMatchMethod tags how a ByNameItem compares against a DisplayName
// segment.
type NameMatchMethod int

const (
	StringCompare NameMatchMethod = iota
	RegexMatch
	AnyName
)

// ByNameItem is one segment of a ByName query: an expected string (or
// compiled pattern), an optional expected generic-parameter count, and
// the comparison method.
type ByNameItem struct {
	Expected             string
	Method               NameMatchMethod
	Compiled             *regexp.Regexp // set when Method == RegexMatch
	GenericParamCount    int
	HasGenericParamCount bool
}

// SignatureKind tags whether a signature query slot is a bare wildcard
// or a concrete LowType.
type SignatureKind int

const (
	WildcardSignature SignatureKind = iota
	ConcreteSignature
)

// Signature is `sig ∈ {Wildcard, Signature(LowType)}` from §6.
type Signature struct {
	Kind SignatureKind
	Type lowtype.Type // set when Kind == ConcreteSignature
}

// ActivePatternSignature describes the shape an ActivePatternMatcher
// query targets (§4.3): an arrow-shaped signature with an optional
// wildcard prefix standing in for "any leading parameters".
type ActivePatternSignature struct {
	AnyParameter bool
	Arrow        lowtype.Type // an Arrow LowType, the pattern's own shape
}

// ComputationExpressionQuery describes a §4.6 builder search: the type
// the computation expression produces, plus the syntax forms the
// builder must support.
type ComputationExpressionQuery struct {
	Type     lowtype.Type
	Syntaxes map[string]bool
}

// QueryMethodKind tags the four QueryMethod variants.
type QueryMethodKind int

const (
	ByName QueryMethodKind = iota
	BySignature
	ByActivePattern
	ByComputationExpression
)

// QueryMethod is the closed variant `method ∈ {ByName(names, sig),
// BySignature(sig), ByActivePattern(ap), ByComputationExpression(ce)}`
// (§6).
type QueryMethod struct {
	Kind QueryMethodKind

	Names     []ByNameItem // ByName
	Signature Signature    // ByName (optional signature portion), BySignature

	ActivePattern ActivePatternSignature // ByActivePattern

	ComputationExpression ComputationExpressionQuery // ByComputationExpression
}

// HasSignature reports whether this method carries a signature portion
// to run through the SignatureMatcher — true for BySignature always,
// and for ByName when a non-wildcard Signature was supplied alongside
// the name pattern.
func (m QueryMethod) HasSignature() bool {
	switch m.Kind {
	case BySignature:
		return true
	case ByName:
		return m.Signature.Kind == ConcreteSignature
	default:
		return false
	}
}

// Query is `{originalString, method}` (§6).
type Query struct {
	OriginalString string
	Method         QueryMethod
}
