package lowtype

// ApiSignatureKind tags the one variant per API shape (§3).
type ApiSignatureKind int

const (
	ModuleValueKind ApiSignatureKind = iota
	ModuleFunctionKind
	ActivePatternFullKind
	ActivePatternPartialKind
	InstanceMemberKind
	StaticMemberKind
	ConstructorKind
	ModuleDefinitionKind
	FullTypeDefinitionKind
	TypeAbbreviationKind
	TypeExtensionKind
	ExtensionMemberKind
	UnionCaseKind
	ComputationExpressionBuilderKind
)

// TypeExtension is the shape a TypeExtensionKind/ExtensionMemberKind
// signature carries: the type being extended and the extension member.
type TypeExtension struct {
	ExistingType Type
	Member       Member
	IsInstance   bool
}

// UnionCase is a union/DU case: its field types and the declaring type it
// constructs.
type UnionCase struct {
	Fields         []Parameter
	DeclaringType Type
}

// Builder describes a computation-expression builder (§4.6).
type Builder struct {
	BuilderType              Identity
	ComputationExpressionTypes []Type
	Syntaxes                  map[string]bool
}

// HasSyntax reports whether the builder supports every syntax in the
// given set — used by §4.6 phase 1's "builder's syntax set ⊇ the query's
// syntax set".
func (b Builder) HasSyntax(required map[string]bool) bool {
	for s := range required {
		if !b.Syntaxes[s] {
			return false
		}
	}
	return true
}

// ApiSignature is a closed variant, one case per API shape (§3). Only the
// fields relevant to Kind are populated.
type ApiSignature struct {
	Kind ApiSignatureKind

	// ModuleValueKind
	ValueType Type

	// ModuleFunctionKind, ActivePatternFullKind, ActivePatternPartialKind
	Function Member

	// InstanceMemberKind, StaticMemberKind, ConstructorKind
	DeclaringType Type
	Member        Member

	// ModuleDefinitionKind
	ModuleName DisplayName

	// FullTypeDefinitionKind
	TypeDefinition FullTypeDefinition

	// TypeAbbreviationKind
	Abbreviation TypeAbbreviationDefinition

	// TypeExtensionKind, ExtensionMemberKind
	Extension TypeExtension

	// UnionCaseKind
	Case UnionCase

	// ComputationExpressionBuilderKind
	Builder Builder
}

// Api is a single named catalog entry: name, signature, constraints, and
// optional documentation (§3).
type Api struct {
	Name        DisplayName
	Signature   ApiSignature
	Constraints []TypeConstraint
	Doc         string // "" when absent
}

// ApiDictionary is the immutable in-memory index of all APIs loaded from
// one assembly (§3). It is never mutated after loading (invariant 6).
type ApiDictionary struct {
	AssemblyName       string
	Apis                []Api
	TypeDefinitions    []FullTypeDefinition
	TypeAbbreviations  []TypeAbbreviationDefinition
}
