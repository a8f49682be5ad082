package lowtype

// ConstraintKind tags the Constraint variants (§3).
type ConstraintKind int

const (
	SubtypeOf ConstraintKind = iota
	Nullable
	MemberConstraint
	DefaultConstructor
	ValueType
	ReferenceType
	Enumeration
	DelegateConstraint
	Unmanaged
	Equality
	Comparison
)

// Constraint is one of the kinds above; only the fields relevant to Kind
// are populated (SupertypeOf for SubtypeOf, Member/IsStatic for
// MemberConstraint).
type Constraint struct {
	Kind       ConstraintKind
	Supertype  Type   // SubtypeOf
	Member     Member // MemberConstraint
	IsStatic   bool   // MemberConstraint
}

// TypeConstraint is a set of variables and a Constraint that jointly
// applies to them.
type TypeConstraint struct {
	Variables  []TypeVariable
	Constraint Constraint
}

// StatusKind tags a precomputed constraint-status flag (§3
// FullTypeDefinition): each of the six statuses is Satisfy, NotSatisfy, or
// Dependence(vars).
type StatusKind int

const (
	Satisfy StatusKind = iota
	NotSatisfy
	Dependence
)

// ConstraintStatus is one of Satisfy / NotSatisfy / Dependence(vars) — the
// last says "reduces to these variables' constraint resolution" (§3).
type ConstraintStatus struct {
	Kind            StatusKind
	DependsOn []TypeVariable // only set for Dependence
}

var StatusSatisfy = ConstraintStatus{Kind: Satisfy}
var StatusNotSatisfy = ConstraintStatus{Kind: NotSatisfy}

func StatusDependence(vars ...TypeVariable) ConstraintStatus {
	return ConstraintStatus{Kind: Dependence, DependsOn: vars}
}

// TypeDefKind tags FullTypeDefinition.Kind.
type TypeDefKind int

const (
	ClassKind TypeDefKind = iota
	InterfaceKind
	TypeKind
	UnionKind
	RecordKind
	EnumerationKind
)

// FullTypeDefinition describes a nominal type's shape for constraint
// resolution and signature extraction (§3).
type FullTypeDefinition struct {
	Name                DisplayName
	Assembly            string
	Accessibility       string
	Kind                TypeDefKind
	BaseType            *Identity
	Interfaces        []Identity
	GenericParams     []TypeVariable
	Constraints       []TypeConstraint
	InstanceMembers   []Member
	StaticMembers     []Member
	ImplicitMembers   []Member // inherited from BaseType

	SupportsNull        ConstraintStatus
	IsReferenceType      ConstraintStatus
	IsValueType          ConstraintStatus
	HasDefaultConstructor ConstraintStatus
	SupportsEquality     ConstraintStatus
	SupportsComparison   ConstraintStatus
}

// StatusFor returns the precomputed status for the given constraint kind,
// used by the constraint-propagation step (§4.2 "Constraint propagation").
func (d FullTypeDefinition) StatusFor(kind ConstraintKind) (ConstraintStatus, bool) {
	switch kind {
	case Nullable:
		return d.SupportsNull, true
	case ReferenceType:
		return d.IsReferenceType, true
	case ValueType:
		return d.IsValueType, true
	case DefaultConstructor:
		return d.HasDefaultConstructor, true
	case Equality:
		return d.SupportsEquality, true
	case Comparison:
		return d.SupportsComparison, true
	default:
		return ConstraintStatus{}, false
	}
}

// TypeAbbreviationDefinition names a type alias: the abbreviated name and
// its generic parameters, plus the original form it unfolds to.
type TypeAbbreviationDefinition struct {
	Name          DisplayName
	Assembly      string
	Accessibility string
	GenericParams []TypeVariable
	Abbreviation  Type
	Original      Type
}
