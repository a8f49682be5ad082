package catalog

import (
	"fmt"

	"github.com/funvibe/apisearch/internal/lowtype"
)

var typeDefKindNames = map[lowtype.TypeDefKind]string{
	lowtype.ClassKind:       "class",
	lowtype.InterfaceKind:   "interface",
	lowtype.TypeKind:        "type",
	lowtype.UnionKind:       "union",
	lowtype.RecordKind:      "record",
	lowtype.EnumerationKind: "enumeration",
}

func typeDefKindName(k lowtype.TypeDefKind) string {
	if n, ok := typeDefKindNames[k]; ok {
		return n
	}
	return "class"
}

func typeDefKindFromName(s string) lowtype.TypeDefKind {
	for k, n := range typeDefKindNames {
		if n == s {
			return k
		}
	}
	return lowtype.ClassKind
}

var statusKindNames = map[lowtype.StatusKind]string{
	lowtype.Satisfy:    "satisfy",
	lowtype.NotSatisfy: "notSatisfy",
	lowtype.Dependence: "dependence",
}

func statusKindName(k lowtype.StatusKind) string {
	if n, ok := statusKindNames[k]; ok {
		return n
	}
	return "satisfy"
}

func statusKindFromName(s string) lowtype.StatusKind {
	for k, n := range statusKindNames {
		if n == s {
			return k
		}
	}
	return lowtype.Satisfy
}

type statusNode struct {
	Kind      string        `yaml:"kind"`
	DependsOn []typeVarNode `yaml:"dependsOn,omitempty"`
}

func statusToNode(s lowtype.ConstraintStatus) statusNode {
	return statusNode{Kind: statusKindName(s.Kind), DependsOn: typeVarsToNodes(s.DependsOn)}
}

func nodeToStatus(n statusNode) lowtype.ConstraintStatus {
	return lowtype.ConstraintStatus{Kind: statusKindFromName(n.Kind), DependsOn: nodesToTypeVars(n.DependsOn)}
}

// typeDefinitionNode is the YAML-facing shape of lowtype.FullTypeDefinition.
type typeDefinitionNode struct {
	Name              []nameItemNode `yaml:"name"`
	Assembly          string         `yaml:"assembly,omitempty"`
	Accessibility     string         `yaml:"accessibility,omitempty"`
	Kind              string         `yaml:"kind"`
	BaseType          *identityNode  `yaml:"baseType,omitempty"`
	Interfaces        []identityNode `yaml:"interfaces,omitempty"`
	GenericParams     []typeVarNode  `yaml:"genericParams,omitempty"`
	Constraints       []typeConstraintNode `yaml:"constraints,omitempty"`
	InstanceMembers   []memberNode   `yaml:"instanceMembers,omitempty"`
	StaticMembers     []memberNode   `yaml:"staticMembers,omitempty"`
	ImplicitMembers   []memberNode   `yaml:"implicitMembers,omitempty"`

	SupportsNull          statusNode `yaml:"supportsNull"`
	IsReferenceType       statusNode `yaml:"isReferenceType"`
	IsValueType           statusNode `yaml:"isValueType"`
	HasDefaultConstructor statusNode `yaml:"hasDefaultConstructor"`
	SupportsEquality      statusNode `yaml:"supportsEquality"`
	SupportsComparison    statusNode `yaml:"supportsComparison"`
}

func membersToNodes(members []lowtype.Member) []memberNode {
	if members == nil {
		return nil
	}
	out := make([]memberNode, len(members))
	for i, m := range members {
		out[i] = memberToNode(m)
	}
	return out
}

func nodesToMembers(nodes []memberNode) ([]lowtype.Member, error) {
	if nodes == nil {
		return nil, nil
	}
	out := make([]lowtype.Member, len(nodes))
	for i, n := range nodes {
		m, err := nodeToMember(n)
		if err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}

func identitiesToNodes(ids []lowtype.Identity) []identityNode {
	if ids == nil {
		return nil
	}
	out := make([]identityNode, len(ids))
	for i, id := range ids {
		out[i] = identityToNode(id)
	}
	return out
}

func nodesToIdentities(nodes []identityNode) []lowtype.Identity {
	if nodes == nil {
		return nil
	}
	out := make([]lowtype.Identity, len(nodes))
	for i, n := range nodes {
		out[i] = nodeToIdentity(n)
	}
	return out
}

func typeDefinitionToNode(d lowtype.FullTypeDefinition) typeDefinitionNode {
	n := typeDefinitionNode{
		Name:                  displayNameToNodes(d.Name),
		Assembly:              d.Assembly,
		Accessibility:         d.Accessibility,
		Kind:                  typeDefKindName(d.Kind),
		Interfaces:            identitiesToNodes(d.Interfaces),
		GenericParams:         typeVarsToNodes(d.GenericParams),
		Constraints:           typeConstraintsToNodes(d.Constraints),
		InstanceMembers:       membersToNodes(d.InstanceMembers),
		StaticMembers:         membersToNodes(d.StaticMembers),
		ImplicitMembers:       membersToNodes(d.ImplicitMembers),
		SupportsNull:          statusToNode(d.SupportsNull),
		IsReferenceType:       statusToNode(d.IsReferenceType),
		IsValueType:           statusToNode(d.IsValueType),
		HasDefaultConstructor: statusToNode(d.HasDefaultConstructor),
		SupportsEquality:      statusToNode(d.SupportsEquality),
		SupportsComparison:    statusToNode(d.SupportsComparison),
	}
	if d.BaseType != nil {
		b := identityToNode(*d.BaseType)
		n.BaseType = &b
	}
	return n
}

func nodeToTypeDefinition(n typeDefinitionNode) (lowtype.FullTypeDefinition, error) {
	instance, err := nodesToMembers(n.InstanceMembers)
	if err != nil {
		return lowtype.FullTypeDefinition{}, err
	}
	static, err := nodesToMembers(n.StaticMembers)
	if err != nil {
		return lowtype.FullTypeDefinition{}, err
	}
	implicit, err := nodesToMembers(n.ImplicitMembers)
	if err != nil {
		return lowtype.FullTypeDefinition{}, err
	}
	constraints, err := nodesToTypeConstraints(n.Constraints)
	if err != nil {
		return lowtype.FullTypeDefinition{}, err
	}
	d := lowtype.FullTypeDefinition{
		Name:                  nodesToDisplayName(n.Name),
		Assembly:              n.Assembly,
		Accessibility:         n.Accessibility,
		Kind:                  typeDefKindFromName(n.Kind),
		Interfaces:            nodesToIdentities(n.Interfaces),
		GenericParams:         nodesToTypeVars(n.GenericParams),
		Constraints:           constraints,
		InstanceMembers:       instance,
		StaticMembers:         static,
		ImplicitMembers:       implicit,
		SupportsNull:          nodeToStatus(n.SupportsNull),
		IsReferenceType:       nodeToStatus(n.IsReferenceType),
		IsValueType:           nodeToStatus(n.IsValueType),
		HasDefaultConstructor: nodeToStatus(n.HasDefaultConstructor),
		SupportsEquality:      nodeToStatus(n.SupportsEquality),
		SupportsComparison:    nodeToStatus(n.SupportsComparison),
	}
	if n.BaseType != nil {
		b := nodeToIdentity(*n.BaseType)
		d.BaseType = &b
	}
	return d, nil
}

// typeAbbreviationNode is the YAML-facing shape of
// lowtype.TypeAbbreviationDefinition.
type typeAbbreviationNode struct {
	Name          []nameItemNode `yaml:"name"`
	Assembly      string         `yaml:"assembly,omitempty"`
	Accessibility string         `yaml:"accessibility,omitempty"`
	GenericParams []typeVarNode  `yaml:"genericParams,omitempty"`
	Abbreviation  typeNode       `yaml:"abbreviation"`
	Original      typeNode       `yaml:"original"`
}

func typeAbbreviationToNode(a lowtype.TypeAbbreviationDefinition) typeAbbreviationNode {
	return typeAbbreviationNode{
		Name:          displayNameToNodes(a.Name),
		Assembly:      a.Assembly,
		Accessibility: a.Accessibility,
		GenericParams: typeVarsToNodes(a.GenericParams),
		Abbreviation:  typeToNode(a.Abbreviation),
		Original:      typeToNode(a.Original),
	}
}

func nodeToTypeAbbreviation(n typeAbbreviationNode) (lowtype.TypeAbbreviationDefinition, error) {
	abbr, err := nodeToType(n.Abbreviation)
	if err != nil {
		return lowtype.TypeAbbreviationDefinition{}, err
	}
	orig, err := nodeToType(n.Original)
	if err != nil {
		return lowtype.TypeAbbreviationDefinition{}, err
	}
	return lowtype.TypeAbbreviationDefinition{
		Name:          nodesToDisplayName(n.Name),
		Assembly:      n.Assembly,
		Accessibility: n.Accessibility,
		GenericParams: nodesToTypeVars(n.GenericParams),
		Abbreviation:  abbr,
		Original:      orig,
	}, nil
}

var constraintKindNames = map[lowtype.ConstraintKind]string{
	lowtype.SubtypeOf:           "subtypeOf",
	lowtype.Nullable:            "nullable",
	lowtype.MemberConstraint:    "memberConstraint",
	lowtype.DefaultConstructor:  "defaultConstructor",
	lowtype.ValueType:           "valueType",
	lowtype.ReferenceType:       "referenceType",
	lowtype.Enumeration:         "enumeration",
	lowtype.DelegateConstraint:  "delegateConstraint",
	lowtype.Unmanaged:           "unmanaged",
	lowtype.Equality:            "equality",
	lowtype.Comparison:          "comparison",
}

func constraintKindName(k lowtype.ConstraintKind) string {
	if n, ok := constraintKindNames[k]; ok {
		return n
	}
	return "subtypeOf"
}

func constraintKindFromName(s string) (lowtype.ConstraintKind, error) {
	for k, n := range constraintKindNames {
		if n == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown constraint kind %q", s)
}

type constraintNode struct {
	Kind      string      `yaml:"kind"`
	Supertype *typeNode   `yaml:"supertype,omitempty"`
	Member    *memberNode `yaml:"member,omitempty"`
	IsStatic  bool        `yaml:"isStatic,omitempty"`
}

func constraintToNode(c lowtype.Constraint) constraintNode {
	n := constraintNode{Kind: constraintKindName(c.Kind), IsStatic: c.IsStatic}
	if c.Kind == lowtype.SubtypeOf && c.Supertype != nil {
		t := typeToNode(c.Supertype)
		n.Supertype = &t
	}
	if c.Kind == lowtype.MemberConstraint {
		m := memberToNode(c.Member)
		n.Member = &m
	}
	return n
}

func nodeToConstraint(n constraintNode) (lowtype.Constraint, error) {
	kind, err := constraintKindFromName(n.Kind)
	if err != nil {
		return lowtype.Constraint{}, err
	}
	c := lowtype.Constraint{Kind: kind, IsStatic: n.IsStatic}
	if n.Supertype != nil {
		t, err := nodeToType(*n.Supertype)
		if err != nil {
			return lowtype.Constraint{}, err
		}
		c.Supertype = t
	}
	if n.Member != nil {
		m, err := nodeToMember(*n.Member)
		if err != nil {
			return lowtype.Constraint{}, err
		}
		c.Member = m
	}
	return c, nil
}

type typeConstraintNode struct {
	Variables  []typeVarNode  `yaml:"variables"`
	Constraint constraintNode `yaml:"constraint"`
}

func typeConstraintsToNodes(in []lowtype.TypeConstraint) []typeConstraintNode {
	if in == nil {
		return nil
	}
	out := make([]typeConstraintNode, len(in))
	for i, tc := range in {
		out[i] = typeConstraintNode{Variables: typeVarsToNodes(tc.Variables), Constraint: constraintToNode(tc.Constraint)}
	}
	return out
}

func nodesToTypeConstraints(in []typeConstraintNode) ([]lowtype.TypeConstraint, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]lowtype.TypeConstraint, len(in))
	for i, n := range in {
		c, err := nodeToConstraint(n.Constraint)
		if err != nil {
			return nil, err
		}
		out[i] = lowtype.TypeConstraint{Variables: nodesToTypeVars(n.Variables), Constraint: c}
	}
	return out, nil
}
