package catalog

import (
	"fmt"

	"github.com/funvibe/apisearch/internal/lowtype"
)

type parameterNode struct {
	Type     typeNode `yaml:"type"`
	Label    string   `yaml:"label,omitempty"`
	Optional bool     `yaml:"optional,omitempty"`
}

func parameterToNode(p lowtype.Parameter) parameterNode {
	return parameterNode{Type: typeToNode(p.Type), Label: p.Label, Optional: p.Optional}
}

func nodeToParameter(n parameterNode) (lowtype.Parameter, error) {
	t, err := nodeToType(n.Type)
	if err != nil {
		return lowtype.Parameter{}, err
	}
	return lowtype.Parameter{Type: t, Label: n.Label, Optional: n.Optional}, nil
}

func parameterGroupsToNodes(groups lowtype.ParameterGroups) [][]parameterNode {
	if groups == nil {
		return nil
	}
	out := make([][]parameterNode, len(groups))
	for i, segment := range groups {
		seg := make([]parameterNode, len(segment))
		for j, p := range segment {
			seg[j] = parameterToNode(p)
		}
		out[i] = seg
	}
	return out
}

func nodesToParameterGroups(nodes [][]parameterNode) (lowtype.ParameterGroups, error) {
	if nodes == nil {
		return nil, nil
	}
	groups := make(lowtype.ParameterGroups, len(nodes))
	for i, segment := range nodes {
		seg := make([]lowtype.Parameter, len(segment))
		for j, n := range segment {
			p, err := nodeToParameter(n)
			if err != nil {
				return nil, err
			}
			seg[j] = p
		}
		groups[i] = seg
	}
	return groups, nil
}

var memberKindNames = map[lowtype.MemberKind]string{
	lowtype.Method:         "method",
	lowtype.PropertyGet:    "propertyGet",
	lowtype.PropertySet:    "propertySet",
	lowtype.PropertyGetSet: "propertyGetSet",
	lowtype.Field:          "field",
}

func memberKindName(k lowtype.MemberKind) string {
	if n, ok := memberKindNames[k]; ok {
		return n
	}
	return "method"
}

func memberKindFromName(s string) lowtype.MemberKind {
	for k, n := range memberKindNames {
		if n == s {
			return k
		}
	}
	return lowtype.Method
}

type memberNode struct {
	Name            string          `yaml:"name"`
	Kind            string          `yaml:"kind"`
	GenericParams   []typeVarNode   `yaml:"genericParams,omitempty"`
	Parameters      [][]parameterNode `yaml:"parameters,omitempty"`
	ReturnParameter parameterNode   `yaml:"returnParameter"`
}

func memberToNode(m lowtype.Member) memberNode {
	return memberNode{
		Name:            m.Name,
		Kind:            memberKindName(m.Kind),
		GenericParams:   typeVarsToNodes(m.GenericParams),
		Parameters:      parameterGroupsToNodes(m.Parameters),
		ReturnParameter: parameterToNode(m.ReturnParameter),
	}
}

func nodeToMember(n memberNode) (lowtype.Member, error) {
	groups, err := nodesToParameterGroups(n.Parameters)
	if err != nil {
		return lowtype.Member{}, err
	}
	ret, err := nodeToParameter(n.ReturnParameter)
	if err != nil {
		return lowtype.Member{}, err
	}
	return lowtype.Member{
		Name:            n.Name,
		Kind:            memberKindFromName(n.Kind),
		GenericParams:   nodesToTypeVars(n.GenericParams),
		Parameters:      groups,
		ReturnParameter: ret,
	}, nil
}

var apiSignatureKindNames = map[lowtype.ApiSignatureKind]string{
	lowtype.ModuleValueKind:                "moduleValue",
	lowtype.ModuleFunctionKind:              "moduleFunction",
	lowtype.ActivePatternFullKind:           "activePatternFull",
	lowtype.ActivePatternPartialKind:        "activePatternPartial",
	lowtype.InstanceMemberKind:              "instanceMember",
	lowtype.StaticMemberKind:                "staticMember",
	lowtype.ConstructorKind:                 "constructor",
	lowtype.ModuleDefinitionKind:            "moduleDefinition",
	lowtype.FullTypeDefinitionKind:          "fullTypeDefinition",
	lowtype.TypeAbbreviationKind:            "typeAbbreviation",
	lowtype.TypeExtensionKind:               "typeExtension",
	lowtype.ExtensionMemberKind:             "extensionMember",
	lowtype.UnionCaseKind:                   "unionCase",
	lowtype.ComputationExpressionBuilderKind: "computationExpressionBuilder",
}

func apiSignatureKindName(k lowtype.ApiSignatureKind) string {
	if n, ok := apiSignatureKindNames[k]; ok {
		return n
	}
	return "moduleValue"
}

func apiSignatureKindFromName(s string) (lowtype.ApiSignatureKind, error) {
	for k, n := range apiSignatureKindNames {
		if n == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown ApiSignature kind %q", s)
}

// apiNode is the YAML-facing shape of lowtype.Api. Only the fields
// relevant to Kind are populated on write, mirroring ApiSignature's own
// "Kind selects the live fields" discipline.
type apiNode struct {
	Name        []nameItemNode       `yaml:"name"`
	Kind        string               `yaml:"kind"`
	ValueType   *typeNode            `yaml:"valueType,omitempty"`
	Function    *memberNode          `yaml:"function,omitempty"`
	DeclaringType *typeNode          `yaml:"declaringType,omitempty"`
	Member      *memberNode          `yaml:"member,omitempty"`
	ModuleName  []nameItemNode       `yaml:"moduleName,omitempty"`
	TypeDefinition *typeDefinitionNode `yaml:"typeDefinition,omitempty"`
	Abbreviation   *typeAbbreviationNode `yaml:"abbreviationDef,omitempty"`
	Builder        *builderNode       `yaml:"builder,omitempty"`
	Constraints    []typeConstraintNode `yaml:"constraints,omitempty"`
	Doc            string             `yaml:"doc,omitempty"`
}

func apiToNode(api lowtype.Api) apiNode {
	n := apiNode{
		Name:        displayNameToNodes(api.Name),
		Kind:        apiSignatureKindName(api.Signature.Kind),
		Doc:         api.Doc,
		Constraints: typeConstraintsToNodes(api.Constraints),
	}
	sig := api.Signature
	switch sig.Kind {
	case lowtype.ModuleValueKind:
		t := typeToNode(sig.ValueType)
		n.ValueType = &t
	case lowtype.ModuleFunctionKind, lowtype.ActivePatternFullKind, lowtype.ActivePatternPartialKind:
		f := memberToNode(sig.Function)
		n.Function = &f
	case lowtype.InstanceMemberKind, lowtype.StaticMemberKind, lowtype.ConstructorKind:
		d := typeToNode(sig.DeclaringType)
		m := memberToNode(sig.Member)
		n.DeclaringType, n.Member = &d, &m
	case lowtype.ModuleDefinitionKind:
		n.ModuleName = displayNameToNodes(sig.ModuleName)
	case lowtype.FullTypeDefinitionKind:
		d := typeDefinitionToNode(sig.TypeDefinition)
		n.TypeDefinition = &d
	case lowtype.TypeAbbreviationKind:
		a := typeAbbreviationToNode(sig.Abbreviation)
		n.Abbreviation = &a
	case lowtype.ComputationExpressionBuilderKind:
		b := builderToNode(sig.Builder)
		n.Builder = &b
	}
	return n
}

func nodeToApi(n apiNode) (lowtype.Api, error) {
	kind, err := apiSignatureKindFromName(n.Kind)
	if err != nil {
		return lowtype.Api{}, err
	}
	sig := lowtype.ApiSignature{Kind: kind}
	switch kind {
	case lowtype.ModuleValueKind:
		if n.ValueType == nil {
			return lowtype.Api{}, fmt.Errorf("moduleValue api %q missing valueType", n.Name)
		}
		t, err := nodeToType(*n.ValueType)
		if err != nil {
			return lowtype.Api{}, err
		}
		sig.ValueType = t
	case lowtype.ModuleFunctionKind, lowtype.ActivePatternFullKind, lowtype.ActivePatternPartialKind:
		if n.Function == nil {
			return lowtype.Api{}, fmt.Errorf("function api %q missing function", n.Name)
		}
		f, err := nodeToMember(*n.Function)
		if err != nil {
			return lowtype.Api{}, err
		}
		sig.Function = f
	case lowtype.InstanceMemberKind, lowtype.StaticMemberKind, lowtype.ConstructorKind:
		if n.DeclaringType == nil || n.Member == nil {
			return lowtype.Api{}, fmt.Errorf("member api %q missing declaringType/member", n.Name)
		}
		d, err := nodeToType(*n.DeclaringType)
		if err != nil {
			return lowtype.Api{}, err
		}
		m, err := nodeToMember(*n.Member)
		if err != nil {
			return lowtype.Api{}, err
		}
		sig.DeclaringType, sig.Member = d, m
	case lowtype.ModuleDefinitionKind:
		sig.ModuleName = nodesToDisplayName(n.ModuleName)
	case lowtype.FullTypeDefinitionKind:
		if n.TypeDefinition == nil {
			return lowtype.Api{}, fmt.Errorf("fullTypeDefinition api %q missing typeDefinition", n.Name)
		}
		def, err := nodeToTypeDefinition(*n.TypeDefinition)
		if err != nil {
			return lowtype.Api{}, err
		}
		sig.TypeDefinition = def
	case lowtype.TypeAbbreviationKind:
		if n.Abbreviation == nil {
			return lowtype.Api{}, fmt.Errorf("typeAbbreviation api %q missing abbreviationDef", n.Name)
		}
		abbr, err := nodeToTypeAbbreviation(*n.Abbreviation)
		if err != nil {
			return lowtype.Api{}, err
		}
		sig.Abbreviation = abbr
	case lowtype.ComputationExpressionBuilderKind:
		if n.Builder == nil {
			return lowtype.Api{}, fmt.Errorf("computationExpressionBuilder api %q missing builder", n.Name)
		}
		b, err := nodeToBuilder(*n.Builder)
		if err != nil {
			return lowtype.Api{}, err
		}
		sig.Builder = b
	}
	constraints, err := nodesToTypeConstraints(n.Constraints)
	if err != nil {
		return lowtype.Api{}, err
	}
	return lowtype.Api{
		Name:        nodesToDisplayName(n.Name),
		Signature:   sig,
		Constraints: constraints,
		Doc:         n.Doc,
	}, nil
}

type builderNode struct {
	BuilderType                identityNode `yaml:"builderType"`
	ComputationExpressionTypes []typeNode   `yaml:"computationExpressionTypes,omitempty"`
	Syntaxes                   []string     `yaml:"syntaxes,omitempty"`
}

func builderToNode(b lowtype.Builder) builderNode {
	syntaxes := make([]string, 0, len(b.Syntaxes))
	for s := range b.Syntaxes {
		syntaxes = append(syntaxes, s)
	}
	return builderNode{
		BuilderType:                identityToNode(b.BuilderType),
		ComputationExpressionTypes: typesToNodes(b.ComputationExpressionTypes),
		Syntaxes:                   syntaxes,
	}
}

func nodeToBuilder(n builderNode) (lowtype.Builder, error) {
	types, err := nodesToTypes(n.ComputationExpressionTypes)
	if err != nil {
		return lowtype.Builder{}, err
	}
	syntaxes := make(map[string]bool, len(n.Syntaxes))
	for _, s := range n.Syntaxes {
		syntaxes[s] = true
	}
	return lowtype.Builder{
		BuilderType:                nodeToIdentity(n.BuilderType),
		ComputationExpressionTypes: types,
		Syntaxes:                   syntaxes,
	}, nil
}
