package catalog

import (
	"fmt"

	"github.com/funvibe/apisearch/internal/lowtype"
)

// typeNode is the YAML-facing representation of lowtype.Type: one struct
// covering every variant, with only the fields relevant to Kind populated
// (the same "closed variant, Kind picks the live fields" shape
// lowtype.ApiSignature itself uses).
type typeNode struct {
	Kind string `yaml:"kind"`

	Tag string `yaml:"tag,omitempty"` // wildcard

	VariableSource   string `yaml:"source,omitempty"` // variable
	VariableName     string `yaml:"varName,omitempty"`
	NeedsStaticSolve bool   `yaml:"needsStaticSolve,omitempty"`

	Identity *identityNode `yaml:"identity,omitempty"` // identity

	Elements []typeNode `yaml:"elements,omitempty"` // arrow, tuple, choice (alternatives)
	Optional []bool     `yaml:"optional,omitempty"` // arrow
	IsStruct bool       `yaml:"isStruct,omitempty"`  // tuple

	Constructor *typeNode  `yaml:"constructor,omitempty"` // generic
	Args        []typeNode `yaml:"args,omitempty"`        // generic

	Abbreviation *typeNode `yaml:"abbreviation,omitempty"` // typeAbbreviation
	Original     *typeNode `yaml:"original,omitempty"`

	DelegateType   *identityNode `yaml:"delegateType,omitempty"` // delegate
	SignatureTypes []typeNode    `yaml:"signatureTypes,omitempty"`
}

func typeToNode(t lowtype.Type) typeNode {
	switch v := t.(type) {
	case lowtype.Wildcard:
		return typeNode{Kind: "wildcard", Tag: v.Tag}
	case lowtype.Variable:
		return typeNode{
			Kind:             "variable",
			VariableSource:   v.Source.String(),
			VariableName:     v.Var.Name,
			NeedsStaticSolve: v.Var.NeedsStaticSolve,
		}
	case lowtype.IdentityType:
		id := identityToNode(v.Identity)
		return typeNode{Kind: "identity", Identity: &id}
	case lowtype.Arrow:
		return typeNode{Kind: "arrow", Elements: typesToNodes(v.Elements), Optional: v.Optional}
	case lowtype.Tuple:
		return typeNode{Kind: "tuple", Elements: typesToNodes(v.Elements), IsStruct: v.IsStruct}
	case lowtype.Generic:
		ctor := typeToNode(v.Constructor)
		return typeNode{Kind: "generic", Constructor: &ctor, Args: typesToNodes(v.Args)}
	case lowtype.TypeAbbreviation:
		abbr, orig := typeToNode(v.Abbreviation), typeToNode(v.Original)
		return typeNode{Kind: "abbreviation", Abbreviation: &abbr, Original: &orig}
	case lowtype.Delegate:
		id := identityToNode(v.DelegateType)
		return typeNode{Kind: "delegate", DelegateType: &id, SignatureTypes: typesToNodes(v.SignatureTypes)}
	case lowtype.Choice:
		return typeNode{Kind: "choice", Elements: typesToNodes(v.Alternatives)}
	default:
		panic(fmt.Sprintf("catalog: unhandled lowtype.Type %T", t))
	}
}

func nodeToType(n typeNode) (lowtype.Type, error) {
	switch n.Kind {
	case "wildcard":
		return lowtype.Wildcard{Tag: n.Tag}, nil
	case "variable":
		source := lowtype.Query
		if n.VariableSource == lowtype.Target.String() {
			source = lowtype.Target
		}
		return lowtype.Variable{
			Source: source,
			Var:    lowtype.TypeVariable{Name: n.VariableName, NeedsStaticSolve: n.NeedsStaticSolve},
		}, nil
	case "identity":
		if n.Identity == nil {
			return nil, fmt.Errorf("identity node missing identity field")
		}
		return lowtype.IdentityType{Identity: nodeToIdentity(*n.Identity)}, nil
	case "arrow":
		elems, err := nodesToTypes(n.Elements)
		if err != nil {
			return nil, err
		}
		return lowtype.Arrow{Elements: elems, Optional: n.Optional}, nil
	case "tuple":
		elems, err := nodesToTypes(n.Elements)
		if err != nil {
			return nil, err
		}
		return lowtype.Tuple{Elements: elems, IsStruct: n.IsStruct}, nil
	case "generic":
		if n.Constructor == nil {
			return nil, fmt.Errorf("generic node missing constructor field")
		}
		ctor, err := nodeToType(*n.Constructor)
		if err != nil {
			return nil, err
		}
		args, err := nodesToTypes(n.Args)
		if err != nil {
			return nil, err
		}
		return lowtype.Generic{Constructor: ctor, Args: args}, nil
	case "abbreviation":
		if n.Abbreviation == nil || n.Original == nil {
			return nil, fmt.Errorf("abbreviation node missing abbreviation/original field")
		}
		abbr, err := nodeToType(*n.Abbreviation)
		if err != nil {
			return nil, err
		}
		orig, err := nodeToType(*n.Original)
		if err != nil {
			return nil, err
		}
		return lowtype.TypeAbbreviation{Abbreviation: abbr, Original: orig}, nil
	case "delegate":
		if n.DelegateType == nil {
			return nil, fmt.Errorf("delegate node missing delegateType field")
		}
		sig, err := nodesToTypes(n.SignatureTypes)
		if err != nil {
			return nil, err
		}
		return lowtype.Delegate{DelegateType: nodeToIdentity(*n.DelegateType), SignatureTypes: sig}, nil
	case "choice":
		alts, err := nodesToTypes(n.Elements)
		if err != nil {
			return nil, err
		}
		return lowtype.Choice{Alternatives: alts}, nil
	default:
		return nil, fmt.Errorf("unknown type node kind %q", n.Kind)
	}
}

func typesToNodes(in []lowtype.Type) []typeNode {
	if in == nil {
		return nil
	}
	out := make([]typeNode, len(in))
	for i, t := range in {
		out[i] = typeToNode(t)
	}
	return out
}

func nodesToTypes(in []typeNode) ([]lowtype.Type, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]lowtype.Type, len(in))
	for i, n := range in {
		t, err := nodeToType(n)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// identityNode is the YAML-facing shape of lowtype.Identity.
type identityNode struct {
	Full              bool           `yaml:"full"`
	Name              []nameItemNode `yaml:"name"`
	GenericParamCount int            `yaml:"genericParamCount"`
	AssemblyName      string         `yaml:"assemblyName,omitempty"`
}

func identityToNode(id lowtype.Identity) identityNode {
	return identityNode{
		Full:              id.IsFull(),
		Name:              displayNameToNodes(id.Name),
		GenericParamCount: id.GenericParamCount,
		AssemblyName:      id.AssemblyName,
	}
}

func nodeToIdentity(n identityNode) lowtype.Identity {
	name := nodesToDisplayName(n.Name)
	if n.Full {
		return lowtype.NewFullIdentity(n.AssemblyName, name, n.GenericParamCount)
	}
	return lowtype.NewPartialIdentity(name, n.GenericParamCount)
}

// nameItemNode is the YAML-facing shape of lowtype.DisplayNameItem.
type nameItemNode struct {
	Kind          string         `yaml:"kind"` // symbol, operator, compiledName
	Display       string         `yaml:"display"`
	CompiledForm  string         `yaml:"compiledForm,omitempty"`
	GenericParams []typeVarNode  `yaml:"genericParams,omitempty"`
}

type typeVarNode struct {
	Name             string `yaml:"name"`
	NeedsStaticSolve bool   `yaml:"needsStaticSolve,omitempty"`
}

func displayNameToNodes(name lowtype.DisplayName) []nameItemNode {
	if name == nil {
		return nil
	}
	out := make([]nameItemNode, len(name))
	for i, item := range name {
		out[i] = nameItemNode{
			Kind:          namePartKindString(item.Part.Kind),
			Display:       item.Part.Display,
			CompiledForm:  item.Part.CompiledForm,
			GenericParams: typeVarsToNodes(item.GenericParams),
		}
	}
	return out
}

func nodesToDisplayName(nodes []nameItemNode) lowtype.DisplayName {
	if nodes == nil {
		return nil
	}
	out := make(lowtype.DisplayName, len(nodes))
	for i, n := range nodes {
		part := lowtype.Symbol(n.Display)
		switch n.Kind {
		case "operator":
			part = lowtype.Operator(n.Display, n.CompiledForm)
		case "compiledName":
			part = lowtype.WithCompiledName(n.Display, n.CompiledForm)
		}
		out[i] = lowtype.DisplayNameItem{Part: part, GenericParams: nodesToTypeVars(n.GenericParams)}
	}
	return out
}

func namePartKindString(k lowtype.NamePartKind) string {
	switch k {
	case lowtype.OperatorPart:
		return "operator"
	case lowtype.WithCompiledNamePart:
		return "compiledName"
	default:
		return "symbol"
	}
}

func typeVarsToNodes(vars []lowtype.TypeVariable) []typeVarNode {
	if vars == nil {
		return nil
	}
	out := make([]typeVarNode, len(vars))
	for i, v := range vars {
		out[i] = typeVarNode{Name: v.Name, NeedsStaticSolve: v.NeedsStaticSolve}
	}
	return out
}

func nodesToTypeVars(nodes []typeVarNode) []lowtype.TypeVariable {
	if nodes == nil {
		return nil
	}
	out := make([]lowtype.TypeVariable, len(nodes))
	for i, n := range nodes {
		out[i] = lowtype.TypeVariable{Name: n.Name, NeedsStaticSolve: n.NeedsStaticSolve}
	}
	return out
}
