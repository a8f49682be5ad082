package lowtype

import "fmt"

// ContractViolationError reports a data-contract violation (§7): a fatal,
// non-recoverable condition raised at the one place the core can observe
// it — ingesting a dictionary, never mid-match. Grounded on
// typesystem.SymbolNotFoundError's shape in the teacher repo: a small
// struct with an Error() string and a constructor, not a generic
// "errors.New" call site.
type ContractViolationError struct {
	Entity string // what was offending, e.g. "Arrow" or "api Foo.bar"
	Reason string
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("apisearch: contract violation in %s: %s", e.Entity, e.Reason)
}

func NewContractViolationError(entity, reason string) *ContractViolationError {
	return &ContractViolationError{Entity: entity, Reason: reason}
}

// ValidateShape enforces §3 invariant 2 (Arrow length >= 2, Tuple length
// >= 2, Generic args non-empty) recursively over a LowType tree. The
// loader calls this once per ingested Api; the matcher itself never
// re-checks it mid-match (§7: fatal checks happen at ingestion only).
func ValidateShape(t Type) error {
	switch v := t.(type) {
	case Arrow:
		if len(v.Elements) < 2 {
			return NewContractViolationError("Arrow", "must have at least 2 elements")
		}
		for _, e := range v.Elements {
			if err := ValidateShape(e); err != nil {
				return err
			}
		}
	case Tuple:
		if len(v.Elements) < 2 {
			return NewContractViolationError("Tuple", "must have at least 2 elements")
		}
		for _, e := range v.Elements {
			if err := ValidateShape(e); err != nil {
				return err
			}
		}
	case Generic:
		if len(v.Args) < 1 {
			return NewContractViolationError("Generic", "must have at least 1 argument")
		}
		if err := ValidateShape(v.Constructor); err != nil {
			return err
		}
		for _, a := range v.Args {
			if err := ValidateShape(a); err != nil {
				return err
			}
		}
	case TypeAbbreviation:
		if _, ok := v.Original.(TypeAbbreviation); ok {
			return NewContractViolationError("TypeAbbreviation", "Original must not itself be a TypeAbbreviation")
		}
		if err := ValidateShape(v.Abbreviation); err != nil {
			return err
		}
		if err := ValidateShape(v.Original); err != nil {
			return err
		}
	case Choice:
		for _, a := range v.Alternatives {
			if err := ValidateShape(a); err != nil {
				return err
			}
		}
	}
	return nil
}

// ValidateDictionary runs ValidateShape over every Type reachable from an
// ApiDictionary's Apis, TypeDefinitions, and TypeAbbreviations (§7: the
// loader calls this once per ingested dictionary, before the core ever
// sees it). It is the one fatal check in the two-tier error model; a
// dictionary that fails it is never handed to the matcher.
func ValidateDictionary(dict ApiDictionary) error {
	for _, api := range dict.Apis {
		if err := validateApiSignature(api.Name.String(), api.Signature); err != nil {
			return err
		}
	}
	for _, def := range dict.TypeDefinitions {
		if err := validateTypeDefinition(def); err != nil {
			return err
		}
	}
	for _, abbr := range dict.TypeAbbreviations {
		if err := ValidateShape(abbr.Abbreviation); err != nil {
			return err
		}
		if err := ValidateShape(abbr.Original); err != nil {
			return err
		}
	}
	return nil
}

func validateApiSignature(name string, sig ApiSignature) error {
	entity := "api " + name
	switch sig.Kind {
	case ModuleValueKind:
		return wrapShapeError(entity, ValidateShape(sig.ValueType))
	case ModuleFunctionKind, ActivePatternFullKind, ActivePatternPartialKind:
		return wrapShapeError(entity, validateMember(sig.Function))
	case InstanceMemberKind, StaticMemberKind, ConstructorKind:
		if err := ValidateShape(sig.DeclaringType); err != nil {
			return wrapShapeError(entity, err)
		}
		return wrapShapeError(entity, validateMember(sig.Member))
	case FullTypeDefinitionKind:
		return validateTypeDefinition(sig.TypeDefinition)
	case TypeAbbreviationKind:
		if err := ValidateShape(sig.Abbreviation.Abbreviation); err != nil {
			return wrapShapeError(entity, err)
		}
		return wrapShapeError(entity, ValidateShape(sig.Abbreviation.Original))
	case TypeExtensionKind, ExtensionMemberKind:
		if err := ValidateShape(sig.Extension.ExistingType); err != nil {
			return wrapShapeError(entity, err)
		}
		return wrapShapeError(entity, validateMember(sig.Extension.Member))
	case UnionCaseKind:
		for _, f := range sig.Case.Fields {
			if err := ValidateShape(f.Type); err != nil {
				return wrapShapeError(entity, err)
			}
		}
		return wrapShapeError(entity, ValidateShape(sig.Case.DeclaringType))
	case ComputationExpressionBuilderKind:
		for _, t := range sig.Builder.ComputationExpressionTypes {
			if err := ValidateShape(t); err != nil {
				return wrapShapeError(entity, err)
			}
		}
	}
	return nil
}

func validateMember(m Member) error {
	for _, segment := range m.Parameters {
		for _, p := range segment {
			if err := ValidateShape(p.Type); err != nil {
				return err
			}
		}
	}
	return ValidateShape(m.ReturnParameter.Type)
}

func validateTypeDefinition(def FullTypeDefinition) error {
	entity := "type definition " + def.Name.String()
	for _, members := range [][]Member{def.InstanceMembers, def.StaticMembers, def.ImplicitMembers} {
		for _, m := range members {
			if err := validateMember(m); err != nil {
				return wrapShapeError(entity, err)
			}
		}
	}
	return nil
}

func wrapShapeError(entity string, err error) error {
	if err == nil {
		return nil
	}
	if cv, ok := err.(*ContractViolationError); ok {
		return NewContractViolationError(entity+": "+cv.Entity, cv.Reason)
	}
	return err
}
