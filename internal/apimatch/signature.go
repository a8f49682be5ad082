package apimatch

import "github.com/funvibe/apisearch/internal/lowtype"

// ExtractSignatureType implements the "ApiSignature → matchable LowType"
// mapping SignatureMatcher needs (§4.3). The bool result is false for
// API shapes that don't participate in signature matching at all.
func ExtractSignatureType(api lowtype.Api) (lowtype.Type, bool) {
	sig := api.Signature
	switch sig.Kind {
	case lowtype.ModuleValueKind:
		return sig.ValueType, true

	case lowtype.ModuleFunctionKind, lowtype.ActivePatternFullKind, lowtype.ActivePatternPartialKind:
		return sig.Function.Arrow(), true

	case lowtype.InstanceMemberKind:
		return sig.Member.ArrowWithReceiver(sig.DeclaringType), true

	case lowtype.StaticMemberKind, lowtype.ConstructorKind:
		return sig.Member.Arrow(), true

	case lowtype.ExtensionMemberKind:
		// The loader has already flattened the receiver into the
		// member's own parameters for this shape, unlike TypeExtensionKind
		// below, which still carries ExistingType separately.
		return sig.Extension.Member.Arrow(), true

	case lowtype.TypeExtensionKind:
		ext := sig.Extension
		if ext.IsInstance {
			return ext.Member.ArrowWithReceiver(ext.ExistingType), true
		}
		return ext.Member.Arrow(), true

	case lowtype.UnionCaseKind:
		groups := make(lowtype.ParameterGroups, len(sig.Case.Fields))
		for i, f := range sig.Case.Fields {
			groups[i] = []lowtype.Parameter{f}
		}
		return groups.Arrow(sig.Case.DeclaringType), true

	default:
		return nil, false
	}
}
