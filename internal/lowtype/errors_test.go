package lowtype

import "testing"

func nm(name string) DisplayName {
	return DisplayName{{Part: Symbol(name)}}
}

func partial(name string) Type {
	return IdentityType{Identity: NewPartialIdentity(nm(name), 0)}
}

func TestValidateShapeRejectsArityOneArrow(t *testing.T) {
	err := ValidateShape(Arrow{Elements: []Type{partial("int")}})
	if err == nil {
		t.Fatal("expected an error for an arity-1 Arrow")
	}
	if _, ok := err.(*ContractViolationError); !ok {
		t.Fatalf("expected *ContractViolationError, got %T", err)
	}
}

func TestValidateShapeAcceptsWellFormedTree(t *testing.T) {
	ok := Arrow{Elements: []Type{
		Generic{Constructor: partial("List"), Args: []Type{partial("int")}},
		Tuple{Elements: []Type{partial("string"), partial("bool")}},
	}}
	if err := ValidateShape(ok); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateDictionaryCatchesViolationInsideModuleFunction(t *testing.T) {
	dict := ApiDictionary{
		AssemblyName: "FSharp.Core",
		Apis: []Api{
			{
				Name: nm("bad"),
				Signature: ApiSignature{
					Kind: ModuleFunctionKind,
					Function: Member{
						Name:            "bad",
						ReturnParameter: Parameter{Type: Tuple{Elements: []Type{partial("int")}}},
					},
				},
			},
		},
	}
	err := ValidateDictionary(dict)
	if err == nil {
		t.Fatal("expected an error for a Tuple with a single element")
	}
	cv, ok := err.(*ContractViolationError)
	if !ok {
		t.Fatalf("expected *ContractViolationError, got %T", err)
	}
	if cv.Entity == "" {
		t.Fatalf("expected a non-empty entity identifying the offending api, got %#v", cv)
	}
}

func TestValidateDictionaryAcceptsWellFormedDictionary(t *testing.T) {
	dict := ApiDictionary{
		AssemblyName: "FSharp.Core",
		Apis: []Api{
			{Name: nm("id"), Signature: ApiSignature{Kind: ModuleValueKind, ValueType: partial("a")}},
		},
	}
	if err := ValidateDictionary(dict); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
