package loader

import (
	"testing"

	"github.com/funvibe/apisearch/internal/lowtype"
)

// TestLoad_RealPackage exercises the loader against a real, already-built
// package from the standard library, the same way the teacher's inspector
// tests itself against a real dependency rather than a synthetic fixture.
func TestLoad_RealPackage(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping go/packages load in short mode")
	}

	dictionaries, err := Load("strings")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(dictionaries) != 1 {
		t.Fatalf("expected 1 dictionary, got %d", len(dictionaries))
	}
	dict := dictionaries[0]
	if dict.AssemblyName != "strings" {
		t.Fatalf("AssemblyName = %q, want strings", dict.AssemblyName)
	}

	var found bool
	for _, api := range dict.Apis {
		if api.Name.String() != "ToUpper" {
			continue
		}
		found = true
		if api.Signature.Kind != lowtype.ModuleFunctionKind {
			t.Fatalf("ToUpper: Kind = %v, want ModuleFunctionKind", api.Signature.Kind)
		}
		arrow, ok := api.Signature.Function.Arrow().(lowtype.Arrow)
		if !ok {
			t.Fatalf("ToUpper: expected a 2-element Arrow, got %#v", api.Signature.Function.Arrow())
		}
		if len(arrow.Elements) != 2 {
			t.Fatalf("ToUpper: Arrow length = %d, want 2", len(arrow.Elements))
		}
	}
	if !found {
		t.Fatal("expected strings.ToUpper in the loaded dictionary")
	}
}

func TestDisplayName_InnermostFirst(t *testing.T) {
	name := displayName("Foo", "Bar")
	if name.String() != "Bar.Foo" {
		t.Fatalf("String() = %q, want Bar.Foo", name.String())
	}
	if name.Head().Part.Display != "Foo" {
		t.Fatalf("Head() = %q, want Foo", name.Head().Part.Display)
	}
}

func TestConvertResults_MultiValueFoldsIntoTuple(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping go/packages load in short mode")
	}
	dictionaries, err := Load("strconv")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	var atoi lowtype.Api
	var found bool
	for _, api := range dictionaries[0].Apis {
		if api.Name.String() == "Atoi" {
			atoi, found = api, true
		}
	}
	if !found {
		t.Fatal("expected strconv.Atoi in the loaded dictionary")
	}
	arrow, ok := atoi.Signature.Function.Arrow().(lowtype.Arrow)
	if !ok || len(arrow.Elements) != 2 {
		t.Fatalf("Atoi: expected a 2-element Arrow, got %#v", atoi.Signature.Function.Arrow())
	}
	if _, ok := arrow.Elements[1].(lowtype.Tuple); !ok {
		t.Fatalf("Atoi: expected the (int, error) result folded into a Tuple, got %#v", arrow.Elements[1])
	}
}
