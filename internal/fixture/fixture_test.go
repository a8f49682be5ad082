package fixture

import "testing"

const sampleArchive = `
-- catalogs/core.yaml --
assemblyName: FSharp.Core
apis:
  - name:
      - kind: symbol
        display: id
    kind: moduleFunction
    function:
      name: id
      kind: method
      parameters:
        - - type:
              kind: variable
              source: target
              varName: a
      returnParameter:
        type:
          kind: variable
          source: target
          varName: a
-- catalogs/collections.yaml --
assemblyName: FSharp.Collections
apis: []
-- notes.txt --
not a catalog, should be ignored by prefix lookup
`

func TestArchiveDictionaryParsesNamedFile(t *testing.T) {
	a := Parse([]byte(sampleArchive))
	dict, err := a.Dictionary("catalogs/core.yaml")
	if err != nil {
		t.Fatalf("Dictionary: %v", err)
	}
	if dict.AssemblyName != "FSharp.Core" {
		t.Fatalf("AssemblyName = %q", dict.AssemblyName)
	}
	if len(dict.Apis) != 1 || dict.Apis[0].Name.String() != "id" {
		t.Fatalf("unexpected apis: %#v", dict.Apis)
	}
}

func TestArchiveDictionaryMissingFile(t *testing.T) {
	a := Parse([]byte(sampleArchive))
	_, err := a.Dictionary("catalogs/missing.yaml")
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if _, ok := err.(*MissingFileError); !ok {
		t.Fatalf("expected *MissingFileError, got %T", err)
	}
}

func TestArchiveDictionariesByPrefix(t *testing.T) {
	a := Parse([]byte(sampleArchive))
	dicts, err := a.Dictionaries("catalogs/")
	if err != nil {
		t.Fatalf("Dictionaries: %v", err)
	}
	if len(dicts) != 2 {
		t.Fatalf("expected 2 catalogs under catalogs/, got %d", len(dicts))
	}
	if dicts[0].AssemblyName != "FSharp.Collections" || dicts[1].AssemblyName != "FSharp.Core" {
		t.Fatalf("expected sorted-by-name order, got %q then %q", dicts[0].AssemblyName, dicts[1].AssemblyName)
	}
}
