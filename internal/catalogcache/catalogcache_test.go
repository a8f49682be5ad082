package catalogcache

import (
	"path/filepath"
	"testing"

	"github.com/funvibe/apisearch/internal/lowtype"
)

func sampleCatalogYAML() []byte {
	return []byte(`
assemblyName: FSharp.Core
apis:
  - name:
      - kind: symbol
        display: map
      - kind: symbol
        display: List
    kind: moduleFunction
    function:
      name: map
      kind: method
      parameters:
        - - type:
              kind: identity
              identity:
                full: false
                name:
                  - kind: symbol
                    display: a
                genericParamCount: 0
      returnParameter:
        type:
          kind: identity
          identity:
            full: false
            name:
              - kind: symbol
                display: a
            genericParamCount: 0
`)
}

func TestLoadOrParseCachesOnSecondCall(t *testing.T) {
	dir := t.TempDir()
	cache, err := Open(filepath.Join(dir, "catalog.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer cache.Close()

	source := sampleCatalogYAML()

	first, err := cache.LoadOrParse(source)
	if err != nil {
		t.Fatalf("LoadOrParse (miss): %v", err)
	}
	if first.AssemblyName != "FSharp.Core" {
		t.Fatalf("AssemblyName = %q", first.AssemblyName)
	}

	if _, ok, err := cache.Lookup(source); err != nil || !ok {
		t.Fatalf("expected a cache hit after the first LoadOrParse, ok=%v err=%v", ok, err)
	}

	second, err := cache.LoadOrParse(source)
	if err != nil {
		t.Fatalf("LoadOrParse (hit): %v", err)
	}
	if len(second.Apis) != len(first.Apis) {
		t.Fatalf("cached result diverged from the parsed one: %d vs %d apis", len(second.Apis), len(first.Apis))
	}
}

func TestStoreOverwritesExistingEntry(t *testing.T) {
	dir := t.TempDir()
	cache, err := Open(filepath.Join(dir, "catalog.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer cache.Close()

	source := []byte("irrelevant for this key")
	first := lowtype.ApiDictionary{AssemblyName: "First"}
	second := lowtype.ApiDictionary{AssemblyName: "Second"}

	if err := cache.Store(source, first); err != nil {
		t.Fatalf("Store (first): %v", err)
	}
	if err := cache.Store(source, second); err != nil {
		t.Fatalf("Store (second): %v", err)
	}
	got, ok, err := cache.Lookup(source)
	if err != nil || !ok {
		t.Fatalf("Lookup: ok=%v err=%v", ok, err)
	}
	if got.AssemblyName != "Second" {
		t.Fatalf("AssemblyName = %q, want Second (overwrite expected)", got.AssemblyName)
	}
}

func TestLookupMissReturnsFalseNotError(t *testing.T) {
	dir := t.TempDir()
	cache, err := Open(filepath.Join(dir, "catalog.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer cache.Close()

	_, ok, err := cache.Lookup([]byte("never stored"))
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if ok {
		t.Fatal("expected a cache miss")
	}
}
