// Package fixture loads shared, multi-entry test fixtures from txtar
// archives: one reviewable text file holding many named catalog YAML
// documents, rather than one file per case scattered across testdata/.
// golang.org/x/tools/txtar is already part of the dependency graph
// transitively pulled in by golang.org/x/tools/go/packages.
package fixture

import (
	"fmt"
	"sort"

	"golang.org/x/tools/txtar"

	"github.com/funvibe/apisearch/internal/catalog"
	"github.com/funvibe/apisearch/internal/lowtype"
)

// MissingFileError reports a request for a named file the txtar archive
// doesn't contain.
type MissingFileError struct {
	Name string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("apisearch: fixture file %q not found in archive", e.Name)
}

// Archive wraps a parsed txtar.Archive, keyed by file name for lookup.
type Archive struct {
	files map[string][]byte
}

// Parse reads a txtar archive from data.
func Parse(data []byte) *Archive {
	a := txtar.Parse(data)
	files := make(map[string][]byte, len(a.Files))
	for _, f := range a.Files {
		files[f.Name] = f.Data
	}
	return &Archive{files: files}
}

// Raw returns the named file's raw bytes.
func (a *Archive) Raw(name string) ([]byte, error) {
	data, ok := a.files[name]
	if !ok {
		return nil, &MissingFileError{Name: name}
	}
	return data, nil
}

// Dictionary parses the named file as a catalog YAML document.
func (a *Archive) Dictionary(name string) (lowtype.ApiDictionary, error) {
	data, err := a.Raw(name)
	if err != nil {
		return lowtype.ApiDictionary{}, err
	}
	return catalog.Parse(data)
}

// Dictionaries parses every file in the archive whose name has the given
// prefix (e.g. "catalogs/") as a catalog YAML document, sorted by file name.
func (a *Archive) Dictionaries(prefix string) ([]lowtype.ApiDictionary, error) {
	var out []lowtype.ApiDictionary
	for _, name := range a.namesWithPrefix(prefix) {
		dict, err := a.Dictionary(name)
		if err != nil {
			return nil, err
		}
		out = append(out, dict)
	}
	return out, nil
}

func (a *Archive) namesWithPrefix(prefix string) []string {
	var names []string
	for name := range a.files {
		if len(name) >= len(prefix) && name[:len(prefix)] == prefix {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
