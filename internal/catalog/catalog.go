// Package catalog is the on-disk form of an lowtype.ApiDictionary: YAML
// (de)serialization, mirroring how internal/ext/config.go gives funxy.yaml
// a yaml.v3-tagged struct mapping rather than a hand-rolled parser, plus
// the concrete apimatch.DefinitionResolver a loaded catalog set backs.
package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/apisearch/internal/lowtype"
)

// ParseError reports a catalog document that failed to decode into a
// well-formed ApiDictionary — a dedicated error type rather than a bare
// yaml.TypeError, matching the two-tier error handling the rest of the
// repository uses for data-contract violations (§7).
type ParseError struct {
	Assembly string
	Reason   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("apisearch: catalog %q: %s", e.Assembly, e.Reason)
}

// document is the YAML-facing shape of an ApiDictionary. Every LowType
// value nested inside it goes through typeNode rather than being encoded
// directly, since lowtype.Type is a closed interface with no yaml tags of
// its own.
type document struct {
	AssemblyName      string                 `yaml:"assemblyName"`
	Apis              []apiNode              `yaml:"apis,omitempty"`
	TypeDefinitions   []typeDefinitionNode   `yaml:"typeDefinitions,omitempty"`
	TypeAbbreviations []typeAbbreviationNode `yaml:"typeAbbreviations,omitempty"`
}

// Marshal renders an ApiDictionary as a YAML document.
func Marshal(dict lowtype.ApiDictionary) ([]byte, error) {
	doc := document{AssemblyName: dict.AssemblyName}
	for _, api := range dict.Apis {
		doc.Apis = append(doc.Apis, apiToNode(api))
	}
	for _, def := range dict.TypeDefinitions {
		doc.TypeDefinitions = append(doc.TypeDefinitions, typeDefinitionToNode(def))
	}
	for _, abbr := range dict.TypeAbbreviations {
		doc.TypeAbbreviations = append(doc.TypeAbbreviations, typeAbbreviationToNode(abbr))
	}
	return yaml.Marshal(doc)
}

// Parse decodes a YAML document into an ApiDictionary.
func Parse(data []byte) (lowtype.ApiDictionary, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return lowtype.ApiDictionary{}, &ParseError{Reason: err.Error()}
	}
	dict := lowtype.ApiDictionary{AssemblyName: doc.AssemblyName}
	for _, n := range doc.Apis {
		api, err := nodeToApi(n)
		if err != nil {
			return lowtype.ApiDictionary{}, &ParseError{Assembly: doc.AssemblyName, Reason: err.Error()}
		}
		dict.Apis = append(dict.Apis, api)
	}
	for _, n := range doc.TypeDefinitions {
		def, err := nodeToTypeDefinition(n)
		if err != nil {
			return lowtype.ApiDictionary{}, &ParseError{Assembly: doc.AssemblyName, Reason: err.Error()}
		}
		dict.TypeDefinitions = append(dict.TypeDefinitions, def)
	}
	for _, n := range doc.TypeAbbreviations {
		abbr, err := nodeToTypeAbbreviation(n)
		if err != nil {
			return lowtype.ApiDictionary{}, &ParseError{Assembly: doc.AssemblyName, Reason: err.Error()}
		}
		dict.TypeAbbreviations = append(dict.TypeAbbreviations, abbr)
	}
	if err := lowtype.ValidateDictionary(dict); err != nil {
		return lowtype.ApiDictionary{}, &ParseError{Assembly: doc.AssemblyName, Reason: err.Error()}
	}
	return dict, nil
}
