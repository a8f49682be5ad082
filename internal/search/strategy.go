package search

import (
	"github.com/funvibe/apisearch/internal/apimatch"
	"github.com/funvibe/apisearch/internal/config"
	"github.com/funvibe/apisearch/internal/equations"
	"github.com/funvibe/apisearch/internal/lowtype"
	"github.com/funvibe/apisearch/internal/matcher"
	"github.com/funvibe/apisearch/internal/query"
)

// Strategy is the Initialization Strategy (§4.4): one per Mode, each
// assembling the matcher pipeline, parsing query text, and seeding the
// per-search Context.
type Strategy interface {
	// Matchers returns the Low-Type Matcher entry point plus the ordered
	// API matcher pipeline this mode runs.
	Matchers(opts config.Options) (apimatch.LowTypeMatcherFunc, []apimatch.Matcher)
	// ParseQuery turns query text into the abstract Query surface.
	ParseQuery(text string) (query.Query, error)
	// InitializeQuery rewrites q's LowTypes: binds bare identifiers to
	// known identities found in dictionaries where possible, and ensures
	// every free variable in the query carries source=Query.
	InitializeQuery(q query.Query, dictionaries []lowtype.ApiDictionary, opts config.Options) query.Query
	// InitialContext seeds a fresh Context: Distance=0, plus anti-match
	// inequalities recorded for every tagged Wildcard in q so that two
	// distinctly-tagged wildcards are never permitted to unify with each
	// other by accident later in the scan.
	InitialContext(q query.Query, dictionaries []lowtype.ApiDictionary, opts config.Options) equations.Context
}

// ForMode resolves the Strategy implementing opts.Mode (§4.4: "two
// strategies exist, one per Mode").
func ForMode(opts config.Options) Strategy {
	if opts.Mode == config.Secondary {
		return SecondaryStrategy{}
	}
	return PrimaryStrategy{}
}

// StandardPipeline is the matcher sequence both strategies use — the
// four canonical API matchers in the order §4.3 lists them. Neither
// strategy changes *which* matchers run; the primary/secondary
// distinction lives entirely in InitializeQuery's normalization and in
// the name-equality policy options already carried on Context (§4.4:
// "uses name equality that distinguishes symbol vs compiled forms...";
// "applies additional normalization before matching").
func StandardPipeline() []apimatch.Matcher {
	pipeline, err := apimatch.Pipeline("name", "signature", "activePattern", "constraintSolver")
	if err != nil {
		// The four names are registered by apimatch's own init(); a
		// lookup failure here would mean that registration was removed,
		// a programming error rather than a runtime condition to recover
		// from.
		panic(err)
	}
	return pipeline
}

// PrimaryStrategy is the primary-dialect strategy (§4.4): name equality
// distinguishes symbol vs compiled forms, curried arrows are preserved
// as-is, and operator semantics apply unmodified — i.e. no query
// rewriting beyond identity binding and variable tagging.
type PrimaryStrategy struct{}

func (PrimaryStrategy) Matchers(config.Options) (apimatch.LowTypeMatcherFunc, []apimatch.Matcher) {
	return matcher.Test, StandardPipeline()
}

func (PrimaryStrategy) ParseQuery(text string) (query.Query, error) {
	return query.ParseQuery(text)
}

func (PrimaryStrategy) InitializeQuery(q query.Query, dictionaries []lowtype.ApiDictionary, opts config.Options) query.Query {
	return initializeQuery(q, dictionaries, opts, nil)
}

func (PrimaryStrategy) InitialContext(q query.Query, dictionaries []lowtype.ApiDictionary, opts config.Options) equations.Context {
	return seedInitialContext(q, opts)
}

// SecondaryStrategy is the secondary-dialect strategy (§4.4): it applies
// additional normalization before matching — built-in aliases map to
// canonical identities, tuple-like argument blocks normalize to
// positional parameter lists, and arrow chains compress to the
// built-in function-constructor encoding.
type SecondaryStrategy struct{}

func (SecondaryStrategy) Matchers(config.Options) (apimatch.LowTypeMatcherFunc, []apimatch.Matcher) {
	return matcher.Test, StandardPipeline()
}

func (SecondaryStrategy) ParseQuery(text string) (query.Query, error) {
	return query.ParseQuery(text)
}

func (SecondaryStrategy) InitializeQuery(q query.Query, dictionaries []lowtype.ApiDictionary, opts config.Options) query.Query {
	return initializeQuery(q, dictionaries, opts, normalizeSecondary)
}

func (SecondaryStrategy) InitialContext(q query.Query, dictionaries []lowtype.ApiDictionary, opts config.Options) equations.Context {
	return seedInitialContext(q, opts)
}

// builtinAliases maps a secondary-dialect built-in alias to its
// canonical identity name, e.g. F#'s "int" to "Int32".
var builtinAliases = map[string]string{
	"int":    "Int32",
	"float":  "Double",
	"string": "String",
	"bool":   "Boolean",
	"unit":   "Unit",
	"obj":    "Object",
}

// functionConstructorName is the canonical constructor secondary-dialect
// arrow chains compress to.
const functionConstructorName = "FSharpFunc"

// initializeQuery rewrites q's signature-bearing LowTypes (§4.4): binds
// bare PartialIdentity references to a FullIdentity found among
// dictionaries' type definitions/abbreviations where one exists, then
// ensures every free Variable in the query carries source=Query, and
// finally runs an optional extra per-mode normalizer.
func initializeQuery(q query.Query, dictionaries []lowtype.ApiDictionary, opts config.Options, extra func(lowtype.Type) lowtype.Type) query.Query {
	index := buildIdentityIndex(dictionaries)
	rewrite := func(t lowtype.Type) lowtype.Type {
		t = bindKnownIdentities(t, index, bool(opts.IgnoreCase))
		t = tagQuerySourceVariables(t)
		if extra != nil {
			t = extra(t)
		}
		return t
	}
	if q.Method.HasSignature() {
		q.Method.Signature.Type = rewrite(q.Method.Signature.Type)
	}
	if q.Method.Kind == query.ByActivePattern {
		q.Method.ActivePattern.Arrow = rewrite(q.Method.ActivePattern.Arrow)
	}
	if q.Method.Kind == query.ByComputationExpression {
		q.Method.ComputationExpression.Type = rewrite(q.Method.ComputationExpression.Type)
	}
	return q
}

// identityIndex maps a DisplayName's rendered string to the full
// identity it resolves to, built once from every FullTypeDefinition and
// TypeAbbreviationDefinition across the target dictionaries.
type identityIndex struct {
	toFull        map[string]lowtype.Identity
	toAbbreviated map[string]lowtype.TypeAbbreviationDefinition
}

func buildIdentityIndex(dictionaries []lowtype.ApiDictionary) identityIndex {
	idx := identityIndex{
		toFull:        make(map[string]lowtype.Identity),
		toAbbreviated: make(map[string]lowtype.TypeAbbreviationDefinition),
	}
	for _, dict := range dictionaries {
		for _, def := range dict.TypeDefinitions {
			idx.toFull[def.Name.String()] = lowtype.NewFullIdentity(def.Assembly, def.Name, len(def.GenericParams))
		}
		for _, abbr := range dict.TypeAbbreviations {
			idx.toAbbreviated[abbr.Name.String()] = abbr
		}
	}
	return idx
}

// bindKnownIdentities rewrites every bare PartialIdentity IdentityType
// reachable in t to a FullIdentity, or to a TypeAbbreviation, when the
// index resolves its display name — "bind bare identifiers to known
// identities where possible" (§4.4).
func bindKnownIdentities(t lowtype.Type, index identityIndex, ignoreCase bool) lowtype.Type {
	if t == nil {
		return nil
	}
	switch v := t.(type) {
	case lowtype.IdentityType:
		if !v.Identity.IsPartial() {
			return v
		}
		name := v.Identity.Name.String()
		if abbr, ok := index.toAbbreviated[name]; ok {
			return lowtype.TypeAbbreviation{Abbreviation: v, Original: abbr.Original}
		}
		if full, ok := index.toFull[name]; ok {
			return lowtype.IdentityType{Identity: full}
		}
		return v
	case lowtype.Arrow:
		return lowtype.Arrow{Elements: mapTypes(v.Elements, index, ignoreCase), Optional: v.Optional}
	case lowtype.Tuple:
		return lowtype.Tuple{Elements: mapTypes(v.Elements, index, ignoreCase), IsStruct: v.IsStruct}
	case lowtype.Generic:
		return lowtype.Generic{
			Constructor: bindKnownIdentities(v.Constructor, index, ignoreCase),
			Args:        mapTypes(v.Args, index, ignoreCase),
		}
	case lowtype.Choice:
		return lowtype.Choice{Alternatives: mapTypes(v.Alternatives, index, ignoreCase)}
	case lowtype.TypeAbbreviation:
		return lowtype.TypeAbbreviation{
			Abbreviation: bindKnownIdentities(v.Abbreviation, index, ignoreCase),
			Original:     bindKnownIdentities(v.Original, index, ignoreCase),
		}
	default:
		return v
	}
}

func mapTypes(in []lowtype.Type, index identityIndex, ignoreCase bool) []lowtype.Type {
	out := make([]lowtype.Type, len(in))
	for i, t := range in {
		out[i] = bindKnownIdentities(t, index, ignoreCase)
	}
	return out
}

// tagQuerySourceVariables rewrites every Variable reachable in t to
// carry Source=Query, regardless of how the parser built it — "tag free
// variables with source=Query" (§4.4).
func tagQuerySourceVariables(t lowtype.Type) lowtype.Type {
	switch v := t.(type) {
	case lowtype.Variable:
		v.Source = lowtype.Query
		return v
	case lowtype.Arrow:
		return lowtype.Arrow{Elements: tagAll(v.Elements), Optional: v.Optional}
	case lowtype.Tuple:
		return lowtype.Tuple{Elements: tagAll(v.Elements), IsStruct: v.IsStruct}
	case lowtype.Generic:
		return lowtype.Generic{Constructor: tagQuerySourceVariables(v.Constructor), Args: tagAll(v.Args)}
	case lowtype.Choice:
		return lowtype.Choice{Alternatives: tagAll(v.Alternatives)}
	case lowtype.TypeAbbreviation:
		return lowtype.TypeAbbreviation{
			Abbreviation: tagQuerySourceVariables(v.Abbreviation),
			Original:     tagQuerySourceVariables(v.Original),
		}
	default:
		return v
	}
}

func tagAll(in []lowtype.Type) []lowtype.Type {
	out := make([]lowtype.Type, len(in))
	for i, t := range in {
		out[i] = tagQuerySourceVariables(t)
	}
	return out
}

// normalizeSecondary applies the secondary dialect's three extra
// rewrites (§4.4): built-in alias canonicalization, tuple-block
// flattening to a positional parameter list, and arrow-chain
// compression to the built-in function constructor.
func normalizeSecondary(t lowtype.Type) lowtype.Type {
	t = canonicalizeAliases(t)
	t = flattenNestedTuples(t)
	return compressArrowChain(t)
}

func canonicalizeAliases(t lowtype.Type) lowtype.Type {
	switch v := t.(type) {
	case lowtype.IdentityType:
		if v.Identity.IsPartial() && len(v.Identity.Name) > 0 {
			if canonical, ok := builtinAliases[v.Identity.Name.Head().Part.Display]; ok {
				name := v.Identity.Name
				head := name.Head()
				head.Part = lowtype.Symbol(canonical)
				rewritten := append(lowtype.DisplayName{head}, name.Tail()...)
				return lowtype.IdentityType{Identity: lowtype.NewPartialIdentity(rewritten, v.Identity.GenericParamCount)}
			}
		}
		return v
	case lowtype.Arrow:
		return lowtype.Arrow{Elements: mapEach(v.Elements, canonicalizeAliases), Optional: v.Optional}
	case lowtype.Tuple:
		return lowtype.Tuple{Elements: mapEach(v.Elements, canonicalizeAliases), IsStruct: v.IsStruct}
	case lowtype.Generic:
		return lowtype.Generic{Constructor: canonicalizeAliases(v.Constructor), Args: mapEach(v.Args, canonicalizeAliases)}
	case lowtype.Choice:
		return lowtype.Choice{Alternatives: mapEach(v.Alternatives, canonicalizeAliases)}
	default:
		return v
	}
}

// flattenNestedTuples collapses a Tuple directly nesting another Tuple
// into one flat, positional Tuple — "tuple-like argument blocks
// normalized to positional parameter lists."
func flattenNestedTuples(t lowtype.Type) lowtype.Type {
	switch v := t.(type) {
	case lowtype.Tuple:
		flat := make([]lowtype.Type, 0, len(v.Elements))
		for _, e := range v.Elements {
			e = flattenNestedTuples(e)
			if nested, ok := e.(lowtype.Tuple); ok && nested.IsStruct == v.IsStruct {
				flat = append(flat, nested.Elements...)
				continue
			}
			flat = append(flat, e)
		}
		return lowtype.Tuple{Elements: flat, IsStruct: v.IsStruct}
	case lowtype.Arrow:
		return lowtype.Arrow{Elements: mapEach(v.Elements, flattenNestedTuples), Optional: v.Optional}
	case lowtype.Generic:
		return lowtype.Generic{Constructor: flattenNestedTuples(v.Constructor), Args: mapEach(v.Args, flattenNestedTuples)}
	case lowtype.Choice:
		return lowtype.Choice{Alternatives: mapEach(v.Alternatives, flattenNestedTuples)}
	default:
		return v
	}
}

// compressArrowChain rewrites a curried Arrow of length > 2 into nested
// two-argument Generic applications of the built-in function
// constructor: `a -> b -> c` becomes `FSharpFunc<a, FSharpFunc<b, c>>`.
func compressArrowChain(t lowtype.Type) lowtype.Type {
	switch v := t.(type) {
	case lowtype.Arrow:
		elements := mapEach(v.Elements, compressArrowChain)
		return compressArrowElements(elements)
	case lowtype.Tuple:
		return lowtype.Tuple{Elements: mapEach(v.Elements, compressArrowChain), IsStruct: v.IsStruct}
	case lowtype.Generic:
		return lowtype.Generic{Constructor: compressArrowChain(v.Constructor), Args: mapEach(v.Args, compressArrowChain)}
	case lowtype.Choice:
		return lowtype.Choice{Alternatives: mapEach(v.Alternatives, compressArrowChain)}
	default:
		return v
	}
}

func compressArrowElements(elements []lowtype.Type) lowtype.Type {
	if len(elements) < 2 {
		if len(elements) == 1 {
			return elements[0]
		}
		return nil
	}
	if len(elements) == 2 {
		return functionConstructor(elements[0], elements[1])
	}
	return functionConstructor(elements[0], compressArrowElements(elements[1:]))
}

func functionConstructor(param, result lowtype.Type) lowtype.Type {
	return lowtype.Generic{
		Constructor: lowtype.IdentityType{Identity: lowtype.NewPartialIdentity(
			lowtype.DisplayName{{Part: lowtype.Symbol(functionConstructorName)}}, 2,
		)},
		Args: []lowtype.Type{param, result},
	}
}

func mapEach(in []lowtype.Type, f func(lowtype.Type) lowtype.Type) []lowtype.Type {
	out := make([]lowtype.Type, len(in))
	for i, t := range in {
		out[i] = f(t)
	}
	return out
}

// seedInitialContext implements §4.4's InitialContext: Distance=0 (via
// equations.New) plus an anti-match inequality for every pair of
// distinctly-tagged Wildcards in q's signature, so two differently
// correlated holes are never later allowed to accidentally unify with
// each other through an unrelated equality chain.
func seedInitialContext(q query.Query, opts config.Options) equations.Context {
	ctx := equations.New(opts)
	if !q.Method.HasSignature() {
		return ctx
	}
	tags := distinctWildcardTags(q.Method.Signature.Type)
	for i := 0; i < len(tags); i++ {
		for j := i + 1; j < len(tags); j++ {
			if eq, ok := ctx.Equations.AddInequality(lowtype.Wildcard{Tag: tags[i]}, lowtype.Wildcard{Tag: tags[j]}); ok {
				ctx = ctx.WithEquations(eq)
			}
		}
	}
	return ctx
}

func distinctWildcardTags(t lowtype.Type) []string {
	seen := map[string]bool{}
	var tags []string
	var walk func(lowtype.Type)
	walk = func(t lowtype.Type) {
		switch v := t.(type) {
		case lowtype.Wildcard:
			if v.Tag != "" && !seen[v.Tag] {
				seen[v.Tag] = true
				tags = append(tags, v.Tag)
			}
		case lowtype.Arrow:
			for _, e := range v.Elements {
				walk(e)
			}
		case lowtype.Tuple:
			for _, e := range v.Elements {
				walk(e)
			}
		case lowtype.Generic:
			walk(v.Constructor)
			for _, a := range v.Args {
				walk(a)
			}
		case lowtype.Choice:
			for _, a := range v.Alternatives {
				walk(a)
			}
		case lowtype.TypeAbbreviation:
			walk(v.Abbreviation)
			walk(v.Original)
		}
	}
	walk(t)
	return tags
}
