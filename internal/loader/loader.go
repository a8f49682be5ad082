// Package loader is the Reference Loader: a concrete, swappable
// implementation of "the loader" the core spec treats as an external
// collaborator (§6 "Loader → core"). It turns a real Go package's
// exported API into lowtype.ApiDictionary entries by walking
// go/types.Func/go/types.Signature, the same inspection task
// internal/ext/inspector.go performs to resolve FFI bindings — here
// turned toward building a searchable catalog instead of generating
// binding code.
package loader

import (
	"fmt"
	"go/types"
	"log"
	"os"
	"sort"

	"golang.org/x/tools/go/packages"

	"github.com/funvibe/apisearch/internal/lowtype"
)

var logger = log.New(os.Stderr, "", 0)

// LoadError wraps a go/packages load failure for one or more packages.
type LoadError struct {
	PkgPath string
	Reason  string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("apisearch: loading package %s: %s", e.PkgPath, e.Reason)
}

// Load resolves pkgPaths with go/packages and converts every exported
// package-level function, value, and named type into an
// lowtype.ApiDictionary, one per Go package (its PkgPath stands in for
// AssemblyName).
func Load(pkgPaths ...string) ([]lowtype.ApiDictionary, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName |
			packages.NeedTypes |
			packages.NeedTypesInfo |
			packages.NeedSyntax |
			packages.NeedImports |
			packages.NeedDeps,
		Env: os.Environ(),
	}
	pkgs, err := packages.Load(cfg, pkgPaths...)
	if err != nil {
		return nil, &LoadError{PkgPath: fmt.Sprint(pkgPaths), Reason: err.Error()}
	}

	dictionaries := make([]lowtype.ApiDictionary, 0, len(pkgs))
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			return nil, &LoadError{PkgPath: pkg.PkgPath, Reason: e.Msg}
		}
		dict := convertPackage(pkg)
		if err := lowtype.ValidateDictionary(dict); err != nil {
			return nil, &LoadError{PkgPath: pkg.PkgPath, Reason: err.Error()}
		}
		dictionaries = append(dictionaries, dict)
		logger.Printf("loader: converted %s (%d apis)", pkg.PkgPath, len(dict.Apis))
	}
	return dictionaries, nil
}

func convertPackage(pkg *packages.Package) lowtype.ApiDictionary {
	dict := lowtype.ApiDictionary{AssemblyName: pkg.PkgPath}
	if pkg.Types == nil {
		return dict
	}
	scope := pkg.Types.Scope()
	names := scope.Names()
	sort.Strings(names)

	for _, name := range names {
		obj := scope.Lookup(name)
		if !obj.Exported() {
			continue
		}
		switch o := obj.(type) {
		case *types.Func:
			sig, ok := o.Type().(*types.Signature)
			if !ok || sig.Recv() != nil {
				continue // instance methods are reached through their receiver's TypeName below
			}
			dict.Apis = append(dict.Apis, moduleFunctionApi(pkg.PkgPath, name, sig))
		case *types.Const, *types.Var:
			dict.Apis = append(dict.Apis, moduleValueApi(name, obj.Type()))
		case *types.TypeName:
			def, apis := typeDefinitionApis(pkg.PkgPath, name, o)
			dict.TypeDefinitions = append(dict.TypeDefinitions, def)
			dict.Apis = append(dict.Apis, apis...)
		}
	}
	return dict
}

func displayName(segments ...string) lowtype.DisplayName {
	items := make(lowtype.DisplayName, len(segments))
	for i, s := range segments {
		items[i] = lowtype.DisplayNameItem{Part: lowtype.Symbol(s)}
	}
	return items
}

func moduleValueApi(name string, t types.Type) lowtype.Api {
	return lowtype.Api{
		Name:      displayName(name),
		Signature: lowtype.ApiSignature{Kind: lowtype.ModuleValueKind, ValueType: convertType(t)},
	}
}

func moduleFunctionApi(pkgPath, name string, sig *types.Signature) lowtype.Api {
	return lowtype.Api{
		Name: displayName(name),
		Signature: lowtype.ApiSignature{
			Kind:     lowtype.ModuleFunctionKind,
			Function: convertSignatureMember(name, sig),
		},
	}
}

func typeDefinitionApis(pkgPath, name string, tn *types.TypeName) (lowtype.FullTypeDefinition, []lowtype.Api) {
	named, _ := tn.Type().(*types.Named)
	def := lowtype.FullTypeDefinition{
		Name:     displayName(name),
		Assembly: pkgPath,
		Kind:     typeDefKind(tn.Type().Underlying()),
	}
	var apis []lowtype.Api
	if named == nil {
		return def, apis
	}
	for i := 0; i < named.NumMethods(); i++ {
		m := named.Method(i)
		if !m.Exported() {
			continue
		}
		sig, ok := m.Type().(*types.Signature)
		if !ok {
			continue
		}
		member := convertSignatureMember(m.Name(), sig)
		def.InstanceMembers = append(def.InstanceMembers, member)
		apis = append(apis, lowtype.Api{
			Name: displayName(m.Name(), name),
			Signature: lowtype.ApiSignature{
				Kind:          lowtype.InstanceMemberKind,
				DeclaringType: lowtype.IdentityType{Identity: lowtype.NewFullIdentity(pkgPath, displayName(name), 0)},
				Member:        member,
			},
		})
	}
	return def, apis
}

func typeDefKind(underlying types.Type) lowtype.TypeDefKind {
	switch underlying.(type) {
	case *types.Interface:
		return lowtype.InterfaceKind
	case *types.Struct:
		return lowtype.ClassKind
	default:
		return lowtype.TypeKind
	}
}

// convertSignatureMember turns a go/types.Signature into a
// lowtype.Member: each Go parameter becomes its own curried segment
// (Go has no tupled-parameter-block concept), and a multi-result
// signature's extra results fold into a synthetic return Tuple.
func convertSignatureMember(name string, sig *types.Signature) lowtype.Member {
	params := sig.Params()
	groups := make(lowtype.ParameterGroups, 0, params.Len())
	for i := 0; i < params.Len(); i++ {
		p := params.At(i)
		groups = append(groups, []lowtype.Parameter{{Type: convertType(p.Type()), Label: p.Name()}})
	}
	return lowtype.Member{
		Name:            name,
		Kind:            lowtype.Method,
		Parameters:      groups,
		ReturnParameter: lowtype.Parameter{Type: convertResults(sig.Results())},
	}
}

func convertResults(results *types.Tuple) lowtype.Type {
	switch results.Len() {
	case 0:
		return lowtype.IdentityType{Identity: lowtype.NewPartialIdentity(displayName("unit"), 0)}
	case 1:
		return convertType(results.At(0).Type())
	default:
		elems := make([]lowtype.Type, results.Len())
		for i := 0; i < results.Len(); i++ {
			elems[i] = convertType(results.At(i).Type())
		}
		return lowtype.Tuple{Elements: elems}
	}
}

// convertType maps a go/types.Type to the closest LowType shape: named
// types become an Identity (qualified by their package path when one
// exists), slices/arrays/pointers/maps become a Generic application of
// a synthetic constructor identity, and everything else falls back to a
// PartialIdentity built from the type's own string form.
func convertType(t types.Type) lowtype.Type {
	switch v := t.(type) {
	case *types.Named:
		obj := v.Obj()
		pkgPath := ""
		if pkg := obj.Pkg(); pkg != nil {
			pkgPath = pkg.Path()
		}
		if pkgPath == "" {
			return lowtype.IdentityType{Identity: lowtype.NewPartialIdentity(displayName(obj.Name()), v.TypeArgs().Len())}
		}
		return lowtype.IdentityType{Identity: lowtype.NewFullIdentity(pkgPath, displayName(obj.Name()), v.TypeArgs().Len())}
	case *types.Basic:
		return lowtype.IdentityType{Identity: lowtype.NewPartialIdentity(displayName(v.Name()), 0)}
	case *types.Pointer:
		return lowtype.Generic{Constructor: genericConstructor("Pointer"), Args: []lowtype.Type{convertType(v.Elem())}}
	case *types.Slice:
		return lowtype.Generic{Constructor: genericConstructor("Slice"), Args: []lowtype.Type{convertType(v.Elem())}}
	case *types.Array:
		return lowtype.Generic{Constructor: genericConstructor("Array"), Args: []lowtype.Type{convertType(v.Elem())}}
	case *types.Map:
		return lowtype.Generic{Constructor: genericConstructor("Map"), Args: []lowtype.Type{convertType(v.Key()), convertType(v.Elem())}}
	default:
		return lowtype.IdentityType{Identity: lowtype.NewPartialIdentity(displayName(t.String()), 0)}
	}
}

func genericConstructor(name string) lowtype.Type {
	return lowtype.IdentityType{Identity: lowtype.NewPartialIdentity(displayName(name), 1)}
}
