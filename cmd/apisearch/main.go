// Command apisearch is a thin, explicitly non-core front end wiring
// internal/loader, internal/query (via internal/search.Strategy),
// internal/search, and internal/catalogcache together. It is
// demonstrative rather than a spec requirement — the only way to
// exercise the whole pipeline end-to-end from a terminal.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/funvibe/apisearch/internal/apimatch"
	"github.com/funvibe/apisearch/internal/catalog"
	"github.com/funvibe/apisearch/internal/catalogcache"
	"github.com/funvibe/apisearch/internal/config"
	"github.com/funvibe/apisearch/internal/loader"
	"github.com/funvibe/apisearch/internal/lowtype"
	"github.com/funvibe/apisearch/internal/search"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("apisearch", flag.ExitOnError)
	var (
		configPath  = fs.String("config", "", "Options YAML file (search.yaml)")
		catalogPath = fs.String("catalog", "", "catalog YAML file to search")
		pkgPath     = fs.String("pkg", "", "load a Go package's exported API as the catalog instead of -catalog")
		cachePath   = fs.String("cache", "", "sqlite cache file for parsed catalogs (disabled when empty)")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	queryText := fs.Arg(0)
	if queryText == "" {
		return fmt.Errorf("apisearch: usage: apisearch [-config FILE] [-catalog FILE | -pkg PATH] [-cache FILE] QUERY")
	}

	opts, err := loadOptions(*configPath)
	if err != nil {
		return err
	}
	dictionaries, resolver, err := loadDictionaries(*catalogPath, *pkgPath, *cachePath)
	if err != nil {
		return err
	}

	strategy := search.ForMode(opts)
	q, err := strategy.ParseQuery(queryText)
	if err != nil {
		return fmt.Errorf("apisearch: parsing query: %w", err)
	}
	q = strategy.InitializeQuery(q, dictionaries, opts)
	initial := strategy.InitialContext(q, dictionaries, opts)

	lowTypeMatch, pipeline := strategy.Matchers(opts)
	pipeline = withResolver(pipeline, resolver)

	start := time.Now()
	results := search.Rank(search.Run(dictionaries, opts, lowTypeMatch, pipeline, q, initial))
	elapsed := time.Since(start)

	printResults(os.Stdout, results, elapsed)
	return nil
}

// withResolver replaces the registry-default (nil-resolver) constraint
// solver stage, if present, with one backed by the loaded catalog, so
// §4.2's constraint-propagation step can actually resolve nominal type
// definitions instead of treating every constraint as unresolved.
func withResolver(pipeline []apimatch.Matcher, resolver apimatch.DefinitionResolver) []apimatch.Matcher {
	if resolver == nil {
		return pipeline
	}
	out := make([]apimatch.Matcher, len(pipeline))
	for i, m := range pipeline {
		if m.Name() == "ConstraintSolver" {
			out[i] = apimatch.NewConstraintSolver(resolver)
			continue
		}
		out[i] = m
	}
	return out
}

func loadOptions(path string) (config.Options, error) {
	if path == "" {
		return config.DefaultOptions(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return config.Options{}, fmt.Errorf("apisearch: reading %s: %w", path, err)
	}
	return config.ParseOptionsYAML(data)
}

func loadDictionaries(catalogPath, pkgPath, cachePath string) ([]lowtype.ApiDictionary, apimatch.DefinitionResolver, error) {
	var dictionaries []lowtype.ApiDictionary

	switch {
	case pkgPath != "":
		dicts, err := loader.Load(pkgPath)
		if err != nil {
			return nil, nil, err
		}
		dictionaries = dicts
	case catalogPath != "":
		data, err := os.ReadFile(catalogPath)
		if err != nil {
			return nil, nil, fmt.Errorf("apisearch: reading %s: %w", catalogPath, err)
		}
		dict, err := parseWithCache(data, cachePath)
		if err != nil {
			return nil, nil, err
		}
		dictionaries = []lowtype.ApiDictionary{dict}
	default:
		return nil, nil, fmt.Errorf("apisearch: one of -catalog or -pkg is required")
	}

	return dictionaries, catalog.NewResolver(dictionaries), nil
}

func parseWithCache(data []byte, cachePath string) (lowtype.ApiDictionary, error) {
	if cachePath == "" {
		return catalog.Parse(data)
	}
	cache, err := catalogcache.Open(cachePath)
	if err != nil {
		return lowtype.ApiDictionary{}, err
	}
	defer cache.Close()
	return cache.LoadOrParse(data)
}

func printResults(w *os.File, results []search.Result, elapsed time.Duration) {
	colorize := isatty.IsTerminal(w.Fd()) || isatty.IsCygwinTerminal(w.Fd())
	for _, r := range results {
		if colorize {
			fmt.Fprintf(w, "\x1b[36m%-6d\x1b[0m %s.%s\n", r.Distance, r.AssemblyName, r.Api.Name.String())
		} else {
			fmt.Fprintf(w, "%-6d %s.%s\n", r.Distance, r.AssemblyName, r.Api.Name.String())
		}
	}
	fmt.Fprintf(w, "%s matches in %s\n", humanize.Comma(int64(len(results))), elapsed)
}
