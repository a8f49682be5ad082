// Package search implements the Search Driver (§4.5) and the
// Computation-Expression Matcher (§4.6): the part of the engine that
// iterates a catalog, runs the matcher pipeline over every API, and
// collects the matches into a Result sequence (Rank orders it).
package search

import (
	"context"
	"log"
	"os"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/funvibe/apisearch/internal/apimatch"
	"github.com/funvibe/apisearch/internal/config"
	"github.com/funvibe/apisearch/internal/equations"
	"github.com/funvibe/apisearch/internal/lowtype"
	"github.com/funvibe/apisearch/internal/query"
)

var logger = log.New(os.Stderr, "", 0)

// Result is `{api, assemblyName, distance}` (§6, "Core → consumer").
type Result struct {
	Api          lowtype.Api
	AssemblyName string
	Distance     int
}

// item pairs one dictionary's assembly name with one of its Apis, so the
// scan can be flattened ahead of time without losing either order
// position (dictionary order) or the assembly each Api came from.
type item struct {
	assemblyName string
	dictIndex    int
	apiIndex     int
	api          lowtype.Api
}

func flatten(dictionaries []lowtype.ApiDictionary) []item {
	items := make([]item, 0)
	for di, dict := range dictionaries {
		for ai, api := range dict.Apis {
			items = append(items, item{
				assemblyName: dict.AssemblyName,
				dictIndex:    di,
				apiIndex:     ai,
				api:          api,
			})
		}
	}
	return items
}

// Run is the Search Driver entry point (§4.5): it iterates every
// (dictionary, api) pair, runs pipeline against each under a fresh
// Context derived from initial, and collects every Matched result.
//
// Dispatch: when q.Method.Kind is ByComputationExpression, control
// transfers to RunComputationExpression (§4.6) instead.
func Run(dictionaries []lowtype.ApiDictionary, opts config.Options, lowTypeMatch apimatch.LowTypeMatcherFunc, pipeline []apimatch.Matcher, q query.Query, initial equations.Context) []Result {
	correlationID := uuid.New().String()
	if q.Method.Kind == query.ByComputationExpression {
		logger.Printf("search[%s]: dispatching to computation-expression matcher", correlationID)
		return RunComputationExpression(dictionaries, opts, lowTypeMatch, q, initial)
	}

	items := flatten(dictionaries)
	logger.Printf("search[%s]: scanning %d apis across %d dictionaries (parallel=%v)", correlationID, len(items), len(dictionaries), bool(opts.Parallel))

	test := func(it item) (Result, bool) {
		res := apimatch.RunPipeline(pipeline, lowTypeMatch, q, it.api, initial)
		if !res.OK() {
			return Result{}, false
		}
		return Result{Api: it.api, AssemblyName: it.assemblyName, Distance: res.Context().Distance}, true
	}

	if !opts.Parallel {
		out := make([]Result, 0, len(items))
		for _, it := range items {
			if r, ok := test(it); ok {
				out = append(out, r)
			}
		}
		return out
	}
	return runParallel(items, test)
}

// runParallel fans the scan out over worker goroutines via errgroup
// (§5 "bounded data-parallel iterator"). Slot-indexed results preserve
// the caller's ability to recover dictionary/catalog order by sorting —
// the unordered scan itself makes no ordering promise (§4.5, §5).
func runParallel(items []item, test func(item) (Result, bool)) []Result {
	slots := make([]*Result, len(items))
	group, _ := errgroup.WithContext(context.Background())
	group.SetLimit(parallelWorkers())
	for i, it := range items {
		group.Go(func() error {
			if r, ok := test(it); ok {
				slots[i] = &r
			}
			return nil
		})
	}
	_ = group.Wait()
	out := make([]Result, 0, len(items))
	for _, r := range slots {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}

func parallelWorkers() int {
	if n := os.Getenv("APISEARCH_PARALLEL_WORKERS"); n != "" {
		if v, ok := parsePositiveInt(n); ok {
			return v
		}
	}
	return 8
}

func parsePositiveInt(s string) (int, bool) {
	n := 0
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	if n <= 0 {
		return 0, false
	}
	return n, true
}
