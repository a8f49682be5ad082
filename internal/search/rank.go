package search

import "sort"

// Rank stabilizes a Result sequence's order in place (§4.5 "callers
// requiring stable order must sort"; §5 "the caller must sort by
// distance then dictionary order to stabilize"): ascending distance,
// then the position each Result occupied when it was collected (which
// already encodes dictionary order then catalog order for a Disabled
// scan, and recovers it after a Parallel one), then api name as a final
// tiebreaker for APIs tied on both.
func Rank(results []Result) []Result {
	type ranked struct {
		result Result
		pos    int
	}
	tagged := make([]ranked, len(results))
	for i, r := range results {
		tagged[i] = ranked{result: r, pos: i}
	}
	sort.SliceStable(tagged, func(i, j int) bool {
		a, b := tagged[i], tagged[j]
		if a.result.Distance != b.result.Distance {
			return a.result.Distance < b.result.Distance
		}
		if a.pos != b.pos {
			return a.pos < b.pos
		}
		return a.result.Api.Name.String() < b.result.Api.Name.String()
	})
	out := make([]Result, len(tagged))
	for i, t := range tagged {
		out[i] = t.result
	}
	return out
}
