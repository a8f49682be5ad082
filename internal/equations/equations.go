// Package equations implements the accumulator of variable
// equalities/inequalities and the per-match Context that threads through
// the low-type matcher (§4.1).
package equations

import "github.com/funvibe/apisearch/internal/lowtype"

// Pair is an unordered pair of LowTypes, always stored in NormalizePair
// orientation so two structurally-equal pairs compare and hash alike.
type Pair struct {
	A, B lowtype.Type
}

// Equations is an accumulator of two disjoint sets: asserted equalities
// and asserted inequalities, both over unordered LowType pairs (§4.1).
type Equations struct {
	equalities   map[string]Pair
	inequalities map[string]Pair
}

// Empty returns a fresh, empty Equations store.
func Empty() Equations {
	return Equations{
		equalities:   make(map[string]Pair),
		inequalities: make(map[string]Pair),
	}
}

// Equalities returns every asserted equality pair, in no particular
// order.
func (e Equations) Equalities() []Pair {
	out := make([]Pair, 0, len(e.equalities))
	for _, p := range e.equalities {
		out = append(out, p)
	}
	return out
}

// Inequalities returns every asserted inequality pair.
func (e Equations) Inequalities() []Pair {
	out := make([]Pair, 0, len(e.inequalities))
	for _, p := range e.inequalities {
		out = append(out, p)
	}
	return out
}

// FindEqualities returns every (a, b) in Equalities where a or b equals v
// under structural equality (§4.1 findEqualities).
func (e Equations) FindEqualities(v lowtype.Type) []Pair {
	var out []Pair
	for _, p := range e.equalities {
		if lowtype.Equal(p.A, v) || lowtype.Equal(p.B, v) {
			out = append(out, p)
		}
	}
	return out
}

// clone makes a shallow copy of the equations store so the original is
// never mutated in place (Context is threaded by value through the
// matcher, never aliased across failed branches).
func (e Equations) clone() Equations {
	eq := make(map[string]Pair, len(e.equalities))
	for k, v := range e.equalities {
		eq[k] = v
	}
	ineq := make(map[string]Pair, len(e.inequalities))
	for k, v := range e.inequalities {
		ineq[k] = v
	}
	return Equations{equalities: eq, inequalities: ineq}
}

// TryAddEquality normalizes (a, b), checks it is not already contradicted
// by an inequality, and returns the updated Equations, or ok=false on
// contradiction (§4.1 tryAddEquality).
func (e Equations) TryAddEquality(a, b lowtype.Type) (Equations, bool) {
	na, nb := lowtype.NormalizePair(a, b)
	if lowtype.Equal(na, nb) {
		// self-equality: nothing to record, always consistent.
		return e, true
	}
	key := lowtype.PairKey(na, nb)
	if _, contradicted := e.inequalities[key]; contradicted {
		return e, false
	}
	if _, exists := e.equalities[key]; exists {
		return e, true
	}
	next := e.clone()
	next.equalities[key] = Pair{A: na, B: nb}
	return next, true
}

// AddInequality is symmetric insertion; it reports a contradiction
// (ok=false) if the pair is already recorded as an equality (§4.1
// addInequality).
func (e Equations) AddInequality(a, b lowtype.Type) (Equations, bool) {
	na, nb := lowtype.NormalizePair(a, b)
	key := lowtype.PairKey(na, nb)
	if _, exists := e.equalities[key]; exists {
		return e, false
	}
	if _, exists := e.inequalities[key]; exists {
		return e, true
	}
	next := e.clone()
	next.inequalities[key] = Pair{A: na, B: nb}
	return next, true
}
