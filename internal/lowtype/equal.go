package lowtype

// Equal is structural equality over the closed Type variant, used by the
// Equations store (§4.1) for membership tests and by the matcher's
// "strictly equal" fast path. It never normalizes abbreviations or
// resolves identities — that's the matcher's job.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case Wildcard:
		bv, ok := b.(Wildcard)
		return ok && av.Tag == bv.Tag
	case Variable:
		bv, ok := b.(Variable)
		return ok && av.Source == bv.Source && av.Var.Equal(bv.Var)
	case IdentityType:
		bv, ok := b.(IdentityType)
		return ok && MatchIdentity(av.Identity, bv.Identity, false)
	case Arrow:
		bv, ok := b.(Arrow)
		return ok && equalSlice(av.Elements, bv.Elements)
	case Tuple:
		bv, ok := b.(Tuple)
		return ok && av.IsStruct == bv.IsStruct && equalSlice(av.Elements, bv.Elements)
	case Generic:
		bv, ok := b.(Generic)
		return ok && Equal(av.Constructor, bv.Constructor) && equalSlice(av.Args, bv.Args)
	case TypeAbbreviation:
		bv, ok := b.(TypeAbbreviation)
		return ok && Equal(av.Abbreviation, bv.Abbreviation) && Equal(av.Original, bv.Original)
	case Delegate:
		bv, ok := b.(Delegate)
		return ok && MatchIdentity(av.DelegateType, bv.DelegateType, false) && equalSlice(av.SignatureTypes, bv.SignatureTypes)
	case Choice:
		bv, ok := b.(Choice)
		return ok && equalSlice(av.Alternatives, bv.Alternatives)
	default:
		return false
	}
}

func equalSlice(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// variantRank orders the LowType variants for Equations' stable pair
// ordering (§4.1 tryAddEquality, §9 "normalize pair orientation by a
// stable total order over LowType variants"). Lower rank sorts first.
func variantRank(t Type) int {
	switch t.(type) {
	case Wildcard:
		return 0
	case Variable:
		return 1
	case IdentityType:
		return 2
	case Tuple:
		return 3
	case Arrow:
		return 4
	case Generic:
		return 5
	case TypeAbbreviation:
		return 6
	case Delegate:
		return 7
	case Choice:
		return 8
	default:
		return 9
	}
}

// importance ranks how "concrete" a type is: a variable carries no
// information on its own, so an equality pair should read (variable,
// concrete) with the concrete side normalized second so findEqualities
// can key off the variable consistently. Lower importance sorts first.
func importance(t Type) int {
	switch t.(type) {
	case Wildcard, Variable:
		return 0
	default:
		return 1
	}
}

// NormalizePair orders (a, b) by importance first (variables before
// concrete types), then by variant rank, then by Key for two types of the
// same variant, so that (a, b) and (b, a) always produce the same
// normalized pair — the basis of Equations' O(1) membership by hash (§9).
func NormalizePair(a, b Type) (Type, Type) {
	ia, ib := importance(a), importance(b)
	if ia != ib {
		if ia < ib {
			return a, b
		}
		return b, a
	}
	ra, rb := variantRank(a), variantRank(b)
	if ra != rb {
		if ra < rb {
			return a, b
		}
		return b, a
	}
	if Key(a) <= Key(b) {
		return a, b
	}
	return b, a
}

// Key renders a Type into a string suitable for use as a map key — the
// "O(1) membership by hash" the Equations store needs (§9). It is a
// total, injective-enough encoding of the variant tree; two structurally
// equal types always produce the same key.
func Key(t Type) string {
	if t == nil {
		return "<nil>"
	}
	switch v := t.(type) {
	case Wildcard:
		return "?" + v.Tag
	case Variable:
		return "v:" + v.Source.String() + ":" + v.Var.Name
	case IdentityType:
		return "id:" + v.Identity.String()
	case Arrow:
		return "arrow:(" + keySlice(v.Elements) + ")"
	case Tuple:
		flavor := "t"
		if v.IsStruct {
			flavor = "st"
		}
		return flavor + ":(" + keySlice(v.Elements) + ")"
	case Generic:
		return "gen:" + Key(v.Constructor) + "<" + keySlice(v.Args) + ">"
	case TypeAbbreviation:
		return "abbr:" + Key(v.Abbreviation) + "=" + Key(v.Original)
	case Delegate:
		return "del:" + v.DelegateType.String() + "(" + keySlice(v.SignatureTypes) + ")"
	case Choice:
		return "choice:(" + keySlice(v.Alternatives) + ")"
	default:
		return "?unknown"
	}
}

func keySlice(ts []Type) string {
	out := ""
	for i, t := range ts {
		if i > 0 {
			out += ","
		}
		out += Key(t)
	}
	return out
}

// PairKey renders an unordered pair's key by normalizing orientation
// first, so (a, b) and (b, a) hash identically (§9).
func PairKey(a, b Type) string {
	na, nb := NormalizePair(a, b)
	return Key(na) + "|" + Key(nb)
}
