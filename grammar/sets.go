package grammar

import (
	"github.com/emirpasic/gods/sets/treeset"

	"ucc/grammar/symbol"
)

// symbolSet is an ordered set of symbol handles. Iteration order is the
// handle order (kind-major, then declaration order), which keeps every
// printed set and every generated predict entry deterministic.
type symbolSet struct {
	set *treeset.Set
}

func newSymbolSet(syms ...symbol.Symbol) *symbolSet {
	s := &symbolSet{
		set: treeset.NewWith(symbol.Compare),
	}
	for _, sym := range syms {
		s.set.Add(sym)
	}
	return s
}

// add reports whether the set grew.
func (s *symbolSet) add(sym symbol.Symbol) bool {
	if s.set.Contains(sym) {
		return false
	}
	s.set.Add(sym)
	return true
}

// mergeExceptLambda adds every member of other except λ and reports
// whether the set grew.
func (s *symbolSet) mergeExceptLambda(other *symbolSet) bool {
	changed := false
	for _, sym := range other.values() {
		if sym.IsLambda() {
			continue
		}
		if s.add(sym) {
			changed = true
		}
	}
	return changed
}

func (s *symbolSet) merge(other *symbolSet) bool {
	changed := false
	for _, sym := range other.values() {
		if s.add(sym) {
			changed = true
		}
	}
	return changed
}

func (s *symbolSet) contains(sym symbol.Symbol) bool {
	return s.set.Contains(sym)
}

func (s *symbolSet) containsLambda() bool {
	return s.set.Contains(symbol.SymbolLambda)
}

func (s *symbolSet) remove(sym symbol.Symbol) {
	s.set.Remove(sym)
}

func (s *symbolSet) size() int {
	return s.set.Size()
}

func (s *symbolSet) values() []symbol.Symbol {
	vs := s.set.Values()
	syms := make([]symbol.Symbol, len(vs))
	for i, v := range vs {
		syms[i] = v.(symbol.Symbol)
	}
	return syms
}
