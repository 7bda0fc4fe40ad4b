package cpu

import (
	"iter"
	"maps"
)

// SymbolTable maps names to replacement text.
//
// A name that was never defined stands for itself, so literals and
// symbolic names are looked up the same way.
type SymbolTable struct {
	table map[string]string
}

// Lookup returns the replacement for key, or key itself.
func (st *SymbolTable) Lookup(key string) string {
	value, ok := st.table[key]
	if !ok {
		return key
	}
	return value
}

// Define sets the replacement for key. An empty value defines key as itself.
func (st *SymbolTable) Define(key string, value string) {
	if len(value) == 0 {
		value = key
	}

	if st.table == nil {
		st.table = make(map[string]string)
	}
	st.table[key] = value
}

// All iterates over the explicit definitions.
func (st *SymbolTable) All() iter.Seq2[string, string] {
	return maps.All(st.table)
}
