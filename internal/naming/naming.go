// Package naming reconciles a crate's declared name with the identifier it
// takes in Rust source. Cargo allows '-' in package names; the compiler
// exposes the crate under the same name with every '-' turned into '_'.
package naming

import "strings"

const (
	Separator = "-"
	Joiner    = "_"
)

// IdentForm returns name as it appears when used as an identifier.
func IdentForm(name string) string {
	return strings.ReplaceAll(name, Separator, Joiner)
}

// Mapping maps an identifier form to the declared (canonical) name.
type Mapping map[string]string

// NewMapping builds the lookup for the declared names. Every name gets one
// entry; names without a separator map to themselves.
func NewMapping(names []string) Mapping {
	m := make(Mapping, len(names))
	for _, name := range names {
		m[IdentForm(name)] = name
	}
	return m
}

// Lookup returns the canonical name registered for ident.
func (m Mapping) Lookup(ident string) (string, bool) {
	name, ok := m[ident]
	return name, ok
}

// Canonical returns the canonical name for token, or token itself when the
// mapping does not know it.
func (m Mapping) Canonical(token string) string {
	if name, ok := m[token]; ok {
		return name
	}
	return token
}
