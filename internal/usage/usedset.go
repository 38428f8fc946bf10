package usage

import "sort"

// UsedSet holds the crate names believed to be referenced by scanned source.
type UsedSet map[string]struct{}

func NewUsedSet() UsedSet {
	return make(UsedSet)
}

func (s UsedSet) Add(name string) {
	s[name] = struct{}{}
}

func (s UsedSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Sorted returns the members in lexical order.
func (s UsedSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
