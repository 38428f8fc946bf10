package usage

import "strings"

// AllowEntry marks Name as used whenever any trigger occurs literally in
// the source text.
type AllowEntry struct {
	Name     string   `yaml:"name" json:"name"`
	Triggers []string `yaml:"triggers,omitempty" json:"triggers,omitempty"`
}

// Allowlist is the macro-only fallback table. It trades precision for
// recall: a hit is recorded even when it came from a comment or string.
type Allowlist []AllowEntry

// DefaultTriggers returns the substrings checked for an entry that lists none.
func DefaultTriggers(name string) []string {
	return []string{name + "!", "use " + name + "::"}
}

// Apply records every entry with at least one trigger present in src.
func (a Allowlist) Apply(src string, used UsedSet) {
	for _, e := range a {
		for _, trig := range e.Triggers {
			if strings.Contains(src, trig) {
				used.Add(e.Name)
				break
			}
		}
	}
}

// Merge returns a new allowlist holding a followed by extra. An entry in
// extra replaces the entry of the same name in a.
func (a Allowlist) Merge(extra Allowlist) Allowlist {
	extra = extra.normalized()
	override := make(map[string]bool, len(extra))
	for _, e := range extra {
		override[e.Name] = true
	}

	out := make(Allowlist, 0, len(a)+len(extra))
	for _, e := range a {
		if !override[e.Name] {
			out = append(out, e)
		}
	}
	return append(out, extra...)
}

// Names returns the entry names in table order.
func (a Allowlist) Names() []string {
	out := make([]string, len(a))
	for i, e := range a {
		out[i] = e.Name
	}
	return out
}

func (a Allowlist) normalized() Allowlist {
	out := make(Allowlist, 0, len(a))
	for _, e := range a {
		e.Name = strings.TrimSpace(e.Name)
		if e.Name == "" {
			continue
		}
		if len(e.Triggers) == 0 {
			e.Triggers = DefaultTriggers(e.Name)
		}
		out = append(out, e)
	}
	return out
}
