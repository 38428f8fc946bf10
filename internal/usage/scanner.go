// Package usage infers which crates a piece of Rust source refers to.
//
// Detection is lexical: a fixed battery of regular expressions is applied to
// the raw text and every capture is treated as a candidate crate name. There
// is no parsing, so names inside comments, string literals and cfg-disabled
// items are counted as well.
package usage

import (
	"strings"

	"github.com/1homsi/depsweep/internal/naming"
)

// Prefixes removed from a captured token before it is looked up. They are
// stripped repeatedly so "::crate::self::x" reduces to "x".
var pathQualifiers = []string{"crate::", "self::", "::"}

// Tokens starting with these denote paths inside the current crate.
var relativeKeywords = []string{"super", "crate"}

// Scanner applies a rule set and an allowlist to source text.
type Scanner struct {
	rules     []Rule
	allowlist Allowlist
	names     naming.Mapping
}

// New returns a Scanner. rules are shared, never copied.
func New(rules []Rule, allow Allowlist, names naming.Mapping) *Scanner {
	return &Scanner{
		rules:     rules,
		allowlist: allow,
		names:     names,
	}
}

// NewRust returns a Scanner with the built-in Rust rules and allowlist.
func NewRust(names naming.Mapping) *Scanner {
	rs := Rust()
	return New(rs.Rules, rs.Allowlist, names)
}

// Scan adds every crate name referenced by src to used.
func (s *Scanner) Scan(src string, used UsedSet) {
	for _, r := range s.rules {
		for _, m := range r.Re.FindAllStringSubmatch(src, -1) {
			for _, tok := range strings.Split(m[1], ",") {
				name, ok := cleanToken(tok)
				if !ok {
					continue
				}
				used.Add(s.names.Canonical(name))
			}
		}
	}
	s.allowlist.Apply(src, used)
}

// Matches returns the cleaned tokens each rule extracts from src, keyed by
// rule name. Only used for diagnostics.
func (s *Scanner) Matches(src string) map[string][]string {
	out := make(map[string][]string)
	for _, r := range s.rules {
		for _, m := range r.Re.FindAllStringSubmatch(src, -1) {
			for _, tok := range strings.Split(m[1], ",") {
				if name, ok := cleanToken(tok); ok {
					out[r.Name] = append(out[r.Name], name)
				}
			}
		}
	}
	return out
}

func cleanToken(tok string) (string, bool) {
	name := strings.TrimSpace(tok)
	for stripped := true; stripped; {
		stripped = false
		for _, p := range pathQualifiers {
			if strings.HasPrefix(name, p) {
				name = name[len(p):]
				stripped = true
			}
		}
	}
	if name == "" {
		return "", false
	}
	for _, kw := range relativeKeywords {
		if strings.HasPrefix(name, kw) {
			return "", false
		}
	}
	return name, true
}
