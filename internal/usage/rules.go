package usage

import (
	"fmt"
	"regexp"

	"github.com/1homsi/depsweep/languages"
	"gopkg.in/yaml.v3"
)

// Rule is one lexical pattern. Capture group 1 holds one or more
// comma-separated candidate names.
type Rule struct {
	Name string
	Re   *regexp.Regexp
}

// RuleSet is the compiled form of a languages/*.yaml file.
type RuleSet struct {
	Name      string
	Extension string
	Rules     []Rule
	Allowlist Allowlist
}

// rawRuleSet mirrors the YAML structure before the patterns are compiled.
type rawRuleSet struct {
	Name      string `yaml:"name"`
	Extension string `yaml:"extension"`
	Rules     []struct {
		Name    string `yaml:"name"`
		Pattern string `yaml:"pattern"`
	} `yaml:"rules"`
	MacroOnly Allowlist `yaml:"macro_only"`
}

// LoadRules reads and compiles languages/<lang>.yaml from the embedded FS.
// A pattern that does not compile, or that does not have exactly one
// capture group, is an error.
func LoadRules(lang string) (*RuleSet, error) {
	data, err := languages.FS.ReadFile(lang + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("load rules for %q: %w", lang, err)
	}

	var raw rawRuleSet
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s.yaml: %w", lang, err)
	}

	rs := &RuleSet{
		Name:      raw.Name,
		Extension: raw.Extension,
		Rules:     make([]Rule, 0, len(raw.Rules)),
		Allowlist: raw.MacroOnly.normalized(),
	}
	for i, r := range raw.Rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%s.yaml rules[%d] (%s): %w", lang, i, r.Name, err)
		}
		if re.NumSubexp() != 1 {
			return nil, fmt.Errorf("%s.yaml rules[%d] (%s): want 1 capture group, got %d",
				lang, i, r.Name, re.NumSubexp())
		}
		rs.Rules = append(rs.Rules, Rule{Name: r.Name, Re: re})
	}
	return rs, nil
}

// MustLoadRules is like LoadRules but panics on error.
// Safe to call at package-init time since the YAML is embedded at compile time.
func MustLoadRules(lang string) *RuleSet {
	rs, err := LoadRules(lang)
	if err != nil {
		panic(fmt.Sprintf("depsweep: %v", err))
	}
	return rs
}

var rustRules = MustLoadRules("rust")

// Rust returns the Rust rule set compiled at process start. Callers must not
// modify it.
func Rust() *RuleSet {
	return rustRules
}
