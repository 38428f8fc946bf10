// Package languages embeds the per-language usage-detection tables.
// Each YAML file lists the lexical rules applied to source text and the
// macro-only allowlist consulted after them. Rules are compiled once by
// internal/usage when the process starts.
package languages

import "embed"

// FS is an embed.FS containing every *.yaml file in this directory.
//
//go:embed *.yaml
var FS embed.FS
