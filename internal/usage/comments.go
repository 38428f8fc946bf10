package usage

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

// StripComments returns a copy of src where every Rust comment, doc comments
// included, is overwritten with spaces. Newlines are kept so byte offsets
// and line numbers still line up with the original.
func StripComments(ctx context.Context, src []byte) ([]byte, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse rust source: %w", err)
	}
	if tree == nil {
		return nil, fmt.Errorf("parse rust source: no tree")
	}

	out := make([]byte, len(src))
	copy(out, src)
	walk(tree.RootNode(), func(n *sitter.Node) bool {
		switch n.Type() {
		case "line_comment", "block_comment":
			blank(out, int(n.StartByte()), int(n.EndByte()))
			return false
		}
		return true
	})
	return out, nil
}

// walk visits n and its descendants depth-first. Children are skipped when
// visit returns false.
func walk(n *sitter.Node, visit func(*sitter.Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walk(n.Child(i), visit)
	}
}

func blank(b []byte, start, end int) {
	if end > len(b) {
		end = len(b)
	}
	for i := start; i < end; i++ {
		if b[i] != '\n' && b[i] != '\r' {
			b[i] = ' '
		}
	}
}
