package mutagens

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	m "mutagate.dev/pkg/mutagate/internal/model"
)

type generator func(ast.Node, *token.FileSet, []byte, m.Path, int) []m.Mutation

// generateAll parses src and applies gen to every AST node, collecting the
// produced mutations in traversal order.
func generateAll(t *testing.T, src string, gen generator) []m.Mutation {
	t.Helper()

	fset := token.NewFileSet()
	content := []byte(src)

	parsed, err := parser.ParseFile(fset, "input.go", content, parser.ParseComments)
	if err != nil {
		t.Fatalf("failed to parse test source: %v", err)
	}

	var mutations []m.Mutation

	ast.Inspect(parsed, func(n ast.Node) bool {
		if n == nil || !n.Pos().IsValid() {
			return true
		}

		line := fset.Position(n.Pos()).Line
		mutations = append(mutations, gen(n, fset, content, "input.go", line)...)

		return true
	})

	return mutations
}
