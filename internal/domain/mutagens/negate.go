package mutagens

import (
	"go/ast"
	"go/token"

	m "mutagate.dev/pkg/mutagate/internal/model"
)

// GenerateNegateCondMutations wraps an if condition in a logical negation.
func GenerateNegateCondMutations(n ast.Node, fset *token.FileSet, content []byte, file m.Path, line int) []m.Mutation {
	ifStmt, ok := n.(*ast.IfStmt)
	if !ok || ifStmt.Cond == nil {
		return nil
	}

	start, ok := offsetForPos(fset, ifStmt.Cond.Pos())
	if !ok {
		return nil
	}

	end, ok := offsetForPos(fset, ifStmt.Cond.End())
	if !ok {
		return nil
	}

	if end > len(content) {
		return nil
	}

	original := string(content[start:end])

	mutated := replaceRange(content, start, end, "!("+original+")")
	if mutated == nil {
		return nil
	}

	return []m.Mutation{
		build(m.MutationNegateCond, file, line, start, "if cond -> if !(cond)", content, mutated),
	}
}
