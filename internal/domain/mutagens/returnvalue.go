package mutagens

import (
	"go/ast"
	"go/token"

	m "mutagate.dev/pkg/mutagate/internal/model"
)

const returnKeywordLen = len("return")

// GenerateReturnValueMutations drops the results from a value-carrying return
// statement, leaving a bare return.
func GenerateReturnValueMutations(n ast.Node, fset *token.FileSet, content []byte, file m.Path, line int) []m.Mutation {
	ret, ok := n.(*ast.ReturnStmt)
	if !ok || len(ret.Results) == 0 {
		return nil
	}

	start, ok := offsetForPos(fset, ret.Return)
	if !ok {
		return nil
	}

	end, ok := offsetForPos(fset, ret.End())
	if !ok {
		return nil
	}

	mutated := replaceRange(content, start+returnKeywordLen, end, "")
	if mutated == nil {
		return nil
	}

	return []m.Mutation{
		build(m.MutationReturnValue, file, line, start, "return value -> bare return", content, mutated),
	}
}
