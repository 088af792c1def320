package mutagens

import (
	"go/ast"
	"go/token"

	m "mutagate.dev/pkg/mutagate/internal/model"
)

var booleanPairs = map[token.Token]token.Token{
	token.LAND: token.LOR,
	token.LOR:  token.LAND,
}

// GenerateBooleanMutations swaps a boolean conjunction with a disjunction.
func GenerateBooleanMutations(n ast.Node, fset *token.FileSet, content []byte, file m.Path, line int) []m.Mutation {
	binExpr, ok := n.(*ast.BinaryExpr)
	if !ok {
		return nil
	}

	mutatedOp, ok := booleanPairs[binExpr.Op]
	if !ok {
		return nil
	}

	start, ok := offsetForPos(fset, binExpr.OpPos)
	if !ok {
		return nil
	}

	end := start + len(binExpr.Op.String())

	mutated := replaceRange(content, start, end, mutatedOp.String())
	if mutated == nil {
		return nil
	}

	return []m.Mutation{
		build(m.MutationBoolean, file, line, start, describe(binExpr.Op, mutatedOp), content, mutated),
	}
}
