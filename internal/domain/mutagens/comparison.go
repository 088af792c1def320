package mutagens

import (
	"go/ast"
	"go/token"

	m "mutagate.dev/pkg/mutagate/internal/model"
)

// comparisonPairs maps each comparison operator to its adjacent counterpart.
// These are boundary swaps (< <-> <=), not full boolean negations.
var comparisonPairs = map[token.Token]token.Token{
	token.LSS: token.LEQ,
	token.LEQ: token.LSS,
	token.GTR: token.GEQ,
	token.GEQ: token.GTR,
	token.EQL: token.NEQ,
	token.NEQ: token.EQL,
}

// GenerateComparisonMutations rewrites a comparison operator to its adjacent
// counterpart.
func GenerateComparisonMutations(n ast.Node, fset *token.FileSet, content []byte, file m.Path, line int) []m.Mutation {
	binExpr, ok := n.(*ast.BinaryExpr)
	if !ok {
		return nil
	}

	mutatedOp, ok := comparisonPairs[binExpr.Op]
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
		build(m.MutationComparison, file, line, start, describe(binExpr.Op, mutatedOp), content, mutated),
	}
}
