package mutagens

import (
	"go/ast"
	"go/token"

	m "mutagate.dev/pkg/mutagate/internal/model"
)

// arithmeticPairs maps each arithmetic operator to its paired inverse. The
// pairing is fixed: + <-> - and * <-> /, never every alternative.
var arithmeticPairs = map[token.Token]token.Token{
	token.ADD: token.SUB,
	token.SUB: token.ADD,
	token.MUL: token.QUO,
	token.QUO: token.MUL,
}

// GenerateArithmeticMutations rewrites an arithmetic binary operator to its
// paired inverse.
func GenerateArithmeticMutations(n ast.Node, fset *token.FileSet, content []byte, file m.Path, line int) []m.Mutation {
	binExpr, ok := n.(*ast.BinaryExpr)
	if !ok {
		return nil
	}

	mutatedOp, ok := arithmeticPairs[binExpr.Op]
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
		build(m.MutationArithmetic, file, line, start, describe(binExpr.Op, mutatedOp), content, mutated),
	}
}
