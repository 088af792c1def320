// Package domain contains the core mutation gating workflow and logic.
package domain

import (
	"context"
	"go/ast"
	"go/token"
	"log/slog"

	"mutagate.dev/pkg/mutagate/internal/adapter"
	"mutagate.dev/pkg/mutagate/internal/domain/mutagens"
	m "mutagate.dev/pkg/mutagate/internal/model"
)

// Mutagen defines the interface for mutation generation.
type Mutagen interface {
	// GenerateMutations produces every single-point mutant of content whose
	// site lies on an eligible line. A nil LineSet considers all lines.
	// Unparseable input yields an empty sequence, never an error.
	GenerateMutations(ctx context.Context, file m.Path, content []byte, lines m.LineSet) []m.Mutation
}

type mutagen struct {
	goFiles adapter.GoFileAdapter
}

// NewMutagen creates a new Mutagen instance.
func NewMutagen(goFiles adapter.GoFileAdapter) Mutagen {
	return &mutagen{goFiles: goFiles}
}

type generatorFunc func(ast.Node, *token.FileSet, []byte, m.Path, int) []m.Mutation

// mutationGenerators is the fixed catalog dispatch table. Order matters: it
// pins traversal output for reproducible gating, and the first category that
// matches a node wins (the operator token sets are disjoint, so at most one
// ever does).
var mutationGenerators = []struct {
	mutationType m.MutationType
	generate     generatorFunc
}{
	{m.MutationArithmetic, mutagens.GenerateArithmeticMutations},
	{m.MutationComparison, mutagens.GenerateComparisonMutations},
	{m.MutationBoolean, mutagens.GenerateBooleanMutations},
	{m.MutationReturnValue, mutagens.GenerateReturnValueMutations},
	{m.MutationNegateCond, mutagens.GenerateNegateCondMutations},
}

func (mg *mutagen) GenerateMutations(ctx context.Context, file m.Path, content []byte, lines m.LineSet) []m.Mutation {
	fset := token.NewFileSet()

	parsed, err := mg.goFiles.Parse(ctx, fset, string(file), content)
	if err != nil {
		slog.Warn("Skipping unparseable file", "file", file, "error", err)
		return nil
	}

	mutations := make([]m.Mutation, 0)

	ast.Inspect(parsed, func(n ast.Node) bool {
		if n == nil || !n.Pos().IsValid() {
			return true
		}

		line := fset.Position(n.Pos()).Line
		if !lines.Contains(line) {
			return true
		}

		mutations = append(mutations, generateForNode(n, fset, content, file, line)...)

		return true
	})

	return mutations
}

func generateForNode(n ast.Node, fset *token.FileSet, content []byte, file m.Path, line int) []m.Mutation {
	for _, gen := range mutationGenerators {
		if muts := gen.generate(n, fset, content, file, line); len(muts) > 0 {
			return muts
		}
	}

	return nil
}
