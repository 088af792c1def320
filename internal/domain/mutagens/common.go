// Package mutagens is the mutation site catalog: one generator per operator
// category, all working by splicing a replacement into a fresh copy of the
// original source bytes. Byte offsets from the token.FileSet act as the stable
// site identity, so every mutant is derived independently from the untouched
// original.
package mutagens

import (
	"crypto/sha256"
	"fmt"
	"go/token"

	"github.com/pmezard/go-difflib/difflib"
	m "mutagate.dev/pkg/mutagate/internal/model"
)

// operatorNames maps Go tokens to the operator names used in mutation
// descriptions ("Add -> Sub").
var operatorNames = map[token.Token]string{
	token.ADD:  "Add",
	token.SUB:  "Sub",
	token.MUL:  "Mult",
	token.QUO:  "Div",
	token.LSS:  "Lt",
	token.LEQ:  "LtE",
	token.GTR:  "Gt",
	token.GEQ:  "GtE",
	token.EQL:  "Eq",
	token.NEQ:  "NotEq",
	token.LAND: "And",
	token.LOR:  "Or",
}

func describe(original, mutated token.Token) string {
	return fmt.Sprintf("%s -> %s", operatorNames[original], operatorNames[mutated])
}

func offsetForPos(fset *token.FileSet, pos token.Pos) (int, bool) {
	file := fset.File(pos)
	if file == nil {
		return 0, false
	}

	return file.Offset(pos), true
}

func replaceRange(content []byte, start, end int, replacement string) []byte {
	if start < 0 || end < start || end > len(content) {
		return nil
	}

	mutated := make([]byte, 0, len(content)-(end-start)+len(replacement))
	mutated = append(mutated, content[:start]...)
	mutated = append(mutated, []byte(replacement)...)
	mutated = append(mutated, content[end:]...)

	return mutated
}

func ensureTrailingNewline(content []byte) []byte {
	if len(content) == 0 || content[len(content)-1] == '\n' {
		return content
	}

	return append(content, '\n')
}

// diffCode renders a unified diff of the mutation for survivor diagnostics.
func diffCode(original, mutated []byte) string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(original)),
		B:        difflib.SplitLines(string(mutated)),
		FromFile: "original",
		ToFile:   "mutated",
		Context:  2,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return ""
	}

	return text
}

// build assembles a Mutation from a successful splice. A nil mutated buffer
// means the site's offsets did not resolve; the caller skips that site.
func build(mutationType m.MutationType, file m.Path, line, offset int, description string, original, mutated []byte) m.Mutation {
	h := sha256.Sum256(fmt.Appendf(nil, "%s-%s-%d", file, mutationType, offset))

	return m.Mutation{
		ID:          fmt.Sprintf("%x", h)[:16],
		File:        file,
		Line:        line,
		Type:        mutationType,
		Description: description,
		Suggestion:  mutationType.Suggestion(),
		MutatedCode: ensureTrailingNewline(mutated),
		DiffCode:    diffCode(original, mutated),
	}
}
