package model

// MutationType represents the category of mutation.
type MutationType string

const (
	// MutationArithmetic swaps paired arithmetic operators (+ <-> -, * <-> /).
	MutationArithmetic MutationType = "arithmetic"
	// MutationComparison swaps adjacent comparison operators (< <-> <=, > <-> >=, == <-> !=).
	MutationComparison MutationType = "comparison"
	// MutationBoolean swaps boolean connectives (&& <-> ||).
	MutationBoolean MutationType = "boolean"
	// MutationReturnValue rewrites a value-carrying return into a bare return.
	MutationReturnValue MutationType = "return_value"
	// MutationNegateCond wraps an if condition in a logical negation.
	MutationNegateCond MutationType = "negate_cond"
)

// Suggestion returns the fix hint shown for survivors of this category.
func (t MutationType) Suggestion() string {
	return suggestions[t]
}

var suggestions = map[MutationType]string{
	MutationArithmetic:  "Add assertion checking the computed result value",
	MutationComparison:  "Add boundary/edge-case tests (off-by-one values)",
	MutationReturnValue: "Assert the return value explicitly, don't just call the function",
	MutationBoolean:     "Test both true and false branches of this condition",
	MutationNegateCond:  "Ensure tests cover both outcomes of this conditional",
}

// Mutation is one single-point mutant: the full mutated source of a file plus
// the metadata of the site that produced it. Immutable once generated.
type Mutation struct {
	ID          string       `yaml:"id" json:"id"`
	File        Path         `yaml:"file" json:"file"`
	Line        int          `yaml:"line" json:"line"`
	Type        MutationType `yaml:"type" json:"operator"`
	Description string       `yaml:"description" json:"description"`
	Suggestion  string       `yaml:"suggestion" json:"suggestion"`
	MutatedCode []byte       `yaml:"-" json:"-"`
	DiffCode    string       `yaml:"diff" json:"diff"`
}
