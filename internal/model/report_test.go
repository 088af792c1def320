package model

import "testing"

func TestEvaluation_Classification(t *testing.T) {
	tests := []struct {
		name     string
		eval     Evaluation
		errored  bool
		survived bool
	}{
		{
			name:     "killed",
			eval:     Evaluation{Killed: true},
			errored:  false,
			survived: false,
		},
		{
			name:     "survived",
			eval:     Evaluation{},
			errored:  false,
			survived: true,
		},
		{
			name:     "harness error",
			eval:     Evaluation{HarnessError: "fork/exec: no such file"},
			errored:  true,
			survived: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.eval.Errored(); got != tt.errored {
				t.Fatalf("Errored() = %v, want %v", got, tt.errored)
			}

			if got := tt.eval.Survived(); got != tt.survived {
				t.Fatalf("Survived() = %v, want %v", got, tt.survived)
			}
		})
	}
}

func TestMutationType_Suggestion(t *testing.T) {
	for _, mt := range []MutationType{
		MutationArithmetic,
		MutationComparison,
		MutationBoolean,
		MutationReturnValue,
		MutationNegateCond,
	} {
		if mt.Suggestion() == "" {
			t.Fatalf("expected a fix suggestion for %s", mt)
		}
	}
}
