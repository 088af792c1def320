package adapter

import (
	"context"
	"testing"

	m "mutagate.dev/pkg/mutagate/internal/model"
)

func TestParseUnifiedDiff_SingleHunk(t *testing.T) {
	out := `diff --git a/calc.go b/calc.go
index 1111111..2222222 100644
--- a/calc.go
+++ b/calc.go
@@ -4,2 +4,3 @@ func add(a, b int) int {
+	c := a + b
+	d := c * 2
+	return d
`

	changes := ParseUnifiedDiff(out)
	if len(changes) != 1 {
		t.Fatalf("expected 1 changed file, got %d", len(changes))
	}

	set := changes["calc.go"]
	if set == nil {
		t.Fatalf("expected calc.go in the change set")
	}

	for _, line := range []int{4, 5, 6} {
		if !set.Contains(line) {
			t.Fatalf("expected line %d to be eligible", line)
		}
	}

	if set.Contains(7) {
		t.Fatalf("line 7 is outside the hunk")
	}
}

func TestParseUnifiedDiff_MissingCountMeansOneLine(t *testing.T) {
	out := `--- a/calc.go
+++ b/calc.go
@@ -4 +4 @@ func add(a, b int) int {
-	c := a - b
+	c := a + b
`

	changes := ParseUnifiedDiff(out)

	set := changes["calc.go"]
	if set == nil || !set.Contains(4) || set.Contains(5) {
		t.Fatalf("expected exactly line 4, got %v", set)
	}
}

func TestParseUnifiedDiff_PureDeletionIgnored(t *testing.T) {
	out := `--- a/calc.go
+++ b/calc.go
@@ -4,2 +3,0 @@ func add(a, b int) int {
-	c := a + b
-	return c
`

	changes := ParseUnifiedDiff(out)
	if len(changes) != 0 {
		t.Fatalf("a pure deletion must contribute nothing, got %v", changes)
	}
}

func TestParseUnifiedDiff_TestFilesExcluded(t *testing.T) {
	out := `--- a/calc_test.go
+++ b/calc_test.go
@@ -10,2 +10,2 @@ func TestAdd(t *testing.T) {
+	x := 1
+	y := 2
`

	changes := ParseUnifiedDiff(out)
	if len(changes) != 0 {
		t.Fatalf("test files are not gated, got %v", changes)
	}
}

func TestParseUnifiedDiff_MultipleFiles(t *testing.T) {
	out := `--- a/a.go
+++ b/a.go
@@ -1 +1 @@
+package demo
--- a/b.go
+++ b/b.go
@@ -7,2 +8,2 @@
+	x := 1
+	y := 2
`

	changes := ParseUnifiedDiff(out)
	if len(changes) != 2 {
		t.Fatalf("expected 2 changed files, got %d", len(changes))
	}

	if !changes["a.go"].Contains(1) {
		t.Fatalf("expected a.go line 1")
	}

	if !changes["b.go"].Contains(8) || !changes["b.go"].Contains(9) {
		t.Fatalf("expected b.go lines 8-9, got %v", changes["b.go"])
	}
}

func TestParseUnifiedDiff_EmptyOutput(t *testing.T) {
	if changes := ParseUnifiedDiff(""); len(changes) != 0 {
		t.Fatalf("expected empty change set, got %v", changes)
	}
}

func TestGitDiffAdapter_NoRepositoryMeansNoChanges(t *testing.T) {
	a := NewGitDiffAdapter()

	changes, err := a.Changes(context.Background(), m.Path(t.TempDir()), "main")
	if err != nil {
		t.Fatalf("a missing repository must not be an error: %v", err)
	}

	if len(changes) != 0 {
		t.Fatalf("expected empty change set, got %v", changes)
	}
}
