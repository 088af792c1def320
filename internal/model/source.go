// Package model defines the data structures for mutation gating.
package model

// Path represents a file system path.
type Path string

// LineSet is a set of source line numbers eligible for mutation.
// A nil LineSet places no restriction: every line is eligible.
type LineSet map[int]struct{}

// NewLineSet builds a LineSet from the given line numbers.
func NewLineSet(lines ...int) LineSet {
	set := make(LineSet, len(lines))
	for _, line := range lines {
		set[line] = struct{}{}
	}

	return set
}

// Add inserts a line number into the set.
func (s LineSet) Add(line int) {
	s[line] = struct{}{}
}

// Contains reports whether line is eligible. A nil set contains every line.
func (s LineSet) Contains(line int) bool {
	if s == nil {
		return true
	}

	_, ok := s[line]

	return ok
}

// Sorted returns the lines in ascending order.
func (s LineSet) Sorted() []int {
	lines := make([]int, 0, len(s))
	for line := range s {
		lines = append(lines, line)
	}

	for i := 0; i < len(lines); i++ {
		for j := i + 1; j < len(lines); j++ {
			if lines[j] < lines[i] {
				lines[i], lines[j] = lines[j], lines[i]
			}
		}
	}

	return lines
}

// ChangeSet maps changed source files to the line numbers touched by a
// revision. It is read-only input for one gate run; an empty map is a valid
// "no changes" input.
type ChangeSet map[Path]LineSet

// Files returns the changed file paths in ascending order so that runs over
// the same ChangeSet evaluate files in a stable order.
func (c ChangeSet) Files() []Path {
	files := make([]Path, 0, len(c))
	for file := range c {
		files = append(files, file)
	}

	for i := 0; i < len(files); i++ {
		for j := i + 1; j < len(files); j++ {
			if files[j] < files[i] {
				files[i], files[j] = files[j], files[i]
			}
		}
	}

	return files
}
