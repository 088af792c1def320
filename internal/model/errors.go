package model

import "fmt"

// RestoreError reports a failure to put a file's original content back after a
// scoped substitution. It is fatal: continuing would corrupt the working tree
// for every subsequent mutation.
type RestoreError struct {
	File Path
	Err  error
}

func (e *RestoreError) Error() string {
	return fmt.Sprintf("failed to restore original content of %s: %v", e.File, e.Err)
}

func (e *RestoreError) Unwrap() error {
	return e.Err
}
