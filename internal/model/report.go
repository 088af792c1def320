package model

// Status is the aggregate verdict of a gate run.
type Status string

const (
	// StatusPass indicates the kill rate met the threshold.
	StatusPass Status = "pass"
	// StatusFail indicates the kill rate fell below the threshold.
	StatusFail Status = "fail"
)

// Evaluation is the outcome of running the test command against one mutation.
type Evaluation struct {
	Mutation Mutation `yaml:"mutation" json:"mutation"`
	// Killed is true when the test command exited nonzero or timed out while
	// the mutation was live. Timeout-as-kill is contractual.
	Killed bool   `yaml:"killed" json:"killed"`
	Output string `yaml:"-" json:"-"`
	// HarnessError is non-empty when the test command could not be started or
	// the evaluation workspace could not be prepared. Such evaluations count
	// neither as killed nor as survived.
	HarnessError string `yaml:"harness_error,omitempty" json:"harness_error,omitempty"`
}

// Errored reports whether the evaluation never produced a verdict.
func (e Evaluation) Errored() bool {
	return e.HarnessError != ""
}

// Survived reports whether the mutation outlived a clean test run.
func (e Evaluation) Survived() bool {
	return !e.Killed && !e.Errored()
}

// Report is the sole durable output of a gate run.
type Report struct {
	Status    Status       `yaml:"status" json:"status"`
	Total     int          `yaml:"total" json:"total"`
	Killed    int          `yaml:"killed" json:"killed"`
	Survived  int          `yaml:"survived" json:"survived"`
	Errored   int          `yaml:"errored" json:"errored"`
	KillRate  float64      `yaml:"kill_rate" json:"kill_rate"`
	Threshold float64      `yaml:"threshold" json:"threshold"`
	Survivors []Evaluation `yaml:"survivors" json:"survivors"`
}
