package harness

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates the outcome matched the scenario's expect clause.
	Pass bool `json:"pass"`

	// Expression is the string form of the evaluated expression.
	Expression string `json:"expression"`

	// Value is the rendered result (see render.Value). Nil when absent or
	// when evaluation failed.
	Value any `json:"value,omitempty"`

	// Absent is true when evaluation succeeded with an absent result.
	Absent bool `json:"absent,omitempty"`

	// ErrorCode and Error describe a failed evaluation.
	ErrorCode string `json:"error_code,omitempty"`
	Error     string `json:"error,omitempty"`

	// Errors contains expectation mismatches.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Calls counts adapter capability calls made by the evaluation.
	Calls map[string]float64 `json:"calls,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
		Calls:  map[string]float64{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
