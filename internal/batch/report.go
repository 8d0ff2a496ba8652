package batch

import "github.com/toxicwind/ComfyUI-Manager/internal/lifecycle"

// Result is the outcome of one node's step.
type Result struct {
	ID      string
	Op      Operation
	Outcome lifecycle.Outcome // meaningful only when Err is nil
	Err     error
}

// OK reports whether the step succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Report holds one Result per requested identifier.
type Report struct {
	Results []Result
}

// Failed returns the results that carry an error.
func (r *Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// Succeeded returns the results without an error.
func (r *Report) Succeeded() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.OK() {
			out = append(out, res)
		}
	}
	return out
}
