package task

// ExecutionResult is the outcome of one capability invocation. Hard failures
// are returned as errors instead; every successful path sets Success and
// leaves Error nil.
type ExecutionResult struct {
	Success bool    `json:"success"`
	Output  any     `json:"output"`
	Error   *string `json:"error"`
}

// Succeeded returns a successful result carrying output (which may be nil).
func Succeeded(output any) *ExecutionResult {
	return &ExecutionResult{Success: true, Output: output}
}

// Failed returns a soft failure result. No built-in capability produces one;
// it exists for capabilities that complete but report a failure in-band.
func Failed(message string) *ExecutionResult {
	return &ExecutionResult{Success: false, Error: &message}
}
