package generation

import "fmt"

// Generator produces text from a prompt in a single shot, no streaming.
type Generator interface {
	// ModelInfo identifies the backend and model, e.g. "ollama/llama3.2".
	ModelInfo() string
	Generate(prompt string) (string, error)
}

// ServiceError reports a failure talking to the generation model. It is
// surfaced to the caller as-is, never converted into the fallback answer.
type ServiceError struct {
	Backend string
	Err     error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("generation service (%s): %v", e.Backend, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }
