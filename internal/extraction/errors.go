package extraction

import "fmt"

// APICallError is a transport-level failure talking to the LLM.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError means the reply was not a JSON object once fences were stripped.
type ParseError struct {
	Message string
	Cause   error
	// Response is the cleaned reply text, kept for logging.
	Response string
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Failure is the only error Extract returns. It wraps an *APICallError or a
// *ParseError and is always recoverable: the caller skips the posting and
// moves on.
type Failure struct {
	Cause error
}

func (e *Failure) Error() string {
	return fmt.Sprintf("extraction failed: %v", e.Cause)
}

func (e *Failure) Unwrap() error {
	return e.Cause
}
