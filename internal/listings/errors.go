package listings

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("not found")

const (
	ErrorCodeConfig           = "config_error"
	ErrorCodeGenerationFailed = "generation_failed"
	ErrorCodeClassifierSchema = "classifier_schema"
	ErrorCodeValidationHard   = "validation_hard"
	ErrorCodeBudgetExhausted  = "budget_exhausted"
	ErrorCodeStorage          = "storage_error"
	ErrorCodeInternal         = "internal_error"
)

// PipelineError carries an error code through the generation pipeline so
// the handler can map it to the right HTTP status.
type PipelineError struct {
	Code    string
	Message string
	Err     error
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *PipelineError) Unwrap() error { return e.Err }

func pipelineErr(code, message string, err error) *PipelineError {
	return &PipelineError{Code: code, Message: message, Err: err}
}

const maxStoredErrorLen = 500

// sanitizeMessage collapses an error message to a single truncated line
// before it is persisted or returned to clients.
func sanitizeMessage(msg string) string {
	msg = strings.Join(strings.Fields(msg), " ")
	if len(msg) > maxStoredErrorLen {
		msg = msg[:maxStoredErrorLen]
	}
	return msg
}
