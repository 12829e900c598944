package patient

import "fmt"

// ValidationError marks input that failed validation or normalization.
// Handlers map it to 400, keeping it distinct from persistence failures.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}
