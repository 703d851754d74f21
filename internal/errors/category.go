package errors

// ErrorCategory groups related application errors for unified handling.
type ErrorCategory string

const (
	ErrCategoryStorage    ErrorCategory = "STORAGE"
	ErrCategoryValidation ErrorCategory = "VALIDATION"
	ErrCategoryConfig     ErrorCategory = "CONFIG"
	ErrCategoryRun        ErrorCategory = "RUN"
)
