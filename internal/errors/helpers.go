package errors

import "time"

// New creates a generic AppError with the supplied metadata.
func New(code string, category ErrorCategory, message string, err error) *AppError {
	return &AppError{
		Code:      code,
		Category:  category,
		Message:   message,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// StorageCorruptError reports a backing store that exists but cannot be parsed.
func StorageCorruptError(message string, err error) *AppError {
	return New(CodeStorageCorrupt, ErrCategoryStorage, message, err)
}

// StorageWriteError reports a backing store that could not be written.
func StorageWriteError(message string, err error) *AppError {
	return New(CodeStorageWrite, ErrCategoryStorage, message, err)
}

// StorageReadError reports an existing backing store that could not be read.
func StorageReadError(message string, err error) *AppError {
	return New(CodeStorageRead, ErrCategoryStorage, message, err)
}

// ValidationError creates a VALIDATION category error instance.
func ValidationError(code, message string, err error) *AppError {
	return New(code, ErrCategoryValidation, message, err)
}

// ConfigError creates a CONFIG category error instance.
func ConfigError(code, message string, err error) *AppError {
	return New(code, ErrCategoryConfig, message, err)
}

// UserLogicError wraps a failure reported by wrapped application logic.
// These are always recoverable: the wrapper reports them and carries on.
func UserLogicError(message string, err error) *AppError {
	appErr := New(CodeUserLogic, ErrCategoryRun, message, err)
	appErr.Recoverable = true
	return appErr
}

// IsStorageCorrupt reports whether err carries a StorageCorruptError.
func IsStorageCorrupt(err error) bool {
	return hasCode(err, CodeStorageCorrupt)
}

// IsStorageWrite reports whether err carries a StorageWriteError.
func IsStorageWrite(err error) bool {
	return hasCode(err, CodeStorageWrite)
}

// IsStorageRead reports whether err carries a StorageReadError.
func IsStorageRead(err error) bool {
	return hasCode(err, CodeStorageRead)
}

// IsValidation reports whether err belongs to the VALIDATION category.
func IsValidation(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Category == ErrCategoryValidation
}

// IsUserLogic reports whether err carries a UserLogicError.
func IsUserLogic(err error) bool {
	return hasCode(err, CodeUserLogic)
}

func hasCode(err error, code string) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}
