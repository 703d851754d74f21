package errors

// Error codes shared across modules.
const (
	CodeStorageCorrupt = "STO-001"
	CodeStorageWrite   = "STO-002"
	CodeStorageRead    = "STO-003"

	CodeValidationGeneric = "VAL-000"
	CodeEmptyAppName      = "VAL-001"
	CodeInvalidVersion    = "VAL-002"
	CodeInvalidAppName    = "VAL-003"

	CodeConfigGeneric = "CFG-000"

	CodeUserLogic = "RUN-001"
)
