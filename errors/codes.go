package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Element errors
const (
	// ErrCodeEmptyValue indicates an absent element reached a stage that requires one.
	ErrCodeEmptyValue ErrorCode = "EMPTY_VALUE"
	// ErrCodeInvalidFormat indicates an element could not be parsed.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// Lookup / input errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Execution errors
const (
	// ErrCodeCanceled indicates the run was canceled before completion.
	ErrCodeCanceled ErrorCode = "CANCELED"
	// ErrCodeInternal indicates an unexpected fault, such as a recovered panic.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var terminalCodes = map[ErrorCode]bool{
	ErrCodeEmptyValue:    true,
	ErrCodeInvalidFormat: true,
	ErrCodeNotFound:      true,
	ErrCodeInvalidInput:  true,
	ErrCodeInternal:      true,
	ErrCodeCanceled:      false,
}

// IsTerminalCode reports whether a fault with this code ends a sequence
// because of the data it carried, as opposed to an outside cancellation.
func IsTerminalCode(code ErrorCode) bool {
	return terminalCodes[code]
}
