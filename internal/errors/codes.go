package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeCanceled           Code = "CANCELED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeDeadlineExceeded   Code = "DEADLINE_EXCEEDED"
	CodeNotFound           Code = "NOT_FOUND"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeOutOfRange         Code = "OUT_OF_RANGE"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
	CodeDataLoss           Code = "DATA_LOSS"

	// Roster validation codes
	CodeRosterFull         Code = "ROSTER_FULL"
	CodeSelectionCount     Code = "SELECTION_COUNT"
	CodeDuplicateSelection Code = "DUPLICATE_SELECTION"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// UserFacing reports whether errors with this code carry a message meant
// for the person at the keyboard rather than for logs.
func (c Code) UserFacing() bool {
	switch c {
	case CodeNotFound, CodeInvalidArgument, CodeFailedPrecondition, CodeOutOfRange,
		CodeRosterFull, CodeSelectionCount, CodeDuplicateSelection:
		return true
	default:
		return false
	}
}
