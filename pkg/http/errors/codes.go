package errors

// Messages for the standardized error envelope. The texts are part of the
// public contract and must not change.
const (
	MsgNotFound       = "resource not found"
	MsgUnprocessable  = "unprocessable"
	MsgInvalidRequest = "invalid request"
)
