package errors

// FieldError is a single client-facing error message. Param names the failing
// input field for validation errors and is empty otherwise.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param,omitempty"`
}

// ErrorResponse is the envelope every non-2xx JSON body uses.
type ErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

// New builds an ErrorResponse carrying a single message.
func New(msg string) ErrorResponse {
	return ErrorResponse{Errors: []FieldError{{Msg: msg}}}
}

// NewFields builds an ErrorResponse from field-level errors, preserving order.
func NewFields(fields ...FieldError) ErrorResponse {
	return ErrorResponse{Errors: fields}
}
