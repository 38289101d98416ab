package dto

type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse carries the field→messages map for re-display.
type ValidationErrorResponse struct {
	Errors map[string][]string `json:"errors"`
}

// MessageResponse reports a successful operation, optionally with a
// soft warning (e.g. firing an already-fired employee).
type MessageResponse struct {
	Message string `json:"message"`
	Warning string `json:"warning,omitempty"`
}
