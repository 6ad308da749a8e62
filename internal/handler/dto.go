package handler

// === Responses ===

type CreateResponse struct {
	URL  string `json:"url"`
	Code string `json:"code"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Error messages returned by Create.
const (
	MsgUnauthorized = "Unauthorized access"
	MsgInvalidJSON  = "Invalid JSON"
	MsgURLRequired  = "A valid URL is required"
)
