package dto

// APIResponse is the envelope every JSON endpoint answers with.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Success wraps payload data in a successful envelope.
func Success(data any) APIResponse {
	return APIResponse{Success: true, Data: data}
}

// Failure wraps an error message in a failed envelope.
func Failure(msg string) APIResponse {
	return APIResponse{Success: false, Error: msg}
}
