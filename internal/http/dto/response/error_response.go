package response

type ErrorResponse struct {
	Code       string            `json:"code"`
	Error      string            `json:"error"`
	Errors     map[string]string `json:"errors,omitempty"`
	RetryAfter int               `json:"retry_after,omitempty"`
}

func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Code: code, Error: message}
}
