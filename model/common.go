package model

// Response is the envelope every endpoint answers with. Error carries a
// machine-readable code on failures raised outside huma (rate limiting,
// panics).
type Response struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Play visualized"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty" example:"rate_limit_exceeded"`
}

// DefaultResponse wraps Response as a huma output body.
type DefaultResponse struct {
	Body Response
}
