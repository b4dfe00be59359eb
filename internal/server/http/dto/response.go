package dto

// ErrorResponse is the body of every 4xx/5xx reply.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}
