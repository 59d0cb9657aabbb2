package handler

// errorResponse documents the envelope rendered by the central error handler.
type errorResponse struct {
	Detail string `json:"detail"`
}
