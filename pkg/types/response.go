package types

// SuccessEnvelope wraps every successful JSON response body.
type SuccessEnvelope struct {
	Data  any  `json:"data"`
	Count *int `json:"count,omitempty"`
}

// APIError is the wire shape of a single error.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
