package types

// SuccessEnvelope is the uniform success payload: status code, data, message.
type SuccessEnvelope struct {
	StatusCode int    `json:"status_code"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope mirrors SuccessEnvelope for failures.
type ErrorEnvelope struct {
	StatusCode int      `json:"status_code"`
	Error      APIError `json:"error"`
	Message    string   `json:"message"`
}
