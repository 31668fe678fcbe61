package models

// APICode is the symbolic result code returned in every response envelope.
type APICode string

const (
	CodeSuccess             APICode = "SUCCESS"
	CodeInvalidParams       APICode = "INVALID_PARAMS"
	CodeJWTInvalid          APICode = "JWT_INVALID"
	CodeInternalServerError APICode = "INTERNAL_SERVER_ERROR"
)

// Response is the envelope every endpoint returns, success or failure.
type Response struct {
	Result  any     `json:"result"`
	Message string  `json:"message"`
	Success bool    `json:"success"`
	Code    APICode `json:"code"`
}
