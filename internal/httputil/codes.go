package httputil

// Machine-readable error codes returned alongside error messages
const (
	CodeInvalidRequestBody = "INVALID_REQUEST_BODY"
	CodeInternalError      = "INTERNAL_ERROR"
	CodeTooManyRequests    = "TOO_MANY_REQUESTS"

	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeInvalidPhoneFormat = "INVALID_PHONE_FORMAT"
	CodePasswordPolicy     = "PASSWORD_POLICY_VIOLATION"
	CodePasswordMismatch   = "PASSWORD_MISMATCH"
	CodeInvalidPrice       = "INVALID_PRICE"

	CodeAlreadyExists = "ALREADY_EXISTS"
	CodeNotFound      = "NOT_FOUND"

	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidAuthHeader  = "INVALID_AUTH_HEADER"
	CodeMissingAuth        = "MISSING_AUTH"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeTokenExpired       = "TOKEN_EXPIRED"
)
