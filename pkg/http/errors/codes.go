package errors

// Error codes for standardized error responses
const (
	// Authentication errors
	ErrCodeUnauthorized           = "unauthorized"
	ErrCodeForbidden              = "forbidden"
	ErrCodeInvalidToken           = "invalid_token"
	ErrCodeTokenExpired           = "token_expired"
	ErrCodeAuthenticationRequired = "authentication_required"
	ErrCodeLoginFailed            = "login_failed"

	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeMissingField     = "missing_field"

	// Resource errors
	ErrCodeNotFound = "not_found"

	// Questionnaire errors
	ErrCodePoolExhausted    = "question_pool_exhausted"
	ErrCodeDailyLimit       = "daily_limit_reached"
	ErrCodeSubmitFailed     = "submit_failed"
	ErrCodeSelectionFailed  = "selection_failed"
	ErrCodeRewardFailed     = "reward_failed"
	ErrCodeResponseNotFound = "response_not_found"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
	ErrCodeUpstreamError      = "upstream_error"
)
