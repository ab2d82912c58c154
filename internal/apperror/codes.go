package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	// General validation
	CodeRequiredField   Code = "REQUIRED_FIELD"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeInvalidFormat   Code = "INVALID_FORMAT"
	CodeInvalidState    Code = "INVALID_STATE"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidationError Code = "VALIDATION_ERROR"

	// Configuration
	CodeConfigurationError Code = "CONFIGURATION_ERROR"

	// External service errors
	CodeExternalServiceError Code = "EXTERNAL_SERVICE_ERROR"
	CodeServiceTimeout       Code = "SERVICE_TIMEOUT"
	CodeServiceUnavailable   Code = "SERVICE_UNAVAILABLE"
	CodeRateLimitExceeded    Code = "RATE_LIMIT_EXCEEDED"

	// System errors
	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"
)

// Orderbook aggregator error codes, one per error kind in the design notes.
const (
	// CodeConfigError: missing CLI pair argument, malformed bind address.
	CodeConfigError Code = "CONFIG_ERROR"

	// CodeVenueContractError: metadata missing expected fields, subscription
	// handshake not confirmed.
	CodeVenueContractError Code = "VENUE_CONTRACT_ERROR"

	// CodeVenueNetworkError: HTTP or WebSocket connect/read failure.
	CodeVenueNetworkError Code = "VENUE_NETWORK_ERROR"

	// CodeVenueDecodeError: JSON parse failure, non-decimal numeric string.
	CodeVenueDecodeError Code = "VENUE_DECODE_ERROR"

	// CodeRowShapeError: a level row with a field count other than 2.
	// Non-fatal: the surrounding Update is still published.
	CodeRowShapeError Code = "ROW_SHAPE_ERROR"

	// CodeSubscriberSendError: a subscriber's outbound queue reported
	// closed. Local to that subscriber; the pipeline continues.
	CodeSubscriberSendError Code = "SUBSCRIBER_SEND_ERROR"
)
