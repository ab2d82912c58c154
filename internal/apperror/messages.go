package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	// General validation
	CodeRequiredField:   "Required field is missing",
	CodeInvalidInput:    "Invalid input provided",
	CodeInvalidFormat:   "Invalid data format",
	CodeInvalidState:    "Invalid state for this operation",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation error",

	// Configuration
	CodeConfigurationError: "Configuration error",

	// External service errors
	CodeExternalServiceError: "External service error",
	CodeServiceTimeout:       "Service request timeout",
	CodeServiceUnavailable:   "Service temporarily unavailable",
	CodeRateLimitExceeded:    "Rate limit exceeded",

	// System errors
	CodeInternalError: "Internal server error",
	CodeUnknownError:  "An unknown error occurred",

	// Orderbook aggregator errors
	CodeConfigError:         "Missing or malformed startup configuration",
	CodeVenueContractError:  "Venue response did not match the expected contract",
	CodeVenueNetworkError:   "Venue network request failed",
	CodeVenueDecodeError:    "Venue message could not be decoded",
	CodeRowShapeError:       "Malformed order book row skipped",
	CodeSubscriberSendError: "Subscriber outbound queue closed",
}
