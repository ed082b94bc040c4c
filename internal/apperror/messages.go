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
	CodeInvalidAction:   "Invalid action",

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

	// Soroban / Stellar errors
	CodeSorobanConnectionFailed: "Failed to connect to Soroban RPC",
	CodeSorobanRPCError:         "Soroban RPC call failed",
	CodeSimulationFailed:        "Transaction simulation failed",
	CodeTransactionFailed:       "Transaction submission failed",
	CodeTransactionTimeout:      "Transaction not confirmed in time",
	CodeInvalidXDR:              "Invalid transaction XDR",
	CodeInvalidAddress:          "Invalid Stellar address",
	CodeSequenceFetchFailed:     "Failed to fetch account sequence",

	// Contract-reported conditions
	CodeContractCallFailed:    "Smart contract call failed",
	CodeContractAuthRequired:  "Contract call requires authorization",
	CodeAccountNotInitialized: "User account not initialized",
	CodeTokenNotDeployed:      "Token contract not deployed",

	// Market data errors
	CodeMarketDataUnavailable: "Market data unavailable",
	CodeCoinGeckoAPIError:     "CoinGecko API error",
	CodeCoinGeckoRateLimited:  "CoinGecko rate limit exceeded",

	// WebSocket errors
	CodeWebSocketConnectionError: "WebSocket connection error",
	CodeWebSocketClosed:          "WebSocket connection closed",
	CodeWebSocketSendError:       "Failed to send WebSocket message",

	// State store errors
	CodeStateStoreError: "State store operation failed",

	// Circuit breaker errors
	CodeCircuitOpen:     "Circuit breaker is open",
	CodeCircuitHalfOpen: "Circuit breaker is half-open",
}
