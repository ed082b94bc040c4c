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
	CodeInvalidAction   Code = "INVALID_ACTION"

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

// Soroban / Stellar error codes
const (
	CodeSorobanConnectionFailed Code = "SOROBAN_CONNECTION_FAILED"
	CodeSorobanRPCError         Code = "SOROBAN_RPC_ERROR"
	CodeSimulationFailed        Code = "SIMULATION_FAILED"
	CodeTransactionFailed       Code = "TRANSACTION_FAILED"
	CodeTransactionTimeout      Code = "TRANSACTION_TIMEOUT"
	CodeInvalidXDR              Code = "INVALID_XDR"
	CodeInvalidAddress          Code = "INVALID_ADDRESS"
	CodeSequenceFetchFailed     Code = "SEQUENCE_FETCH_FAILED"

	// Contract-reported conditions (classified from contract error text)
	CodeContractCallFailed    Code = "CONTRACT_CALL_FAILED"
	CodeContractAuthRequired  Code = "CONTRACT_AUTH_REQUIRED"
	CodeAccountNotInitialized Code = "ACCOUNT_NOT_INITIALIZED"
	CodeTokenNotDeployed      Code = "TOKEN_NOT_DEPLOYED"

	// Market data errors
	CodeMarketDataUnavailable Code = "MARKET_DATA_UNAVAILABLE"
	CodeCoinGeckoAPIError     Code = "COINGECKO_API_ERROR"
	CodeCoinGeckoRateLimited  Code = "COINGECKO_RATE_LIMITED"

	// WebSocket errors
	CodeWebSocketConnectionError Code = "WEBSOCKET_CONNECTION_ERROR"
	CodeWebSocketClosed          Code = "WEBSOCKET_CLOSED"
	CodeWebSocketSendError       Code = "WEBSOCKET_SEND_ERROR"

	// State store errors
	CodeStateStoreError Code = "STATE_STORE_ERROR"

	// Circuit breaker errors
	CodeCircuitOpen     Code = "CIRCUIT_OPEN"
	CodeCircuitHalfOpen Code = "CIRCUIT_HALF_OPEN"
)
