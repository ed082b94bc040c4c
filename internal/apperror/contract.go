package apperror

import "strings"

// Soroban surfaces contract failures as free-form diagnostic text, so
// conditions the API must distinguish are classified by substring. The
// literals below match what the deployed contracts and the RPC host
// actually emit and must not be reworded.
const (
	fragAuthInvalidAction = "Error(Auth, InvalidAction)"
	fragNotInitialized    = "not initialized"
	fragNotFound          = "not found"
	fragMissingValue      = "MissingValue"
	fragContractInstance  = "contract instance"
)

// IsAuthRequired reports whether the error is the host's signature for
// a call that needs wallet authorization, which read-only simulation
// cannot provide.
func IsAuthRequired(err error) bool {
	return err != nil && strings.Contains(err.Error(), fragAuthInvalidAction)
}

// IsNotInitialized reports whether the error means the user account
// has no on-chain state yet. This is an expected condition for fresh
// accounts, not a failure.
func IsNotInitialized(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, fragNotInitialized) || strings.Contains(msg, fragNotFound)
}

// IsTokenNotDeployed reports whether the error indicates the Stellar
// Asset Contract for a token has not been deployed on this network.
func IsTokenNotDeployed(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, fragMissingValue) || strings.Contains(msg, fragContractInstance)
}

// ClassifyContract maps a contract invocation error to the most
// specific known code, falling back to CodeContractCallFailed.
func ClassifyContract(err error) Code {
	switch {
	case err == nil:
		return CodeUnknownError
	case IsAuthRequired(err):
		return CodeContractAuthRequired
	case IsNotInitialized(err):
		return CodeAccountNotInitialized
	case IsTokenNotDeployed(err):
		return CodeTokenNotDeployed
	default:
		return CodeContractCallFailed
	}
}
