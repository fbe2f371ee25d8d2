package tr31

import "fmt"

// Code is a TR-31 error code. Positive codes are caller-visible data
// errors (malformed or inconsistent key block input); negative codes
// are internal cryptographic/provider failures. Zero is never used: a
// successful import returns a nil error.
type Code int

// Data error codes, spec.md §6.2.
const (
	CodeInvalidLength Code = iota + 1
	CodeUnsupportedVersion
	CodeInvalidLengthField
	CodeUnsupportedKeyUsage
	CodeUnsupportedAlgorithm
	CodeUnsupportedModeOfUse
	CodeInvalidKeyVersionField
	CodeUnsupportedExportability
	CodeInvalidNumberOfOptionalBlocksField
	CodeInvalidOptionalBlockData
	CodeInvalidPayloadField
	CodeInvalidAuthenticatorField
	CodeUnsupportedKBPKAlgorithm
	CodeUnsupportedKBPKLength
	CodeInvalidKeyLength
	CodeKeyBlockVerificationFailed
)

// Internal cryptographic/provider error codes. These never leak detail
// that could help an attacker distinguish a bad KBPK from a corrupted
// block; they exist to separate "my cipher provider broke" from "the
// data was wrong."
const (
	CodeInternalCipherFailure Code = -(iota + 1)
	CodeInternalRandomFailure
)

// String returns the stable, machine-oriented name of the code (not a
// prose description — that lives in Error.Description).
func (c Code) String() string {
	switch c {
	case CodeInvalidLength:
		return "INVALID_LENGTH"
	case CodeUnsupportedVersion:
		return "UNSUPPORTED_VERSION"
	case CodeInvalidLengthField:
		return "INVALID_LENGTH_FIELD"
	case CodeUnsupportedKeyUsage:
		return "UNSUPPORTED_KEY_USAGE"
	case CodeUnsupportedAlgorithm:
		return "UNSUPPORTED_ALGORITHM"
	case CodeUnsupportedModeOfUse:
		return "UNSUPPORTED_MODE_OF_USE"
	case CodeInvalidKeyVersionField:
		return "INVALID_KEY_VERSION_FIELD"
	case CodeUnsupportedExportability:
		return "UNSUPPORTED_EXPORTABILITY"
	case CodeInvalidNumberOfOptionalBlocksField:
		return "INVALID_NUMBER_OF_OPTIONAL_BLOCKS_FIELD"
	case CodeInvalidOptionalBlockData:
		return "INVALID_OPTIONAL_BLOCK_DATA"
	case CodeInvalidPayloadField:
		return "INVALID_PAYLOAD_FIELD"
	case CodeInvalidAuthenticatorField:
		return "INVALID_AUTHENTICATOR_FIELD"
	case CodeUnsupportedKBPKAlgorithm:
		return "UNSUPPORTED_KBPK_ALGORITHM"
	case CodeUnsupportedKBPKLength:
		return "UNSUPPORTED_KBPK_LENGTH"
	case CodeInvalidKeyLength:
		return "INVALID_KEY_LENGTH"
	case CodeKeyBlockVerificationFailed:
		return "KEY_BLOCK_VERIFICATION_FAILED"
	case CodeInternalCipherFailure:
		return "INTERNAL_CIPHER_FAILURE"
	case CodeInternalRandomFailure:
		return "INTERNAL_RANDOM_FAILURE"
	default:
		return fmt.Sprintf("UNKNOWN_CODE(%d)", int(c))
	}
}

// Error pairs a stable Code with a human-readable description: a typed
// value for every condition instead of an ad hoc string.
type Error struct {
	Code        Code
	Description string
}

func (e *Error) Error() string {
	return e.Code.String() + ": " + e.Description
}

func newErr(code Code, description string) *Error {
	return &Error{Code: code, Description: description}
}

// Sentinel instances for errors.Is comparisons. Every caller-visible
// data error and the one cryptographic error spec.md names are
// constructed through these so call sites never hand-roll a Code.
var (
	ErrInvalidLength                      = newErr(CodeInvalidLength, "key block length invalid")
	ErrUnsupportedVersion                 = newErr(CodeUnsupportedVersion, "unsupported key block format version")
	ErrInvalidLengthField                 = newErr(CodeInvalidLengthField, "key block length field invalid")
	ErrUnsupportedKeyUsage                = newErr(CodeUnsupportedKeyUsage, "unsupported key usage")
	ErrUnsupportedAlgorithm               = newErr(CodeUnsupportedAlgorithm, "unsupported key algorithm")
	ErrUnsupportedModeOfUse               = newErr(CodeUnsupportedModeOfUse, "unsupported key mode of use")
	ErrInvalidKeyVersionField             = newErr(CodeInvalidKeyVersionField, "key version field invalid")
	ErrUnsupportedExportability           = newErr(CodeUnsupportedExportability, "unsupported key exportability")
	ErrInvalidNumberOfOptionalBlocksField = newErr(CodeInvalidNumberOfOptionalBlocksField, "number of optional blocks field invalid")
	ErrInvalidOptionalBlockData           = newErr(CodeInvalidOptionalBlockData, "optional block data invalid")
	ErrInvalidPayloadField                = newErr(CodeInvalidPayloadField, "payload field invalid")
	ErrInvalidAuthenticatorField          = newErr(CodeInvalidAuthenticatorField, "authenticator field invalid")
	ErrUnsupportedKBPKAlgorithm           = newErr(CodeUnsupportedKBPKAlgorithm, "unsupported key block protection key algorithm")
	ErrUnsupportedKBPKLength              = newErr(CodeUnsupportedKBPKLength, "unsupported key block protection key length")
	ErrInvalidKeyLength                   = newErr(CodeInvalidKeyLength, "invalid key length; possibly incorrect key block protection key")
	ErrKeyBlockVerificationFailed         = newErr(CodeKeyBlockVerificationFailed, "key block verification failed; possibly incorrect key block protection key")

	errInternalCipherFailure = newErr(CodeInternalCipherFailure, "cipher provider failure")
	errInternalRandomFailure = newErr(CodeInternalRandomFailure, "entropy source failure")
)

// wrapInternal turns an internal provider error into the taxonomy's
// negative-coded internal error while preserving the cause for %w
// unwrapping and debugging.
func wrapInternal(cause error) error {
	return fmt.Errorf("%w: %v", errInternalCipherFailure, cause)
}
