package types

import "errors"

// ErrorCode is the machine-readable code carried by core-banking API errors
type ErrorCode string

const (
	ErrCodeSessionExpired     ErrorCode = "session_expired"
	ErrCodeSessionInvalid     ErrorCode = "session_invalid"
	ErrCodeDeviceVerification ErrorCode = "device_verification_required"
	ErrCodeTokenInvalid       ErrorCode = "token_invalid"
)

// IsSessionExpiry reports whether the code means the user's banking session
// is no longer usable and a sign-out must be forced. The set is fixed; any
// other code is treated as an ordinary backend failure.
func (x ErrorCode) IsSessionExpiry() bool {
	switch x {
	case ErrCodeSessionExpired,
		ErrCodeSessionInvalid,
		ErrCodeDeviceVerification,
		ErrCodeTokenInvalid:
		return true
	default:
		return false
	}
}

// String returns the string representation of the error code
func (x ErrorCode) String() string {
	return string(x)
}

type coded interface {
	ErrorCode() ErrorCode
}

// CodeOf extracts the ErrorCode from an error chain. Returns the empty code
// when no error in the chain carries one.
func CodeOf(err error) ErrorCode {
	var c coded
	if errors.As(err, &c) {
		return c.ErrorCode()
	}
	return ""
}
