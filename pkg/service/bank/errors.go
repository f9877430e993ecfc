package bank

import (
	"fmt"

	"github.com/sunbank-labs/vaani/pkg/domain/types"
)

// APIError is a structured failure returned by the core-banking API. The
// code drives session-expiry detection; the message is safe to show to the
// customer as-is.
type APIError struct {
	Code       types.ErrorCode `json:"code"`
	Message    string          `json:"message"`
	HTTPStatus int             `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("core-banking API error: %s (%s)", e.Message, e.Code)
}

// ErrorCode exposes the machine-readable code for types.CodeOf
func (e *APIError) ErrorCode() types.ErrorCode {
	return e.Code
}

// UserMessage is the customer-facing text of the failure
func (e *APIError) UserMessage() string {
	return e.Message
}
