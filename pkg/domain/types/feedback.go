package types

// FeedbackState tracks the user's thumbs-up/down verdict on an assistant message
type FeedbackState string

const (
	FeedbackNone     FeedbackState = ""
	FeedbackPositive FeedbackState = "positive"
	FeedbackNegative FeedbackState = "negative"

	// FeedbackError marks a message whose feedback submission failed.
	// The UI may offer a retry; the tracker does not.
	FeedbackError FeedbackState = "error"
)

// IsValid checks if the feedback state is one a caller may submit
func (x FeedbackState) IsValid() bool {
	switch x {
	case FeedbackPositive, FeedbackNegative:
		return true
	default:
		return false
	}
}

// String returns the string representation of the feedback state
func (x FeedbackState) String() string {
	return string(x)
}
