package types

import "github.com/google/uuid"

// SessionID identifies one assistant conversation session
type SessionID string

// NewSessionID generates a new UUID v4 SessionID
func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}

// String returns the string representation of the session ID
func (x SessionID) String() string {
	return string(x)
}

// MessageID identifies one message within a conversation
type MessageID string

// NewMessageID generates a new UUID v4 MessageID
func NewMessageID() MessageID {
	return MessageID(uuid.New().String())
}

// String returns the string representation of the message ID
func (x MessageID) String() string {
	return string(x)
}

// FeedbackID identifies one recorded feedback submission
type FeedbackID string

// NewFeedbackID generates a new UUID v4 FeedbackID
func NewFeedbackID() FeedbackID {
	return FeedbackID(uuid.New().String())
}

// String returns the string representation of the feedback ID
func (x FeedbackID) String() string {
	return string(x)
}
