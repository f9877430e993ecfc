package model

import (
	"time"

	"github.com/sunbank-labs/vaani/pkg/domain/types"
)

// Reminder is a scheduled notification owned by the core-banking backend
type Reminder struct {
	ID           string                `json:"id"`
	ReminderType types.ReminderType    `json:"reminderType"`
	RemindAt     time.Time             `json:"remindAt"`
	Message      string                `json:"message"`
	AccountID    string                `json:"accountId,omitempty"`
	Channel      types.ReminderChannel `json:"channel"`
}

// ReminderRequest describes a reminder to create
type ReminderRequest struct {
	ReminderType types.ReminderType    `json:"reminderType"`
	RemindAt     time.Time             `json:"remindAt"`
	Message      string                `json:"message"`
	AccountID    string                `json:"accountId,omitempty"`
	Channel      types.ReminderChannel `json:"channel"`
}
