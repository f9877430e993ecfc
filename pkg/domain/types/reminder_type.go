package types

// ReminderType categorizes a reminder by the purpose inferred from its message
type ReminderType string

const (
	ReminderTypeBillPayment ReminderType = "bill_payment"
	ReminderTypeDueDate     ReminderType = "due_date"
	ReminderTypeSavings     ReminderType = "savings"
	ReminderTypeCustom      ReminderType = "custom"
)

// IsValid checks if the reminder type is valid
func (x ReminderType) IsValid() bool {
	switch x {
	case ReminderTypeBillPayment, ReminderTypeDueDate, ReminderTypeSavings, ReminderTypeCustom:
		return true
	default:
		return false
	}
}

// String returns the string representation of the reminder type
func (x ReminderType) String() string {
	return string(x)
}

// ReminderChannel identifies the surface a reminder was created from
type ReminderChannel string

const (
	ReminderChannelVoice ReminderChannel = "voice"
)
