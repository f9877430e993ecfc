package model

// Account is a read-only snapshot of a customer account fetched from the
// core-banking API at conversation start. Identity is ID; the assistant
// never mutates accounts.
type Account struct {
	ID            string `json:"id"`
	AccountNumber string `json:"accountNumber"`
	Type          string `json:"type"`
	Currency      string `json:"currency"`
}

// Beneficiary is a registered transfer destination. Unlike accounts there is
// no default beneficiary: resolution failure is terminal for the intent.
type Beneficiary struct {
	Name          string `json:"name"`
	AccountNumber string `json:"accountNumber"`
}
