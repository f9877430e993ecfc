package model

import "time"

// Balance is the balance snapshot for a single account
type Balance struct {
	LedgerBalance    float64 `json:"ledgerBalance"`
	AvailableBalance float64 `json:"availableBalance"`
	Currency         string  `json:"currency"`
	Status           string  `json:"status"`
}

// Transaction is one ledger entry returned by the transaction history API
type Transaction struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	OccurredAt  time.Time `json:"occurredAt"`
	ReferenceID string    `json:"referenceId"`
}

// TransferRequest describes an internal transfer to submit
type TransferRequest struct {
	SourceAccountID          string  `json:"sourceAccountId"`
	DestinationAccountNumber string  `json:"destinationAccountNumber"`
	Amount                   float64 `json:"amount"`
	Currency                 string  `json:"currency"`
	Remarks                  string  `json:"remarks,omitempty"`
}

// TransferReceipt is the confirmation returned for a submitted transfer
type TransferReceipt struct {
	ReferenceID string       `json:"referenceId"`
	Debit       DebitedLeg   `json:"debit"`
}

// DebitedLeg is the amount actually debited from the source account
type DebitedLeg struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}
