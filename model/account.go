package model

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Balances and amounts are stored as bare JSON numbers in the backing
	// file, not as quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Account represents a single bank account. The raw PIN is never stored;
// only its hex digest is persisted in the `pin` field.
type Account struct {
	Name          string          `json:"name"`
	Age           int             `json:"age"`
	Email         string          `json:"email"`
	PINHash       string          `json:"pin"`
	AccountNumber string          `json:"account_no"`
	Balance       decimal.Decimal `json:"balance"`
	Transactions  []Transaction   `json:"transactions"`
}

// AccountDetails is the read-only view returned by the show-details
// operation: account fields plus the most recent transactions in
// chronological order.
type AccountDetails struct {
	Name    string
	Age     int
	Email   string
	Balance decimal.Decimal
	Recent  []Transaction
}
