package models

import "github.com/shopspring/decimal"

// MoneyRecord is an account transaction, a withdrawal or an S5 sub-account entry.
// OutstandingBalance is computed upstream and only displayed here.
type MoneyRecord struct {
	Id                 ID              `json:"id"`
	Date               string          `json:"date"`
	Account            string          `json:"account,omitempty"`
	Particulars        string          `json:"particulars"`
	Deposit            decimal.Decimal `json:"deposit"`
	Withdraw           decimal.Decimal `json:"withdraw"`
	Payment            decimal.Decimal `json:"payment"`
	Channel            string          `json:"channel"`
	Notes              string          `json:"notes"`
	Proof              []string        `json:"proof"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
}

type Account struct {
	Id                 ID              `json:"id"`
	AccountName        string          `json:"account_name"`
	AccountNumber      string          `json:"account_number"`
	Bank               string          `json:"bank"`
	StartingBalance    decimal.Decimal `json:"starting_balance"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
}

type Receivable struct {
	Id            ID              `json:"id"`
	Customer      string          `json:"customer"`
	InvoiceNumber string          `json:"invoice_number"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       string          `json:"due_date"`
	Status        string          `json:"status"`
}

// FinancialRecord is one row of the composite financial report.
type FinancialRecord struct {
	Id          ID              `json:"id"`
	Date        string          `json:"date"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Income      decimal.Decimal `json:"income"`
	Expense     decimal.Decimal `json:"expense"`
}
