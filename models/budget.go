package models

import "github.com/shopspring/decimal"

type BudgetStatus string

const (
	BudgetPending  BudgetStatus = "Pending"
	BudgetApproved BudgetStatus = "Approved"
)

// BudgetRequest mirrors the upstream record. Otp is shipped by the upstream list
// endpoint; the console never forwards it to the browser.
type BudgetRequest struct {
	Id           ID              `json:"id"`
	Date         string          `json:"date"`
	Requestee    string          `json:"requestee"`
	Department   string          `json:"department"`
	BudgetAmount decimal.Decimal `json:"budget_amount"`
	Voucher      string          `json:"voucher"`
	Status       BudgetStatus    `json:"status"`
	ApprovedBy   string          `json:"approved_by"`
	Otp          string          `json:"otp"`
}

type ApproveBudgetRequest struct {
	Otp string `json:"otp"`
}

type ApproveBudgetResponse struct {
	Message    string       `json:"message"`
	Status     BudgetStatus `json:"status"`
	InvalidOtp bool         `json:"invalid_otp"`
}
