package models

import "github.com/shopspring/decimal"

const (
	LoanUnpaid = "unpaid"
	LoanPaid   = "paid"
)

type ConsignmentLoan struct {
	Id                 ID              `json:"id"`
	Date               string          `json:"date"`
	Borrower           string          `json:"borrower"`
	InitialAmount      decimal.Decimal `json:"initial_amount"`
	InterestPercentage decimal.Decimal `json:"interest_percentage"`
	PaymentTerms       int             `json:"payment_terms"`
	PaymentPerMonth    decimal.Decimal `json:"payment_per_month"`
	TotalPayment       decimal.Decimal `json:"total_payment"`
	Status             string          `json:"status"`
}

type LoanQuoteRequest struct {
	InitialAmount      float64 `json:"initial_amount"`
	InterestPercentage float64 `json:"interest_percentage"`
	PaymentTerms       int     `json:"payment_terms"`
}

type LoanQuoteResponse struct {
	MonthlyRate     float64         `json:"monthly_rate"`
	PaymentPerMonth decimal.Decimal `json:"payment_per_month"`
	TotalPayment    decimal.Decimal `json:"total_payment"`
	Formatted       string          `json:"formatted"`
}
