package loans

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPrincipal = errors.New("initial-amount-must-be-positive")
	ErrInvalidRate      = errors.New("interest-percentage-must-not-be-negative")
	ErrInvalidTerms     = errors.New("payment-terms-must-be-at-least-one-month")
)

// Schedule is the result of amortizing a consignment loan.
type Schedule struct {
	MonthlyRate    float64
	MonthlyPayment float64
	TotalPayment   float64
}

// Calculate amortizes principal over months at annualRate percent per year.
// A zero rate splits the principal evenly.
func Calculate(principal, annualRate float64, months int) (Schedule, error) {
	if principal <= 0 || math.IsNaN(principal) || math.IsInf(principal, 0) {
		return Schedule{}, ErrInvalidPrincipal
	}
	if annualRate < 0 || math.IsNaN(annualRate) || math.IsInf(annualRate, 0) {
		return Schedule{}, ErrInvalidRate
	}
	if months < 1 {
		return Schedule{}, ErrInvalidTerms
	}

	i := annualRate / 12 / 100
	n := float64(months)

	var monthly float64
	if i > 0 {
		f := math.Pow(1+i, n)
		monthly = principal * i * f / (f - 1)
	} else {
		monthly = principal / n
	}

	return Schedule{
		MonthlyRate:    i,
		MonthlyPayment: monthly,
		TotalPayment:   monthly * n,
	}, nil
}

// PaymentPerMonth is the monthly payment rounded to cents, as persisted.
func (s Schedule) PaymentPerMonth() decimal.Decimal {
	return decimal.NewFromFloat(s.MonthlyPayment).Round(2)
}

func (s Schedule) Total() decimal.Decimal {
	return decimal.NewFromFloat(s.TotalPayment).Round(2)
}
