package models

import "github.com/shopspring/decimal"

// Maintenance is a preventive maintenance (PMS) record of a truck.
type Maintenance struct {
	Id                 ID              `json:"id"`
	Date               string          `json:"date"`
	PlateNumber        string          `json:"plate_number"`
	TruckModel         string          `json:"truck_model"`
	PartsReplaced      string          `json:"parts_replaced"`
	Quantity           int             `json:"quantity"`
	PricePartsReplaced decimal.Decimal `json:"price_parts_replaced"`
	ProofOfNeedToFixed []string        `json:"proof_of_need_to_fixed"`
	ProofOfPayment     []string        `json:"proof_of_payment"`
}

// RateRow is a per-trip, per-month or per-year aggregation row.
type RateRow struct {
	Id               ID              `json:"id"`
	Date             string          `json:"date"`
	Period           string          `json:"period"`
	PlateNumber      string          `json:"plate_number"`
	Trips            int             `json:"trips"`
	GrossIncome      decimal.Decimal `json:"gross_income"`
	OperationalCosts decimal.Decimal `json:"operational_costs"`
}

// Net is computed at render time, the upstream does not send it.
func (r RateRow) Net() decimal.Decimal {
	return r.GrossIncome.Sub(r.OperationalCosts)
}

type Booking struct {
	Id          ID     `json:"id"`
	PlateNumber string `json:"plate_number"`
	BookingDate string `json:"booking_date"`
	Customer    string `json:"customer"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Status      string `json:"status"`
}

type DelayReport struct {
	Id          ID     `json:"id"`
	Date        string `json:"date"`
	PlateNumber string `json:"plate_number"`
	DriverName  string `json:"driver_name"`
	Reason      string `json:"reason"`
	DelayHours  int    `json:"delay_hours"`
}
