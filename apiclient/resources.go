package apiclient

// Resource pins an upstream collection endpoint to the key its list response
// nests the collection under. An empty Key means the body is the bare array.
type Resource struct {
	Name string
	Path string
	Key  string
}

var (
	Transactions    = Resource{Name: "transactions", Path: "/api/transactions", Key: "data"}
	Withdrawals     = Resource{Name: "withdrawals", Path: "/api/withdrawals", Key: "data"}
	Accounts        = Resource{Name: "accounts", Path: "/api/accounts", Key: "accounts"}
	Budgets         = Resource{Name: "budgets", Path: "/api/requestbudget", Key: "budgets"}
	Loans           = Resource{Name: "loans", Path: "/api/loanamount", Key: "loans"}
	Receivables     = Resource{Name: "receivables", Path: "/api/receivables", Key: "data"}
	Maintenances    = Resource{Name: "maintenances", Path: "/api/maintenances", Key: "maintenances"}
	RatesPerTrip    = Resource{Name: "rates-per-trip", Path: "/api/rates-per-trip", Key: "rates"}
	RatesPerMonth   = Resource{Name: "rates-per-month", Path: "/api/rates-per-month", Key: "rates"}
	RatesPerYear    = Resource{Name: "rates-per-year", Path: "/api/rates-per-year", Key: "rates"}
	S5Accounts      = Resource{Name: "s5-accounts", Path: "/api/s5-accounts", Key: "data"}
	FinancialReport = Resource{Name: "financial-report", Path: "/api/financial-report", Key: "records"}
	Bookings        = Resource{Name: "bookings", Path: "/api/bookings", Key: "bookings"}
	DelayReports    = Resource{Name: "delay-reports", Path: "/api/delay-reports", Key: "data"}
	ReturnItems     = Resource{Name: "return-items", Path: "/api/return-items", Key: ""}
)
