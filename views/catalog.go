package views

import (
	"context"
	"errors"
	"strconv"
	"time"

	"adminconsole/apiclient"
	"adminconsole/forms"
	"adminconsole/loans"
	"adminconsole/models"
	"adminconsole/tableview"

	"go.uber.org/zap"
)

const dateFormat = "2006-01-02"

// Registry holds every view by name. The views with extra status transitions are
// also kept typed.
type Registry struct {
	views map[string]View
	order []string

	Budgets     *Table[models.BudgetRequest]
	Loans       *Table[models.ConsignmentLoan]
	ReturnItems *Table[models.ReturnItem]
}

func NewRegistry() *Registry {
	return &Registry{views: map[string]View{}}
}

func (r *Registry) Add(v View) {
	if _, ok := r.views[v.Name()]; !ok {
		r.order = append(r.order, v.Name())
	}
	r.views[v.Name()] = v
}

func (r *Registry) Get(name string) (View, bool) {
	v, ok := r.views[name]
	return v, ok
}

// List returns the views role may open, in catalog order.
func (r *Registry) List(role models.Role) []View {
	var out []View
	for _, name := range r.order {
		if v := r.views[name]; v.Allows(role) {
			out = append(out, v)
		}
	}
	return out
}

func (r *Registry) StartAll(ctx context.Context) {
	for _, name := range r.order {
		r.views[name].Start(ctx)
	}
}

func (r *Registry) StopAll() {
	for _, name := range r.order {
		r.views[name].Stop()
	}
}

// Catalog builds the console's table views. interval picks the poll interval per view name.
func Catalog(client *apiclient.Client, interval func(view string) time.Duration, log *zap.Logger) *Registry {
	reg := NewRegistry()

	reg.Add(New(client, transactionsDef(apiclient.Transactions, "Transactions"), interval(apiclient.Transactions.Name), log))
	reg.Add(New(client, withdrawalsDef(), interval(apiclient.Withdrawals.Name), log))
	reg.Add(New(client, accountsDef(), interval(apiclient.Accounts.Name), log))

	reg.Budgets = New(client, budgetsDef(), interval(apiclient.Budgets.Name), log)
	reg.Add(reg.Budgets)

	reg.Loans = New(client, loansDef(), interval(apiclient.Loans.Name), log)
	reg.Add(reg.Loans)

	reg.Add(New(client, receivablesDef(), interval(apiclient.Receivables.Name), log))
	reg.Add(New(client, maintenancesDef(), interval(apiclient.Maintenances.Name), log))
	reg.Add(New(client, ratesDef(apiclient.RatesPerTrip, "Rates per trip"), interval(apiclient.RatesPerTrip.Name), log))
	reg.Add(New(client, ratesDef(apiclient.RatesPerMonth, "Rates per month"), interval(apiclient.RatesPerMonth.Name), log))
	reg.Add(New(client, ratesDef(apiclient.RatesPerYear, "Rates per year"), interval(apiclient.RatesPerYear.Name), log))
	reg.Add(New(client, transactionsDef(apiclient.S5Accounts, "S5 accounts"), interval(apiclient.S5Accounts.Name), log))
	reg.Add(New(client, financialReportDef(), interval(apiclient.FinancialReport.Name), log))
	reg.Add(New(client, bookingsDef(), interval(apiclient.Bookings.Name), log))
	reg.Add(New(client, delayReportsDef(), interval(apiclient.DelayReports.Name), log))

	reg.ReturnItems = New(client, returnItemsDef(), interval(apiclient.ReturnItems.Name), log)
	reg.Add(reg.ReturnItems)

	return reg
}

var finance = []models.Role{models.Accounting}

// year and month back the dropdown selectors; an unparseable date yields "".
func year(date string) string {
	if t, ok := parseDate(date); ok {
		return strconv.Itoa(t.Year())
	}
	return ""
}

func month(date string) string {
	if t, ok := parseDate(date); ok {
		return t.Month().String()
	}
	return ""
}

func parseDate(s string) (time.Time, bool) {
	if len(s) >= len(dateFormat) {
		s = s[:len(dateFormat)]
	}
	t, err := time.Parse(dateFormat, s)
	return t, err == nil
}

func positive(name string) func(string) error {
	return func(v string) error {
		if n, err := strconv.ParseFloat(v, 64); err != nil || n <= 0 {
			return errors.New(name + "-must-be-positive")
		}
		return nil
	}
}

func wholeMonths(v string) error {
	if n, err := strconv.Atoi(v); err != nil || n < 1 {
		return loans.ErrInvalidTerms
	}
	return nil
}

var channels = []string{"Cash", "Bank Transfer", "GCash", "Check"}

func transactionsDef(res apiclient.Resource, title string) Definition[models.MoneyRecord] {
	return Definition[models.MoneyRecord]{
		Name:     res.Name,
		Title:    title,
		Resource: res,
		Roles:    finance,
		Key:      func(m models.MoneyRecord) string { return m.Id.String() },
		Columns: []tableview.Column[models.MoneyRecord]{
			{Name: "date", Title: "Date", Value: func(m models.MoneyRecord) interface{} { return m.Date }},
			{Name: "year", Title: "Year", Value: func(m models.MoneyRecord) interface{} { return year(m.Date) }},
			{Name: "month", Title: "Month", Value: func(m models.MoneyRecord) interface{} { return month(m.Date) }},
			{Name: "account", Title: "Account", Searchable: true, Value: func(m models.MoneyRecord) interface{} { return m.Account }},
			{Name: "particulars", Title: "Particulars", Searchable: true, Value: func(m models.MoneyRecord) interface{} { return m.Particulars }},
			{Name: "deposit", Title: "Deposit", Money: true, Value: func(m models.MoneyRecord) interface{} { return m.Deposit }},
			{Name: "withdraw", Title: "Withdraw", Money: true, Value: func(m models.MoneyRecord) interface{} { return m.Withdraw }},
			{Name: "channel", Title: "Channel", Searchable: true, Value: func(m models.MoneyRecord) interface{} { return m.Channel }},
			{Name: "notes", Title: "Notes", Searchable: true, Value: func(m models.MoneyRecord) interface{} { return m.Notes }},
			{Name: "outstanding_balance", Title: "Outstanding balance", Money: true, Value: func(m models.MoneyRecord) interface{} { return m.OutstandingBalance }},
		},
		Form: &forms.Form{Fields: []forms.Field{
			{Name: "date", Label: "Date", Kind: forms.Date, Required: true},
			{Name: "account", Label: "Account", Kind: forms.Text, Required: res.Name == apiclient.S5Accounts.Name},
			{Name: "particulars", Label: "Particulars", Kind: forms.Text, Required: true},
			{Name: "deposit", Label: "Deposit", Kind: forms.Number, Default: "0"},
			{Name: "withdraw", Label: "Withdraw", Kind: forms.Number, Default: "0"},
			{Name: "channel", Label: "Channel", Kind: forms.Select, Options: channels, Required: true},
			{Name: "notes", Label: "Notes", Kind: forms.Text},
			{Name: "proof", Label: "Proof", Kind: forms.File},
		}},
	}
}

func withdrawalsDef() Definition[models.MoneyRecord] {
	def := transactionsDef(apiclient.Withdrawals, "Withdrawals")
	def.Form = &forms.Form{Fields: []forms.Field{
		{Name: "date", Label: "Date", Kind: forms.Date, Required: true},
		{Name: "particulars", Label: "Particulars", Kind: forms.Text, Required: true},
		{Name: "withdraw", Label: "Amount", Kind: forms.Number, Required: true, Validate: positive("withdraw")},
		{Name: "channel", Label: "Channel", Kind: forms.Select, Options: channels, Required: true},
		{Name: "notes", Label: "Notes", Kind: forms.Text},
		{Name: "proof", Label: "Proof", Kind: forms.File},
	}}
	return def
}

func accountsDef() Definition[models.Account] {
	return Definition[models.Account]{
		Name:     apiclient.Accounts.Name,
		Title:    "Accounts",
		Resource: apiclient.Accounts,
		Roles:    finance,
		Key:      func(a models.Account) string { return a.Id.String() },
		Columns: []tableview.Column[models.Account]{
			{Name: "account_name", Title: "Account name", Searchable: true, Value: func(a models.Account) interface{} { return a.AccountName }},
			{Name: "account_number", Title: "Account number", Searchable: true, Value: func(a models.Account) interface{} { return a.AccountNumber }},
			{Name: "bank", Title: "Bank", Searchable: true, Value: func(a models.Account) interface{} { return a.Bank }},
			{Name: "starting_balance", Title: "Starting balance", Money: true, Value: func(a models.Account) interface{} { return a.StartingBalance }},
			{Name: "outstanding_balance", Title: "Outstanding balance", Money: true, Value: func(a models.Account) interface{} { return a.OutstandingBalance }},
		},
		Form: &forms.Form{Fields: []forms.Field{
			{Name: "account_name", Label: "Account name", Kind: forms.Text, Required: true},
			{Name: "account_number", Label: "Account number", Kind: forms.Text, Required: true},
			{Name: "bank", Label: "Bank", Kind: forms.Text, Required: true},
			{Name: "starting_balance", Label: "Starting balance", Kind: forms.Number, Required: true},
		}},
	}
}

// The budgets view has no otp column: rows are built from columns only, so the
// code never leaves the console.
func budgetsDef() Definition[models.BudgetRequest] {
	return Definition[models.BudgetRequest]{
		Name:     apiclient.Budgets.Name,
		Title:    "Budget requests",
		Resource: apiclient.Budgets,
		Roles:    finance,
		Key:      func(b models.BudgetRequest) string { return b.Id.String() },
		Columns: []tableview.Column[models.BudgetRequest]{
			{Name: "date", Title: "Date", Value: func(b models.BudgetRequest) interface{} { return b.Date }},
			{Name: "year", Title: "Year", Value: func(b models.BudgetRequest) interface{} { return year(b.Date) }},
			{Name: "month", Title: "Month", Value: func(b models.BudgetRequest) interface{} { return month(b.Date) }},
			{Name: "requestee", Title: "Requestee", Searchable: true, Value: func(b models.BudgetRequest) interface{} { return b.Requestee }},
			{Name: "department", Title: "Department", Searchable: true, Value: func(b models.BudgetRequest) interface{} { return b.Department }},
			{Name: "budget_amount", Title: "Amount", Money: true, Value: func(b models.BudgetRequest) interface{} { return b.BudgetAmount }},
			{Name: "voucher", Title: "Voucher", Searchable: true, Value: func(b models.BudgetRequest) interface{} { return b.Voucher }},
			{Name: "status", Title: "Status", Searchable: true, Value: func(b models.BudgetRequest) interface{} { return string(b.Status) }},
			{Name: "approved_by", Title: "Approved by", Value: func(b models.BudgetRequest) interface{} { return b.ApprovedBy }},
		},
		Form: &forms.Form{Fields: []forms.Field{
			{Name: "date", Label: "Date", Kind: forms.Date, Required: true},
			{Name: "requestee", Label: "Requestee", Kind: forms.Text, Required: true},
			{Name: "department", Label: "Department", Kind: forms.Text, Required: true},
			{Name: "budget_amount", Label: "Amount", Kind: forms.Number, Required: true, Validate: positive("budget_amount")},
			{Name: "voucher", Label: "Voucher", Kind: forms.Text},
		}},
		Prepare: func(sub *forms.Submission) error {
			sub.Set("status", string(models.BudgetPending))
			return nil
		},
	}
}

func loansDef() Definition[models.ConsignmentLoan] {
	return Definition[models.ConsignmentLoan]{
		Name:     apiclient.Loans.Name,
		Title:    "Consignment loans",
		Resource: apiclient.Loans,
		Roles:    finance,
		Key:      func(l models.ConsignmentLoan) string { return l.Id.String() },
		Columns: []tableview.Column[models.ConsignmentLoan]{
			{Name: "date", Title: "Date", Value: func(l models.ConsignmentLoan) interface{} { return l.Date }},
			{Name: "borrower", Title: "Borrower", Searchable: true, Value: func(l models.ConsignmentLoan) interface{} { return l.Borrower }},
			{Name: "initial_amount", Title: "Initial amount", Money: true, Value: func(l models.ConsignmentLoan) interface{} { return l.InitialAmount }},
			{Name: "interest_percentage", Title: "Interest %", Value: func(l models.ConsignmentLoan) interface{} { return l.InterestPercentage }},
			{Name: "payment_terms", Title: "Terms (months)", Value: func(l models.ConsignmentLoan) interface{} { return l.PaymentTerms }},
			{Name: "payment_per_month", Title: "Payment per month", Money: true, Value: func(l models.ConsignmentLoan) interface{} { return l.PaymentPerMonth }},
			{Name: "total_payment", Title: "Total payment", Money: true, Value: func(l models.ConsignmentLoan) interface{} { return l.TotalPayment }},
			{Name: "status", Title: "Status", Searchable: true, Value: func(l models.ConsignmentLoan) interface{} { return l.Status }},
		},
		Form: &forms.Form{Fields: []forms.Field{
			{Name: "date", Label: "Date", Kind: forms.Date, Required: true},
			{Name: "borrower", Label: "Borrower", Kind: forms.Text, Required: true},
			{Name: "initial_amount", Label: "Initial amount", Kind: forms.Number, Required: true, Validate: positive("initial_amount")},
			{Name: "interest_percentage", Label: "Interest % per year", Kind: forms.Number, Required: true},
			{Name: "payment_terms", Label: "Terms (months)", Kind: forms.Number, Required: true, Validate: wholeMonths},
		}},
		Prepare: prepareLoan,
	}
}

// prepareLoan fills the amortized amounts so the upstream stores what the form previewed.
func prepareLoan(sub *forms.Submission) error {
	terms, err := strconv.Atoi(sub.Values["payment_terms"])
	if err != nil {
		return forms.Errors{"payment_terms": loans.ErrInvalidTerms.Error()}
	}

	schedule, err := loans.Calculate(sub.Float("initial_amount"), sub.Float("interest_percentage"), terms)
	switch err {
	case nil:
	case loans.ErrInvalidPrincipal:
		return forms.Errors{"initial_amount": err.Error()}
	case loans.ErrInvalidRate:
		return forms.Errors{"interest_percentage": err.Error()}
	default:
		return forms.Errors{"payment_terms": err.Error()}
	}

	sub.Set("payment_per_month", schedule.PaymentPerMonth().StringFixed(2))
	sub.Set("total_payment", schedule.Total().StringFixed(2))
	sub.Set("status", models.LoanUnpaid)
	return nil
}

func receivablesDef() Definition[models.Receivable] {
	return Definition[models.Receivable]{
		Name:     apiclient.Receivables.Name,
		Title:    "Receivables",
		Resource: apiclient.Receivables,
		Roles:    finance,
		Key:      func(r models.Receivable) string { return r.Id.String() },
		Columns: []tableview.Column[models.Receivable]{
			{Name: "customer", Title: "Customer", Searchable: true, Value: func(r models.Receivable) interface{} { return r.Customer }},
			{Name: "invoice_number", Title: "Invoice", Searchable: true, Value: func(r models.Receivable) interface{} { return r.InvoiceNumber }},
			{Name: "amount", Title: "Amount", Money: true, Value: func(r models.Receivable) interface{} { return r.Amount }},
			{Name: "due_date", Title: "Due date", Value: func(r models.Receivable) interface{} { return r.DueDate }},
			{Name: "status", Title: "Status", Searchable: true, Value: func(r models.Receivable) interface{} { return r.Status }},
		},
		Form: &forms.Form{Fields: []forms.Field{
			{Name: "customer", Label: "Customer", Kind: forms.Text, Required: true},
			{Name: "invoice_number", Label: "Invoice", Kind: forms.Text, Required: true},
			{Name: "amount", Label: "Amount", Kind: forms.Number, Required: true, Validate: positive("amount")},
			{Name: "due_date", Label: "Due date", Kind: forms.Date, Required: true},
			{Name: "status", Label: "Status", Kind: forms.Select, Options: []string{"Unpaid", "Paid"}, Default: "Unpaid", Required: true},
		}},
	}
}

func maintenancesDef() Definition[models.Maintenance] {
	return Definition[models.Maintenance]{
		Name:     apiclient.Maintenances.Name,
		Title:    "Preventive maintenance",
		Resource: apiclient.Maintenances,
		Roles:    finance,
		Key:      func(m models.Maintenance) string { return m.Id.String() },
		Columns: []tableview.Column[models.Maintenance]{
			{Name: "date", Title: "Date", Value: func(m models.Maintenance) interface{} { return m.Date }},
			{Name: "year", Title: "Year", Value: func(m models.Maintenance) interface{} { return year(m.Date) }},
			{Name: "month", Title: "Month", Value: func(m models.Maintenance) interface{} { return month(m.Date) }},
			{Name: "plate_number", Title: "Plate number", Searchable: true, Value: func(m models.Maintenance) interface{} { return m.PlateNumber }},
			{Name: "truck_model", Title: "Truck model", Searchable: true, Value: func(m models.Maintenance) interface{} { return m.TruckModel }},
			{Name: "parts_replaced", Title: "Parts replaced", Searchable: true, Value: func(m models.Maintenance) interface{} { return m.PartsReplaced }},
			{Name: "quantity", Title: "Quantity", Value: func(m models.Maintenance) interface{} { return m.Quantity }},
			{Name: "price_parts_replaced", Title: "Price", Money: true, Value: func(m models.Maintenance) interface{} { return m.PricePartsReplaced }},
		},
		Form: &forms.Form{Fields: []forms.Field{
			{Name: "date", Label: "Date", Kind: forms.Date, Required: true},
			{Name: "plate_number", Label: "Plate number", Kind: forms.Text, Required: true},
			{Name: "truck_model", Label: "Truck model", Kind: forms.Text, Required: true},
			{Name: "parts_replaced", Label: "Parts replaced", Kind: forms.Text, Required: true},
			{Name: "quantity", Label: "Quantity", Kind: forms.Number, Required: true, Validate: positive("quantity")},
			{Name: "price_parts_replaced", Label: "Price", Kind: forms.Number, Required: true},
			{Name: "proof_of_need_to_fixed", Label: "Proof of need to fix", Kind: forms.File},
			{Name: "proof_of_payment", Label: "Proof of payment", Kind: forms.File},
		}},
	}
}

// Rate views are read-only aggregations.
func ratesDef(res apiclient.Resource, title string) Definition[models.RateRow] {
	return Definition[models.RateRow]{
		Name:     res.Name,
		Title:    title,
		Resource: res,
		Roles:    finance,
		Key:      func(r models.RateRow) string { return r.Id.String() },
		Columns: []tableview.Column[models.RateRow]{
			{Name: "period", Title: "Period", Searchable: true, Value: func(r models.RateRow) interface{} { return r.Period }},
			{Name: "year", Title: "Year", Value: func(r models.RateRow) interface{} { return year(r.Date) }},
			{Name: "plate_number", Title: "Plate number", Searchable: true, Value: func(r models.RateRow) interface{} { return r.PlateNumber }},
			{Name: "trips", Title: "Trips", Value: func(r models.RateRow) interface{} { return r.Trips }},
			{Name: "gross_income", Title: "Gross income", Money: true, Value: func(r models.RateRow) interface{} { return r.GrossIncome }},
			{Name: "operational_costs", Title: "Operational costs", Money: true, Value: func(r models.RateRow) interface{} { return r.OperationalCosts }},
			{Name: "net", Title: "Net", Money: true, Value: func(r models.RateRow) interface{} { return r.Net() }},
		},
	}
}

func financialReportDef() Definition[models.FinancialRecord] {
	return Definition[models.FinancialRecord]{
		Name:     apiclient.FinancialReport.Name,
		Title:    "Financial report",
		Resource: apiclient.FinancialReport,
		Roles:    finance,
		Key:      func(f models.FinancialRecord) string { return f.Id.String() },
		Columns: []tableview.Column[models.FinancialRecord]{
			{Name: "date", Title: "Date", Value: func(f models.FinancialRecord) interface{} { return f.Date }},
			{Name: "year", Title: "Year", Value: func(f models.FinancialRecord) interface{} { return year(f.Date) }},
			{Name: "month", Title: "Month", Value: func(f models.FinancialRecord) interface{} { return month(f.Date) }},
			{Name: "category", Title: "Category", Searchable: true, Value: func(f models.FinancialRecord) interface{} { return f.Category }},
			{Name: "description", Title: "Description", Searchable: true, Value: func(f models.FinancialRecord) interface{} { return f.Description }},
			{Name: "income", Title: "Income", Money: true, Value: func(f models.FinancialRecord) interface{} { return f.Income }},
			{Name: "expense", Title: "Expense", Money: true, Value: func(f models.FinancialRecord) interface{} { return f.Expense }},
		},
	}
}

func bookingsDef() Definition[models.Booking] {
	return Definition[models.Booking]{
		Name:     apiclient.Bookings.Name,
		Title:    "Bookings",
		Resource: apiclient.Bookings,
		Roles:    []models.Role{models.Accounting, models.Courier},
		Key:      func(b models.Booking) string { return b.Id.String() },
		Columns: []tableview.Column[models.Booking]{
			{Name: "plate_number", Title: "Plate number", Searchable: true, Value: func(b models.Booking) interface{} { return b.PlateNumber }},
			{Name: "booking_date", Title: "Booking date", Value: func(b models.Booking) interface{} { return b.BookingDate }},
			{Name: "customer", Title: "Customer", Searchable: true, Value: func(b models.Booking) interface{} { return b.Customer }},
			{Name: "origin", Title: "Origin", Searchable: true, Value: func(b models.Booking) interface{} { return b.Origin }},
			{Name: "destination", Title: "Destination", Searchable: true, Value: func(b models.Booking) interface{} { return b.Destination }},
			{Name: "status", Title: "Status", Searchable: true, Value: func(b models.Booking) interface{} { return b.Status }},
		},
	}
}

func delayReportsDef() Definition[models.DelayReport] {
	return Definition[models.DelayReport]{
		Name:     apiclient.DelayReports.Name,
		Title:    "Delay reports",
		Resource: apiclient.DelayReports,
		Roles:    []models.Role{models.Courier},
		Key:      func(d models.DelayReport) string { return d.Id.String() },
		Columns: []tableview.Column[models.DelayReport]{
			{Name: "date", Title: "Date", Value: func(d models.DelayReport) interface{} { return d.Date }},
			{Name: "plate_number", Title: "Plate number", Searchable: true, Value: func(d models.DelayReport) interface{} { return d.PlateNumber }},
			{Name: "driver_name", Title: "Driver", Searchable: true, Value: func(d models.DelayReport) interface{} { return d.DriverName }},
			{Name: "reason", Title: "Reason", Searchable: true, Value: func(d models.DelayReport) interface{} { return d.Reason }},
			{Name: "delay_hours", Title: "Delay (hours)", Value: func(d models.DelayReport) interface{} { return d.DelayHours }},
		},
		Form: &forms.Form{Fields: []forms.Field{
			{Name: "date", Label: "Date", Kind: forms.Date, Required: true},
			{Name: "plate_number", Label: "Plate number", Kind: forms.Text, Required: true},
			{Name: "driver_name", Label: "Driver", Kind: forms.Text, Required: true},
			{Name: "reason", Label: "Reason", Kind: forms.Text, Required: true},
			{Name: "delay_hours", Label: "Delay (hours)", Kind: forms.Number, Required: true},
		}},
	}
}

func returnItemsDef() Definition[models.ReturnItem] {
	return Definition[models.ReturnItem]{
		Name:     apiclient.ReturnItems.Name,
		Title:    "Return items",
		Resource: apiclient.ReturnItems,
		Roles:    []models.Role{models.Courier},
		Key:      func(r models.ReturnItem) string { return r.Id.String() },
		Columns: []tableview.Column[models.ReturnItem]{
			{Name: "returnDate", Title: "Return date", Value: func(r models.ReturnItem) interface{} { return r.ReturnDate }},
			{Name: "productName", Title: "Product", Searchable: true, Value: func(r models.ReturnItem) interface{} { return r.ProductName }},
			{Name: "returnQuantity", Title: "Quantity", Value: func(r models.ReturnItem) interface{} { return r.ReturnQuantity }},
			{Name: "condition", Title: "Condition", Searchable: true, Value: func(r models.ReturnItem) interface{} { return r.Condition }},
			{Name: "driverName", Title: "Driver", Searchable: true, Value: func(r models.ReturnItem) interface{} { return r.DriverName }},
			{Name: "returnStatus", Title: "Status", Searchable: true, Value: func(r models.ReturnItem) interface{} { return string(r.ReturnStatus) }},
		},
		Form: &forms.Form{Fields: []forms.Field{
			{Name: "returnDate", Label: "Return date", Kind: forms.Date, Required: true},
			{Name: "productName", Label: "Product", Kind: forms.Text, Required: true},
			{Name: "returnQuantity", Label: "Quantity", Kind: forms.Number, Required: true, Validate: positive("returnQuantity")},
			{Name: "condition", Label: "Condition", Kind: forms.Select, Options: []string{"Good", "Damaged", "Expired"}, Required: true},
			{Name: "driverName", Label: "Driver", Kind: forms.Text, Required: true},
			{Name: "proofOfReturn", Label: "Proof of return", Kind: forms.File},
		}},
		Prepare: func(sub *forms.Submission) error {
			sub.Set("returnStatus", string(models.ReturnPending))
			return nil
		},
	}
}
