package models

type ReturnStatus string

const (
	ReturnPending  ReturnStatus = "Pending"
	ReturnApproved ReturnStatus = "Approved"
	ReturnRejected ReturnStatus = "Rejected"
)

// ReturnItem uses camelCase keys, as the courier endpoints do.
type ReturnItem struct {
	Id             ID           `json:"id"`
	ReturnDate     string       `json:"returnDate"`
	ProductName    string       `json:"productName"`
	ReturnQuantity int          `json:"returnQuantity"`
	Condition      string       `json:"condition"`
	DriverName     string       `json:"driverName"`
	ReturnStatus   ReturnStatus `json:"returnStatus"`
	ProofOfReturn  string       `json:"proofOfReturn"`
}
