package budget

import (
	"crypto/subtle"
	"errors"

	"adminconsole/models"
)

var (
	ErrInvalidOtp      = errors.New("invalid-otp")
	ErrMissingOtp      = errors.New("missing-otp")
	ErrAlreadyApproved = errors.New("budget-already-approved")
	ErrUnknownStatus   = errors.New("unknown-budget-status")
)

// Approve runs the OTP gate on req. A matching code moves Pending to Approved;
// anything else leaves the status untouched and returns the reason.
func Approve(req *models.BudgetRequest, otp, approvedBy string) error {
	switch req.Status {
	case models.BudgetApproved:
		return ErrAlreadyApproved
	case models.BudgetPending, "":
	default:
		return ErrUnknownStatus
	}

	if otp == "" {
		return ErrMissingOtp
	}

	// an upstream record without a code can never be approved here
	if req.Otp == "" || subtle.ConstantTimeCompare([]byte(otp), []byte(req.Otp)) != 1 {
		return ErrInvalidOtp
	}

	req.Status = models.BudgetApproved
	req.ApprovedBy = approvedBy
	return nil
}

// Redact blanks the code so the record can leave the console.
func Redact(req models.BudgetRequest) models.BudgetRequest {
	req.Otp = ""
	return req
}
