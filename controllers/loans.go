package controllers

import (
	"fmt"
	"net/http"

	"adminconsole/export"
	"adminconsole/loans"
	"adminconsole/models"
	"adminconsole/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// QuoteLoan previews the amortization the loan form will submit.
func (api *API) QuoteLoan(c *gin.Context) {
	var req models.LoanQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	schedule, err := loans.Calculate(req.InitialAmount, req.InterestPercentage, req.PaymentTerms)
	if err != nil {
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	perMonth := schedule.PaymentPerMonth()
	total := schedule.Total()

	c.JSON(http.StatusOK, models.LoanQuoteResponse{
		MonthlyRate:     schedule.MonthlyRate,
		PaymentPerMonth: perMonth,
		TotalPayment:    total,
		Formatted:       fmt.Sprintf("%s / month, %s in total", export.Money(perMonth), export.Money(total)),
	})
}

func (api *API) MarkLoanPaid(c *gin.Context) {
	u := ParsePayload(c)
	id := c.Param("id")
	if id == "" {
		sendError(c, http.StatusBadRequest, "missing-id")
		return
	}

	ctx := upstreamContext(c)
	list := api.Views.Loans

	loan, err := list.Lookup(ctx, id)
	if err != nil {
		if err == views.ErrNotFound {
			sendError(c, http.StatusNotFound, "loan-not-found")
			return
		}
		api.sendUpstreamError(c, err)
		return
	}

	if loan.Status == models.LoanPaid {
		sendError(c, http.StatusConflict, "loan-already-paid")
		return
	}

	if err := api.Client.MarkLoanPaid(ctx, id); err != nil {
		api.sendUpstreamError(c, err)
		return
	}

	list.Resync(ctx)

	loan.Status = models.LoanPaid
	api.Log.Info("loan marked as paid", zap.String("loan", id), zap.String("user", u.User.Email))
	if err := api.Mailer.LoanPaid(loan); err != nil {
		api.Log.Warn("loan paid notification", zap.Error(err))
	}

	c.JSON(http.StatusOK, genericOK)
}
