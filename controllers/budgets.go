package controllers

import (
	"net/http"

	"adminconsole/budget"
	"adminconsole/models"
	"adminconsole/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ApproveBudget checks the submitted OTP against the request's code and, when it
// matches, approves it upstream.
func (api *API) ApproveBudget(c *gin.Context) {
	u := ParsePayload(c)
	id := c.Param("id")
	if id == "" {
		sendError(c, http.StatusBadRequest, "missing-id")
		return
	}

	var req models.ApproveBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := upstreamContext(c)
	budgets := api.Views.Budgets

	record, err := budgets.Lookup(ctx, id)
	if err != nil {
		if err == views.ErrNotFound {
			sendError(c, http.StatusNotFound, "budget-not-found")
			return
		}
		api.sendUpstreamError(c, err)
		return
	}

	if err := budget.Approve(&record, req.Otp, u.User.Name); err != nil {
		switch err {
		case budget.ErrInvalidOtp:
			api.Log.Warn("invalid otp", zap.String("budget", id), zap.String("user", u.User.Email))
			c.JSON(http.StatusBadRequest, models.ApproveBudgetResponse{
				Message:    err.Error(),
				Status:     record.Status,
				InvalidOtp: true,
			})
		case budget.ErrAlreadyApproved:
			sendError(c, http.StatusConflict, err.Error())
		default:
			sendError(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	if err := api.Client.ApproveBudget(ctx, id); err != nil {
		api.sendUpstreamError(c, err)
		return
	}

	budgets.Resync(ctx)

	api.Log.Info("budget approved", zap.String("budget", id), zap.String("user", u.User.Email))
	if err := api.Mailer.BudgetApproved(budget.Redact(record)); err != nil {
		api.Log.Warn("budget approval notification", zap.Error(err))
	}

	c.JSON(http.StatusOK, models.ApproveBudgetResponse{Message: "ok", Status: record.Status})
}
