package controllers

import (
	"context"
	"net/http"
	"strings"

	"adminconsole/models"
	"adminconsole/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (api *API) ApproveReturn(c *gin.Context) {
	api.transitionReturn(c, models.ReturnApproved, api.Client.ApproveReturn)
}

func (api *API) RejectReturn(c *gin.Context) {
	api.transitionReturn(c, models.ReturnRejected, api.Client.RejectReturn)
}

// Only pending return items can be approved or rejected.
func (api *API) transitionReturn(c *gin.Context, to models.ReturnStatus, call func(context.Context, string) error) {
	u := ParsePayload(c)
	id := c.Param("id")
	if id == "" {
		sendError(c, http.StatusBadRequest, "missing-id")
		return
	}

	ctx := upstreamContext(c)
	items := api.Views.ReturnItems

	item, err := items.Lookup(ctx, id)
	if err != nil {
		if err == views.ErrNotFound {
			sendError(c, http.StatusNotFound, "return-item-not-found")
			return
		}
		api.sendUpstreamError(c, err)
		return
	}

	if item.ReturnStatus != models.ReturnPending {
		sendError(c, http.StatusConflict, "return-item-already-"+strings.ToLower(string(item.ReturnStatus)))
		return
	}

	if err := call(ctx, id); err != nil {
		api.sendUpstreamError(c, err)
		return
	}

	items.Resync(ctx)

	api.Log.Info("return item updated", zap.String("id", id), zap.String("status", string(to)), zap.String("user", u.User.Email))
	c.JSON(http.StatusOK, gin.H{"message": "ok", "status": to})
}
