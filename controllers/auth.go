package controllers

import (
	"errors"
	"net/http"
	"time"

	"adminconsole/apiclient"
	"adminconsole/models"
	"adminconsole/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SessionResponse struct {
	User      models.User `json:"user"`
	ExpiresAt time.Time   `json:"expires_at"`
}

func (api *API) Authenticate(c *gin.Context) {
	var authRequest models.AuthRequest
	if err := c.ShouldBindJSON(&authRequest); err != nil {
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	sess, token, err := api.Sessions.Login(c.Request.Context(), authRequest)
	if err != nil {
		var upstream *apiclient.Error
		switch {
		case err == session.ErrMissingLogin:
			sendError(c, http.StatusBadRequest, err.Error())
		case errors.As(err, &upstream) && upstream.Status < 500:
			sendError(c, http.StatusUnauthorized, "invalid-email-or-password")
		default:
			api.Log.Error("login failed", zap.String("email", authRequest.Email), zap.Error(err))
			sendError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.SetCookie("token", token, int(api.Sessions.TTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, models.AuthResponse{Token: token, User: sess.User})
}

func (api *API) CheckSession(c *gin.Context) {
	sess := ParsePayload(c)
	c.JSON(http.StatusOK, SessionResponse{User: sess.User, ExpiresAt: sess.ExpiresAt})
}

func (api *API) Logout(c *gin.Context) {
	sess := ParsePayload(c)

	if err := api.Sessions.Logout(c.Request.Context(), sess); err != nil {
		api.Log.Error("logout failed", zap.Error(err))
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.SetCookie("token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, genericOK)
}
