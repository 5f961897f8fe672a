package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"adminconsole/apiclient"
	"adminconsole/forms"
	"adminconsole/models"
	"adminconsole/notifier"
	"adminconsole/prefs"
	"adminconsole/session"
	"adminconsole/tableview"
	"adminconsole/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var genericOK = map[string]string{"message": "ok"}

type GenericResponse struct {
	Message string `json:"message"`
}

type API struct {
	Client   *apiclient.Client
	Views    *views.Registry
	Sessions *session.Service
	Prefs    *prefs.Store
	Mailer   *notifier.Mailer
	Log      *zap.Logger
}

func NewAPI() *API {
	return &API{Log: zap.NewNop()}
}

func sendError(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{
		"message": msg,
	})
}

// sendUpstreamError answers with the remote API's own status when it refused the
// request, and with 502 when it failed or answered something unreadable.
func (api *API) sendUpstreamError(c *gin.Context, err error) {
	var fe forms.Errors
	if errors.As(err, &fe) {
		c.JSON(http.StatusBadRequest, models.FormErrorResponse{Message: "invalid-form", Errors: fe})
		return
	}

	var upstream *apiclient.Error
	if errors.As(err, &upstream) && upstream.Status >= 400 && upstream.Status < 500 {
		sendError(c, upstream.Status, upstream.Error())
		return
	}

	if errors.Is(err, context.DeadlineExceeded) {
		sendError(c, http.StatusGatewayTimeout, "upstream-timeout")
		return
	}

	api.Log.Error("upstream call failed", zap.String("path", c.FullPath()), zap.Error(err))
	sendError(c, http.StatusBadGateway, err.Error())
}

// ParsePayload returns the session the auth middleware attached. Without one the
// zero session is returned, which no role check lets through.
func ParsePayload(c *gin.Context) *session.Session {
	v, _ := c.Get(session.ContextKey)
	if sess, ok := v.(*session.Session); ok && sess != nil {
		return sess
	}
	return &session.Session{}
}

// upstreamContext carries the user's own upstream token so writes are attributed to them.
func upstreamContext(c *gin.Context) context.Context {
	return apiclient.ContextWithToken(c.Request.Context(), ParsePayload(c).UpstreamToken)
}

// view resolves :view and checks the caller's role, answering the error itself.
func (api *API) view(c *gin.Context) (views.View, bool) {
	v, ok := api.Views.Get(c.Param("view"))
	if !ok {
		sendError(c, http.StatusNotFound, "view-not-found")
		return nil, false
	}

	if !v.Allows(ParsePayload(c).User.Role) {
		sendError(c, http.StatusForbidden, "forbidden")
		return nil, false
	}

	return v, true
}

// tableState reads q, sort, dir, toggle, page, page_size and one selector per
// column name. Sort and page size fall back to the user's saved preference.
// toggle=<column> is a header click applied to whichever sort is current.
func (api *API) tableState(c *gin.Context, v views.View) (tableview.State, bool) {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))

	st := tableview.State{
		Query: c.Query("q"),
		Sort: tableview.Sort{
			Column:    c.Query("sort"),
			Direction: tableview.ParseDirection(c.Query("dir")),
		},
		Page:      page,
		Selectors: map[string]string{},
	}

	for _, col := range v.Columns() {
		if s := c.Query(col.Name); s != "" {
			st.Selectors[col.Name] = s
		}
	}

	if st.Sort.Column == "" || pageSize < 1 {
		p := api.preference(c, v.Name())
		if st.Sort.Column == "" && p.SortColumn != "" {
			st.Sort = tableview.Sort{Column: p.SortColumn, Direction: tableview.ParseDirection(p.SortDirection)}
		}
		if pageSize < 1 {
			pageSize = p.PageSize
		}
	}

	if col := c.Query("toggle"); col != "" {
		if !hasColumn(v, col) {
			sendError(c, http.StatusBadRequest, "invalid-sort-column")
			return st, false
		}
		st.Sort = st.Sort.Toggle(col)
	}

	st.SetPageSize(pageSize)
	return st, true
}

func (api *API) preference(c *gin.Context, view string) models.Preference {
	if api.Prefs == nil {
		return models.Preference{}
	}

	p, err := api.Prefs.Get(c.Request.Context(), ParsePayload(c).User.Id.String(), view)
	if err != nil {
		// tables still render with defaults when the store is down
		api.Log.Warn("reading view preference", zap.String("view", view), zap.Error(err))
		return models.Preference{}
	}
	return p
}
