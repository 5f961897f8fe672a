package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"adminconsole/export"
	"adminconsole/forms"
	"adminconsole/models"
	"adminconsole/prefs"
	"adminconsole/tableview"
	"adminconsole/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ViewSummary struct {
	Name    string             `json:"name"`
	Title   string             `json:"title"`
	Columns []views.ColumnInfo `json:"columns"`
	Form    *forms.Form        `json:"form,omitempty"`
}

func (api *API) GetViews(c *gin.Context) {
	u := ParsePayload(c)

	list := []ViewSummary{}
	for _, v := range api.Views.List(u.User.Role) {
		list = append(list, ViewSummary{
			Name:    v.Name(),
			Title:   v.Title(),
			Columns: v.Columns(),
			Form:    v.Form(),
		})
	}

	c.JSON(http.StatusOK, list)
}

func (api *API) GetView(c *gin.Context) {
	v, ok := api.view(c)
	if !ok {
		return
	}

	st, ok := api.tableState(c, v)
	if !ok {
		return
	}

	asExcel, _ := strconv.ParseBool(c.Query("export_as_excel"))
	if asExcel {
		api.handleExcel(c, v, st)
		return
	}

	c.JSON(http.StatusOK, v.Query(st))
}

func (api *API) handleExcel(c *gin.Context, v views.View, st tableview.State) {
	columns, rows := v.Export(st)

	var buf bytes.Buffer
	if err := export.WriteExcel(&buf, v.Title(), columns, rows); err != nil {
		if err == export.ErrNoRows {
			sendError(c, http.StatusNotFound, v.Name()+"-not-found")
			return
		}
		api.Log.Error("writing excel", zap.String("view", v.Name()), zap.Error(err))
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	fileName := fmt.Sprintf("report_%s_%s.xlsx", v.Name(), time.Now().Format("20060102_150405"))

	c.Header("Content-Disposition", "attachment;filename=\""+fileName+"\"")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (api *API) CreateRecord(c *gin.Context) {
	v, ok := api.view(c)
	if !ok {
		return
	}

	form := v.Form()
	if form == nil {
		sendError(c, http.StatusMethodNotAllowed, views.ErrReadOnly.Error())
		return
	}

	sub, err := form.Bind(c.Request)
	if err != nil {
		var fe forms.Errors
		if errors.As(err, &fe) {
			c.JSON(http.StatusBadRequest, models.FormErrorResponse{Message: "invalid-form", Errors: fe})
			return
		}
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := v.Create(upstreamContext(c), sub); err != nil {
		api.sendUpstreamError(c, err)
		return
	}

	api.Log.Info("record created", zap.String("view", v.Name()), zap.String("user", ParsePayload(c).User.Email))
	c.JSON(http.StatusCreated, genericOK)
}

func (api *API) DeleteRecord(c *gin.Context) {
	v, ok := api.view(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		sendError(c, http.StatusBadRequest, "missing-id")
		return
	}

	if err := v.Delete(upstreamContext(c), id); err != nil {
		if err == views.ErrReadOnly {
			sendError(c, http.StatusMethodNotAllowed, err.Error())
			return
		}
		api.sendUpstreamError(c, err)
		return
	}

	api.Log.Info("record deleted", zap.String("view", v.Name()), zap.String("id", id), zap.String("user", ParsePayload(c).User.Email))
	c.JSON(http.StatusOK, genericOK)
}

func (api *API) GetPreferences(c *gin.Context) {
	v, ok := api.view(c)
	if !ok {
		return
	}

	if api.Prefs == nil {
		sendError(c, http.StatusServiceUnavailable, "preferences-unavailable")
		return
	}

	p, err := api.Prefs.Get(c.Request.Context(), ParsePayload(c).User.Id.String(), v.Name())
	if err != nil {
		api.Log.Error("reading view preference", zap.Error(err))
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, p)
}

func (api *API) SavePreferences(c *gin.Context) {
	v, ok := api.view(c)
	if !ok {
		return
	}

	if api.Prefs == nil {
		sendError(c, http.StatusServiceUnavailable, "preferences-unavailable")
		return
	}

	var p models.Preference
	if err := c.ShouldBindJSON(&p); err != nil {
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}

	if p.SortColumn != "" && !hasColumn(v, p.SortColumn) {
		sendError(c, http.StatusBadRequest, "invalid-sort-column")
		return
	}

	p.UserId = ParsePayload(c).User.Id.String()
	p.View = v.Name()

	p, err := api.Prefs.Save(c.Request.Context(), p)
	if err != nil {
		if err == prefs.ErrInvalidPageSize {
			sendError(c, http.StatusBadRequest, err.Error())
			return
		}
		api.Log.Error("saving view preference", zap.Error(err))
		sendError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, p)
}

func hasColumn(v views.View, name string) bool {
	for _, col := range v.Columns() {
		if col.Name == name {
			return true
		}
	}
	return false
}
