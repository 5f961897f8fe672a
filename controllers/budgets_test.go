package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"adminconsole/models"
	"adminconsole/notifier"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
	"gotest.tools/assert"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, msg := range m {
		var b strings.Builder
		msg.WriteTo(&b)
		f.sent = append(f.sent, b.String())
	}
	return nil
}

func approve(api *API, id, otp string, role models.Role) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c := testContext(w, role)
	c.Params = gin.Params{{Key: "id", Value: id}}
	c.Request, _ = http.NewRequest("POST", "/", parsePayload(models.ApproveBudgetRequest{Otp: otp}))
	api.ApproveBudget(c)
	return w
}

func TestApproveBudget(t *testing.T) {
	api, up := newTestAPI(t)
	sender := &fakeSender{}
	api.Mailer = notifier.New(sender, "console@example.com", "finance@example.com", zap.NewNop())

	var resp models.ApproveBudgetResponse

	// nil request (400)
	w := httptest.NewRecorder()
	c := testContext(w, models.Accounting)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request, _ = http.NewRequest("POST", "/", nil)
	api.ApproveBudget(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown budget (404)
	w = approve(api, "99", "482913", models.Accounting)
	assert.Equal(t, nil, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "budget-not-found", resp.Message)

	// wrong otp stays pending (400)
	w = approve(api, "1", "000000", models.Accounting)
	assert.Equal(t, nil, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid-otp", resp.Message)
	assert.Equal(t, true, resp.InvalidOtp)
	assert.Equal(t, models.BudgetPending, resp.Status)
	assert.Assert(t, !up.called("POST /api/budget-approve/1"))

	// missing otp (400)
	w = approve(api, "1", "", models.Accounting)
	assert.Equal(t, nil, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "missing-otp", resp.Message)

	// already approved (409)
	w = approve(api, "2", "111111", models.Accounting)
	assert.Equal(t, nil, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "budget-already-approved", resp.Message)

	// approved (200)
	w = approve(api, "1", "482913", models.Accounting)
	assert.Equal(t, nil, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.BudgetApproved, resp.Status)
	assert.Assert(t, up.called("POST /api/budget-approve/1"))
	assert.Equal(t, "Bearer user-token", up.auth())

	assert.Equal(t, 1, len(sender.sent))
	assert.Assert(t, strings.Contains(sender.sent[0], "1,500.5"))
	assert.Assert(t, !strings.Contains(sender.sent[0], "482913"))
}

func TestApproveBudgetUpstreamRefuses(t *testing.T) {
	api, up := newTestAPI(t)
	up.failOn("POST /api/budget-approve/1", http.StatusForbidden)

	w := approve(api, "1", "482913", models.Accounting)

	var genericResp GenericResponse
	assert.Equal(t, nil, json.NewDecoder(w.Body).Decode(&genericResp))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "The date field is required.", genericResp.Message)
}
