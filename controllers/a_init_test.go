package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"adminconsole/apiclient"
	"adminconsole/models"
	"adminconsole/session"
	"adminconsole/views"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func parsePayload(p interface{}) *bytes.Buffer {
	data, _ := json.Marshal(p)
	return bytes.NewBuffer(data)
}

// fakeUpstream plays the remote logistics API.
type fakeUpstream struct {
	mu       sync.Mutex
	calls    []string
	lastAuth string
	fail     map[string]int
	created  map[string][]json.RawMessage
}

func (f *fakeUpstream) called(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (f *fakeUpstream) failOn(call string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[call] = status
}

func (f *fakeUpstream) auth() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAuth
}

// remember stores a JSON create so the next list of path includes it.
func (f *fakeUpstream) remember(r *http.Request) {
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.created == nil {
		f.created = map[string][]json.RawMessage{}
	}
	body["id"] = 100 + len(f.created[r.URL.Path])
	data, _ := json.Marshal(body)
	f.created[r.URL.Path] = append(f.created[r.URL.Path], data)
}

// list answers a collection GET: the canned records plus whatever was created.
func (f *fakeUpstream) list(w io.Writer, path, canned string) {
	f.mu.Lock()
	extra := f.created[path]
	f.mu.Unlock()

	if len(extra) > 0 {
		end := strings.LastIndex(canned, "]")
		var b strings.Builder
		b.WriteString(canned[:end])
		for _, rec := range extra {
			b.WriteString(",")
			b.Write(rec)
		}
		b.WriteString(canned[end:])
		canned = b.String()
	}
	io.WriteString(w, canned)
}

func (f *fakeUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	call := r.Method + " " + r.URL.Path

	f.mu.Lock()
	f.calls = append(f.calls, call)
	if r.Method != http.MethodGet {
		f.lastAuth = r.Header.Get("Authorization")
	}
	status := f.fail[call]
	f.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		io.WriteString(w, `{"message":"upstream refused","errors":{"date":["The date field is required."]}}`)
		return
	}

	switch call {
	case "GET /api/requestbudget":
		f.list(w, r.URL.Path, `{"budgets":[
			{"id":1,"date":"2024-03-02","requestee":"Lito","department":"Ops","budget_amount":"1500.50","voucher":"V-1","status":"Pending","otp":"482913"},
			{"id":2,"date":"2024-03-04","requestee":"Ana","department":"Finance","budget_amount":"90","status":"Approved","otp":"111111"}
		]}`)
	case "GET /api/loanamount":
		f.list(w, r.URL.Path, `{"loans":[
			{"id":5,"date":"2024-01-10","borrower":"Jun","initial_amount":"12000","interest_percentage":"12","payment_terms":12,"payment_per_month":"1066.19","total_payment":"12794.23","status":"unpaid"},
			{"id":6,"date":"2024-01-11","borrower":"Mae","initial_amount":"500","interest_percentage":"0","payment_terms":5,"payment_per_month":"100","total_payment":"500","status":"paid"}
		]}`)
	case "GET /api/return-items":
		io.WriteString(w, `[
			{"id":"r-1","returnDate":"2024-02-01","productName":"Crate","returnQuantity":2,"condition":"Damaged","driverName":"Ben","returnStatus":"Pending"},
			{"id":"r-2","returnDate":"2024-02-02","productName":"Pallet","returnQuantity":1,"condition":"Good","driverName":"Ben","returnStatus":"Rejected"}
		]`)
	case "GET /api/rates-per-year":
		io.WriteString(w, `{"rates":[]}`)
	case "POST /api/login":
		var req models.AuthRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"message":"Invalid credentials"}`)
			return
		}
		io.WriteString(w, `{"token":"upstream-token","user":{"id":12,"name":"Ana","email":"ana@example.com","role":"ACCOUNTING"}}`)
	case "POST /api/budget-approve/1",
		"POST /api/loan/5/mark-as-paid",
		"PUT /api/return-items/approve/r-1",
		"PUT /api/return-items/reject/r-1",
		"DELETE /api/requestbudget/1":
		io.WriteString(w, `{"success":true,"status":200,"message":"ok"}`)
	case "POST /api/requestbudget",
		"POST /api/loanamount":
		f.remember(r)
		io.WriteString(w, `{"success":true,"status":200,"message":"ok"}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"message":"not found"}`)
	}
}

func newTestAPI(t *testing.T) (*API, *fakeUpstream) {
	up := &fakeUpstream{fail: map[string]int{}}
	srv := httptest.NewServer(up)
	t.Cleanup(srv.Close)

	api := NewAPI()
	api.Client = apiclient.New(srv.URL, apiclient.WithServiceToken("service-token"))
	api.Views = views.Catalog(api.Client, func(string) time.Duration { return time.Hour }, nil)
	return api, up
}

func testContext(w *httptest.ResponseRecorder, role models.Role) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	c.Set(session.ContextKey, &session.Session{
		Id:            "s-1",
		User:          models.User{Id: "12", Name: "Ana", Email: "ana@example.com", Role: role},
		UpstreamToken: "user-token",
	})
	return c
}
