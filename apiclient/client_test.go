package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"adminconsole/models"

	"gotest.tools/assert"
)

func newServer(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, WithServiceToken("service-token"))
}

func TestListEnvelopes(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer service-token", r.Header.Get("Authorization"))
		assert.Assert(t, r.Header.Get("X-Request-ID") != "")

		switch r.URL.Path {
		case "/api/loanamount":
			io.WriteString(w, `{"loans":[{"id":1,"borrower":"Jun","initial_amount":"5000","payment_terms":6,"status":"unpaid"}]}`)
		case "/api/return-items":
			io.WriteString(w, `[{"id":"r-1","productName":"Crate","returnQuantity":2,"returnStatus":"Pending"}]`)
		case "/api/requestbudget":
			io.WriteString(w, `{"budgets":null}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	loans, err := List[models.ConsignmentLoan](ctx, c, Loans)
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(loans))
	assert.Equal(t, models.ID("1"), loans[0].Id)
	assert.Equal(t, "5000", loans[0].InitialAmount.String())
	assert.Equal(t, 6, loans[0].PaymentTerms)

	items, err := List[models.ReturnItem](ctx, c, ReturnItems)
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(items))
	assert.Equal(t, models.ReturnPending, items[0].ReturnStatus)
	assert.Equal(t, 2, items[0].ReturnQuantity)

	budgets, err := List[models.BudgetRequest](ctx, c, Budgets)
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(budgets))
}

func TestListMalformed(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/accounts":
			io.WriteString(w, `{"data":[]}`)
		case "/api/bookings":
			io.WriteString(w, `{"bookings":{"id":1}}`)
		default:
			io.WriteString(w, `not json`)
		}
	})
	ctx := context.Background()

	_, err := List[models.Account](ctx, c, Accounts)
	assert.Assert(t, errors.Is(err, ErrMalformedResponse))

	_, err = List[models.Booking](ctx, c, Bookings)
	assert.Assert(t, errors.Is(err, ErrMalformedResponse))

	_, err = List[models.RateRow](ctx, c, RatesPerYear)
	assert.Assert(t, errors.Is(err, ErrMalformedResponse))

	_, err = List[models.ReturnItem](ctx, c, ReturnItems)
	assert.Assert(t, errors.Is(err, ErrMalformedResponse))
}

func TestUpstreamErrors(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/transactions":
			w.WriteHeader(http.StatusUnprocessableEntity)
			io.WriteString(w, `{"message":"validation","errors":{"particulars":["required"],"amount":"must be positive"}}`)
		case "/api/accounts":
			w.WriteHeader(http.StatusInternalServerError)
			io.WriteString(w, `{"message":"db down"}`)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	})
	ctx := context.Background()

	_, err := c.Create(ctx, Transactions, map[string]interface{}{})
	var apiErr *Error
	assert.Assert(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "must be positive, required", apiErr.Error())
	assert.Assert(t, errors.Is(err, ErrRejected))

	_, err = List[models.Account](ctx, c, Accounts)
	assert.Error(t, err, "db down")

	err = c.Delete(ctx, Bookings, "5")
	assert.Error(t, err, "Bad Gateway")
}

func TestBodyFlags(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/requestbudget":
			io.WriteString(w, `{"success":false,"message":"voucher taken"}`)
		case "/api/loanamount":
			io.WriteString(w, `{"status":500,"message":"could not save"}`)
		case "/api/accounts":
			io.WriteString(w, `{"status":200,"message":"saved"}`)
		default:
			io.WriteString(w, `{"success":true}`)
		}
	})
	ctx := context.Background()

	_, err := c.Create(ctx, Budgets, map[string]string{"requestee": "Ana"})
	assert.Error(t, err, "voucher taken")

	_, err = c.Create(ctx, Loans, map[string]string{})
	assert.Error(t, err, "could not save")

	res, err := c.Create(ctx, Accounts, map[string]string{})
	assert.Equal(t, nil, err)
	assert.Equal(t, "saved", res.Message)

	_, err = c.Create(ctx, Receivables, map[string]string{})
	assert.Equal(t, nil, err)
}

func TestCreateMultipart(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/maintenances", r.URL.Path)
		assert.Equal(t, nil, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "ABC 123", r.FormValue("plate_number"))

		files := r.MultipartForm.File["proof_of_payment"]
		assert.Equal(t, 2, len(files))
		f, _ := files[1].Open()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "receipt-2", string(data))

		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"success":true}`)
	})

	_, err := c.CreateMultipart(context.Background(), Maintenances,
		map[string]string{"plate_number": "ABC 123"},
		[]File{
			{Field: "proof_of_payment", Filename: "a.jpg", Content: strings.NewReader("receipt-1")},
			{Field: "proof_of_payment", Filename: "b.jpg", Content: strings.NewReader("receipt-2")},
		})
	assert.Equal(t, nil, err)
}

func TestActionsAndUserToken(t *testing.T) {
	var calls []string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		calls = append(calls, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})
	ctx := ContextWithToken(context.Background(), "user-token")

	assert.Equal(t, nil, c.ApproveBudget(ctx, "9"))
	assert.Equal(t, nil, c.MarkLoanPaid(ctx, "3"))
	assert.Equal(t, nil, c.ApproveReturn(ctx, "r-1"))
	assert.Equal(t, nil, c.RejectReturn(ctx, "r-2"))
	assert.Equal(t, nil, c.Delete(ctx, Transactions, "11"))

	assert.DeepEqual(t, []string{
		"POST /api/budget-approve/9",
		"POST /api/loan/3/mark-as-paid",
		"PUT /api/return-items/approve/r-1",
		"PUT /api/return-items/reject/r-2",
		"DELETE /api/transactions/11",
	}, calls)
}

func TestLogin(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req models.AuthRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"message":"invalid-email-or-password"}`)
			return
		}
		io.WriteString(w, `{"token":"up-token","user":{"id":12,"name":"Ana","email":"ana@example.com","role":"ACCOUNTING"}}`)
	})
	ctx := context.Background()

	resp, err := c.Login(ctx, models.AuthRequest{Email: "ana@example.com", Password: "secret"})
	assert.Equal(t, nil, err)
	assert.Equal(t, "up-token", resp.Token)
	assert.Equal(t, models.ID("12"), resp.User.Id)
	assert.Equal(t, models.Accounting, resp.User.Role)

	_, err = c.Login(ctx, models.AuthRequest{Email: "ana@example.com", Password: "nope"})
	assert.Error(t, err, "invalid-email-or-password")
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := New(srv.URL)
	srv.Close()

	_, err := List[models.Booking](context.Background(), c, Bookings)
	assert.Assert(t, err != nil)
	var apiErr *Error
	assert.Assert(t, !errors.As(err, &apiErr))
}
