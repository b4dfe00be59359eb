package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	domainErrors "github.com/polkiloo/gymrat/internal/domain/errors"
	"github.com/polkiloo/gymrat/internal/domain/model"
	"github.com/polkiloo/gymrat/internal/domain/result"
	"github.com/polkiloo/gymrat/internal/server/http/dto"
	testhelpers "github.com/polkiloo/gymrat/internal/test"
	"github.com/polkiloo/gymrat/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidations(v); err != nil {
			panic(err)
		}
	}
}

func performRequest(t *testing.T, method, pattern, target string, handler gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, pattern, handler)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeDetail(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error body %q: %v", w.Body.String(), err)
	}
	return resp.Detail
}

type outcomeBody struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeOutcome(t *testing.T, w *httptest.ResponseRecorder) outcomeBody {
	t.Helper()
	var body outcomeBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid outcome body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestMemberHandlerCreate(t *testing.T) {
	var got model.NewMember
	h := NewMemberHandler(testhelpers.MemberFacadeStub{
		AddFn: func(_ context.Context, in model.NewMember) result.Outcome[*model.Member] {
			got = in
			return result.Succeeded("Member 'Asha' added successfully.", &model.Member{ID: "m-1", Name: in.Name})
		},
	})

	w := performRequest(t, http.MethodPost, "/members/", "/members/", h.Create,
		`{"name":"Asha","phone":"9990001111","plan":"Monthly","end_date":"2026-11-14"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeOutcome(t, w)
	if !body.Success || body.Message != "Member 'Asha' added successfully." {
		t.Fatalf("unexpected body %+v", body)
	}
	if got.StartDate != nil || got.EndDate == nil || got.EndDate.String() != "2026-11-14" {
		t.Fatalf("unexpected dates passed to facade %+v", got)
	}
	if got.Plan != model.PlanMonthly || got.Phone != "9990001111" {
		t.Fatalf("unexpected input %+v", got)
	}
}

func TestMemberHandlerCreateFailures(t *testing.T) {
	called := false
	h := NewMemberHandler(testhelpers.MemberFacadeStub{
		AddFn: func(context.Context, model.NewMember) result.Outcome[*model.Member] {
			called = true
			return result.Failed[*model.Member]("Failed to add member 'Asha'.", errors.New("store down"))
		},
	})

	cases := []struct {
		name   string
		body   string
		detail string
	}{
		{"missing name", `{"phone":"1","plan":"Monthly"}`, "field 'name' is required"},
		{"bad date", `{"name":"A","phone":"1","plan":"Monthly","start_date":"14/10/2026"}`, "field 'start_date' must be a YYYY-MM-DD date"},
		{"malformed json", `{"name":`, "invalid request body"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := performRequest(t, http.MethodPost, "/members/", "/members/", h.Create, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			if detail := decodeDetail(t, w); !strings.Contains(detail, tc.detail) {
				t.Fatalf("expected detail containing %q, got %q", tc.detail, detail)
			}
		})
	}
	if called {
		t.Fatal("facade must not be called for invalid payloads")
	}

	w := performRequest(t, http.MethodPost, "/members/", "/members/", h.Create, `{"name":"Asha","phone":"1","plan":"Monthly"}`)
	if w.Code != http.StatusBadRequest || decodeDetail(t, w) != "Failed to add member 'Asha': store down" {
		t.Fatalf("expected manager error as detail, got %d %s", w.Code, w.Body.String())
	}
}

func TestMemberHandlerList(t *testing.T) {
	var got model.MemberOrder
	h := NewMemberHandler(testhelpers.MemberFacadeStub{
		ListFn: func(_ context.Context, order model.MemberOrder) result.Outcome[[]model.Member] {
			got = order
			return result.Succeeded("Fetched all members successfully.", []model.Member{})
		},
	})

	w := performRequest(t, http.MethodGet, "/members/", "/members/", h.List, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got != model.DefaultMemberOrder() {
		t.Fatalf("expected default order, got %+v", got)
	}
	if body := decodeOutcome(t, w); string(body.Data) != "[]" {
		t.Fatalf("expected empty data array, got %s", body.Data)
	}

	w = performRequest(t, http.MethodGet, "/members/", "/members/?order_by=name", h.List, "")
	if w.Code != http.StatusOK || got != (model.MemberOrder{Field: model.MemberSortName}) {
		t.Fatalf("unexpected order %+v (status %d)", got, w.Code)
	}

	w = performRequest(t, http.MethodGet, "/members/", "/members/?order_by=end_date&desc=true", h.List, "")
	if w.Code != http.StatusOK || got != (model.MemberOrder{Field: model.MemberSortEndDate, Descending: true}) {
		t.Fatalf("unexpected order %+v (status %d)", got, w.Code)
	}

	w = performRequest(t, http.MethodGet, "/members/", "/members/?order_by=phone", h.List, "")
	if w.Code != http.StatusBadRequest || !strings.Contains(decodeDetail(t, w), "unsupported order_by") {
		t.Fatalf("expected 400 for unknown field, got %d %s", w.Code, w.Body.String())
	}

	w = performRequest(t, http.MethodGet, "/members/", "/members/?desc=maybe", h.List, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad desc, got %d", w.Code)
	}
}

func TestMemberHandlerUpdate(t *testing.T) {
	var (
		gotID   model.MemberID
		gotPlan model.Plan
		gotEnd  *model.Date
	)
	h := NewMemberHandler(testhelpers.MemberFacadeStub{
		UpdateFn: func(_ context.Context, id model.MemberID, plan model.Plan, end *model.Date) result.Outcome[*model.Member] {
			gotID, gotPlan, gotEnd = id, plan, end
			if id == "ghost" {
				return result.Failed[*model.Member]("Failed to update member 'ghost'.",
					domainErrors.NewStoreError("update member", domainErrors.ErrNotFound, nil))
			}
			return result.Succeeded("Member '"+id.String()+"' updated successfully.", &model.Member{ID: id, Plan: plan})
		},
	})

	w := performRequest(t, http.MethodPut, "/members/:id", "/members/3f2a-uuid", h.Update, `{"new_plan":"Yearly","new_end_date":"2027-10-14"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if gotID != "3f2a-uuid" || gotPlan != model.PlanYearly || gotEnd == nil || gotEnd.String() != "2027-10-14" {
		t.Fatalf("unexpected arguments %q %q %v", gotID, gotPlan, gotEnd)
	}

	w = performRequest(t, http.MethodPut, "/members/:id", "/members/42", h.Update, `{"new_plan":"Monthly"}`)
	if w.Code != http.StatusOK || gotID != "42" || gotEnd != nil {
		t.Fatalf("expected numeric looking id kept as string, got %q end=%v", gotID, gotEnd)
	}

	w = performRequest(t, http.MethodPut, "/members/:id", "/members/ghost", h.Update, `{"new_plan":"Monthly"}`)
	if w.Code != http.StatusBadRequest || decodeDetail(t, w) != "Failed to update member 'ghost': update member: not found" {
		t.Fatalf("expected not found detail, got %d %s", w.Code, w.Body.String())
	}

	w = performRequest(t, http.MethodPut, "/members/:id", "/members/1", h.Update, `{}`)
	if w.Code != http.StatusBadRequest || !strings.Contains(decodeDetail(t, w), "new_plan") {
		t.Fatalf("expected missing plan error, got %d %s", w.Code, w.Body.String())
	}
}

func TestMemberHandlerDelete(t *testing.T) {
	h := NewMemberHandler(testhelpers.MemberFacadeStub{})
	w := performRequest(t, http.MethodDelete, "/members/:id", "/members/m-9", h.Delete, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := decodeOutcome(t, w); body.Message != "Member 'm-9' deleted successfully." {
		t.Fatalf("unexpected message %q", body.Message)
	}

	h = NewMemberHandler(testhelpers.MemberFacadeStub{
		DeleteFn: func(context.Context, model.MemberID) result.Outcome[*model.Member] {
			return result.Failed[*model.Member]("Failed to delete member 'm-9'.", nil)
		},
	})
	w = performRequest(t, http.MethodDelete, "/members/:id", "/members/m-9", h.Delete, "")
	if w.Code != http.StatusBadRequest || decodeDetail(t, w) != "Failed to delete member 'm-9'." {
		t.Fatalf("expected message as detail without error, got %d %s", w.Code, w.Body.String())
	}
}

func TestPaymentHandlerCreate(t *testing.T) {
	var got model.NewPayment
	h := NewPaymentHandler(testhelpers.PaymentFacadeStub{
		AddFn: func(_ context.Context, in model.NewPayment) result.Outcome[*model.Payment] {
			got = in
			return result.Succeeded("Payment of 1500 added for member '7'.", &model.Payment{ID: "1", MemberID: in.MemberID, Amount: in.Amount})
		},
	})

	w := performRequest(t, http.MethodPost, "/payments/", "/payments/", h.Create,
		`{"member_id":7,"amount":1500,"payment_date":"2026-10-14T09:30:00","method":"UPI"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got.MemberID != "7" || got.Amount != 1500 || got.Method != "UPI" {
		t.Fatalf("unexpected input %+v", got)
	}
	want := time.Date(2026, time.October, 14, 9, 30, 0, 0, time.UTC)
	if got.PaymentDate == nil || !got.PaymentDate.Equal(want) {
		t.Fatalf("unexpected payment date %v", got.PaymentDate)
	}

	w = performRequest(t, http.MethodPost, "/payments/", "/payments/", h.Create, `{"member_id":"m-1","amount":10}`)
	if w.Code != http.StatusOK || got.PaymentDate != nil {
		t.Fatalf("expected absent payment date to stay nil, got %v", got.PaymentDate)
	}
}

func TestPaymentHandlerCreateFailures(t *testing.T) {
	h := NewPaymentHandler(testhelpers.PaymentFacadeStub{
		AddFn: func(_ context.Context, in model.NewPayment) result.Outcome[*model.Payment] {
			return result.Failed[*model.Payment]("Failed to add payment for member 'ghost'.",
				domainErrors.NewStoreError("add payment", domainErrors.ErrUnknownMember, nil))
		},
	})

	cases := []struct {
		name   string
		body   string
		detail string
	}{
		{"missing amount", `{"member_id":"m-1"}`, "field 'amount' is required"},
		{"missing member", `{"amount":5}`, "field 'member_id' is required"},
		{"bad timestamp", `{"member_id":"m-1","amount":5,"payment_date":"yesterday"}`, "field 'payment_date' must be an ISO 8601 timestamp"},
		{"string amount", `{"member_id":"m-1","amount":"five"}`, "invalid request body"},
		{"unknown member", `{"member_id":"ghost","amount":5}`, "Failed to add payment for member 'ghost': add payment: unknown member"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := performRequest(t, http.MethodPost, "/payments/", "/payments/", h.Create, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			if detail := decodeDetail(t, w); !strings.Contains(detail, tc.detail) {
				t.Fatalf("expected detail containing %q, got %q", tc.detail, detail)
			}
		})
	}
}

func TestPaymentHandlerListAndByMember(t *testing.T) {
	var (
		gotOrder  model.PaymentOrder
		gotMember model.MemberID
	)
	paidAt := time.Date(2026, time.October, 14, 9, 30, 0, 0, time.UTC)
	h := NewPaymentHandler(testhelpers.PaymentFacadeStub{
		ListFn: func(_ context.Context, order model.PaymentOrder) result.Outcome[[]model.Payment] {
			gotOrder = order
			return result.Succeeded("Fetched all payments successfully.", []model.Payment{{ID: "1", MemberID: "m-1", Amount: 10, PaymentDate: paidAt}})
		},
		ByMemberFn: func(_ context.Context, id model.MemberID) result.Outcome[[]model.Payment] {
			gotMember = id
			return result.Succeeded("Fetched payments for member '"+id.String()+"' successfully.", []model.Payment{})
		},
	})

	w := performRequest(t, http.MethodGet, "/payments/", "/payments/?order_by=amount&desc=true", h.List, "")
	if w.Code != http.StatusOK || gotOrder != (model.PaymentOrder{Field: model.PaymentSortAmount, Descending: true}) {
		t.Fatalf("unexpected list result %d %+v", w.Code, gotOrder)
	}
	var payments []model.Payment
	if err := json.Unmarshal(decodeOutcome(t, w).Data, &payments); err != nil || len(payments) != 1 || !payments[0].PaymentDate.Equal(paidAt) {
		t.Fatalf("unexpected payments %+v err=%v", payments, err)
	}

	w = performRequest(t, http.MethodGet, "/payments/", "/payments/?order_by=method", h.List, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown order field, got %d", w.Code)
	}

	w = performRequest(t, http.MethodGet, "/payments/member/:id", "/payments/member/m-1", h.ByMember, "")
	if w.Code != http.StatusOK || gotMember != "m-1" {
		t.Fatalf("unexpected by member result %d %q", w.Code, gotMember)
	}
}

func TestPaymentHandlerDelete(t *testing.T) {
	h := NewPaymentHandler(testhelpers.PaymentFacadeStub{
		DeleteFn: func(_ context.Context, id model.PaymentID) result.Outcome[*model.Payment] {
			return result.Failed[*model.Payment]("Failed to delete payment '"+id.String()+"'.",
				domainErrors.NewStoreError("delete payment", domainErrors.ErrNotFound, nil))
		},
	})
	w := performRequest(t, http.MethodDelete, "/payments/:id", "/payments/99", h.Delete, "")
	if w.Code != http.StatusBadRequest || decodeDetail(t, w) != "Failed to delete payment '99': delete payment: not found" {
		t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
	}
}

func TestHealthHandler(t *testing.T) {
	w := performRequest(t, http.MethodGet, "/healthz", "/healthz", NewHealthHandler(testhelpers.HealthFacadeStub{}).Check, "")
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte(`"status":"ok"`)) {
		t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
	}

	w = performRequest(t, http.MethodGet, "/healthz", "/healthz", NewHealthHandler(testhelpers.HealthFacadeStub{Err: errors.New("refused")}).Check, "")
	if w.Code != http.StatusServiceUnavailable || !bytes.Contains(w.Body.Bytes(), []byte("refused")) {
		t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
	}
}

func TestBindJSONRejectsOversizedBody(t *testing.T) {
	router := gin.New()
	router.POST("/members/", func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 8)
		NewMemberHandler(testhelpers.MemberFacadeStub{}).Create(c)
	})
	req := httptest.NewRequest(http.MethodPost, "/members/", strings.NewReader(`{"name":"Asha","phone":"1","plan":"Monthly"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", w.Code)
	}
}

func TestFailureDetailNamesTheRecord(t *testing.T) {
	gw := testhelpers.NewMemoryGateway(time.Date(2026, time.October, 14, 0, 0, 0, 0, time.UTC))
	members := usecase.NewMemberUseCase(gw.Members(), nil)
	payments := usecase.NewPaymentUseCase(gw.Payments(), nil)
	memberHandler := NewMemberHandler(testhelpers.MemberFacadeStub{UpdateFn: members.Update, DeleteFn: members.Delete})
	paymentHandler := NewPaymentHandler(testhelpers.PaymentFacadeStub{AddFn: payments.Add, DeleteFn: payments.Delete})

	cases := []struct {
		name    string
		method  string
		pattern string
		target  string
		handler gin.HandlerFunc
		body    string
		want    []string
	}{
		{"update missing member", http.MethodPut, "/members/:id", "/members/nope", memberHandler.Update, `{"new_plan":"Yearly"}`, []string{"'nope'", "not found"}},
		{"delete missing member", http.MethodDelete, "/members/:id", "/members/nope", memberHandler.Delete, "", []string{"'nope'", "not found"}},
		{"zero amount", http.MethodPost, "/payments/", "/payments/", paymentHandler.Create, `{"member_id":"m-7","amount":0}`, []string{"'m-7'", "invalid amount"}},
		{"unknown member", http.MethodPost, "/payments/", "/payments/", paymentHandler.Create, `{"member_id":"m-7","amount":10}`, []string{"'m-7'", "unknown member"}},
		{"delete missing payment", http.MethodDelete, "/payments/:id", "/payments/404", paymentHandler.Delete, "", []string{"'404'", "not found"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := performRequest(t, tc.method, tc.pattern, tc.target, tc.handler, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
			detail := decodeDetail(t, w)
			for _, part := range tc.want {
				if !strings.Contains(detail, part) {
					t.Fatalf("expected detail %q to contain %q", detail, part)
				}
			}
		})
	}
}
