package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	domainErrors "github.com/polkiloo/gymrat/internal/domain/errors"
	"github.com/polkiloo/gymrat/internal/domain/model"
	"github.com/polkiloo/gymrat/internal/domain/repository"
)

type memberRepository struct {
	client *Client
}

type paymentRepository struct {
	client *Client
}

var (
	_ repository.MemberRepository  = (*memberRepository)(nil)
	_ repository.PaymentRepository = (*paymentRepository)(nil)
)

type memberInsert struct {
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Plan      string  `json:"plan"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

type memberPatch struct {
	Plan    string  `json:"plan"`
	EndDate *string `json:"end_date"`
}

type paymentInsert struct {
	MemberID    string  `json:"member_id"`
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"payment_date"`
	Method      *string `json:"method"`
}

func dateString(d *model.Date) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

// single returns the first row of a representation or the noRows kind.
func single[T any](c *Client, op string, rows []T, noRows error) (*T, error) {
	if len(rows) == 0 {
		return nil, c.fail(op, noRows, noRows)
	}
	return &rows[0], nil
}

func (r *memberRepository) Add(ctx context.Context, member model.NewMember) (*model.Member, error) {
	const op = "add member"

	start := model.DateOf(r.client.now())
	if member.StartDate != nil {
		start = *member.StartDate
	}
	body := memberInsert{
		Name:      member.Name,
		Phone:     member.Phone,
		Plan:      string(member.Plan),
		StartDate: start.String(),
		EndDate:   dateString(member.EndDate),
	}

	var rows []model.Member
	if err := r.client.do(ctx, op, http.MethodPost, membersTable, nil, body, &rows, domainErrors.ErrStoreUnavailable); err != nil {
		return nil, err
	}
	return single(r.client, op, rows, domainErrors.ErrStoreUnavailable)
}

func (r *memberRepository) List(ctx context.Context, order model.MemberOrder) ([]model.Member, error) {
	field := order.Field
	if !field.Valid() {
		field = model.MemberSortStartDate
	}
	dir := "asc"
	if order.Descending {
		dir = "desc"
	}
	query := url.Values{
		"select": {"*"},
		"order":  {fmt.Sprintf("%s.%s.nullslast,id.%s", field, dir, dir)},
	}

	rows := []model.Member{}
	if err := r.client.do(ctx, "list members", http.MethodGet, membersTable, query, nil, &rows, domainErrors.ErrStoreUnavailable); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.Member{}
	}
	return rows, nil
}

func (r *memberRepository) Update(ctx context.Context, id model.MemberID, plan model.Plan, endDate *model.Date) (*model.Member, error) {
	const op = "update member"

	query := url.Values{"id": {eq(id.String())}}
	body := memberPatch{Plan: string(plan), EndDate: dateString(endDate)}

	var rows []model.Member
	if err := r.client.do(ctx, op, http.MethodPatch, membersTable, query, body, &rows, domainErrors.ErrNotFound); err != nil {
		return nil, err
	}
	return single(r.client, op, rows, domainErrors.ErrNotFound)
}

func (r *memberRepository) Delete(ctx context.Context, id model.MemberID) (*model.Member, error) {
	const op = "delete member"

	query := url.Values{"id": {eq(id.String())}}
	var rows []model.Member
	if err := r.client.do(ctx, op, http.MethodDelete, membersTable, query, nil, &rows, domainErrors.ErrNotFound); err != nil {
		return nil, err
	}
	return single(r.client, op, rows, domainErrors.ErrNotFound)
}

func (r *paymentRepository) Add(ctx context.Context, payment model.NewPayment) (*model.Payment, error) {
	const op = "add payment"

	paidAt := r.client.now()
	if payment.PaymentDate != nil {
		paidAt = *payment.PaymentDate
	}
	body := paymentInsert{
		MemberID:    payment.MemberID.String(),
		Amount:      payment.Amount,
		PaymentDate: model.FormatTimestamp(paidAt),
	}
	if payment.Method != "" {
		body.Method = &payment.Method
	}

	var rows []model.Payment
	if err := r.client.do(ctx, op, http.MethodPost, paymentsTable, nil, body, &rows, domainErrors.ErrUnknownMember); err != nil {
		return nil, err
	}
	return single(r.client, op, rows, domainErrors.ErrStoreUnavailable)
}

func paymentOrder(order model.PaymentOrder) string {
	field := order.Field
	if !field.Valid() {
		field = model.PaymentSortPaymentDate
	}
	dir := "asc"
	if order.Descending {
		dir = "desc"
	}
	return fmt.Sprintf("%s.%s,id.%s", field, dir, dir)
}

func (r *paymentRepository) List(ctx context.Context, order model.PaymentOrder) ([]model.Payment, error) {
	query := url.Values{"select": {"*"}, "order": {paymentOrder(order)}}
	return r.list(ctx, "list payments", query)
}

func (r *paymentRepository) ListByMember(ctx context.Context, memberID model.MemberID) ([]model.Payment, error) {
	query := url.Values{
		"select":    {"*"},
		"member_id": {eq(memberID.String())},
		"order":     {paymentOrder(model.DefaultPaymentOrder())},
	}
	return r.list(ctx, "list member payments", query)
}

func (r *paymentRepository) list(ctx context.Context, op string, query url.Values) ([]model.Payment, error) {
	// a malformed member id filter simply matches nothing
	rows := []model.Payment{}
	if err := r.client.do(ctx, op, http.MethodGet, paymentsTable, query, nil, &rows, domainErrors.ErrNotFound); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return []model.Payment{}, nil
		}
		return nil, err
	}
	if rows == nil {
		rows = []model.Payment{}
	}
	return rows, nil
}

func (r *paymentRepository) Delete(ctx context.Context, id model.PaymentID) (*model.Payment, error) {
	const op = "delete payment"

	query := url.Values{"id": {eq(id.String())}}
	var rows []model.Payment
	if err := r.client.do(ctx, op, http.MethodDelete, paymentsTable, query, nil, &rows, domainErrors.ErrNotFound); err != nil {
		return nil, err
	}
	return single(r.client, op, rows, domainErrors.ErrNotFound)
}
