package usecase

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/gymrat/internal/domain/errors"
	"github.com/polkiloo/gymrat/internal/domain/model"
	"github.com/polkiloo/gymrat/internal/domain/repository"
	"github.com/polkiloo/gymrat/internal/domain/result"
)

// PaymentUseCase records and lists member payments.
type PaymentUseCase struct {
	payments repository.PaymentRepository
	recorder Recorder
	now      func() time.Time
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(payments repository.PaymentRepository, recorder Recorder) *PaymentUseCase {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &PaymentUseCase{payments: payments, recorder: recorder, now: time.Now}
}

// FormatAmount renders an amount with the shortest exact decimal form,
// keeping one decimal for whole amounts (1500 renders as 1500.0).
func FormatAmount(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

// Add records a payment. A missing payment date means now.
func (u *PaymentUseCase) Add(ctx context.Context, in model.NewPayment) result.Outcome[*model.Payment] {
	memberID, ok := model.ParseMemberID(in.MemberID.String())
	failed := fmt.Sprintf("Failed to add payment for member '%s'.", in.MemberID)

	if !ok {
		return u.fail("add", failed, domainErrors.Invalid("member id", "must not be empty"))
	}
	if math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) || in.Amount <= 0 {
		return u.fail("add", failed, fmt.Errorf("%w: must be a positive number", domainErrors.ErrInvalidAmount))
	}
	in.MemberID = memberID
	if in.PaymentDate == nil {
		paidAt := u.now()
		in.PaymentDate = &paidAt
	}

	payment, err := u.payments.Add(ctx, in)
	if err != nil {
		return u.fail("add", failed, err)
	}
	message := fmt.Sprintf("Payment of %s added for member '%s'.", FormatAmount(in.Amount), memberID)
	return succeed(u.recorder, entityPayment, "add", message, payment)
}

// List returns every payment in the requested order.
func (u *PaymentUseCase) List(ctx context.Context, order model.PaymentOrder) result.Outcome[[]model.Payment] {
	if !order.Field.Valid() {
		order = model.DefaultPaymentOrder()
	}
	payments, err := u.payments.List(ctx, order)
	if err != nil {
		u.recorder.ObserveOperation(entityPayment, "list", false)
		return result.Failed[[]model.Payment]("Failed to fetch payments.", err)
	}
	return succeed(u.recorder, entityPayment, "list", "Fetched all payments successfully.", payments)
}

// ListByMember returns the payments of a single member, newest first.
// An unknown member yields an empty list.
func (u *PaymentUseCase) ListByMember(ctx context.Context, memberID model.MemberID) result.Outcome[[]model.Payment] {
	failed := fmt.Sprintf("Failed to fetch payments for member '%s'.", memberID)

	id, ok := model.ParseMemberID(memberID.String())
	if !ok {
		u.recorder.ObserveOperation(entityPayment, "list_by_member", false)
		return result.Failed[[]model.Payment](failed, domainErrors.Invalid("member id", "must not be empty"))
	}

	payments, err := u.payments.ListByMember(ctx, id)
	if err != nil {
		u.recorder.ObserveOperation(entityPayment, "list_by_member", false)
		return result.Failed[[]model.Payment](failed, err)
	}
	message := fmt.Sprintf("Fetched payments for member '%s' successfully.", id)
	return succeed(u.recorder, entityPayment, "list_by_member", message, payments)
}

// Delete removes a single payment.
func (u *PaymentUseCase) Delete(ctx context.Context, id model.PaymentID) result.Outcome[*model.Payment] {
	failed := fmt.Sprintf("Failed to delete payment '%s'.", id)

	id, ok := model.ParsePaymentID(id.String())
	if !ok {
		return u.fail("delete", failed, domainErrors.Invalid("payment id", "must not be empty"))
	}

	payment, err := u.payments.Delete(ctx, id)
	if err != nil {
		return u.fail("delete", failed, err)
	}
	return succeed(u.recorder, entityPayment, "delete", fmt.Sprintf("Payment '%s' deleted successfully.", id), payment)
}

func (u *PaymentUseCase) fail(operation, message string, err error) result.Outcome[*model.Payment] {
	u.recorder.ObserveOperation(entityPayment, operation, false)
	return result.Failed[*model.Payment](message, err)
}
