package test

import (
	"context"

	"github.com/polkiloo/gymrat/internal/domain/model"
	"github.com/polkiloo/gymrat/internal/domain/result"
)

// MemberFacadeStub provides controllable behaviour for member endpoints.
type MemberFacadeStub struct {
	AddFn    func(context.Context, model.NewMember) result.Outcome[*model.Member]
	ListFn   func(context.Context, model.MemberOrder) result.Outcome[[]model.Member]
	UpdateFn func(context.Context, model.MemberID, model.Plan, *model.Date) result.Outcome[*model.Member]
	DeleteFn func(context.Context, model.MemberID) result.Outcome[*model.Member]
}

// AddMember delegates to provided function or echoes the input back.
func (s MemberFacadeStub) AddMember(ctx context.Context, in model.NewMember) result.Outcome[*model.Member] {
	if s.AddFn != nil {
		return s.AddFn(ctx, in)
	}
	member := &model.Member{ID: "m-1", Name: in.Name, Phone: in.Phone, Plan: in.Plan, EndDate: in.EndDate}
	if in.StartDate != nil {
		member.StartDate = *in.StartDate
	}
	return result.Succeeded("Member '"+in.Name+"' added successfully.", member)
}

// Members returns predefined members.
func (s MemberFacadeStub) Members(ctx context.Context, order model.MemberOrder) result.Outcome[[]model.Member] {
	if s.ListFn != nil {
		return s.ListFn(ctx, order)
	}
	return result.Succeeded("Fetched all members successfully.", []model.Member{{ID: "m-1", Name: "Asha", Plan: model.PlanMonthly}})
}

// UpdateMember delegates to provided function or returns updated stub member.
func (s MemberFacadeStub) UpdateMember(ctx context.Context, id model.MemberID, plan model.Plan, endDate *model.Date) result.Outcome[*model.Member] {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, plan, endDate)
	}
	return result.Succeeded("Member '"+id.String()+"' updated successfully.", &model.Member{ID: id, Plan: plan, EndDate: endDate})
}

// DeleteMember delegates to provided function or reports success.
func (s MemberFacadeStub) DeleteMember(ctx context.Context, id model.MemberID) result.Outcome[*model.Member] {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return result.Succeeded("Member '"+id.String()+"' deleted successfully.", &model.Member{ID: id})
}

// PaymentFacadeStub simulates payment operations.
type PaymentFacadeStub struct {
	AddFn      func(context.Context, model.NewPayment) result.Outcome[*model.Payment]
	ListFn     func(context.Context, model.PaymentOrder) result.Outcome[[]model.Payment]
	ByMemberFn func(context.Context, model.MemberID) result.Outcome[[]model.Payment]
	DeleteFn   func(context.Context, model.PaymentID) result.Outcome[*model.Payment]
}

// AddPayment delegates to provided function or echoes the input back.
func (s PaymentFacadeStub) AddPayment(ctx context.Context, in model.NewPayment) result.Outcome[*model.Payment] {
	if s.AddFn != nil {
		return s.AddFn(ctx, in)
	}
	payment := &model.Payment{ID: "1", MemberID: in.MemberID, Amount: in.Amount, Method: in.Method}
	if in.PaymentDate != nil {
		payment.PaymentDate = *in.PaymentDate
	}
	return result.Succeeded("Payment added.", payment)
}

// Payments returns predefined history.
func (s PaymentFacadeStub) Payments(ctx context.Context, order model.PaymentOrder) result.Outcome[[]model.Payment] {
	if s.ListFn != nil {
		return s.ListFn(ctx, order)
	}
	return result.Succeeded("Fetched all payments successfully.", []model.Payment{})
}

// MemberPayments returns predefined history of one member.
func (s PaymentFacadeStub) MemberPayments(ctx context.Context, id model.MemberID) result.Outcome[[]model.Payment] {
	if s.ByMemberFn != nil {
		return s.ByMemberFn(ctx, id)
	}
	return result.Succeeded("Fetched payments for member '"+id.String()+"' successfully.", []model.Payment{})
}

// DeletePayment delegates to provided function or reports success.
func (s PaymentFacadeStub) DeletePayment(ctx context.Context, id model.PaymentID) result.Outcome[*model.Payment] {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return result.Succeeded("Payment '"+id.String()+"' deleted successfully.", &model.Payment{ID: id})
}

// HealthFacadeStub returns Err from HealthCheck.
type HealthFacadeStub struct {
	Err error
}

func (s HealthFacadeStub) HealthCheck(context.Context) error { return s.Err }

// GymFacadeStub combines facades for router tests.
type GymFacadeStub struct {
	MemberFacadeStub
	PaymentFacadeStub
	HealthFacadeStub
}
