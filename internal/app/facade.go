package app

import (
	"context"

	"github.com/polkiloo/gymrat/internal/domain/model"
	"github.com/polkiloo/gymrat/internal/domain/result"
	"github.com/polkiloo/gymrat/internal/usecase"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type GymFacade struct {
	members  *usecase.MemberUseCase
	payments *usecase.PaymentUseCase
	health   HealthChecker
}

func NewGymFacade(members *usecase.MemberUseCase, payments *usecase.PaymentUseCase, health HealthChecker) *GymFacade {
	return &GymFacade{members: members, payments: payments, health: health}
}

func (f *GymFacade) AddMember(ctx context.Context, member model.NewMember) result.Outcome[*model.Member] {
	return f.members.Add(ctx, member)
}

func (f *GymFacade) Members(ctx context.Context, order model.MemberOrder) result.Outcome[[]model.Member] {
	return f.members.List(ctx, order)
}

func (f *GymFacade) UpdateMember(ctx context.Context, id model.MemberID, plan model.Plan, endDate *model.Date) result.Outcome[*model.Member] {
	return f.members.Update(ctx, id, plan, endDate)
}

func (f *GymFacade) DeleteMember(ctx context.Context, id model.MemberID) result.Outcome[*model.Member] {
	return f.members.Delete(ctx, id)
}

func (f *GymFacade) AddPayment(ctx context.Context, payment model.NewPayment) result.Outcome[*model.Payment] {
	return f.payments.Add(ctx, payment)
}

func (f *GymFacade) Payments(ctx context.Context, order model.PaymentOrder) result.Outcome[[]model.Payment] {
	return f.payments.List(ctx, order)
}

func (f *GymFacade) MemberPayments(ctx context.Context, id model.MemberID) result.Outcome[[]model.Payment] {
	return f.payments.ListByMember(ctx, id)
}

func (f *GymFacade) DeletePayment(ctx context.Context, id model.PaymentID) result.Outcome[*model.Payment] {
	return f.payments.Delete(ctx, id)
}

// HealthCheck succeeds when no checker is configured.
func (f *GymFacade) HealthCheck(ctx context.Context) error {
	if f.health == nil {
		return nil
	}
	return f.health.HealthCheck(ctx)
}
