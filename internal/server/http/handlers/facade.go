package handlers

import (
	"context"

	"github.com/polkiloo/gymrat/internal/domain/model"
	"github.com/polkiloo/gymrat/internal/domain/result"
)

// MemberFacade encapsulates member operations exposed via HTTP.
type MemberFacade interface {
	AddMember(ctx context.Context, member model.NewMember) result.Outcome[*model.Member]
	Members(ctx context.Context, order model.MemberOrder) result.Outcome[[]model.Member]
	UpdateMember(ctx context.Context, id model.MemberID, plan model.Plan, endDate *model.Date) result.Outcome[*model.Member]
	DeleteMember(ctx context.Context, id model.MemberID) result.Outcome[*model.Member]
}

// PaymentFacade provides payment related operations.
type PaymentFacade interface {
	AddPayment(ctx context.Context, payment model.NewPayment) result.Outcome[*model.Payment]
	Payments(ctx context.Context, order model.PaymentOrder) result.Outcome[[]model.Payment]
	MemberPayments(ctx context.Context, id model.MemberID) result.Outcome[[]model.Payment]
	DeletePayment(ctx context.Context, id model.PaymentID) result.Outcome[*model.Payment]
}

// HealthFacade reports store reachability.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// GymFacade aggregates the full set of operations used across handlers.
type GymFacade interface {
	MemberFacade
	PaymentFacade
	HealthFacade
}
