package repository

import (
	"context"

	"github.com/polkiloo/gymrat/internal/domain/model"
)

// PaymentRepository describes persistence operations for payments.
// Every error returned is a *errors.StoreError.
type PaymentRepository interface {
	Add(ctx context.Context, payment model.NewPayment) (*model.Payment, error)
	List(ctx context.Context, order model.PaymentOrder) ([]model.Payment, error)
	ListByMember(ctx context.Context, memberID model.MemberID) ([]model.Payment, error)
	Delete(ctx context.Context, id model.PaymentID) (*model.Payment, error)
}
