package repository

import (
	"context"

	"github.com/polkiloo/gymrat/internal/domain/model"
)

// MemberRepository describes persistence operations for members.
// Every error returned is a *errors.StoreError.
type MemberRepository interface {
	Add(ctx context.Context, member model.NewMember) (*model.Member, error)
	List(ctx context.Context, order model.MemberOrder) ([]model.Member, error)
	Update(ctx context.Context, id model.MemberID, plan model.Plan, endDate *model.Date) (*model.Member, error)
	Delete(ctx context.Context, id model.MemberID) (*model.Member, error)
}
