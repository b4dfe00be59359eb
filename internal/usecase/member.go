package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/gymrat/internal/domain/errors"
	"github.com/polkiloo/gymrat/internal/domain/model"
	"github.com/polkiloo/gymrat/internal/domain/repository"
	"github.com/polkiloo/gymrat/internal/domain/result"
)

// MemberUseCase manages gym members.
type MemberUseCase struct {
	members  repository.MemberRepository
	recorder Recorder
	now      func() time.Time
}

// NewMemberUseCase constructs MemberUseCase.
func NewMemberUseCase(members repository.MemberRepository, recorder Recorder) *MemberUseCase {
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &MemberUseCase{members: members, recorder: recorder, now: time.Now}
}

// Add registers a member. A missing start date means today.
func (u *MemberUseCase) Add(ctx context.Context, in model.NewMember) result.Outcome[*model.Member] {
	failed := fmt.Sprintf("Failed to add member '%s'.", in.Name)

	if strings.TrimSpace(in.Name) == "" {
		return u.fail("add", failed, domainErrors.Invalid("name", "must not be empty"))
	}
	if strings.TrimSpace(string(in.Plan)) == "" {
		return u.fail("add", failed, domainErrors.Invalid("plan", "must not be empty"))
	}
	if in.StartDate == nil {
		today := model.DateOf(u.now())
		in.StartDate = &today
	}
	if in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return u.fail("add", failed, domainErrors.Invalid("end_date", "must not be before start_date"))
	}

	member, err := u.members.Add(ctx, in)
	if err != nil {
		return u.fail("add", failed, err)
	}
	return succeed(u.recorder, entityMember, "add", fmt.Sprintf("Member '%s' added successfully.", in.Name), member)
}

// List returns every member in the requested order.
func (u *MemberUseCase) List(ctx context.Context, order model.MemberOrder) result.Outcome[[]model.Member] {
	if !order.Field.Valid() {
		order = model.DefaultMemberOrder()
	}
	members, err := u.members.List(ctx, order)
	if err != nil {
		u.recorder.ObserveOperation(entityMember, "list", false)
		return result.Failed[[]model.Member]("Failed to fetch members.", err)
	}
	return succeed(u.recorder, entityMember, "list", "Fetched all members successfully.", members)
}

// Update replaces the plan and end date of a member.
func (u *MemberUseCase) Update(ctx context.Context, id model.MemberID, plan model.Plan, endDate *model.Date) result.Outcome[*model.Member] {
	failed := fmt.Sprintf("Failed to update member '%s'.", id)

	id, ok := model.ParseMemberID(id.String())
	if !ok {
		return u.fail("update", failed, domainErrors.Invalid("member id", "must not be empty"))
	}
	if strings.TrimSpace(string(plan)) == "" {
		return u.fail("update", failed, domainErrors.Invalid("plan", "must not be empty"))
	}

	member, err := u.members.Update(ctx, id, plan, endDate)
	if err != nil {
		return u.fail("update", failed, err)
	}
	return succeed(u.recorder, entityMember, "update", fmt.Sprintf("Member '%s' updated successfully.", id), member)
}

// Delete removes a member together with its payments.
func (u *MemberUseCase) Delete(ctx context.Context, id model.MemberID) result.Outcome[*model.Member] {
	failed := fmt.Sprintf("Failed to delete member '%s'.", id)

	id, ok := model.ParseMemberID(id.String())
	if !ok {
		return u.fail("delete", failed, domainErrors.Invalid("member id", "must not be empty"))
	}

	member, err := u.members.Delete(ctx, id)
	if err != nil {
		return u.fail("delete", failed, err)
	}
	return succeed(u.recorder, entityMember, "delete", fmt.Sprintf("Member '%s' deleted successfully.", id), member)
}

func (u *MemberUseCase) fail(operation, message string, err error) result.Outcome[*model.Member] {
	u.recorder.ObserveOperation(entityMember, operation, false)
	return result.Failed[*model.Member](message, err)
}

func succeed[T any](recorder Recorder, entity, operation, message string, data T) result.Outcome[T] {
	recorder.ObserveOperation(entity, operation, true)
	return result.Succeeded(message, data)
}
