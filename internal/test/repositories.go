package test

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/gymrat/internal/domain/errors"
	"github.com/polkiloo/gymrat/internal/domain/model"
	"github.com/polkiloo/gymrat/internal/domain/repository"
)

// MemoryGateway keeps members and payments in memory and behaves like the
// real gateways: ordering, cascade delete and error kinds included.
type MemoryGateway struct {
	mu       sync.Mutex
	members  []model.Member
	payments []model.Payment
	next     int64

	// Now defaults missing dates; time.Now when nil.
	Now func() time.Time
	// Err, when set, fails every repository call with a store error of this kind.
	Err error
	// PingErr is returned by HealthCheck.
	PingErr error
	Closed  int
}

var _ repository.Gateway = (*MemoryGateway)(nil)

// NewMemoryGateway returns an empty gateway with a fixed clock.
func NewMemoryGateway(now time.Time) *MemoryGateway {
	return &MemoryGateway{Now: func() time.Time { return now }}
}

func (g *MemoryGateway) Members() repository.MemberRepository   { return memberStore{g} }
func (g *MemoryGateway) Payments() repository.PaymentRepository { return paymentStore{g} }

func (g *MemoryGateway) HealthCheck(context.Context) error { return g.PingErr }

func (g *MemoryGateway) Close() {
	g.mu.Lock()
	g.Closed++
	g.mu.Unlock()
}

// Snapshot returns copies of the stored rows in insertion order.
func (g *MemoryGateway) Snapshot() ([]model.Member, []model.Payment) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.members), slices.Clone(g.payments)
}

func (g *MemoryGateway) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

func (g *MemoryGateway) injected(op string) error {
	if g.Err != nil {
		return domainErrors.NewStoreError(op, g.Err, g.Err)
	}
	return nil
}

func (g *MemoryGateway) memberIndex(id model.MemberID) int {
	return slices.IndexFunc(g.members, func(m model.Member) bool { return m.ID == id })
}

type memberStore struct{ g *MemoryGateway }

func (s memberStore) Add(_ context.Context, in model.NewMember) (*model.Member, error) {
	g := s.g
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.injected("add member"); err != nil {
		return nil, err
	}

	g.next++
	member := model.Member{
		ID:        model.MemberID(fmt.Sprintf("m-%d", g.next)),
		Name:      in.Name,
		Phone:     in.Phone,
		Plan:      in.Plan,
		StartDate: model.DateOf(g.now()),
		EndDate:   in.EndDate,
	}
	if in.StartDate != nil {
		member.StartDate = *in.StartDate
	}
	g.members = append(g.members, member)
	return &member, nil
}

func compareDates(a, b *model.Date) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case a.Before(*b):
		return -1
	case b.Before(*a):
		return 1
	}
	return 0
}

func (s memberStore) List(_ context.Context, order model.MemberOrder) ([]model.Member, error) {
	g := s.g
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.injected("list members"); err != nil {
		return nil, err
	}

	field := order.Field
	if !field.Valid() {
		field = model.MemberSortStartDate
	}
	out := slices.Clone(g.members)
	if out == nil {
		out = []model.Member{}
	}
	slices.SortStableFunc(out, func(a, b model.Member) int {
		var c int
		switch field {
		case model.MemberSortEndDate:
			// missing end dates stay last in both directions
			if (a.EndDate == nil) != (b.EndDate == nil) {
				return compareDates(a.EndDate, b.EndDate)
			}
			c = compareDates(a.EndDate, b.EndDate)
		case model.MemberSortName:
			c = cmp.Compare(a.Name, b.Name)
		case model.MemberSortPlan:
			c = cmp.Compare(a.Plan, b.Plan)
		default:
			c = compareDates(&a.StartDate, &b.StartDate)
		}
		if order.Descending {
			c = -c
		}
		return c
	})
	return out, nil
}

func (s memberStore) Update(_ context.Context, id model.MemberID, plan model.Plan, endDate *model.Date) (*model.Member, error) {
	g := s.g
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.injected("update member"); err != nil {
		return nil, err
	}

	i := g.memberIndex(id)
	if i < 0 {
		return nil, domainErrors.NewStoreError("update member", domainErrors.ErrNotFound, nil)
	}
	if endDate != nil && endDate.Before(g.members[i].StartDate) {
		return nil, domainErrors.NewStoreError("update member", domainErrors.ErrInvalidInput,
			domainErrors.Invalid("end_date", "must not be before start_date"))
	}
	g.members[i].Plan = plan
	g.members[i].EndDate = endDate
	updated := g.members[i]
	return &updated, nil
}

func (s memberStore) Delete(_ context.Context, id model.MemberID) (*model.Member, error) {
	g := s.g
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.injected("delete member"); err != nil {
		return nil, err
	}

	i := g.memberIndex(id)
	if i < 0 {
		return nil, domainErrors.NewStoreError("delete member", domainErrors.ErrNotFound, nil)
	}
	deleted := g.members[i]
	g.members = slices.Delete(g.members, i, i+1)
	g.payments = slices.DeleteFunc(g.payments, func(p model.Payment) bool { return p.MemberID == id })
	return &deleted, nil
}

type paymentStore struct{ g *MemoryGateway }

func (s paymentStore) Add(_ context.Context, in model.NewPayment) (*model.Payment, error) {
	g := s.g
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.injected("add payment"); err != nil {
		return nil, err
	}
	if g.memberIndex(in.MemberID) < 0 {
		return nil, domainErrors.NewStoreError("add payment", domainErrors.ErrUnknownMember, nil)
	}

	g.next++
	payment := model.Payment{
		ID:          model.PaymentID(strconv.FormatInt(g.next, 10)),
		MemberID:    in.MemberID,
		Amount:      in.Amount,
		PaymentDate: g.now(),
		Method:      in.Method,
	}
	if in.PaymentDate != nil {
		payment.PaymentDate = *in.PaymentDate
	}
	g.payments = append(g.payments, payment)
	return &payment, nil
}

func sortPayments(payments []model.Payment, order model.PaymentOrder) {
	slices.SortStableFunc(payments, func(a, b model.Payment) int {
		var c int
		if order.Field == model.PaymentSortAmount {
			c = cmp.Compare(a.Amount, b.Amount)
		} else {
			c = a.PaymentDate.Compare(b.PaymentDate)
		}
		if order.Descending {
			c = -c
		}
		return c
	})
}

func (s paymentStore) List(_ context.Context, order model.PaymentOrder) ([]model.Payment, error) {
	g := s.g
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.injected("list payments"); err != nil {
		return nil, err
	}

	out := append([]model.Payment{}, g.payments...)
	sortPayments(out, order)
	return out, nil
}

func (s paymentStore) ListByMember(_ context.Context, id model.MemberID) ([]model.Payment, error) {
	g := s.g
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.injected("list member payments"); err != nil {
		return nil, err
	}

	out := []model.Payment{}
	for _, p := range g.payments {
		if p.MemberID == id {
			out = append(out, p)
		}
	}
	sortPayments(out, model.DefaultPaymentOrder())
	return out, nil
}

func (s paymentStore) Delete(_ context.Context, id model.PaymentID) (*model.Payment, error) {
	g := s.g
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.injected("delete payment"); err != nil {
		return nil, err
	}

	i := slices.IndexFunc(g.payments, func(p model.Payment) bool { return p.ID == id })
	if i < 0 {
		return nil, domainErrors.NewStoreError("delete payment", domainErrors.ErrNotFound, nil)
	}
	deleted := g.payments[i]
	g.payments = slices.Delete(g.payments, i, i+1)
	return &deleted, nil
}
