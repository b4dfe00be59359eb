package app

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/polkiloo/gymrat/internal/domain/errors"
	"github.com/polkiloo/gymrat/internal/domain/model"
	testhelpers "github.com/polkiloo/gymrat/internal/test"
	"github.com/polkiloo/gymrat/internal/usecase"
)

func newFacade() (*GymFacade, *testhelpers.MemoryGateway) {
	gw := testhelpers.NewMemoryGateway(time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC))
	members := usecase.NewMemberUseCase(gw.Members(), usecase.NopRecorder{})
	payments := usecase.NewPaymentUseCase(gw.Payments(), usecase.NopRecorder{})
	return NewGymFacade(members, payments, gw), gw
}

func TestGymFacadeMembers(t *testing.T) {
	facade, gw := newFacade()
	ctx := context.Background()

	added := facade.AddMember(ctx, model.NewMember{Name: "Asha", Plan: model.PlanMonthly})
	member, ok := added.Data()
	if !ok {
		t.Fatalf("add member failed: %v", added.Err())
	}

	listed, ok := facade.Members(ctx, model.DefaultMemberOrder()).Data()
	if !ok || len(listed) != 1 {
		t.Fatalf("unexpected members %+v", listed)
	}

	updated, ok := facade.UpdateMember(ctx, member.ID, model.PlanQuarterly, nil).Data()
	if !ok || updated.Plan != model.PlanQuarterly {
		t.Fatalf("unexpected update %+v", updated)
	}

	if out := facade.DeleteMember(ctx, member.ID); !out.OK() {
		t.Fatalf("delete failed: %v", out.Err())
	}
	if members, _ := gw.Snapshot(); len(members) != 0 {
		t.Fatalf("expected no members, got %+v", members)
	}
}

func TestGymFacadePayments(t *testing.T) {
	facade, _ := newFacade()
	ctx := context.Background()

	member, _ := facade.AddMember(ctx, model.NewMember{Name: "Asha", Plan: model.PlanMonthly}).Data()
	payment, ok := facade.AddPayment(ctx, model.NewPayment{MemberID: member.ID, Amount: 1500}).Data()
	if !ok {
		t.Fatal("add payment failed")
	}

	if all, _ := facade.Payments(ctx, model.DefaultPaymentOrder()).Data(); len(all) != 1 {
		t.Fatalf("unexpected payments %+v", all)
	}
	if own, _ := facade.MemberPayments(ctx, member.ID).Data(); len(own) != 1 || own[0].ID != payment.ID {
		t.Fatalf("unexpected member payments %+v", own)
	}

	if out := facade.DeletePayment(ctx, payment.ID); !out.OK() {
		t.Fatalf("delete payment failed: %v", out.Err())
	}
	out := facade.DeletePayment(ctx, payment.ID)
	if out.OK() || !errors.Is(out.Err(), domainErrors.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", out.Err())
	}
}

func TestGymFacadeHealthCheck(t *testing.T) {
	facade, gw := newFacade()
	if err := facade.HealthCheck(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gw.PingErr = errors.New("down")
	if err := facade.HealthCheck(context.Background()); err == nil {
		t.Fatal("expected health error")
	}

	bare := NewGymFacade(nil, nil, nil)
	if err := bare.HealthCheck(context.Background()); err != nil {
		t.Fatalf("expected nil checker to be healthy, got %v", err)
	}
}
