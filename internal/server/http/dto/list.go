package dto

import (
	"fmt"

	"github.com/polkiloo/gymrat/internal/domain/model"
)

// ListQuery carries optional ordering of list endpoints.
type ListQuery struct {
	OrderBy string `form:"order_by"`
	Desc    *bool  `form:"desc"`
}

// descending defaults to true for the default field and false otherwise.
func (q ListQuery) descending() bool {
	if q.Desc != nil {
		return *q.Desc
	}
	return q.OrderBy == ""
}

// MemberOrder resolves the query into a member ordering.
func (q ListQuery) MemberOrder() (model.MemberOrder, error) {
	if q.OrderBy == "" {
		return model.MemberOrder{Field: model.DefaultMemberOrder().Field, Descending: q.descending()}, nil
	}
	field := model.MemberSortField(q.OrderBy)
	if !field.Valid() {
		return model.MemberOrder{}, fmt.Errorf("unsupported order_by %q", q.OrderBy)
	}
	return model.MemberOrder{Field: field, Descending: q.descending()}, nil
}

// PaymentOrder resolves the query into a payment ordering.
func (q ListQuery) PaymentOrder() (model.PaymentOrder, error) {
	if q.OrderBy == "" {
		return model.PaymentOrder{Field: model.DefaultPaymentOrder().Field, Descending: q.descending()}, nil
	}
	field := model.PaymentSortField(q.OrderBy)
	if !field.Valid() {
		return model.PaymentOrder{}, fmt.Errorf("unsupported order_by %q", q.OrderBy)
	}
	return model.PaymentOrder{Field: field, Descending: q.descending()}, nil
}
