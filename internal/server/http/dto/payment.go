package dto

import (
	"fmt"
	"time"

	"github.com/polkiloo/gymrat/internal/domain/model"
)

// CreatePaymentRequest describes POST /payments payload.
type CreatePaymentRequest struct {
	MemberID    model.MemberID `json:"member_id" binding:"required"`
	Amount      *float64       `json:"amount" binding:"required"`
	PaymentDate string         `json:"payment_date" binding:"omitempty,isotimestamp"`
	Method      string         `json:"method"`
}

// ToModel converts the payload, leaving an absent payment date nil.
func (r CreatePaymentRequest) ToModel() (model.NewPayment, error) {
	out := model.NewPayment{MemberID: r.MemberID, Method: r.Method}
	if r.Amount != nil {
		out.Amount = *r.Amount
	}
	if r.PaymentDate != "" {
		paidAt, err := ParsePaymentDate(r.PaymentDate)
		if err != nil {
			return model.NewPayment{}, err
		}
		out.PaymentDate = &paidAt
	}
	return out, nil
}

// Layouts accepted for payment_date besides RFC 3339. Values without an
// offset are taken as UTC.
var paymentDateLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	model.DateLayout,
}

// ParsePaymentDate accepts RFC 3339, a zone-less ISO timestamp or a bare date.
func ParsePaymentDate(s string) (time.Time, error) {
	if t, err := model.ParseTimestamp(s); err == nil {
		return t, nil
	}
	for _, layout := range paymentDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse payment date %q: not an ISO 8601 timestamp", s)
}
