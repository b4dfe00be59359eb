package model

import "time"

// Payment represents a financial transaction attributed to a member.
type Payment struct {
	ID          PaymentID `json:"id"`
	MemberID    MemberID  `json:"member_id"`
	Amount      float64   `json:"amount"`
	PaymentDate time.Time `json:"payment_date"`
	Method      string    `json:"method,omitempty"`
}

// NewPayment carries the attributes of a payment to be recorded.
type NewPayment struct {
	MemberID    MemberID
	Amount      float64
	PaymentDate *time.Time
	Method      string
}

// PaymentSortField lists the payment columns lists may be ordered by.
type PaymentSortField string

const (
	PaymentSortPaymentDate PaymentSortField = "payment_date"
	PaymentSortAmount      PaymentSortField = "amount"
)

func (f PaymentSortField) Valid() bool {
	switch f {
	case PaymentSortPaymentDate, PaymentSortAmount:
		return true
	}
	return false
}

// PaymentOrder describes list ordering.
type PaymentOrder struct {
	Field      PaymentSortField
	Descending bool
}

// DefaultPaymentOrder sorts most recent payments first.
func DefaultPaymentOrder() PaymentOrder {
	return PaymentOrder{Field: PaymentSortPaymentDate, Descending: true}
}
