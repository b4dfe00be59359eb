package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// MemberID is the store-assigned identifier of a member, kept opaque.
type MemberID string

// PaymentID is the store-assigned identifier of a payment, kept opaque.
type PaymentID string

// ParseMemberID normalizes raw text into a MemberID.
func ParseMemberID(raw string) (MemberID, bool) {
	id := strings.TrimSpace(raw)
	return MemberID(id), id != ""
}

// ParsePaymentID normalizes raw text into a PaymentID.
func ParsePaymentID(raw string) (PaymentID, bool) {
	id := strings.TrimSpace(raw)
	return PaymentID(id), id != ""
}

func (id MemberID) String() string  { return string(id) }
func (id PaymentID) String() string { return string(id) }

func (id *MemberID) UnmarshalJSON(data []byte) error {
	s, err := decodeOpaqueID(data)
	if err != nil {
		return fmt.Errorf("member id: %w", err)
	}
	*id = MemberID(s)
	return nil
}

func (id *PaymentID) UnmarshalJSON(data []byte) error {
	s, err := decodeOpaqueID(data)
	if err != nil {
		return fmt.Errorf("payment id: %w", err)
	}
	*id = PaymentID(s)
	return nil
}

// decodeOpaqueID accepts either a JSON string or a JSON number and returns
// its textual form, so integer and UUID keys compare the same way.
func decodeOpaqueID(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}
