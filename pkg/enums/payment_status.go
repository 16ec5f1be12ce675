package enums

import "fmt"

// PaymentStatus maps to the payment_status column on orders. The storefront
// currently runs without payment collection so not_applicable is the terminal
// value on the happy path.
type PaymentStatus string

const (
	PaymentStatusPending       PaymentStatus = "pending"
	PaymentStatusNotApplicable PaymentStatus = "not_applicable"
	PaymentStatusPaid          PaymentStatus = "paid"
	PaymentStatusFailed        PaymentStatus = "failed"
)

var validPaymentStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusNotApplicable,
	PaymentStatusPaid,
	PaymentStatusFailed,
}

// IsValid reports whether the value matches the canonical payment status enum.
func (p PaymentStatus) IsValid() bool {
	for _, candidate := range validPaymentStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentStatus converts the raw string to PaymentStatus.
func ParsePaymentStatus(value string) (PaymentStatus, error) {
	for _, candidate := range validPaymentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment status %q", value)
}
