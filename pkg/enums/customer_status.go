package enums

import "fmt"

// CustomerStatus maps to the status column on customer_profiles.
type CustomerStatus string

const (
	CustomerStatusPending  CustomerStatus = "pending"
	CustomerStatusApproved CustomerStatus = "approved"
	CustomerStatusInactive CustomerStatus = "inactive"
	CustomerStatusBlocked  CustomerStatus = "blocked"
)

var validCustomerStatuses = []CustomerStatus{
	CustomerStatusPending,
	CustomerStatusApproved,
	CustomerStatusInactive,
	CustomerStatusBlocked,
}

// IsValid reports whether the value matches the canonical customer status enum.
func (c CustomerStatus) IsValid() bool {
	for _, candidate := range validCustomerStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCustomerStatus converts the raw string to CustomerStatus.
func ParseCustomerStatus(value string) (CustomerStatus, error) {
	for _, candidate := range validCustomerStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid customer status %q", value)
}
