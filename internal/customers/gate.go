package customers

import "github.com/aurenecom/storefront-backend/pkg/enums"

// Decision is the outcome of the storefront access gate.
type Decision string

const (
	DecisionLoading         Decision = "loading"
	DecisionUnauthenticated Decision = "unauthenticated"
	DecisionPending         Decision = "pending"
	DecisionBlocked         Decision = "blocked"
	DecisionApproved        Decision = "approved"
)

// Evaluate maps an authentication flag and a resolved status to a gate
// decision. Checks run in a fixed order and the first match wins: loading
// beats everything, then missing auth, then pending, then blocked or
// inactive. An unknown status on an authenticated session falls closed to
// unauthenticated rather than granting access.
func Evaluate(authenticated bool, res Resolution) Decision {
	if res.IsLoading {
		return DecisionLoading
	}
	if !authenticated {
		return DecisionUnauthenticated
	}
	if res.Status == nil {
		return DecisionUnauthenticated
	}
	switch *res.Status {
	case enums.CustomerStatusPending:
		return DecisionPending
	case enums.CustomerStatusBlocked, enums.CustomerStatusInactive:
		return DecisionBlocked
	case enums.CustomerStatusApproved:
		return DecisionApproved
	default:
		return DecisionUnauthenticated
	}
}
