package decision

import (
	"fmt"

	"expenseboard/internal/pattern"
	"expenseboard/internal/policy"
)

// Final decision values as persisted in records.
const (
	Approved = "APPROVED"
	Pending  = "PENDING"
	Rejected = "REJECTED"
)

// The four reasons are fixed and exhaustive.
const (
	ReasonAutoApproval   = "Within auto-approval threshold"
	ReasonNewEmployee    = "New employee – manual review required"
	ReasonMatchesPattern = "Matches historical spending pattern"
	ReasonAnomaly        = "Spending anomaly detected"
	ReasonViolation      = "Policy or budget violation"
)

// anomalyFactor: review-band amounts above this multiple of the historical
// mean are held for manual review.
const anomalyFactor = 1.5

// Decide combines the policy outcome, the pattern signal and the current
// amount into a final decision and reason. First match wins.
func Decide(p policy.Outcome, sig pattern.Signal, amount float64) (string, string) {
	if p == policy.AutoApprove {
		return Approved, ReasonAutoApproval
	}
	if p == policy.Review {
		if sig.NoHistory { return Pending, ReasonNewEmployee }
		if amount <= anomalyFactor*sig.Average { return Approved, ReasonMatchesPattern }
		return Pending, ReasonAnomaly
	}
	return Rejected, ReasonViolation
}

// Explain renders the decision sentence with verbatim substitution.
func Explain(decision, reason string) string {
	return fmt.Sprintf("The expense was %s because %s.", decision, reason)
}
