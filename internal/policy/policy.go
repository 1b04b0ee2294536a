package policy

// Outcome is the result of the threshold check.
type Outcome string

const (
	AutoApprove Outcome = "AUTO_APPROVE"
	Review      Outcome = "REVIEW"
	Reject      Outcome = "REJECT"
)

// Limits are the approval thresholds. Defaults are the standing policy
// values; they can be overridden through the environment at startup.
type Limits struct {
	AutoLimit    float64
	ManagerLimit float64
	MonthlyLimit float64
}

func DefaultLimits() Limits {
	return Limits{AutoLimit: 1000, ManagerLimit: 15000, MonthlyLimit: 200000}
}

var allowed = []string{"Travel", "Food", "Office Supplies", "Training", "Accommodation", "Miscellaneous"}

// Allowed reports whether category is on the allow-list. Matching is exact,
// case-sensitive.
func Allowed(category string) bool {
	for _, c := range allowed {
		if c == category { return true }
	}
	return false
}

// Categories returns the allow-list in display order.
func Categories() []string {
	out := make([]string, len(allowed))
	copy(out, allowed)
	return out
}

// Check runs the threshold rules in order; first match wins. priorTotal is the
// sum of the employee's previously saved amounts.
func (l Limits) Check(amount, priorTotal float64, category string) Outcome {
	if !Allowed(category) { return Reject }
	if amount <= l.AutoLimit { return AutoApprove }
	if amount <= l.ManagerLimit && priorTotal+amount <= l.MonthlyLimit { return Review }
	return Reject
}
