package pattern

// Signal is the historical spending signal: either the employee has no saved
// history at all, or the arithmetic mean of their past amounts. Modeled as an
// explicit tagged variant; Average is only meaningful when NoHistory is false.
type Signal struct {
	NoHistory bool
	Average   float64
}

// Analyze computes the signal over an employee's past saved amounts.
func Analyze(amounts []float64) Signal {
	if len(amounts) == 0 {
		return Signal{NoHistory: true}
	}
	sum := 0.0
	for _, a := range amounts { sum += a }
	return Signal{Average: sum / float64(len(amounts))}
}
