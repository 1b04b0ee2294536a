package data

import (
	"math/rand"
	"strconv"

	"expenseboard/internal/policy"
)

// Submission is one synthetic expense submission before it has been decided.
type Submission struct {
	Employee string
	Category string
	Amount   float64
}

var firstNames = []string{"Alice", "Bob", "Carol", "David", "Elena", "Farid", "Grace", "Hugo", "Iris", "Jonas"}

// Off-policy categories, guaranteed to be rejected.
var offPolicy = []string{"Entertainment", "Gifts", "Personal"}

// GenerateSubmissions produces n synthetic submissions: mostly small amounts
// under the auto limit, some in the review band, a few oversized, and an
// offRate share carrying a disallowed category. A small pool of repeat
// employees lets spending histories accumulate.
func GenerateSubmissions(n int, offRate float64, rng *rand.Rand) []Submission {
	cats := policy.Categories()
	subs := make([]Submission, 0, n)
	for i := 0; i < n; i++ {
		emp := firstNames[rng.Intn(len(firstNames))]
		if rng.Float64() < 0.4 {
			emp = emp + " " + strconv.Itoa(rng.Intn(40))
		}

		cat := cats[rng.Intn(len(cats))]
		if rng.Float64() < offRate {
			cat = offPolicy[rng.Intn(len(offPolicy))]
		}

		var amount float64
		switch r := rng.Float64(); {
		case r < 0.6:
			amount = 50 + rng.Float64()*950
		case r < 0.92:
			amount = 1000 + rng.Float64()*14000
		default:
			amount = 15000 + rng.Float64()*25000
		}
		amount = float64(int(amount*100)) / 100

		subs = append(subs, Submission{Employee: emp, Category: cat, Amount: amount})
	}
	return subs
}
