package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"expenseboard/internal/decision"
	"expenseboard/internal/pattern"
	"expenseboard/internal/policy"
	"expenseboard/internal/store"
)

// ErrValidation marks rejected input, surfaced before any decision logic runs.
var ErrValidation = errors.New("validation error")

// ErrNoPending is returned by SaveLast when no processed decision is waiting.
var ErrNoPending = errors.New("no pending decision")

// Stats are running counts over saved records, bucketed by decision. Any
// other decision value is excluded from every bucket.
type Stats struct {
	Approved int `json:"approved"`
	Pending  int `json:"pending"`
	Rejected int `json:"rejected"`
}

// Engine orchestrates the decision pipeline over the record store. It also
// owns the single "last processed, not yet saved" slot: set by Process,
// consumed and cleared by SaveLast.
type Engine struct {
	store  *store.FileStore
	limits policy.Limits

	mu   sync.Mutex
	last *store.Record
}

func New(st *store.FileStore, limits policy.Limits) *Engine {
	return &Engine{store: st, limits: limits}
}

// Process runs the full pipeline for one submission and returns the resulting
// record without persisting it. Persistence is a separate explicit SaveLast.
func (e *Engine) Process(employee, category string, amount float64) (store.Record, error) {
	if employee == "" {
		return store.Record{}, fmt.Errorf("%w: employee name is required", ErrValidation)
	}
	if category == "" {
		return store.Record{}, fmt.Errorf("%w: category is required", ErrValidation)
	}
	if amount <= 0 {
		return store.Record{}, fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	}

	recs, err := e.store.Load()
	if err != nil {
		return store.Record{}, err
	}

	// Prior history: every saved record for this employee, exact name match,
	// regardless of its decision.
	var hist []float64
	total := 0.0
	for _, r := range recs {
		if r.Employee != employee { continue }
		hist = append(hist, r.Amount)
		total += r.Amount
	}

	outcome := e.limits.Check(amount, total, category)
	sig := pattern.Analyze(hist)
	dec, reason := decision.Decide(outcome, sig, amount)

	rec := store.Record{
		Employee:    employee,
		Category:    category,
		Amount:      amount,
		Decision:    dec,
		Explanation: decision.Explain(dec, reason),
		Timestamp:   time.Now().Format(store.TimeLayout),
	}

	e.mu.Lock()
	e.last = &rec
	e.mu.Unlock()
	return rec, nil
}

// Last returns the pending unsaved record, if any.
func (e *Engine) Last() (store.Record, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.last == nil {
		return store.Record{}, false
	}
	return *e.last, true
}

// SaveLast persists the pending record and clears the slot. The slot is left
// intact if the save fails.
func (e *Engine) SaveLast() (store.Record, error) {
	e.mu.Lock()
	rec := e.last
	e.mu.Unlock()
	if rec == nil {
		return store.Record{}, ErrNoPending
	}
	if err := e.store.Save(*rec); err != nil {
		return store.Record{}, err
	}
	e.mu.Lock()
	e.last = nil
	e.mu.Unlock()
	return *rec, nil
}

// Stats counts saved records by decision.
func (e *Engine) Stats() (Stats, error) {
	recs, err := e.store.Load()
	if err != nil {
		return Stats{}, err
	}
	var s Stats
	for _, r := range recs {
		switch r.Decision {
		case decision.Approved:
			s.Approved++
		case decision.Pending:
			s.Pending++
		case decision.Rejected:
			s.Rejected++
		}
	}
	return s, nil
}
