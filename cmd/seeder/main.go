package main

import (
	"flag"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"expenseboard/internal/data"
	"expenseboard/internal/engine"
	"expenseboard/internal/policy"
	"expenseboard/internal/store"
	"expenseboard/pkg/utils"
)

func main() {
	logger := utils.Logger()
	defer logger.Sync()

	n := flag.Int("n", 200, "Number of synthetic submissions")
	offRate := flag.Float64("offpolicy", 0.08, "Share of submissions with a disallowed category")
	storePath := flag.String("store", "data/expenses.json", "Record store to seed")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	flag.Parse()

	st, err := store.NewFileStore(*storePath)
	if err != nil { logger.Fatal("store init failed", zap.Error(err)) }

	eng := engine.New(st, policy.DefaultLimits())
	rng := rand.New(rand.NewSource(*seed))

	logger.Info("generating submissions", zap.Int("n", *n), zap.Float64("offpolicy", *offRate), zap.String("store", *storePath))
	subs := data.GenerateSubmissions(*n, *offRate, rng)

	for _, sub := range subs {
		if _, err := eng.Process(sub.Employee, sub.Category, sub.Amount); err != nil {
			logger.Fatal("process failed", zap.String("employee", sub.Employee), zap.Error(err))
		}
		if _, err := eng.SaveLast(); err != nil {
			logger.Fatal("save failed", zap.String("employee", sub.Employee), zap.Error(err))
		}
	}

	stats, err := eng.Stats()
	if err != nil { logger.Fatal("stats failed", zap.Error(err)) }
	logger.Info("store seeded",
		zap.Int("approved", stats.Approved),
		zap.Int("pending", stats.Pending),
		zap.Int("rejected", stats.Rejected),
	)
}
