package main

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"expenseboard/internal/engine"
	"expenseboard/internal/policy"
	"expenseboard/internal/store"
	"expenseboard/pkg/utils"
)

var eng *engine.Engine

func main() {
	_ = godotenv.Load()
	logger := utils.Logger()
	defer logger.Sync()

	storePath := os.Getenv("STORE_FILE")
	if storePath == "" { storePath = filepath.Join("data", "expenses.json") }
	st, err := store.NewFileStore(storePath)
	if err != nil { logger.Fatal("store init failed", zap.Error(err)) }

	eng = engine.New(st, limitsFromEnv())

	r := setupRouter()

	port := os.Getenv("PORT")
	if port == "" { port = "8080" }
	logger.Info("listening", zap.String("port", port), zap.String("store", storePath))
	r.Run(":" + port)
}

func setupRouter() *gin.Engine {
	r := gin.Default()

	r.Static("/static", "cmd/api/static")
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/dashboard")
	})
	r.GET("/dashboard", func(c *gin.Context) {
		c.File("cmd/api/static/index.html")
	})
	r.GET("/dashboard/data", dashboardData)
	r.POST("/dashboard/process", handleProcess)
	r.POST("/dashboard/save", handleSave)

	api := r.Group("/")
	api.Use(apiKeyMiddleware)
	api.POST("/process", handleProcess)
	api.POST("/save", handleSave)
	api.GET("/stats", handleStats)

	return r
}

// limitsFromEnv returns the policy limits, with env overrides on top of the
// documented defaults (1000 / 15000 / 200000).
func limitsFromEnv() policy.Limits {
	l := policy.DefaultLimits()
	if v, err := strconv.ParseFloat(os.Getenv("AUTO_LIMIT"), 64); err == nil && v > 0 { l.AutoLimit = v }
	if v, err := strconv.ParseFloat(os.Getenv("MANAGER_LIMIT"), 64); err == nil && v > 0 { l.ManagerLimit = v }
	if v, err := strconv.ParseFloat(os.Getenv("MONTHLY_LIMIT"), 64); err == nil && v > 0 { l.MonthlyLimit = v }
	return l
}

func apiKeyMiddleware(c *gin.Context) {
	key := os.Getenv("API_KEY")
	if key == "" { c.Next(); return }
	got := c.GetHeader("X-API-Key")
	if got != key { c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"}); return }
	c.Next()
}

type processReq struct {
	Employee string  `json:"employee" binding:"required"`
	Category string  `json:"category" binding:"required"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
}

func handleProcess(c *gin.Context) {
	var req processReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	rec, err := eng.Process(req.Employee, req.Category, req.Amount)
	if err != nil { writeErr(c, err); return }
	c.JSON(http.StatusOK, rec)
}

func handleSave(c *gin.Context) {
	rec, err := eng.SaveLast()
	if err != nil { writeErr(c, err); return }
	c.JSON(http.StatusOK, rec)
}

func handleStats(c *gin.Context) {
	stats, err := eng.Stats()
	if err != nil { writeErr(c, err); return }
	c.JSON(http.StatusOK, stats)
}

func dashboardData(c *gin.Context) {
	stats, err := eng.Stats()
	if err != nil { writeErr(c, err); return }
	var result any
	if rec, ok := eng.Last(); ok { result = rec }
	c.JSON(http.StatusOK, gin.H{
		"result":     result,
		"stats":      stats,
		"categories": policy.Categories(),
	})
}

func writeErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, engine.ErrNoPending):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
