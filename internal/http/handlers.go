package http

import (
	"encoding/csv"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/singhankit6748/Water-Tracker/internal/core"
)

// CSVFilename is the attachment name for history exports.
const CSVFilename = "water_intake_history.csv"

type Handlers struct {
	svc         *core.Service
	log         *zap.Logger
	dailyGoalML float64
}

func NewHandlers(svc *core.Service, log *zap.Logger, dailyGoalML float64) *Handlers {
	return &Handlers{svc: svc, log: log, dailyGoalML: dailyGoalML}
}

// ---- endpoints ----

func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "feedback": h.svc.FeedbackEnabled()})
}

func (h *Handlers) LogIntake(c *gin.Context) {
	var in core.LogRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid json body")
		return
	}
	res, err := h.svc.LogIntake(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	if res.AnalysisError != "" {
		h.log.Warn("ai feedback failed", zap.String("user_id", res.UserID), zap.String("error", res.AnalysisError))
	}
	h.log.Info("intake logged",
		zap.String("user_id", res.UserID),
		zap.Float64("intake_ml", res.IntakeML),
		zap.String("date", res.Date),
	)
	out := gin.H{
		"message":   "Water intake logged successfully",
		"user_id":   res.UserID,
		"intake_ml": res.IntakeML,
		"date":      res.Date,
		"today_ml":  res.TodayML,
	}
	if res.Analysis != "" {
		out["analysis"] = res.Analysis
	}
	if res.AnalysisError != "" {
		out["analysis_error"] = res.AnalysisError
	}
	c.JSON(http.StatusCreated, out)
}

func (h *Handlers) History(c *gin.Context) {
	user, filter, ok := h.historyParams(c)
	if !ok {
		return
	}
	recs, err := h.svc.History(c.Request.Context(), user, filter)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id": user,
		"filter":  filter,
		"history": recs,
	})
}

func (h *Handlers) ExportCSV(c *gin.Context) {
	user, filter, ok := h.historyParams(c)
	if !ok {
		return
	}
	recs, err := h.svc.History(c.Request.Context(), user, filter)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+CSVFilename+`"`)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"Date", "Day", "Amount (ml)"})
	for _, r := range recs {
		_ = w.Write([]string{r.Date, r.Weekday, strconv.FormatFloat(r.AmountML, 'f', -1, 64)})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		h.log.Warn("csv export interrupted", zap.String("user_id", user), zap.Error(err))
	}
}

func (h *Handlers) Progress(c *gin.Context) {
	goal := h.dailyGoalML
	if raw := strings.TrimSpace(c.Query("goal")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 || math.IsInf(v, 0) {
			jsonError(c, http.StatusBadRequest, core.ErrInvalidGoal.Error())
			return
		}
		goal = v
	}
	p, err := h.svc.Progress(c.Request.Context(), c.Param("user_id"), goal)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handlers) Analyze(c *gin.Context) {
	var in struct {
		LitersPerDay float64 `json:"liters_per_day"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid json body")
		return
	}
	out, err := h.svc.Analyze(c.Request.Context(), in.LitersPerDay)
	if err != nil {
		switch {
		case core.IsFeedbackUnavailable(err):
			jsonError(c, http.StatusServiceUnavailable, err.Error())
		case core.IsValidation(err):
			jsonError(c, http.StatusBadRequest, err.Error())
		default:
			h.log.Warn("ai feedback failed", zap.Error(err))
			jsonError(c, http.StatusBadGateway, "ai feedback failed")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"analysis": out})
}

// ---- helpers ----

func (h *Handlers) historyParams(c *gin.Context) (string, core.Filter, bool) {
	filter, err := core.ParseFilter(c.Query("filter"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, err.Error())
		return "", "", false
	}
	return c.Param("user_id"), filter, true
}

// fail maps service errors to HTTP responses; storage errors stay opaque.
func (h *Handlers) fail(c *gin.Context, err error) {
	if core.IsValidation(err) {
		jsonError(c, http.StatusBadRequest, err.Error())
		return
	}
	_ = c.Error(err)
	h.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	jsonError(c, http.StatusInternalServerError, "internal error")
}

func jsonError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
