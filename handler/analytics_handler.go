package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/salary-extraction-engine/analytics"
	"github.com/Aashish23092/salary-extraction-engine/dto"
)

type AnalyticsHandler struct {
	tracker *analytics.Tracker
}

func NewAnalyticsHandler(tracker *analytics.Tracker) *AnalyticsHandler {
	return &AnalyticsHandler{tracker: tracker}
}

// GetPerformance handles GET /analytics/performance. An optional
// "pattern" query narrows the snapshot to one key.
func (h *AnalyticsHandler) GetPerformance(c *gin.Context) {
	if pattern := c.Query("pattern"); pattern != "" {
		c.JSON(http.StatusOK, dto.PerformanceResponse{
			Performance: []dto.PatternPerformance{h.tracker.Performance(pattern)},
		})
		return
	}

	c.JSON(http.StatusOK, dto.PerformanceResponse{
		Performance: h.tracker.AllPerformance(),
	})
}

// SubmitFeedback handles POST /analytics/feedback.
func (h *AnalyticsHandler) SubmitFeedback(c *gin.Context) {
	var req dto.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, http.StatusBadRequest, "Invalid feedback payload", err)
		return
	}
	if err := req.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	h.tracker.RecordFeedback(req.PatternKey, *req.Accurate, req.Correction)
	log.Printf("Feedback recorded for %s (accurate=%v)", req.PatternKey, *req.Accurate)

	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

// ResetAnalytics handles POST /analytics/reset: clears the event log
// and the persisted store.
func (h *AnalyticsHandler) ResetAnalytics(c *gin.Context) {
	if err := h.tracker.Reset(); err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to reset analytics", err)
		return
	}

	log.Println("Analytics event log reset")
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

func (h *AnalyticsHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "ANALYTICS_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
