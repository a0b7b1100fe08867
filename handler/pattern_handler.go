package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/salary-extraction-engine/dto"
	"github.com/Aashish23092/salary-extraction-engine/patterns"
)

type PatternHandler struct {
	repo *patterns.Repository
}

func NewPatternHandler(repo *patterns.Repository) *PatternHandler {
	return &PatternHandler{repo: repo}
}

// RegisterPattern handles POST /patterns: inserts or overwrites a
// pattern in the general set. The expression is not validated here; a
// malformed one fails at match time against its own field.
func (h *PatternHandler) RegisterPattern(c *gin.Context) {
	var req dto.PatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.sendError(c, http.StatusBadRequest, "Invalid pattern payload", err)
		return
	}
	if err := req.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	h.repo.AddPattern(req.Key, req.Expression)
	log.Printf("Pattern registered: %s", req.Key)

	c.JSON(http.StatusOK, gin.H{"status": "registered", "key": req.Key})
}

func (h *PatternHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "PATTERN_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
