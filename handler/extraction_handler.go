package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/salary-extraction-engine/dto"
	"github.com/Aashish23092/salary-extraction-engine/service"
)

type ExtractionHandler struct {
	reader       service.DocumentReader
	orchestrator *service.Orchestrator
}

func NewExtractionHandler(reader service.DocumentReader, orchestrator *service.Orchestrator) *ExtractionHandler {
	return &ExtractionHandler{
		reader:       reader,
		orchestrator: orchestrator,
	}
}

// ExtractStatement handles POST /statements/extract: a multipart
// "file" upload plus an optional "options" JSON form field.
func (h *ExtractionHandler) ExtractStatement(c *gin.Context) {
	log.Println("Received statement extraction request")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "No file provided", err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to open file", err)
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to read file", err)
		return
	}

	var opts *dto.ExtractionOptions
	if optionsJSON := c.PostForm("options"); optionsJSON != "" {
		var parsed dto.ExtractionOptions
		if err := json.Unmarshal([]byte(optionsJSON), &parsed); err != nil {
			h.sendError(c, http.StatusBadRequest, "Invalid options JSON", err)
			return
		}
		opts = &parsed
	}

	doc, err := h.reader.Read(fileHeader.Filename, raw)
	if err != nil {
		h.sendRejection(c, err)
		return
	}

	outcome, err := h.orchestrator.Process(doc, opts)
	if err != nil {
		h.sendRejection(c, err)
		return
	}

	log.Printf("Extraction completed for %s via %s (source=%s)",
		fileHeader.Filename, outcome.Strategy, outcome.Record.Source)

	c.JSON(http.StatusOK, dto.ExtractionResponse{
		Record:      outcome.Record,
		Strategy:    outcome.Strategy,
		ProcessedAt: time.Now().Format(time.RFC3339),
	})
}

// sendRejection maps the document-defect taxonomy onto a 422 so the
// caller can tell a bad document from a bad request.
func (h *ExtractionHandler) sendRejection(c *gin.Context, err error) {
	var docErr *dto.DocumentError
	if errors.As(err, &docErr) {
		log.Printf("Document rejected: %v", docErr)
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error:   "DOCUMENT_REJECTED",
			Message: docErr.Error(),
			Code:    http.StatusUnprocessableEntity,
		})
		return
	}
	h.sendError(c, http.StatusInternalServerError, "Extraction failed", err)
}

func (h *ExtractionHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "EXTRACTION_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
