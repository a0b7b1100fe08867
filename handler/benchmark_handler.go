package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/salary-extraction-engine/benchmark"
	"github.com/Aashish23092/salary-extraction-engine/dto"
	"github.com/Aashish23092/salary-extraction-engine/service"
)

type BenchmarkHandler struct {
	reader service.DocumentReader
	engine *benchmark.Engine
}

func NewBenchmarkHandler(reader service.DocumentReader, engine *benchmark.Engine) *BenchmarkHandler {
	return &BenchmarkHandler{
		reader: reader,
		engine: engine,
	}
}

// RunBenchmark handles POST /statements/benchmark. The "mode" query
// selects comprehensive (default), presets, or custom; custom expects
// an "options" JSON form field.
func (h *BenchmarkHandler) RunBenchmark(c *gin.Context) {
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

	doc, err := h.reader.Read(fileHeader.Filename, raw)
	if err != nil {
		var docErr *dto.DocumentError
		if errors.As(err, &docErr) {
			h.sendError(c, http.StatusUnprocessableEntity, docErr.Error(), nil)
			return
		}
		h.sendError(c, http.StatusInternalServerError, "Failed to read document", err)
		return
	}

	var results []benchmark.Result
	switch mode := c.DefaultQuery("mode", "comprehensive"); mode {
	case "comprehensive":
		results = h.engine.RunComprehensive(doc)
	case "presets":
		results = h.engine.RunPresets(doc)
	case "custom":
		var opts dto.ExtractionOptions
		if err := json.Unmarshal([]byte(c.PostForm("options")), &opts); err != nil {
			h.sendError(c, http.StatusBadRequest, "Invalid options JSON", err)
			return
		}
		results = []benchmark.Result{h.engine.RunCustom(doc, opts)}
	default:
		h.sendError(c, http.StatusBadRequest, "Unknown benchmark mode: "+mode, nil)
		return
	}

	log.Printf("Benchmarked %s: %d runs, fastest %s",
		fileHeader.Filename, len(results), benchmark.Fastest(results))

	entries := make([]dto.BenchmarkEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, dto.BenchmarkEntry{
			StrategyName:    r.StrategyName,
			ElapsedMs:       float64(r.Elapsed.Microseconds()) / 1000.0,
			MemoryDeltaByte: r.MemoryDelta,
			Options:         r.Options,
			VsBaseline:      benchmark.ImprovementOverBaseline(results, r.StrategyName),
		})
	}

	c.JSON(http.StatusOK, dto.BenchmarkResponse{
		Results:     entries,
		ProcessedAt: time.Now().Format(time.RFC3339),
	})
}

func (h *BenchmarkHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "BENCHMARK_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
