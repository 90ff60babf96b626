package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"echoscore/internal/observability"
	"echoscore/internal/pipeline"
	"echoscore/pkg/logger"
)

// Handler serves the recording upload endpoint.
type Handler struct {
	pipeline *pipeline.Pipeline
	metrics  *observability.Metrics
}

func NewHandler(p *pipeline.Pipeline, m *observability.Metrics) *Handler {
	return &Handler{
		pipeline: p,
		metrics:  m,
	}
}

type uploadResponse struct {
	Success                 bool    `json:"success"`
	URL                     string  `json:"url"`
	Transcript              string  `json:"transcript"`
	TranscriptionConfidence float64 `json:"transcription_confidence"`
	TargetWord              string  `json:"target_word"`
	ProximityScore          float64 `json:"proximity_score"`
	ExactMatch              bool    `json:"exact_match"`
	LevenshteinSimilarity   float64 `json:"levenshtein_similarity"`
	Filename                string  `json:"filename"`
	FileSizeKB              float64 `json:"file_size_kb"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// UploadAudio accepts a multipart recording, runs it through the pipeline
// and returns the scored result. Missing audio or target word is the
// client's fault (400); collaborator failures are internal (500).
func (h *Handler) UploadAudio(c *gin.Context) {
	start := time.Now()

	audio, err := h.readAudioFile(c)
	if err != nil {
		h.metrics.RecordRequest(string(pipeline.StageValidation), time.Since(start).Seconds(), 0, false)

		logger.Warn("Upload rejected", zap.Error(err))

		c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Success: false, Error: err.Error()})
		return
	}

	targetWord := c.PostForm("targetWord")
	questionID := c.DefaultPostForm("questionId", pipeline.DefaultQuestionID)

	result, err := h.pipeline.Process(c.Request.Context(), pipeline.Request{
		Audio:      audio,
		TargetWord: targetWord,
		QuestionID: questionID,
	})
	if err != nil {
		stage := pipeline.StageOf(err)
		h.metrics.RecordRequest(string(stage), time.Since(start).Seconds(), len(audio), false)

		logger.Error("Upload request failed",
			zap.String("question_id", questionID),
			zap.String("stage", string(stage)),
			zap.Error(err))

		status := http.StatusInternalServerError
		if pipeline.IsValidation(err) {
			status = http.StatusBadRequest
		}
		c.JSON(status, errorResponse{Success: false, Error: err.Error()})
		return
	}

	h.metrics.RecordRequest("success", time.Since(start).Seconds(), len(audio), result.ExactMatch)

	c.JSON(http.StatusOK, uploadResponse{
		Success:                 true,
		URL:                     result.URL,
		Transcript:              result.Transcript,
		TranscriptionConfidence: result.Confidence,
		TargetWord:              result.TargetWord,
		ProximityScore:          result.FinalScore,
		ExactMatch:              result.ExactMatch,
		LevenshteinSimilarity:   result.LevenshteinSimilarity,
		Filename:                result.Key,
		FileSizeKB:              result.AudioSizeKB,
	})
}

// readAudioFile extracts the uploaded audio bytes. A missing or unreadable
// file yields nil bytes so the pipeline reports it as a validation error and
// no collaborator is ever invoked; a body over the configured cap is its own
// error so oversized uploads are not mistaken for missing ones.
func (h *Handler) readAudioFile(c *gin.Context) ([]byte, error) {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, fmt.Errorf("audio file exceeds the %d byte upload limit", maxBytesErr.Limit)
		}
		return nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", zap.Error(err))
		return nil, nil
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Error("Failed to read uploaded file", zap.Error(err))
		return nil, nil
	}

	return data, nil
}

// Health reports service liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Root describes the service and its endpoints.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "Audio Transcription & Proximity Service",
		"version": "1.0",
		"endpoints": gin.H{
			"/upload-audio": "POST - Upload and process audio",
			"/health":       "GET - Health check",
			"/metrics":      "GET - Prometheus metrics",
		},
	})
}
