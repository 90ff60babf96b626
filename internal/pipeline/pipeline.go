// Package pipeline sequences one recording through persistence,
// transcription and scoring. Stages run strictly in order and the first
// failure aborts the rest; audio already stored when a later stage fails is
// left in place for manual review.
package pipeline

import (
	"bytes"
	"context"
	"io"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"echoscore/internal/similarity"
	"echoscore/pkg/logger"
)

const (
	// DefaultQuestionID is used when the client does not label the request.
	DefaultQuestionID = "unknown"

	audioContentType = "audio/webm"
	audioExtension   = ".webm"
)

// ObjectStore persists raw audio and returns a publicly retrievable URL.
// Implementations must be safe for concurrent use.
type ObjectStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// Transcription is the speech backend's hypothesis for one recording. An
// empty Text with no error means the backend recognized no speech.
type Transcription struct {
	Text       string
	Confidence float64 // 0.0 to 1.0
}

// Transcriber converts audio bytes to a text hypothesis.
// Implementations must be safe for concurrent use.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (Transcription, error)
}

// Request carries one recording through the pipeline.
type Request struct {
	Audio      []byte
	TargetWord string
	QuestionID string
}

// Result is the assembled outcome of a completed pipeline run.
type Result struct {
	URL                   string
	Transcript            string
	Confidence            float64 // percent, 2 decimals
	TargetWord            string
	FinalScore            float64
	ExactMatch            bool
	LevenshteinSimilarity float64
	Key                   string
	AudioSizeKB           float64
}

// Pipeline orchestrates storage, transcription and scoring for one request
// at a time. The collaborators are stateless handles shared by all
// concurrent requests.
type Pipeline struct {
	store       ObjectStore
	transcriber Transcriber
}

// New creates a pipeline with explicitly injected collaborators.
func New(store ObjectStore, transcriber Transcriber) *Pipeline {
	return &Pipeline{
		store:       store,
		transcriber: transcriber,
	}
}

// Process runs one request through the full stage sequence and returns the
// assembled result or a stage-tagged error. Validation failures short-circuit
// before any collaborator call; storage failures prevent transcription; a
// stored object is never rolled back when transcription fails.
func (p *Pipeline) Process(ctx context.Context, req Request) (*Result, error) {
	// Received -> Validated
	if len(req.Audio) == 0 {
		return nil, newStageError(StageValidation, "no audio file provided", nil)
	}
	if strings.TrimSpace(req.TargetWord) == "" {
		return nil, newStageError(StageValidation, "no target word provided", nil)
	}

	questionID := req.QuestionID
	if questionID == "" {
		questionID = DefaultQuestionID
	}

	logger.Info("Processing recording",
		zap.String("question_id", questionID),
		zap.Int("audio_bytes", len(req.Audio)))

	// Validated -> Stored. A cancelled or expired request must not reach a
	// collaborator even when the previous stage returned promptly.
	if err := ctx.Err(); err != nil {
		return nil, newStageError(StageStorage, "request abandoned before storage", err)
	}

	key := GenerateKey(questionID)
	url, err := p.store.Upload(ctx, key, bytes.NewReader(req.Audio), audioContentType)
	if err != nil {
		return nil, newStageError(StageStorage, "failed to store audio", err)
	}

	logger.Info("Audio stored",
		zap.String("question_id", questionID),
		zap.String("key", key),
		zap.String("url", url))

	// Stored -> Transcribed. The stored object stays in place when the
	// request dies here.
	if err := ctx.Err(); err != nil {
		return nil, newStageError(StageTranscription, "request abandoned before transcription", err)
	}

	tr, err := p.transcriber.Transcribe(ctx, req.Audio)
	if err != nil {
		return nil, newStageError(StageTranscription, "failed to transcribe audio", err)
	}

	logger.Info("Audio transcribed",
		zap.String("question_id", questionID),
		zap.String("transcript", tr.Text),
		zap.Float64("confidence", tr.Confidence))

	// Transcribed -> Scored; scoring never fails, worst case is the zero result.
	score := similarity.Score(tr.Text, req.TargetWord)

	logger.Info("Recording scored",
		zap.String("question_id", questionID),
		zap.Float64("final_score", score.FinalScore),
		zap.Bool("exact_match", score.ExactMatch))

	// Scored -> Completed
	return &Result{
		URL:                   url,
		Transcript:            tr.Text,
		Confidence:            round2(tr.Confidence * 100),
		TargetWord:            req.TargetWord,
		FinalScore:            score.FinalScore,
		ExactMatch:            score.ExactMatch,
		LevenshteinSimilarity: score.LevenshteinSimilarity,
		Key:                   key,
		AudioSizeKB:           round2(float64(len(req.Audio)) / 1024),
	}, nil
}

// GenerateKey builds a practically unique object key of the form
// audio/{questionId}/{timestamp}_{suffix}.webm. The timestamp is sortable
// and filesystem-safe (colons and periods replaced); the random suffix
// avoids collisions between concurrent requests without coordination.
func GenerateKey(questionID string) string {
	timestamp := strings.NewReplacer(":", "-", ".", "-").
		Replace(time.Now().UTC().Format("2006-01-02T15:04:05.000Z"))
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return "audio/" + questionID + "/" + timestamp + "_" + suffix + audioExtension
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
