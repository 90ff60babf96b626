// Package transcribe converts recorded audio to text via Google Cloud
// Speech-to-Text.
package transcribe

import (
	"context"
	"fmt"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"echoscore/internal/pipeline"
	"echoscore/pkg/logger"
)

// GoogleClient implements pipeline.Transcriber with synchronous recognition.
// Recordings are a single short utterance, so the non-streaming API is
// enough.
type GoogleClient struct {
	client       *speech.Client
	languageCode string
}

// NewGoogleClient creates a Speech-to-Text client. Credentials come from
// credentialsFile when set, otherwise from GOOGLE_APPLICATION_CREDENTIALS.
func NewGoogleClient(ctx context.Context, languageCode, credentialsFile string) (*GoogleClient, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}

	if languageCode == "" {
		languageCode = "en-US"
	}

	logger.Info("Speech client initialized", zap.String("language", languageCode))

	return &GoogleClient{
		client:       client,
		languageCode: languageCode,
	}, nil
}

// Transcribe recognizes one utterance from a browser-recorded WebM/Opus
// payload. No recognized speech yields an empty transcript with no error.
func (g *GoogleClient) Transcribe(ctx context.Context, audio []byte) (pipeline.Transcription, error) {
	resp, err := g.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_WEBM_OPUS,
			LanguageCode:               g.languageCode,
			EnableAutomaticPunctuation: true,
			Model:                      "default",
			UseEnhanced:                true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return pipeline.Transcription{}, fmt.Errorf("recognition request failed: %w", err)
	}

	if len(resp.Results) == 0 || len(resp.Results[0].Alternatives) == 0 {
		logger.Debug("No speech recognized", zap.Int("audio_bytes", len(audio)))
		return pipeline.Transcription{}, nil
	}

	alt := resp.Results[0].Alternatives[0]

	logger.Debug("Speech recognized",
		zap.String("transcript", alt.Transcript),
		zap.Float32("confidence", alt.Confidence))

	return pipeline.Transcription{
		Text:       alt.Transcript,
		Confidence: float64(alt.Confidence),
	}, nil
}

// Close releases the underlying gRPC connection.
func (g *GoogleClient) Close() error {
	return g.client.Close()
}
