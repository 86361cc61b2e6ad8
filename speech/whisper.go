package speech

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Whisper recognizes speech through the OpenAI transcription API.
// Whisper has no confidence field, so per-segment confidence is
// derived from the average token logprob.
type Whisper struct {
	Client *openai.Client
}

func NewWhisperFromEnv() (*Whisper, error) {
	key, exists := os.LookupEnv("OPENAI_APIKEY")
	if !exists {
		return nil, fmt.Errorf("missing env var OPENAI_APIKEY")
	}
	return &Whisper{Client: openai.NewClient(key)}, nil
}

func (api *Whisper) Recognize(ctx context.Context, req RecognitionRequest) ([]Transcript, error) {
	resp, err := api.Client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: "audio." + fileExt(req.Encoding),
		Reader:   bytes.NewReader(req.Audio),
		Language: baseLanguage(req.LanguageCode),
		Format:   openai.AudioResponseFormatVerboseJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query openai; %w", err)
	}

	var results []Transcript
	for _, segment := range resp.Segments {
		text := strings.TrimSpace(segment.Text)
		if text == "" {
			continue
		}
		results = append(results, Transcript{
			Text:       text,
			Confidence: logprobConfidence(segment.AvgLogprob),
		})
	}

	return results, nil
}

// logprobConfidence maps an average token logprob to [0,1].
func logprobConfidence(avgLogprob float64) float64 {
	confidence := math.Exp(avgLogprob)
	if confidence > 1 {
		return 1
	}
	if confidence < 0 {
		return 0
	}
	return confidence
}

// baseLanguage strips a BCP-47 tag down to the primary subtag
// whisper expects ("en-US" -> "en").
func baseLanguage(code string) string {
	base, _, _ := strings.Cut(code, "-")
	return base
}

func fileExt(encoding AudioEncoding) string {
	if encoding == EncodingMP3 {
		return "mp3"
	}
	return "wav"
}
