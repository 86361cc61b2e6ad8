package speech

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/haguro/elevenlabs-go"
)

// ElevenLabs synthesizes speech through the ElevenLabs API. Output
// is always MP3; VoiceName is an ElevenLabs voice ID and Gender is
// baked into the voice, so the request gender is ignored.
type ElevenLabs struct {
	ApiKey string
}

func NewElevenLabsFromEnv() (*ElevenLabs, error) {
	key, exists := os.LookupEnv("ELEVENLABS_APIKEY")
	if !exists {
		return nil, fmt.Errorf("missing env var ELEVENLABS_APIKEY")
	}
	return &ElevenLabs{ApiKey: key}, nil
}

func (api *ElevenLabs) Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error) {
	client := elevenlabs.NewClient(ctx, api.ApiKey, 30*time.Second)

	audio, err := client.TextToSpeech(req.VoiceName, elevenlabs.TextToSpeechRequest{
		Text:    req.Text,
		ModelID: "eleven_monolingual_v1",
	})
	if err != nil {
		return nil, fmt.Errorf("failed tts; %w", err)
	}

	return &SynthesisResult{Audio: audio}, nil
}
