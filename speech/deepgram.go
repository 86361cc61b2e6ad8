package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

const deepgramEndpoint = "https://api.deepgram.com"

// Deepgram recognizes speech through the Deepgram pre-recorded
// listen API. Alternatives come back with real confidence scores.
type Deepgram struct {
	ApiKey string

	// Endpoint overrides the API host, mainly for tests.
	Endpoint string

	Client *http.Client
}

func NewDeepgramFromEnv() (*Deepgram, error) {
	key, exists := os.LookupEnv("DEEPGRAM_API_KEY")
	if !exists {
		return nil, fmt.Errorf("missing env var DEEPGRAM_API_KEY")
	}
	return &Deepgram{ApiKey: key}, nil
}

func (api *Deepgram) Recognize(ctx context.Context, req RecognitionRequest) ([]Transcript, error) {
	endpoint := api.Endpoint
	if endpoint == "" {
		endpoint = deepgramEndpoint
	}

	query := url.Values{}
	query.Set("model", "nova-2")
	query.Set("language", req.LanguageCode)
	query.Set("sample_rate", fmt.Sprint(req.SampleRateHz))

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		endpoint+"/v1/listen?"+query.Encode(),
		bytes.NewReader(req.Audio),
	)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Token "+api.ApiKey)
	httpReq.Header.Set("Content-Type", contentType(req.Encoding))

	client := api.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("deepgram request failed; %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read deepgram response; %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("deepgram returned %s; %s", resp.Status, body)
	}

	var parsed struct {
		Results struct {
			Channels []struct {
				Alternatives []struct {
					Transcript string  `json:"transcript"`
					Confidence float64 `json:"confidence"`
				} `json:"alternatives"`
			} `json:"channels"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode deepgram response; %w", err)
	}

	var results []Transcript
	for _, channel := range parsed.Results.Channels {
		for _, alt := range channel.Alternatives {
			// silence comes back as an empty alternative
			if alt.Transcript == "" {
				continue
			}
			results = append(results, Transcript{
				Text:       alt.Transcript,
				Confidence: alt.Confidence,
			})
		}
	}

	return results, nil
}

func contentType(encoding AudioEncoding) string {
	switch encoding {
	case EncodingMP3:
		return "audio/mpeg"
	default:
		return "audio/wav"
	}
}
