package speech

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// AudioEncoding names the sample encoding of audio sent to or
// received from a provider.
type AudioEncoding string

const (
	// EncodingLinear16 is uncompressed 16-bit little-endian PCM.
	EncodingLinear16 AudioEncoding = "linear16"
	EncodingMP3      AudioEncoding = "mp3"
)

// VoiceGender selects a synthesis voice gender where the provider
// supports it.
type VoiceGender string

const (
	GenderUnspecified VoiceGender = ""
	GenderMale        VoiceGender = "male"
	GenderFemale      VoiceGender = "female"
	GenderNeutral     VoiceGender = "neutral"
)

// RecognitionRequest carries one audio payload to a recognizer.
type RecognitionRequest struct {
	Audio        []byte
	Encoding     AudioEncoding
	SampleRateHz int
	LanguageCode string
}

// Transcript is a single recognized utterance. Confidence is the
// provider's estimate in [0,1]; providers that don't report one
// leave it at 0.
type Transcript struct {
	Text       string
	Confidence float64
}

// SynthesisRequest carries one line of text to a synthesizer.
type SynthesisRequest struct {
	Text         string
	LanguageCode string
	VoiceName    string
	Gender       VoiceGender
	Encoding     AudioEncoding
}

// SynthesisResult holds the synthesized audio payload.
type SynthesisResult struct {
	Audio []byte
}

// Recognizer converts spoken audio to text with a single blocking
// remote call. An empty slice means the provider heard no speech.
type Recognizer interface {
	Recognize(ctx context.Context, req RecognitionRequest) ([]Transcript, error)
}

// Synthesizer converts text to spoken audio with a single blocking
// remote call.
type Synthesizer interface {
	Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error)
}

// --- utilities for this package

func hashString(input string) string {
	hash := sha256.New()
	hash.Write([]byte(input))
	return hex.EncodeToString(hash.Sum(nil))
}
