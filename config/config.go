package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"parrot/speech"
)

// Config collects every knob the two operations expose. Zero values
// are filled in with the documented defaults, so an absent file or a
// partial file both work.
type Config struct {
	LanguageCode   string `yaml:"language"`
	VoiceName      string `yaml:"voice"`
	Gender         string `yaml:"gender"`
	SampleRateHz   int    `yaml:"sample_rate"`
	InputEncoding  string `yaml:"input_encoding"`
	OutputEncoding string `yaml:"output_encoding"`
	InputPath      string `yaml:"input"`
	OutputPath     string `yaml:"output"`
	CacheDir       string `yaml:"cache_dir"`

	STTProvider string `yaml:"stt_provider"`
	TTSProvider string `yaml:"tts_provider"`
}

func defaults() Config {
	return Config{
		LanguageCode:   "en-US",
		VoiceName:      "en-US-Standard-C",
		Gender:         string(speech.GenderFemale),
		SampleRateHz:   16000,
		InputEncoding:  string(speech.EncodingLinear16),
		OutputEncoding: string(speech.EncodingMP3),
		InputPath:      "audio.wav",
		OutputPath:     "output.mp3",
		STTProvider:    "deepgram",
		TTSProvider:    "elevenlabs",
	}
}

// Load reads a YAML config file and overlays it on the defaults. A
// missing file is not an error - you get the defaults.
func Load(filename string) (Config, error) {
	cfg := defaults()

	file, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file; %w", err)
	}

	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file; %w", err)
	}

	return cfg, nil
}

// Transcribe returns the request constants for the transcribe
// operation.
func (c Config) Transcribe() speech.TranscribeConfig {
	return speech.TranscribeConfig{
		Encoding:     speech.AudioEncoding(c.InputEncoding),
		SampleRateHz: c.SampleRateHz,
		LanguageCode: c.LanguageCode,
	}
}

// Speak returns the voice constants for the synthesize operation.
func (c Config) Speak() speech.SpeakConfig {
	return speech.SpeakConfig{
		LanguageCode: c.LanguageCode,
		VoiceName:    c.VoiceName,
		Gender:       speech.VoiceGender(c.Gender),
		Encoding:     speech.AudioEncoding(c.OutputEncoding),
		CacheDir:     c.CacheDir,
	}
}

// NewRecognizer builds the configured speech-to-text provider.
func (c Config) NewRecognizer() (speech.Recognizer, error) {
	switch c.STTProvider {
	case "deepgram":
		return speech.NewDeepgramFromEnv()
	case "whisper":
		return speech.NewWhisperFromEnv()
	default:
		return nil, fmt.Errorf("unknown stt provider %q", c.STTProvider)
	}
}

// NewSynthesizer builds the configured text-to-speech provider.
func (c Config) NewSynthesizer() (speech.Synthesizer, error) {
	switch c.TTSProvider {
	case "elevenlabs":
		return speech.NewElevenLabsFromEnv()
	case "googletranslate":
		return &speech.GoogleTranslate{}, nil
	default:
		return nil, fmt.Errorf("unknown tts provider %q", c.TTSProvider)
	}
}
