package speech

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/sirupsen/logrus"
)

// SpeakConfig are the voice constants applied to every line a
// Speaker synthesizes.
type SpeakConfig struct {
	LanguageCode string
	VoiceName    string
	Gender       VoiceGender
	Encoding     AudioEncoding

	// CacheDir, when set, keeps a copy of every synthesized line
	// keyed by content hash so repeated lines skip the remote call.
	CacheDir string
}

// Speaker turns text into audio files via an injected Synthesizer.
type Speaker struct {
	Synthesizer Synthesizer
	Config      SpeakConfig
}

// SynthesizeToFile synthesizes text and writes the audio payload to
// outPath, overwriting any existing file. It returns the written
// path. Empty text is passed through to the provider unvalidated.
func (s *Speaker) SynthesizeToFile(ctx context.Context, text string, outPath string) (string, error) {
	audio, err := s.synthesize(ctx, text)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(outPath, audio, 0644); err != nil {
		return "", fmt.Errorf("failed to write file to disk; %w", err)
	}

	logrus.
		WithField("file", outPath).
		WithField("bytes", len(audio)).
		Infoln("audio content written to file")

	return outPath, nil
}

func (s *Speaker) synthesize(ctx context.Context, text string) ([]byte, error) {
	cached := s.cachePath(text)
	if cached != "" {
		if audio, err := os.ReadFile(cached); err == nil {
			return audio, nil // this line was already spoken!
		}
	}

	result, err := s.Synthesizer.Synthesize(ctx, SynthesisRequest{
		Text:         text,
		LanguageCode: s.Config.LanguageCode,
		VoiceName:    s.Config.VoiceName,
		Gender:       s.Config.Gender,
		Encoding:     s.Config.Encoding,
	})
	if err != nil {
		return nil, fmt.Errorf("failed tts; %w", err)
	}

	// the cache is an optimization; a failed write must not
	// discard a successful synthesis
	if cached != "" {
		if err := s.writeCache(cached, result.Audio); err != nil {
			logrus.
				WithError(err).
				WithField("file", cached).
				Warnln("failed to cache audio")
		}
	}

	return result.Audio, nil
}

func (s *Speaker) writeCache(cached string, audio []byte) error {
	if err := os.MkdirAll(s.Config.CacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache dir; %w", err)
	}
	if err := os.WriteFile(cached, audio, 0644); err != nil {
		return fmt.Errorf("failed to write cache file; %w", err)
	}
	return nil
}

// cachePath returns "" when caching is off. The key covers every
// field that shapes the audio - some providers key the voice off the
// language alone - so changing any of them doesn't serve stale audio.
func (s *Speaker) cachePath(text string) string {
	if s.Config.CacheDir == "" {
		return ""
	}
	key := hashString(string(s.Config.Encoding) + "|" + s.Config.LanguageCode + "|" + s.Config.VoiceName + "|" + text)
	return path.Join(s.Config.CacheDir, key+"."+string(s.Config.Encoding))
}
