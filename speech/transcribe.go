package speech

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// TranscribeConfig are the request constants applied to every file
// a Transcriber sends out.
type TranscribeConfig struct {
	Encoding     AudioEncoding
	SampleRateHz int
	LanguageCode string
}

// Transcriber reads local audio files and turns them into text via
// an injected Recognizer.
type Transcriber struct {
	Recognizer Recognizer
	Config     TranscribeConfig
}

// TranscribeFile reads the audio file at path, submits it for
// recognition and writes one "<transcript> (<confidence>)" line per
// result to out. A missing file fails before any remote call with an
// error satisfying errors.Is(err, os.ErrNotExist). An empty result
// writes nothing and returns nil.
func (t *Transcriber) TranscribeFile(ctx context.Context, path string, out io.Writer) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("audio file %q; %w", path, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read audio file; %w", err)
	}

	// header mismatches are worth a warning but the service is
	// the authority on what it will accept
	if t.Config.Encoding == EncodingLinear16 {
		t.checkHeader(path, content)
	}

	logrus.
		WithField("file", path).
		WithField("bytes", len(content)).
		Infoln("sending audio for transcription")

	results, err := t.Recognizer.Recognize(ctx, RecognitionRequest{
		Audio:        content,
		Encoding:     t.Config.Encoding,
		SampleRateHz: t.Config.SampleRateHz,
		LanguageCode: t.Config.LanguageCode,
	})
	if err != nil {
		return fmt.Errorf("recognition failed; %w", err)
	}

	for _, result := range results {
		if _, err := fmt.Fprintf(out, "%s (%.2f)\n", result.Text, result.Confidence); err != nil {
			return fmt.Errorf("failed to write transcript; %w", err)
		}
	}

	return nil
}

func (t *Transcriber) checkHeader(path string, content []byte) {
	info, err := ProbeWAV(content)
	if err != nil {
		logrus.
			WithError(err).
			WithField("file", path).
			Debugln("could not read WAV header")
		return
	}

	if info.SampleRateHz != t.Config.SampleRateHz || info.NumChannels != 1 {
		logrus.
			WithField("file", path).
			WithField("header_rate", info.SampleRateHz).
			WithField("config_rate", t.Config.SampleRateHz).
			WithField("channels", info.NumChannels).
			Warnln("WAV header disagrees with recognition config")
	}
}
