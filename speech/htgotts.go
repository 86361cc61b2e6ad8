package speech

import (
	"context"
	"errors"
	"os"

	htgotts "github.com/hegedustibor/htgo-tts"
	"github.com/sirupsen/logrus"
)

// GoogleTranslate synthesizes speech through the keyless Google
// Translate endpoint. The voice is fixed per language, so VoiceName
// and Gender in the request are ignored. Output is MP3.
type GoogleTranslate struct{}

func (api *GoogleTranslate) Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error) {
	tmpdir, err := os.MkdirTemp("", "tts")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpdir)

	speech := htgotts.Speech{Folder: tmpdir, Language: baseLanguage(req.LanguageCode)}
	path, err := speech.CreateSpeechFile(req.Text, hashString(req.Text))
	if err != nil {
		return nil, err
	}

	audio, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// the endpoint answers over-long lines with a 1685-byte error MP3
	if len(audio) == 1685 {
		logrus.WithField("line", req.Text).Infoln("htgotts returned bad MP3 file")
		return nil, errors.New("failed to gen speech - line too long")
	}

	return &SynthesisResult{Audio: audio}, nil
}
