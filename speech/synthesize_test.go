package speech

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubSynthesizer struct {
	calls   int
	lastReq SynthesisRequest
	audio   []byte
	err     error
}

func (s *stubSynthesizer) Synthesize(_ context.Context, req SynthesisRequest) (*SynthesisResult, error) {
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &SynthesisResult{Audio: s.audio}, nil
}

func testSpeakConfig() SpeakConfig {
	return SpeakConfig{
		LanguageCode: "en-US",
		VoiceName:    "en-US-Standard-C",
		Gender:       GenderFemale,
		Encoding:     EncodingMP3,
	}
}

func TestSynthesizeWritesFile(t *testing.T) {
	audio := []byte{0xff, 0xfb, 0x90, 0x00, 0x01, 0x02}
	stub := &stubSynthesizer{audio: audio}
	speaker := &Speaker{Synthesizer: stub, Config: testSpeakConfig()}

	outPath := filepath.Join(t.TempDir(), "output.mp3")
	written, err := speaker.SynthesizeToFile(context.Background(), "hello", outPath)

	assert.NoError(t, err)
	assert.Equal(t, outPath, written)

	onDisk, err := os.ReadFile(outPath)
	assert.NoError(t, err)
	assert.Equal(t, audio, onDisk)
}

func TestSynthesizeOverwritesExisting(t *testing.T) {
	stub := &stubSynthesizer{audio: []byte("new audio")}
	speaker := &Speaker{Synthesizer: stub, Config: testSpeakConfig()}

	outPath := filepath.Join(t.TempDir(), "output.mp3")
	assert.NoError(t, os.WriteFile(outPath, []byte("stale audio"), 0644))

	_, err := speaker.SynthesizeToFile(context.Background(), "hello", outPath)
	assert.NoError(t, err)

	onDisk, err := os.ReadFile(outPath)
	assert.NoError(t, err)
	assert.Equal(t, []byte("new audio"), onDisk)
}

func TestSynthesizeSendsConfiguredRequest(t *testing.T) {
	stub := &stubSynthesizer{audio: []byte("x")}
	speaker := &Speaker{Synthesizer: stub, Config: testSpeakConfig()}

	_, err := speaker.SynthesizeToFile(context.Background(), "", filepath.Join(t.TempDir(), "out.mp3"))
	assert.NoError(t, err)

	// empty text goes through unvalidated - the provider decides
	assert.Equal(t, "", stub.lastReq.Text)
	assert.Equal(t, "en-US", stub.lastReq.LanguageCode)
	assert.Equal(t, "en-US-Standard-C", stub.lastReq.VoiceName)
	assert.Equal(t, GenderFemale, stub.lastReq.Gender)
	assert.Equal(t, EncodingMP3, stub.lastReq.Encoding)
}

func TestSynthesizeRemoteErrorPropagates(t *testing.T) {
	stub := &stubSynthesizer{err: errStubAuth}
	speaker := &Speaker{Synthesizer: stub, Config: testSpeakConfig()}

	_, err := speaker.SynthesizeToFile(context.Background(), "hello", filepath.Join(t.TempDir(), "out.mp3"))

	assert.ErrorIs(t, err, errStubAuth)
	assert.Equal(t, 1, stub.calls)
}

func TestSynthesizeCacheSkipsRemoteCall(t *testing.T) {
	stub := &stubSynthesizer{audio: []byte("cached audio")}
	cfg := testSpeakConfig()
	cfg.CacheDir = t.TempDir()
	speaker := &Speaker{Synthesizer: stub, Config: cfg}

	dir := t.TempDir()
	first, err := speaker.SynthesizeToFile(context.Background(), "hello", filepath.Join(dir, "a.mp3"))
	assert.NoError(t, err)
	second, err := speaker.SynthesizeToFile(context.Background(), "hello", filepath.Join(dir, "b.mp3"))
	assert.NoError(t, err)

	assert.Equal(t, 1, stub.calls)

	a, _ := os.ReadFile(first)
	b, _ := os.ReadFile(second)
	assert.Equal(t, a, b)
}

func TestSynthesizeCacheKeyedByLanguage(t *testing.T) {
	stub := &stubSynthesizer{audio: []byte("audio")}
	cfg := testSpeakConfig()
	cfg.CacheDir = t.TempDir()
	speaker := &Speaker{Synthesizer: stub, Config: cfg}

	dir := t.TempDir()
	_, err := speaker.SynthesizeToFile(context.Background(), "hello", filepath.Join(dir, "a.mp3"))
	assert.NoError(t, err)

	// same text, different language must not be served from cache
	speaker.Config.LanguageCode = "hi-IN"
	_, err = speaker.SynthesizeToFile(context.Background(), "hello", filepath.Join(dir, "b.mp3"))
	assert.NoError(t, err)

	assert.Equal(t, 2, stub.calls)
}

func TestSynthesizeCacheWriteFailureIsNotFatal(t *testing.T) {
	stub := &stubSynthesizer{audio: []byte("audio")}
	cfg := testSpeakConfig()
	// a file where the cache dir should be makes MkdirAll fail
	blocker := filepath.Join(t.TempDir(), "blocker")
	assert.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	cfg.CacheDir = filepath.Join(blocker, "cache")
	speaker := &Speaker{Synthesizer: stub, Config: cfg}

	outPath := filepath.Join(t.TempDir(), "out.mp3")
	written, err := speaker.SynthesizeToFile(context.Background(), "hello", outPath)

	assert.NoError(t, err)
	assert.Equal(t, outPath, written)

	onDisk, err := os.ReadFile(outPath)
	assert.NoError(t, err)
	assert.Equal(t, []byte("audio"), onDisk)
}
