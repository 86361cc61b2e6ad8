package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"parrot/config"
	"parrot/speech"
	"parrot/storage"
)

const demoText = "Hello! I am a speech synthesis feature. " +
	"This is an example of text-to-speech in Go."

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	godotenv.Load()

	log := logrus.WithField("request_id", uuid.NewString())

	cfg, err := config.Load("parrot.yml")
	if err != nil {
		log.WithError(err).Fatalln("failed to load config")
	}

	text := demoText
	if len(os.Args) > 1 {
		text = os.Args[1]
	}

	synthesizer, err := cfg.NewSynthesizer()
	if err != nil {
		log.WithError(err).Fatalln("failed to build synthesizer")
	}

	speaker := &speech.Speaker{
		Synthesizer: synthesizer,
		Config:      cfg.Speak(),
	}

	log.WithField("text", text).Infoln("synthesizing text")

	outPath, err := speaker.SynthesizeToFile(ctx, text, cfg.OutputPath)
	if err != nil {
		log.WithError(err).Fatalln("synthesis failed")
	}

	fmt.Printf("Audio content written to file %q\n", outPath)

	archive(log, outPath)
}

// archive uploads the result when an S3 bucket is configured. A
// failed upload doesn't undo a successful synthesis.
func archive(log *logrus.Entry, outPath string) {
	s3, err := storage.NewS3FromEnv()
	if err != nil {
		log.WithError(err).Fatalln("bad s3 configuration")
	}
	if s3 == nil {
		return
	}

	audio, err := os.ReadFile(outPath)
	if err != nil {
		log.WithError(err).Fatalln("failed to re-read output file")
	}

	key := path.Base(outPath)
	if err := s3.Archive(key, audio); err != nil {
		log.WithError(err).WithField("key", key).Errorln("failed to archive audio")
		return
	}

	log.WithField("key", key).Infoln("archived audio to s3")
}
