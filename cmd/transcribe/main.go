package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"parrot/config"
	"parrot/speech"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	godotenv.Load()

	log := logrus.WithField("request_id", uuid.NewString())

	cfg, err := config.Load("parrot.yml")
	if err != nil {
		log.WithError(err).Fatalln("failed to load config")
	}

	input := cfg.InputPath
	if len(os.Args) > 1 {
		input = os.Args[1]
	}

	recognizer, err := cfg.NewRecognizer()
	if err != nil {
		log.WithError(err).Fatalln("failed to build recognizer")
	}

	transcriber := &speech.Transcriber{
		Recognizer: recognizer,
		Config:     cfg.Transcribe(),
	}

	err = transcriber.TranscribeFile(ctx, input, os.Stdout)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error: audio file %q not found.\n", input)
		fmt.Fprintf(os.Stderr, "Place a %dHz mono WAV file in the working directory.\n", cfg.SampleRateHz)
		os.Exit(1)
	}
	if err != nil {
		log.WithError(err).WithField("file", input).Fatalln("transcription failed")
	}
}
