package speech

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVInfo is the subset of a WAV header relevant to recognition.
type WAVInfo struct {
	SampleRateHz int
	NumChannels  int
	BitDepth     int
}

// ProbeWAV reads the header of an in-memory WAV container.
func ProbeWAV(content []byte) (*WAVInfo, error) {
	decoder := wav.NewDecoder(bytes.NewReader(content))
	decoder.ReadInfo()
	if err := decoder.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse WAV header; %w", err)
	}
	if !decoder.IsValidFile() {
		return nil, errors.New("not a valid WAV file")
	}

	return &WAVInfo{
		SampleRateHz: int(decoder.SampleRate),
		NumChannels:  int(decoder.NumChans),
		BitDepth:     int(decoder.BitDepth),
	}, nil
}

// WritePCM writes 16-bit mono PCM samples to a WAV file at the given
// sample rate.
func WritePCM(samples []int16, sampleRateHz int, filename string) error {
	outFile, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer outFile.Close()

	format := &audio.Format{SampleRate: sampleRateHz, NumChannels: 1}
	e := wav.NewEncoder(outFile, format.SampleRate, 16, format.NumChannels, 1)

	intBuffer := &audio.IntBuffer{
		Format:         format,
		Data:           convertToIntSlice(samples),
		SourceBitDepth: 16,
	}
	if err := e.Write(intBuffer); err != nil {
		return err
	}

	return e.Close()
}

// Convert []int16 to []int for IntBuffer
func convertToIntSlice(data []int16) []int {
	result := make([]int, len(data))
	for i, v := range data {
		result[i] = int(v)
	}
	return result
}
