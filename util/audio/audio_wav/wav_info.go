package audio_wav

import (
	"fmt"
	"os"
	"time"

	"github.com/go-audio/wav"
)

// Info is the header-level description of a wav file.
type Info struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Duration   time.Duration
}

// ReadInfo decodes just the wav header and duration. Used to verify that
// resampled stage output and the synthesized mute assets actually carry
// the sample rate the pipeline asked for.
func ReadInfo(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	dec.ReadInfo()
	if !dec.WasPCMAccessed() && dec.Err() != nil {
		return nil, fmt.Errorf("failed to read wav header: %w", dec.Err())
	}
	dur, err := dec.Duration()
	if err != nil {
		return nil, fmt.Errorf("failed to read wav duration: %w", err)
	}

	return &Info{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
		Duration:   dur,
	}, nil
}

// Verify checks the file against an expected sample rate.
func Verify(path string, sampleRateHz int) error {
	info, err := ReadInfo(path)
	if err != nil {
		return err
	}
	if info.SampleRate != sampleRateHz {
		return fmt.Errorf("%s: sample rate %d, want %d", path, info.SampleRate, sampleRateHz)
	}
	return nil
}
