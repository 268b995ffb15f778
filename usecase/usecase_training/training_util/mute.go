package training_util

import (
	"fmt"
	"os"
	"path/filepath"

	ffmpeggo "github.com/u2takey/ffmpeg-go"

	"github.com/murasame-lab/voxtrain/domain/domain_training"
	"github.com/murasame-lab/voxtrain/util/audio/audio_wav"
)

// Silence asset geometry. Every manifest ends with a fixed mute record,
// so the mute folder must hold aligned entries for every stage: a mute
// wav per sampling rate, a 16 kHz copy, both f0 tracks and the feature
// matrix, all spanning the same three seconds.
const (
	muteSeconds       = 3
	muteF0Frames      = 300 // 10 ms hop over 3 s
	muteFeatureFrames = 149
	featureDim        = 256
)

// EnsureMuteAssets synthesizes the training/mute tree when it is missing.
// Existing files are left alone.
func EnsureMuteAssets(modelsRoot string) error {
	muteDir := domain_training.MuteDir(modelsRoot)

	gtDir := filepath.Join(muteDir, domain_training.DirGTWavs)
	wav16kDir := filepath.Join(muteDir, Dir16kWavs)
	f0Dir := filepath.Join(muteDir, domain_training.DirF0)
	f0nsfDir := filepath.Join(muteDir, domain_training.DirF0NSF)
	featureDir := filepath.Join(muteDir, domain_training.DirFeature256)
	for _, dir := range []string{gtDir, wav16kDir, f0Dir, f0nsfDir, featureDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create mute folder: %w", err)
		}
	}

	for tag, hz := range domain_training.SRDict {
		path := filepath.Join(gtDir, domain_training.MuteSampleName+tag+".wav")
		if err := ensureSilenceWav(path, hz); err != nil {
			return err
		}
	}
	if err := ensureSilenceWav(filepath.Join(wav16kDir, domain_training.MuteSampleName+".wav"), 16000); err != nil {
		return err
	}

	zerosF0 := make([]float32, muteF0Frames)
	for _, path := range []string{
		filepath.Join(f0Dir, domain_training.MuteSampleName+".wav.npy"),
		filepath.Join(f0nsfDir, domain_training.MuteSampleName+".wav.npy"),
	} {
		if err := ensureNpy(path, []int{muteF0Frames}, zerosF0); err != nil {
			return err
		}
	}

	featurePath := filepath.Join(featureDir, domain_training.MuteSampleName+".npy")
	return ensureNpy(featurePath, []int{muteFeatureFrames, featureDim}, make([]float32, muteFeatureFrames*featureDim))
}

func ensureSilenceWav(path string, sampleRateHz int) error {
	if _, err := os.Stat(path); err == nil {
		return audio_wav.Verify(path, sampleRateHz)
	}
	src := fmt.Sprintf("anullsrc=channel_layout=mono:sample_rate=%d", sampleRateHz)
	err := ffmpeggo.Input(src, ffmpeggo.KwArgs{"f": "lavfi", "t": muteSeconds}).
		Output(path, ffmpeggo.KwArgs{"acodec": "pcm_s16le"}).
		OverWriteOutput().
		Silent(true).
		Run()
	if err != nil {
		return fmt.Errorf("failed to synthesize %s: %w", path, err)
	}
	return audio_wav.Verify(path, sampleRateHz)
}

func ensureNpy(path string, shape []int, data []float32) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := WriteNpyFloat32(path, shape, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
