package training_util

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/h2non/filetype"
	ffmpeggo "github.com/u2takey/ffmpeg-go"

	"github.com/murasame-lab/voxtrain/domain/domain_training"
)

// Dir16kWavs holds the 16 kHz copies the f0 and feature extractors read.
const Dir16kWavs = "1_16k_wavs"

// FFmpegPreprocessor implements domain_training.Preprocessor with ffmpeg:
// every detected audio file in the dataset directory is resampled to a
// mono wav at the target rate (0_gt_wavs) and at 16 kHz (1_16k_wavs).
// Files run through a bounded worker pool sized by the requested CPU
// process count.
type FFmpegPreprocessor struct{}

func NewFFmpegPreprocessor() *FFmpegPreprocessor {
	return &FFmpegPreprocessor{}
}

func (p *FFmpegPreprocessor) Preprocess(ctx context.Context, datasetDir string, sampleRateHz int, cpuCount int, trainingDir string) error {
	files, err := collectAudioFiles(datasetDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no audio files found in %s", datasetDir)
	}

	gtDir := filepath.Join(trainingDir, domain_training.DirGTWavs)
	wav16kDir := filepath.Join(trainingDir, Dir16kWavs)
	for _, dir := range []string{gtDir, wav16kDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create stage folder: %w", err)
		}
	}

	if cpuCount < 1 {
		cpuCount = 1
	}
	workerPool := make(chan struct{}, cpuCount)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, src := range files {
		wg.Add(1)
		workerPool <- struct{}{}
		go func(src string) {
			defer wg.Done()
			defer func() { <-workerPool }()

			name := sampleName(src)
			err := resampleWav(src, filepath.Join(gtDir, name+".wav"), sampleRateHz)
			if err == nil {
				err = resampleWav(src, filepath.Join(wav16kDir, name+".wav"), 16000)
			}
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(src)
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	log.Printf("Preprocess: %d files resampled to %dHz into %s", len(files), sampleRateHz, gtDir)
	return nil
}

func resampleWav(src, dst string, sampleRateHz int) error {
	err := ffmpeggo.Input(src).
		Output(dst, ffmpeggo.KwArgs{
			"ar":     sampleRateHz,
			"ac":     1,
			"acodec": "pcm_s16le",
		}).
		OverWriteOutput().
		Silent(true).
		Run()
	if err != nil {
		return fmt.Errorf("failed to resample %s: %w", src, err)
	}
	return nil
}

// sampleName strips the extension so the per-stage outputs of one source
// file share an identifier.
func sampleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// collectAudioFiles walks the dataset directory and keeps every file whose
// magic bytes identify an audio container.
func collectAudioFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ok, detectErr := isAudioFile(path)
		if detectErr != nil {
			log.Printf("Preprocess: skipping unreadable file %s: %v", path, detectErr)
			return nil
		}
		if ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan dataset directory: %w", err)
	}
	return files, nil
}

func isAudioFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head := make([]byte, 261)
	n, err := f.Read(head)
	if err != nil && n == 0 {
		return false, err
	}
	head = head[:n]

	if filetype.IsAudio(head) {
		return true, nil
	}
	// m4a registers as video/mp4 by magic; go by the brand instead
	kind, _ := filetype.Match(head)
	if kind.MIME.Subtype == "mp4" || kind.MIME.Subtype == "m4a" {
		return strings.EqualFold(filepath.Ext(path), ".m4a"), nil
	}
	return false, nil
}
