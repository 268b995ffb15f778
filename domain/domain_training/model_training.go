package domain_training

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

var (
	ErrModelNameEmpty    = errors.New("model name cannot be empty")
	ErrDatasetDirEmpty   = errors.New("dataset directory cannot be empty")
	ErrUnknownSampleRate = errors.New("unknown sampling rate tag")
	ErrUnknownPitchAlgo  = errors.New("unknown pitch extraction algorithm")
	ErrJobNotFound       = errors.New("training job not found")
	ErrJobAlreadyRunning = errors.New("a training job is already running for this model")
)

// Sampling-rate tags accepted by the pipeline. Each tag selects a fixed
// generator architecture preset at checkpoint-packaging time.
const (
	SampleRate32k = "32k"
	SampleRate40k = "40k"
	SampleRate48k = "48k"
)

// SRDict maps a sampling-rate tag to its rate in hertz.
var SRDict = map[string]int{
	SampleRate32k: 32000,
	SampleRate40k: 40000,
	SampleRate48k: 48000,
}

// Pitch extraction algorithms understood by the f0 extractor.
const (
	PitchAlgoPM      = "pm"
	PitchAlgoHarvest = "harvest"
	PitchAlgoDio     = "dio"
)

// Per-stage output folders under a model's training directory. The
// preprocessor, extractors and manifest builder all agree on these names.
const (
	DirGTWavs     = "0_gt_wavs"
	DirF0         = "2a_f0"
	DirF0NSF      = "2b_f0nsf"
	DirFeature256 = "3_feature256"
)

const (
	ManifestFileName = "filelist.txt"
	MuteSampleName   = "mute"
)

// TrainingParams carries every field of the training form. Numeric ranges
// mirror the UI widget limits.
type TrainingParams struct {
	ModelName        string `json:"model_name" form:"model_name" binding:"required"`
	IgnoreCache      bool   `json:"ignore_cache" form:"ignore_cache"`
	SampleRate       string `json:"sample_rate" form:"sample_rate" binding:"required"`
	PitchGuidance    bool   `json:"pitch_guidance" form:"pitch_guidance"`
	DatasetDir       string `json:"dataset_dir" form:"dataset_dir" binding:"required"`
	SpeakerID        int    `json:"speaker_id" form:"speaker_id" binding:"min=0,max=4"`
	GPUIDs           string `json:"gpu_ids" form:"gpu_ids"`
	CPUProcessCount  int    `json:"cpu_process_count" form:"cpu_process_count"`
	PitchAlgo        string `json:"pitch_algo" form:"pitch_algo"`
	BatchSize        int    `json:"batch_size" form:"batch_size" binding:"omitempty,min=1,max=64"`
	CacheBatch       bool   `json:"cache_batch" form:"cache_batch"`
	Epochs           int    `json:"epochs" form:"epochs" binding:"omitempty,min=1,max=1000"`
	SaveEveryEpoch   int    `json:"save_every_epoch" form:"save_every_epoch" binding:"omitempty,min=1,max=1000"`
	PretrainedG      string `json:"pretrained_g" form:"pretrained_g"`
	PretrainedD      string `json:"pretrained_d" form:"pretrained_d"`
}

// Normalize fills the defaults the UI pre-selects and validates the
// enumerated fields.
func (p *TrainingParams) Normalize(modelsRoot string) error {
	if strings.TrimSpace(p.ModelName) == "" {
		return ErrModelNameEmpty
	}
	if strings.TrimSpace(p.DatasetDir) == "" {
		return ErrDatasetDirEmpty
	}
	if p.SampleRate == "" {
		p.SampleRate = SampleRate40k
	}
	if _, ok := SRDict[p.SampleRate]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSampleRate, p.SampleRate)
	}
	if p.PitchAlgo == "" {
		p.PitchAlgo = PitchAlgoHarvest
	}
	switch p.PitchAlgo {
	case PitchAlgoPM, PitchAlgoHarvest, PitchAlgoDio:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPitchAlgo, p.PitchAlgo)
	}
	if p.CPUProcessCount <= 0 {
		p.CPUProcessCount = runtime.NumCPU()
	}
	if p.BatchSize == 0 {
		p.BatchSize = 4
	}
	if p.Epochs == 0 {
		p.Epochs = 100
	}
	if p.SaveEveryEpoch == 0 {
		p.SaveEveryEpoch = 10
	}
	if p.PretrainedG == "" {
		p.PretrainedG = filepath.Join(modelsRoot, "pretrained", "f0G"+p.SampleRate+".pth")
	}
	if p.PretrainedD == "" {
		p.PretrainedD = filepath.Join(modelsRoot, "pretrained", "f0D"+p.SampleRate+".pth")
	}
	return nil
}

// SampleRateHz resolves the tag through SRDict. Callers must have
// normalized the params first.
func (p *TrainingParams) SampleRateHz() int {
	return SRDict[p.SampleRate]
}

// GPUList splits the comma-separated GPU id field the way the training
// form hands it over ("0, 1,2" -> ["0" "1" "2"]). Blank entries are kept
// out; an empty field yields an empty list, which the trainer reads as
// CPU-only.
func (p *TrainingParams) GPUList() []string {
	parts := strings.Split(p.GPUIDs, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		if _, err := strconv.Atoi(id); err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// TrainingDir is the per-model working directory holding all stage output.
func TrainingDir(modelsRoot, modelName string) string {
	return filepath.Join(modelsRoot, "training", "models", modelName)
}

// MuteDir holds the fixed silence assets appended to every manifest.
func MuteDir(modelsRoot string) string {
	return filepath.Join(modelsRoot, "training", "mute")
}

// CheckpointPath is where the packaged checkpoint for a model is written.
func CheckpointPath(modelsRoot, modelName string) string {
	return filepath.Join(modelsRoot, "checkpoints", modelName+".pth")
}
