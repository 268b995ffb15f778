package domain_training

import "context"

// The four pipeline collaborators. Each wraps an external routine that is
// treated as opaque and already correct; the pipeline usecase only
// sequences them and hands results over through the filesystem.

// Preprocessor slices and resamples the raw dataset into the per-model
// training directory (0_gt_wavs and the 16k copies the extractors read).
type Preprocessor interface {
	Preprocess(ctx context.Context, datasetDir string, sampleRateHz int, cpuCount int, trainingDir string) error
}

// PitchExtractor computes both f0 tracks (2a_f0, 2b_f0nsf) for every
// preprocessed sample using the named algorithm.
type PitchExtractor interface {
	ExtractF0(ctx context.Context, trainingDir string, cpuCount int, algo string) error
}

// FeatureExtractor computes the 256-dim content features (3_feature256).
type FeatureExtractor interface {
	ExtractFeature(ctx context.Context, trainingDir string) error
}

// Trainer runs the actual training loop over the manifest until the epoch
// budget is spent. It blocks for the whole run.
type Trainer interface {
	Train(ctx context.Context, opts TrainOptions) error
}

// TrainOptions is the argument bundle handed to the trainer invocation.
type TrainOptions struct {
	GPUIDs         []string
	TrainingDir    string
	ModelName      string
	SampleRate     string
	PitchGuidance  bool
	BatchSize      int
	CacheBatch     bool
	Epochs         int
	SaveEveryEpoch int
	PretrainedG    string
	PretrainedD    string
}

// CheckpointStore persists packaged checkpoints and reads back the raw
// state dicts the training routine dumps.
type CheckpointStore interface {
	Save(ckpt *Checkpoint, path string) error
	Load(path string) (*Checkpoint, error)
	LoadStateDict(path string) (map[string]Tensor, error)
}
