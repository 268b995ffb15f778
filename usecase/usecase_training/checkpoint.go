package usecase_training

import (
	"fmt"
	"strings"

	"github.com/murasame-lab/voxtrain/domain/domain_training"
)

// Weights whose key contains this substring belong to the posterior
// encoder, which is only used for training-time variational encoding and
// never at inference. They are dropped from packaged checkpoints.
const variationalEncoderKey = "enc_q"

// PackageCheckpoint shapes a raw model state dict into the packaged
// checkpoint record. All retained tensors are converted to half precision.
// An unrecognized sampling-rate tag leaves Config and Params unset while
// Info, SR and F0 are still filled in.
func PackageCheckpoint(state map[string]domain_training.Tensor, srTag string, pitchGuidance bool, epoch int) *domain_training.Checkpoint {
	ckpt := &domain_training.Checkpoint{
		Weight: make(map[string]domain_training.HalfTensor, len(state)),
	}
	for key, tensor := range state {
		if strings.Contains(key, variationalEncoderKey) {
			continue
		}
		ckpt.Weight[key] = tensor.Half()
	}

	if params, ok := domain_training.PresetFor(srTag); ok {
		ckpt.Params = &params
		ckpt.Config = params.Values()
	}

	ckpt.Info = fmt.Sprintf("%depoch", epoch)
	ckpt.SR = srTag
	if pitchGuidance {
		ckpt.F0 = 1
	}
	return ckpt
}

// CheckpointUsecase packages model state and persists it under the models
// root, keyed by model name.
type CheckpointUsecase struct {
	modelsRoot string
	store      domain_training.CheckpointStore
}

func NewCheckpointUsecase(modelsRoot string, store domain_training.CheckpointStore) *CheckpointUsecase {
	return &CheckpointUsecase{modelsRoot: modelsRoot, store: store}
}

func (uc *CheckpointUsecase) Save(state map[string]domain_training.Tensor, srTag string, pitchGuidance bool, name string, epoch int) (string, error) {
	ckpt := PackageCheckpoint(state, srTag, pitchGuidance, epoch)
	path := domain_training.CheckpointPath(uc.modelsRoot, name)
	if err := uc.store.Save(ckpt, path); err != nil {
		return "", fmt.Errorf("failed to save checkpoint: %w", err)
	}
	return path, nil
}

func (uc *CheckpointUsecase) Load(name string) (*domain_training.Checkpoint, error) {
	return uc.store.Load(domain_training.CheckpointPath(uc.modelsRoot, name))
}

// SaveFromStateFile packages a state dict the training routine dumped to
// disk. Used to repackage a finished run without holding the model in
// memory.
func (uc *CheckpointUsecase) SaveFromStateFile(statePath, srTag string, pitchGuidance bool, name string, epoch int) (string, error) {
	state, err := uc.store.LoadStateDict(statePath)
	if err != nil {
		return "", err
	}
	return uc.Save(state, srTag, pitchGuidance, name, epoch)
}
