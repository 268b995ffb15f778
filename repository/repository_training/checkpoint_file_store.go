package repository_training

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/murasame-lab/voxtrain/domain/domain_training"
	"go.mongodb.org/mongo-driver/bson"
)

// CheckpointFileStore persists packaged checkpoints as single BSON
// documents on disk. The document keeps the packaged record's entry
// order: weight, then config/params when present, then info, sr, f0.
type CheckpointFileStore struct{}

func NewCheckpointFileStore() *CheckpointFileStore {
	return &CheckpointFileStore{}
}

func (s *CheckpointFileStore) Save(ckpt *domain_training.Checkpoint, path string) error {
	if ckpt == nil {
		return errors.New("checkpoint cannot be nil")
	}

	doc := bson.D{{Key: "weight", Value: ckpt.Weight}}
	if ckpt.Params != nil {
		doc = append(doc,
			bson.E{Key: "config", Value: ckpt.Config},
			bson.E{Key: "params", Value: *ckpt.Params},
		)
	}
	doc = append(doc,
		bson.E{Key: "info", Value: ckpt.Info},
		bson.E{Key: "sr", Value: ckpt.SR},
		bson.E{Key: "f0", Value: ckpt.F0},
	)

	data, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode checkpoint: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create checkpoint directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	return nil
}

func (s *CheckpointFileStore) Load(path string) (*domain_training.Checkpoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}

	var doc struct {
		Weight map[string]domain_training.HalfTensor `bson:"weight"`
		Config bson.A                                 `bson:"config"`
		Params *domain_training.HyperParams           `bson:"params"`
		Info   string                                 `bson:"info"`
		SR     string                                 `bson:"sr"`
		F0     int                                    `bson:"f0"`
	}
	if err := bson.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode checkpoint: %w", err)
	}

	ckpt := &domain_training.Checkpoint{
		Weight: doc.Weight,
		Params: doc.Params,
		Info:   doc.Info,
		SR:     doc.SR,
		F0:     doc.F0,
	}
	if doc.Config != nil {
		ckpt.Config = []interface{}(doc.Config)
	}
	return ckpt, nil
}

// LoadStateDict reads a raw model state dump, a single BSON document
// mapping tensor names to float32 tensors.
func (s *CheckpointFileStore) LoadStateDict(path string) (map[string]domain_training.Tensor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read state dict: %w", err)
	}
	var state map[string]domain_training.Tensor
	if err := bson.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to decode state dict: %w", err)
	}
	return state, nil
}
