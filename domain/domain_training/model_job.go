package domain_training

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	JobStatusPending   = "pending"
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

// TrainingJob is the persisted record of one pipeline run.
type TrainingJob struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	ModelName  string             `bson:"model_name" json:"model_name"`
	Params     TrainingParams     `bson:"params" json:"params"`
	Status     string             `bson:"status" json:"status"`
	Stage      string             `bson:"stage" json:"stage"`
	Error      string             `bson:"error,omitempty" json:"error,omitempty"`
	StartedAt  time.Time          `bson:"started_at" json:"started_at"`
	FinishedAt time.Time          `bson:"finished_at,omitempty" json:"finished_at,omitempty"`
}

type TrainingJobRepository interface {
	Create(ctx context.Context, job *TrainingJob) error
	UpdateStage(ctx context.Context, id primitive.ObjectID, stage string) error
	Finish(ctx context.Context, id primitive.ObjectID, status string, errMsg string) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*TrainingJob, error)
	GetByModel(ctx context.Context, modelName string) ([]*TrainingJob, error)
	GetAll(ctx context.Context) ([]*TrainingJob, error)
}
