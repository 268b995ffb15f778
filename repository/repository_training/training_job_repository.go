package repository_training

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/murasame-lab/voxtrain/domain"
	"github.com/murasame-lab/voxtrain/domain/domain_training"
	"github.com/murasame-lab/voxtrain/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type trainingJobRepository struct {
	db         mongo.Database
	collection string
}

func NewTrainingJobRepository(db mongo.Database) domain_training.TrainingJobRepository {
	return &trainingJobRepository{
		db:         db,
		collection: domain.CollectionTrainingJob,
	}
}

func (r *trainingJobRepository) Create(ctx context.Context, job *domain_training.TrainingJob) error {
	if job == nil {
		return errors.New("job cannot be nil")
	}
	coll := r.db.Collection(r.collection)
	if _, err := coll.InsertOne(ctx, job); err != nil {
		return fmt.Errorf("failed to create training job: %w", err)
	}
	return nil
}

func (r *trainingJobRepository) UpdateStage(ctx context.Context, id primitive.ObjectID, stage string) error {
	coll := r.db.Collection(r.collection)
	update := bson.M{"$set": bson.M{"stage": stage}}
	res, err := coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update job stage: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain_training.ErrJobNotFound
	}
	return nil
}

func (r *trainingJobRepository) Finish(ctx context.Context, id primitive.ObjectID, status string, errMsg string) error {
	coll := r.db.Collection(r.collection)
	fields := bson.M{
		"status":      status,
		"finished_at": time.Now(),
	}
	if errMsg != "" {
		fields["error"] = errMsg
	}
	res, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to finish job: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain_training.ErrJobNotFound
	}
	return nil
}

func (r *trainingJobRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain_training.TrainingJob, error) {
	coll := r.db.Collection(r.collection)
	var job domain_training.TrainingJob
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&job); err != nil {
		return nil, domain_training.ErrJobNotFound
	}
	return &job, nil
}

func (r *trainingJobRepository) GetByModel(ctx context.Context, modelName string) ([]*domain_training.TrainingJob, error) {
	return r.find(ctx, bson.M{"model_name": modelName})
}

func (r *trainingJobRepository) GetAll(ctx context.Context) ([]*domain_training.TrainingJob, error) {
	return r.find(ctx, bson.M{})
}

func (r *trainingJobRepository) find(ctx context.Context, filter bson.M) ([]*domain_training.TrainingJob, error) {
	coll := r.db.Collection(r.collection)
	opts := options.Find().SetSort(bson.D{{Key: "started_at", Value: -1}})
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query training jobs: %w", err)
	}
	defer cursor.Close(ctx)

	var jobs []*domain_training.TrainingJob
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("failed to decode training jobs: %w", err)
	}
	return jobs, nil
}
