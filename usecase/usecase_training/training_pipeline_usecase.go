package usecase_training

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/murasame-lab/voxtrain/domain/domain_training"
	"github.com/murasame-lab/voxtrain/domain/domain_util"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainingPipelineUsecase sequences the offline training pipeline:
// directory setup, preprocess, f0 extraction, feature extraction,
// manifest build, training. Stages run one after another in the calling
// goroutine; the filesystem is the only handoff medium between them.
// There is no cancellation once a stage is running: a stage either
// returns or its error aborts the whole run.
type TrainingPipelineUsecase struct {
	modelsRoot       string
	preprocessor     domain_training.Preprocessor
	pitchExtractor   domain_training.PitchExtractor
	featureExtractor domain_training.FeatureExtractor
	trainer          domain_training.Trainer
	jobRepo          domain_training.TrainingJobRepository
	progress         *domain_util.ProgressRegistry

	runningMu sync.Mutex
	running   map[string]struct{}
}

func NewTrainingPipelineUsecase(
	modelsRoot string,
	preprocessor domain_training.Preprocessor,
	pitchExtractor domain_training.PitchExtractor,
	featureExtractor domain_training.FeatureExtractor,
	trainer domain_training.Trainer,
	jobRepo domain_training.TrainingJobRepository,
	progress *domain_util.ProgressRegistry,
) *TrainingPipelineUsecase {
	return &TrainingPipelineUsecase{
		modelsRoot:       modelsRoot,
		preprocessor:     preprocessor,
		pitchExtractor:   pitchExtractor,
		featureExtractor: featureExtractor,
		trainer:          trainer,
		jobRepo:          jobRepo,
		progress:         progress,
	}
}

func (uc *TrainingPipelineUsecase) acquire(modelName string) bool {
	uc.runningMu.Lock()
	defer uc.runningMu.Unlock()
	if uc.running == nil {
		uc.running = make(map[string]struct{})
	}
	if _, busy := uc.running[modelName]; busy {
		return false
	}
	uc.running[modelName] = struct{}{}
	return true
}

func (uc *TrainingPipelineUsecase) release(modelName string) {
	uc.runningMu.Lock()
	defer uc.runningMu.Unlock()
	delete(uc.running, modelName)
}

// Run executes the full pipeline for one model. Every stage reports a
// human-readable status line through report before it starts; the same
// lines are mirrored into the progress registry and the job record.
func (uc *TrainingPipelineUsecase) Run(ctx context.Context, params domain_training.TrainingParams, report func(string)) (*domain_training.TrainingJob, error) {
	if report == nil {
		report = func(string) {}
	}
	if err := params.Normalize(uc.modelsRoot); err != nil {
		return nil, err
	}
	modelName := domain_util.SafeModelName(params.ModelName)
	if modelName == "" {
		return nil, domain_training.ErrModelNameEmpty
	}
	params.ModelName = modelName

	if !uc.acquire(modelName) {
		return nil, domain_training.ErrJobAlreadyRunning
	}
	defer uc.release(modelName)

	job := &domain_training.TrainingJob{
		ID:        primitive.NewObjectID(),
		ModelName: modelName,
		Params:    params,
		Status:    domain_training.JobStatusRunning,
		StartedAt: time.Now(),
	}
	// job history is bookkeeping, training proceeds even if it fails
	if err := uc.jobRepo.Create(ctx, job); err != nil {
		log.Printf("TrainingPipeline: failed to record job: %v", err)
	}
	progress := uc.progress.Register(job.ID.Hex())

	step := func(stage, message string) {
		job.Stage = stage
		progress.SetStage(stage, message)
		report(message)
		if err := uc.jobRepo.UpdateStage(ctx, job.ID, stage); err != nil {
			log.Printf("TrainingPipeline: failed to update job stage: %v", err)
		}
	}
	fail := func(err error) (*domain_training.TrainingJob, error) {
		job.Status = domain_training.JobStatusFailed
		job.Error = err.Error()
		progress.Finish(domain_training.JobStatusFailed, err.Error())
		if repoErr := uc.jobRepo.Finish(ctx, job.ID, domain_training.JobStatusFailed, err.Error()); repoErr != nil {
			log.Printf("TrainingPipeline: failed to finish job: %v", repoErr)
		}
		return job, err
	}

	trainingDir := domain_training.TrainingDir(uc.modelsRoot, modelName)
	step("setup", "Training directory: "+trainingDir)

	if params.IgnoreCache {
		if err := os.RemoveAll(trainingDir); err != nil {
			return fail(fmt.Errorf("failed to clear training directory: %w", err))
		}
	}
	if err := os.MkdirAll(trainingDir, 0o755); err != nil {
		return fail(fmt.Errorf("failed to create training directory: %w", err))
	}

	step("preprocess", "Preprocessing...")
	if err := uc.preprocessor.Preprocess(ctx, params.DatasetDir, params.SampleRateHz(), params.CPUProcessCount, trainingDir); err != nil {
		return fail(fmt.Errorf("preprocess failed: %w", err))
	}

	step("extract_f0", "Extracting f0...")
	if err := uc.pitchExtractor.ExtractF0(ctx, trainingDir, params.CPUProcessCount, params.PitchAlgo); err != nil {
		return fail(fmt.Errorf("f0 extraction failed: %w", err))
	}

	step("extract_feature", "Extracting features...")
	if err := uc.featureExtractor.ExtractFeature(ctx, trainingDir); err != nil {
		return fail(fmt.Errorf("feature extraction failed: %w", err))
	}

	job.Stage = "manifest"
	sampleCount, err := BuildManifest(uc.modelsRoot, trainingDir, params.SampleRate, params.PitchGuidance, params.SpeakerID)
	if err != nil {
		return fail(err)
	}
	log.Printf("TrainingPipeline: manifest for %s holds %d samples", modelName, sampleCount)

	step("train", "Training...")
	if err := uc.trainer.Train(ctx, domain_training.TrainOptions{
		GPUIDs:         params.GPUList(),
		TrainingDir:    trainingDir,
		ModelName:      modelName,
		SampleRate:     params.SampleRate,
		PitchGuidance:  params.PitchGuidance,
		BatchSize:      params.BatchSize,
		CacheBatch:     params.CacheBatch,
		Epochs:         params.Epochs,
		SaveEveryEpoch: params.SaveEveryEpoch,
		PretrainedG:    params.PretrainedG,
		PretrainedD:    params.PretrainedD,
	}); err != nil {
		return fail(fmt.Errorf("training failed: %w", err))
	}

	report("Training completed")
	job.Status = domain_training.JobStatusCompleted
	job.FinishedAt = time.Now()
	progress.Finish(domain_training.JobStatusCompleted, "Training completed")
	if err := uc.jobRepo.Finish(ctx, job.ID, domain_training.JobStatusCompleted, ""); err != nil {
		log.Printf("TrainingPipeline: failed to finish job: %v", err)
	}
	return job, nil
}

func (uc *TrainingPipelineUsecase) Progress(jobID string) (*domain_util.TaskProgress, bool) {
	return uc.progress.Get(jobID)
}
