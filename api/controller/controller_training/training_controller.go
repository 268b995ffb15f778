package controller_training

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/murasame-lab/voxtrain/api/controller"
	"github.com/murasame-lab/voxtrain/domain/domain_training"
	"github.com/murasame-lab/voxtrain/usecase/usecase_training"
	"github.com/murasame-lab/voxtrain/usecase/usecase_training/training_util"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TrainingController struct {
	pipeline   *usecase_training.TrainingPipelineUsecase
	checkpoint *usecase_training.CheckpointUsecase
	jobRepo    domain_training.TrainingJobRepository
	inspector  *training_util.DatasetInspector
}

func NewTrainingController(
	pipeline *usecase_training.TrainingPipelineUsecase,
	checkpoint *usecase_training.CheckpointUsecase,
	jobRepo domain_training.TrainingJobRepository,
	inspector *training_util.DatasetInspector,
) *TrainingController {
	return &TrainingController{
		pipeline:   pipeline,
		checkpoint: checkpoint,
		jobRepo:    jobRepo,
		inspector:  inspector,
	}
}

// StartTraining runs the whole pipeline synchronously, streaming one
// status line back per stage. The connection stays open until training
// finishes or a stage fails; there is no way to cancel a running stage
// from here.
func (ctrl *TrainingController) StartTraining(c *gin.Context) {
	var params domain_training.TrainingParams
	if err := c.ShouldBind(&params); err != nil {
		controller.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	// headers go out with the first status line, so parameter faults can
	// still answer with a proper error status
	started := false
	report := func(line string) {
		if !started {
			c.Header("Content-Type", "text/plain; charset=utf-8")
			c.Header("Cache-Control", "no-cache")
			c.Header("X-Accel-Buffering", "no")
			c.Status(http.StatusOK)
			started = true
		}
		c.Writer.WriteString(line + "\n")
		c.Writer.Flush()
	}

	job, err := ctrl.pipeline.Run(c.Request.Context(), params, report)
	if err != nil {
		if started {
			report("Error: " + err.Error())
			return
		}
		status := http.StatusBadRequest
		if errors.Is(err, domain_training.ErrJobAlreadyRunning) {
			status = http.StatusConflict
		}
		controller.ErrorResponse(c, status, "TRAINING_ERROR", err.Error())
		return
	}
	report("Job: " + job.ID.Hex())
}

// GetProgress reports the stage log of a running or finished job.
func (ctrl *TrainingController) GetProgress(c *gin.Context) {
	jobID := c.Query("job_id")
	if jobID == "" {
		controller.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "missing job_id")
		return
	}
	progress, ok := ctrl.pipeline.Progress(jobID)
	if !ok {
		controller.ErrorResponse(c, http.StatusNotFound, "JOB_NOT_FOUND", "no progress for job "+jobID)
		return
	}
	stage, status, messages := progress.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"job_id":   jobID,
		"stage":    stage,
		"status":   status,
		"messages": messages,
	})
}

// GetJobs lists the recorded pipeline runs, optionally filtered by model.
func (ctrl *TrainingController) GetJobs(c *gin.Context) {
	modelName := c.Query("model_name")

	var (
		jobs []*domain_training.TrainingJob
		err  error
	)
	if modelName != "" {
		jobs, err = ctrl.jobRepo.GetByModel(c.Request.Context(), modelName)
	} else {
		jobs, err = ctrl.jobRepo.GetAll(c.Request.Context())
	}
	if err != nil {
		controller.ErrorResponse(c, http.StatusInternalServerError, "JOB_QUERY_ERROR", err.Error())
		return
	}
	controller.SuccessResponse(c, "jobs", jobs, len(jobs))
}

// GetJob returns one recorded run by id.
func (ctrl *TrainingController) GetJob(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Query("job_id"))
	if err != nil {
		controller.ErrorResponse(c, http.StatusBadRequest, "INVALID_ID", "invalid job id format")
		return
	}
	job, err := ctrl.jobRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain_training.ErrJobNotFound) {
			status = http.StatusNotFound
		}
		controller.ErrorResponse(c, status, "JOB_ERROR", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": job})
}

// InspectDataset summarizes the audio content of a dataset directory.
func (ctrl *TrainingController) InspectDataset(c *gin.Context) {
	dir := c.Query("dir")
	if dir == "" {
		controller.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "missing dir")
		return
	}
	report, err := ctrl.inspector.Inspect(dir)
	if err != nil {
		controller.ErrorResponse(c, http.StatusInternalServerError, "DATASET_SCAN_ERROR", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// PackageCheckpoint repackages a dumped state dict into a distributable
// checkpoint.
func (ctrl *TrainingController) PackageCheckpoint(c *gin.Context) {
	var req struct {
		StatePath     string `form:"state_path" binding:"required"`
		ModelName     string `form:"model_name" binding:"required"`
		SampleRate    string `form:"sample_rate" binding:"required"`
		PitchGuidance bool   `form:"pitch_guidance"`
		Epoch         int    `form:"epoch" binding:"required,min=1"`
	}
	if err := c.ShouldBind(&req); err != nil {
		controller.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	path, err := ctrl.checkpoint.SaveFromStateFile(req.StatePath, req.SampleRate, req.PitchGuidance, req.ModelName, req.Epoch)
	if err != nil {
		controller.ErrorResponse(c, http.StatusInternalServerError, "CHECKPOINT_ERROR", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"checkpoint": path})
}

// GetCheckpointInfo reads back the non-tensor fields of a packaged
// checkpoint.
func (ctrl *TrainingController) GetCheckpointInfo(c *gin.Context) {
	name := c.Query("model_name")
	if name == "" {
		controller.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "missing model_name")
		return
	}
	ckpt, err := ctrl.checkpoint.Load(name)
	if err != nil {
		controller.ErrorResponse(c, http.StatusNotFound, "CHECKPOINT_NOT_FOUND", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"info":    ckpt.Info,
		"sr":      ckpt.SR,
		"f0":      ckpt.F0,
		"params":  ckpt.Params,
		"tensors": len(ckpt.Weight),
	})
}
