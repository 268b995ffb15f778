package route_training

import (
	"github.com/gin-gonic/gin"

	"github.com/murasame-lab/voxtrain/api/controller/controller_training"
	"github.com/murasame-lab/voxtrain/bootstrap"
	"github.com/murasame-lab/voxtrain/domain/domain_util"
	"github.com/murasame-lab/voxtrain/mongo"
	"github.com/murasame-lab/voxtrain/repository/repository_training"
	"github.com/murasame-lab/voxtrain/usecase/usecase_training"
	"github.com/murasame-lab/voxtrain/usecase/usecase_training/training_util"
)

func NewTrainingRouter(env *bootstrap.Env, db mongo.Database, group *gin.RouterGroup) {
	jobRepo := repository_training.NewTrainingJobRepository(db)
	checkpointStore := repository_training.NewCheckpointFileStore()

	pipeline := usecase_training.NewTrainingPipelineUsecase(
		env.ModelsRoot,
		training_util.NewFFmpegPreprocessor(),
		training_util.NewScriptPitchExtractor(env.ToolInterpreter, env.F0ExtractScript),
		training_util.NewScriptFeatureExtractor(env.ToolInterpreter, env.FeatureExtractScript),
		training_util.NewScriptTrainer(env.ToolInterpreter, env.TrainScript),
		jobRepo,
		domain_util.NewProgressRegistry(),
	)
	checkpoint := usecase_training.NewCheckpointUsecase(env.ModelsRoot, checkpointStore)
	ctrl := controller_training.NewTrainingController(pipeline, checkpoint, jobRepo, training_util.NewDatasetInspector())

	trainingGroup := group.Group("/training")
	{
		trainingGroup.POST("/start", ctrl.StartTraining)
		trainingGroup.GET("/progress", ctrl.GetProgress)
		trainingGroup.GET("/jobs", ctrl.GetJobs)
		trainingGroup.GET("/job", ctrl.GetJob)
		trainingGroup.GET("/dataset", ctrl.InspectDataset)
		trainingGroup.POST("/checkpoint", ctrl.PackageCheckpoint)
		trainingGroup.GET("/checkpoint", ctrl.GetCheckpointInfo)
	}
}
