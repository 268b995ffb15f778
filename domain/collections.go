package domain

const (
	CollectionUser = "system_auth_users"
)

const (
	CollectionTrainingJob = "training_pipeline_jobs"
)
