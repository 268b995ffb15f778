package bootstrap

import (
	"log"

	"github.com/spf13/viper"
)

type Env struct {
	AppEnv                string `mapstructure:"APP_ENV"`
	ServerAddress         string `mapstructure:"SERVER_ADDRESS"`
	ContextTimeout        int    `mapstructure:"CONTEXT_TIMEOUT"`
	MongoURI              string `mapstructure:"MONGO_URI"`
	DBName                string `mapstructure:"DB_NAME"`
	AccessTokenSecret     string `mapstructure:"ACCESS_TOKEN_SECRET"`
	AccessTokenExpiryHour int    `mapstructure:"ACCESS_TOKEN_EXPIRY_HOUR"`

	// training pipeline surface
	ModelsRoot           string `mapstructure:"MODELS_ROOT"`
	ToolInterpreter      string `mapstructure:"TOOL_INTERPRETER"`
	F0ExtractScript      string `mapstructure:"F0_EXTRACT_SCRIPT"`
	FeatureExtractScript string `mapstructure:"FEATURE_EXTRACT_SCRIPT"`
	TrainScript          string `mapstructure:"TRAIN_SCRIPT"`
}

func NewEnv() *Env {
	env := Env{}
	viper.SetConfigFile(".env")

	if err := viper.ReadInConfig(); err != nil {
		log.Fatal("Can't find the file .env : ", err)
	}
	if err := viper.Unmarshal(&env); err != nil {
		log.Fatal("Environment can't be loaded: ", err)
	}

	if env.ContextTimeout <= 0 {
		env.ContextTimeout = 10
	}
	if env.AccessTokenExpiryHour <= 0 {
		env.AccessTokenExpiryHour = 2
	}
	if env.ModelsRoot == "" {
		env.ModelsRoot = "models"
	}
	if env.ToolInterpreter == "" {
		env.ToolInterpreter = "python3"
	}
	if env.AppEnv == "development" {
		log.Println("The App is running in development env")
	}
	return &env
}
