package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/murasame-lab/voxtrain/api/route"
	"github.com/murasame-lab/voxtrain/bootstrap"
	"github.com/murasame-lab/voxtrain/domain"
	"github.com/murasame-lab/voxtrain/mongo"
	"github.com/murasame-lab/voxtrain/usecase/usecase_training/training_util"
)

func main() {
	app := bootstrap.App()
	env := app.Env
	defer app.CloseDBConnection()

	db := app.Mongo.Database(env.DBName)
	mongo.EnsureIndexes(context.Background(), db, domain.CollectionUser, domain.CollectionTrainingJob)

	if err := training_util.EnsureMuteAssets(env.ModelsRoot); err != nil {
		log.Printf("main: mute assets unavailable, manifests will reference missing files: %v", err)
	}

	timeout := time.Duration(env.ContextTimeout) * time.Second

	engine := gin.Default()
	route.Setup(env, timeout, db, engine)

	if err := engine.Run(env.ServerAddress); err != nil {
		log.Fatal(err)
	}
}
