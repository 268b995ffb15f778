package bootstrap

import (
	"context"
	"log"

	"github.com/murasame-lab/voxtrain/mongo"
)

type Application struct {
	Env   *Env
	Mongo mongo.Client
}

func App() Application {
	app := Application{}
	app.Env = NewEnv()
	app.Mongo = NewMongoDatabase(app.Env)
	return app
}

func NewMongoDatabase(env *Env) mongo.Client {
	ctx := context.Background()
	client, err := mongo.NewClient(ctx, env.MongoURI)
	if err != nil {
		log.Fatal(err)
	}
	if err := client.Ping(ctx); err != nil {
		log.Fatal(err)
	}
	return client
}

func (app *Application) CloseDBConnection() {
	if err := app.Mongo.Disconnect(context.Background()); err != nil {
		log.Printf("bootstrap: mongo disconnect: %v", err)
	}
}
