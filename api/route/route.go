package route

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/murasame-lab/voxtrain/api/middleware"
	"github.com/murasame-lab/voxtrain/api/route/route_auth"
	"github.com/murasame-lab/voxtrain/api/route/route_training"
	"github.com/murasame-lab/voxtrain/bootstrap"
	"github.com/murasame-lab/voxtrain/mongo"
)

func Setup(env *bootstrap.Env, timeout time.Duration, db mongo.Database, gin *gin.Engine) {
	publicRouter := gin.Group("/api")
	route_auth.NewAuthRouter(env, timeout, db, publicRouter)

	protectedRouter := gin.Group("/api")
	protectedRouter.Use(middleware.JwtAuthMiddleware(env.AccessTokenSecret))
	route_training.NewTrainingRouter(env, db, protectedRouter)
}
