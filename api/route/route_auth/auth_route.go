package route_auth

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/murasame-lab/voxtrain/api/controller/controller_auth"
	"github.com/murasame-lab/voxtrain/bootstrap"
	"github.com/murasame-lab/voxtrain/mongo"
	"github.com/murasame-lab/voxtrain/repository/repository_auth"
	"github.com/murasame-lab/voxtrain/usecase/usecase_auth"
)

func NewAuthRouter(env *bootstrap.Env, timeout time.Duration, db mongo.Database, group *gin.RouterGroup) {
	userRepo := repository_auth.NewUserRepository(db)
	uc := usecase_auth.NewLoginUsecase(userRepo, env.AccessTokenSecret, env.AccessTokenExpiryHour, timeout)
	ctrl := controller_auth.NewLoginController(uc)

	group.POST("/login", ctrl.Login)
	group.POST("/signup", ctrl.Signup)
}
