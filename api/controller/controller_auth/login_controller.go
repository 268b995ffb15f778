package controller_auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/murasame-lab/voxtrain/api/controller"
	"github.com/murasame-lab/voxtrain/domain/domain_auth"
)

type LoginController struct {
	uc domain_auth.LoginUsecase
}

func NewLoginController(uc domain_auth.LoginUsecase) *LoginController {
	return &LoginController{uc: uc}
}

func (ctrl *LoginController) Login(c *gin.Context) {
	var req domain_auth.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		controller.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	res, err := ctrl.uc.Login(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain_auth.ErrInvalidCredential) {
			status = http.StatusUnauthorized
		}
		controller.ErrorResponse(c, status, "LOGIN_ERROR", err.Error())
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctrl *LoginController) Signup(c *gin.Context) {
	var req struct {
		Name     string `form:"name" binding:"required"`
		Email    string `form:"email" binding:"required,email"`
		Password string `form:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBind(&req); err != nil {
		controller.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	user, err := ctrl.uc.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		controller.ErrorResponse(c, http.StatusInternalServerError, "SIGNUP_ERROR", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}
