package usecase_auth

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/murasame-lab/voxtrain/domain/domain_auth"
)

type loginUsecase struct {
	userRepo    domain_auth.UserRepository
	secret      string
	expiryHours int
	timeout     time.Duration
}

func NewLoginUsecase(userRepo domain_auth.UserRepository, secret string, expiryHours int, timeout time.Duration) domain_auth.LoginUsecase {
	return &loginUsecase{
		userRepo:    userRepo,
		secret:      secret,
		expiryHours: expiryHours,
		timeout:     timeout,
	}
}

func (uc *loginUsecase) Login(ctx context.Context, req domain_auth.LoginRequest) (*domain_auth.LoginResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	user, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain_auth.ErrInvalidCredential
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain_auth.ErrInvalidCredential
	}

	token, err := CreateAccessToken(user, uc.secret, uc.expiryHours)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}
	return &domain_auth.LoginResponse{AccessToken: token}, nil
}

func (uc *loginUsecase) Signup(ctx context.Context, name, email, password string) (*domain_auth.User, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &domain_auth.User{
		ID:       primitive.NewObjectID(),
		Name:     name,
		Email:    email,
		Password: string(hashed),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
