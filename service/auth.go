package service

import (
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/drivom-api/domain"
	"github.com/beka-birhanu/drivom-api/service/i"
	"github.com/google/uuid"
)

const tokenLifetime = 24 * time.Hour

// Auth registers players and signs them in, issuing JWTs on success.
type Auth struct {
	userRepo  i.UserRepo
	tokenizer i.Tokenizer
	logger    i.Logger
}

// NewAuthService creates an Auth backed by the given repository and
// tokenizer.
func NewAuthService(userRepo i.UserRepo, tokenizer i.Tokenizer, logger i.Logger) (i.Authenticator, error) {
	if userRepo == nil || tokenizer == nil || logger == nil {
		return nil, errors.New("missing auth service dependency")
	}

	return &Auth{
		userRepo:  userRepo,
		tokenizer: tokenizer,
		logger:    logger,
	}, nil
}

// Register creates a new player account.
func (a *Auth) Register(username, password string) error {
	user, err := dmn.NewUser(dmn.UserConfig{
		ID:            uuid.New(),
		Username:      username,
		PlainPassword: password,
	})
	if err != nil {
		return err
	}

	if err := a.userRepo.Save(user); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("Registered user: %s", user.Username))
	return nil
}

// SignIn verifies the credentials and returns the user with a fresh token.
func (a *Auth) SignIn(username, password string) (*dmn.User, string, error) {
	user, err := a.userRepo.ByUsername(username)
	if err != nil {
		return nil, "", errors.New("invalid username or password")
	}

	if !user.VerifyPassword(password) {
		return nil, "", errors.New("invalid username or password")
	}

	token, err := a.tokenizer.Generate(map[string]interface{}{
		"userID":   user.ID.String(),
		"username": user.Username,
	}, tokenLifetime)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
