package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*User, error)
	Signin(ctx context.Context, req SigninRequest) (*AuthResult, error)
	OAuth(ctx context.Context, req OAuthRequest) (*AuthResult, error)

	// Resolve loads the user behind a verified credential subject with the
	// role relationship expanded. Used by the request guard.
	Resolve(ctx context.Context, userID snowflake.ID) (*User, error)
}

type SignupRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type SigninRequest struct {
	// Identity accepts a username or an email address.
	Identity string `json:"identity"`
	Password string `json:"password"`
}

type OAuthRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

var (
	ErrInvalidName        = errors.New("invalid_user_name")
	ErrInvalidUsername    = errors.New("invalid_username")
	ErrInvalidEmail       = errors.New("invalid_email")
	ErrWeakPassword       = errors.New("weak_password")
	ErrUsernameTaken      = errors.New("username_taken")
	ErrEmailTaken         = errors.New("email_taken")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrNotFound           = errors.New("user_not_found")
	ErrRoleMissing        = errors.New("default_role_missing")
)
