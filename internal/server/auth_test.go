package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	authdomain "github.com/menuku/menuku/internal/auth/domain"
	roledomain "github.com/menuku/menuku/internal/role/domain"
	"github.com/menuku/menuku/internal/token"
)

type fakeAuthService struct {
	signupErr error
	signinErr error
	user      *authdomain.User
	token     string
}

func (f *fakeAuthService) Signup(ctx context.Context, req authdomain.SignupRequest) (*authdomain.User, error) {
	if f.signupErr != nil {
		return nil, f.signupErr
	}
	return f.user, nil
}

func (f *fakeAuthService) Signin(ctx context.Context, req authdomain.SigninRequest) (*authdomain.AuthResult, error) {
	if f.signinErr != nil {
		return nil, f.signinErr
	}
	return &authdomain.AuthResult{Token: f.token, User: f.user}, nil
}

func (f *fakeAuthService) OAuth(ctx context.Context, req authdomain.OAuthRequest) (*authdomain.AuthResult, error) {
	return &authdomain.AuthResult{Token: f.token, User: f.user}, nil
}

func (f *fakeAuthService) Resolve(ctx context.Context, userID snowflake.ID) (*authdomain.User, error) {
	if f.user == nil || f.user.ID != userID {
		return nil, authdomain.ErrNotFound
	}
	return f.user, nil
}

func newAuthTestServer(t *testing.T, fake *fakeAuthService) (*Server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	issuer, err := token.NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	s := &Server{
		engine:  engine,
		log:     zap.NewNop(),
		issuer:  issuer,
		authSvc: fake,
	}
	engine.POST("/v1/auth/signup", s.rateLimited(), s.Signup)
	engine.POST("/v1/auth/signin", s.rateLimited(), s.Signin)
	engine.GET("/v1/me", s.AuthRequired(), func(c *gin.Context) {
		respondOK(c, "ok", nil)
	})
	return s, engine
}

func testUser() *authdomain.User {
	return &authdomain.User{
		ID:       snowflake.ID(1001),
		Name:     "Alice",
		Username: "alice",
		Email:    "alice@example.com",
		Role:     &roledomain.Role{Slug: "user"},
	}
}

func TestSignupEnvelope(t *testing.T) {
	fake := &fakeAuthService{user: testUser()}
	_, engine := newAuthTestServer(t, fake)

	body := bytes.NewBufferString(`{"name":"Alice","username":"alice","email":"alice@example.com","password":"password123"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/signup", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success    bool           `json:"success"`
		StatusCode int            `json:"statusCode"`
		Message    string         `json:"message"`
		Data       map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "alice", resp.Data["username"])
	// Snowflake ids serialize as strings; password hashes never serialize.
	require.Equal(t, "1001", resp.Data["id"])
	require.NotContains(t, resp.Data, "password")
}

func TestSignupConflictEnvelope(t *testing.T) {
	fake := &fakeAuthService{signupErr: authdomain.ErrUsernameTaken}
	_, engine := newAuthTestServer(t, fake)

	body := bytes.NewBufferString(`{"name":"Alice","username":"alice","email":"alice@example.com","password":"password123"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/signup", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Equal(t, authdomain.ErrUsernameTaken.Error(), resp.Error)
}

func TestSigninBadCredentials(t *testing.T) {
	fake := &fakeAuthService{signinErr: authdomain.ErrInvalidCredentials}
	_, engine := newAuthTestServer(t, fake)

	body := bytes.NewBufferString(`{"identity":"alice","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/signin", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequired(t *testing.T) {
	user := testUser()
	fake := &fakeAuthService{user: user}
	s, engine := newAuthTestServer(t, fake)

	// No credential.
	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Garbage credential.
	req = httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid credential.
	signed, err := s.issuer.Sign(user.ID)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}
