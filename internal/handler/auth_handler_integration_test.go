package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coverpoint/clubhouse/internal/handler"
	"github.com/coverpoint/clubhouse/internal/repository"
	"github.com/coverpoint/clubhouse/internal/service"
	"github.com/coverpoint/clubhouse/internal/testutil"
	"github.com/coverpoint/clubhouse/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// AuthHandlerIntegrationTestSuite exercises the auth endpoints against
// a real service stack over the in-memory database.
type AuthHandlerIntegrationTestSuite struct {
	suite.Suite
	testDB *testutil.TestDatabase
	mail   *testutil.RecordingMailer
	router *gin.Engine
}

// SetupSuite runs before all tests
func (s *AuthHandlerIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	// Initialize logger (required for handlers)
	logger.Init(false)

	s.testDB = testutil.SetupTestDatabase(s.T())
	s.mail = &testutil.RecordingMailer{}

	accountRepo := repository.NewAccountRepository(s.testDB.DB)
	verificationRepo := repository.NewVerificationRepository(s.testDB.DB)
	authService := service.NewAuthService(accountRepo, verificationRepo, s.mail, "test-secret-key", 1*time.Hour, 10*time.Minute)

	authHandler := handler.NewAuthHandler(authService, false)

	s.router = gin.New()
	s.router.POST("/api/auth/register", authHandler.Register)
	s.router.POST("/api/auth/login", authHandler.Login)
	s.router.POST("/api/auth/forgot-password", authHandler.ForgotPassword)
	s.router.POST("/api/auth/verify-code", authHandler.VerifyCode)
	s.router.POST("/api/auth/reset-password", authHandler.ResetPassword)
}

// TearDownSuite runs after all tests
func (s *AuthHandlerIntegrationTestSuite) TearDownSuite() {
	s.testDB.Teardown(s.T())
}

// SetupTest runs before each test (clean database)
func (s *AuthHandlerIntegrationTestSuite) SetupTest() {
	testutil.CleanDatabase(s.T(), s.testDB.DB)
	s.mail.Sent = nil
}

func (s *AuthHandlerIntegrationTestSuite) postJSON(path string, body any) *httptest.ResponseRecorder {
	bodyBytes, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *AuthHandlerIntegrationTestSuite) register(name, phone, email string) *httptest.ResponseRecorder {
	return s.postJSON("/api/auth/register", map[string]any{
		"name":     name,
		"phone":    phone,
		"email":    email,
		"password": "Secret123",
	})
}

func (s *AuthHandlerIntegrationTestSuite) TestRegisterSuccess() {
	w := s.register("Alex Kumar", "555-0100", "alex@example.com")

	assert.Equal(s.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(s.T(), err)

	account := response["account"].(map[string]interface{})
	assert.Equal(s.T(), "alex-kumar", account["username"])
	assert.Equal(s.T(), "pending", account["status"])
	assert.Equal(s.T(), "player", account["role"])
	assert.NotContains(s.T(), account, "password_hash")
}

func (s *AuthHandlerIntegrationTestSuite) TestRegisterCollidingNames() {
	w := s.register("Alex Kumar", "555-0100", "")
	assert.Equal(s.T(), http.StatusCreated, w.Code)

	w = s.register("Alex Kumar", "555-0101", "")
	assert.Equal(s.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &response))
	account := response["account"].(map[string]interface{})
	assert.Equal(s.T(), "alex-kumar-1", account["username"])
}

func (s *AuthHandlerIntegrationTestSuite) TestRegisterDuplicatePhone() {
	s.register("Alex Kumar", "555-0100", "")

	w := s.register("Different Name", "555-0100", "")
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	assert.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(s.T(), "phone or email already registered", response["message"])
}

func (s *AuthHandlerIntegrationTestSuite) TestLoginSetsCookie() {
	s.register("Alex Kumar", "555-0100", "")

	w := s.postJSON("/api/auth/login", map[string]string{
		"phone":    "555-0100",
		"password": "Secret123",
	})
	assert.Equal(s.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(s.T(), response["token"])

	var tokenCookie *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "token" {
			tokenCookie = cookie
			break
		}
	}
	assert.NotNil(s.T(), tokenCookie)
	assert.True(s.T(), tokenCookie.HttpOnly)
	assert.Equal(s.T(), http.SameSiteLaxMode, tokenCookie.SameSite)
}

// TestLoginEnumerationResistance checks that a wrong password and an
// unregistered phone are indistinguishable at the HTTP boundary.
func (s *AuthHandlerIntegrationTestSuite) TestLoginEnumerationResistance() {
	s.register("Alex Kumar", "555-0100", "")

	wrongPassword := s.postJSON("/api/auth/login", map[string]string{
		"phone":    "555-0100",
		"password": "WrongPass1",
	})
	unknownPhone := s.postJSON("/api/auth/login", map[string]string{
		"phone":    "555-9999",
		"password": "Secret123",
	})

	assert.Equal(s.T(), http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(s.T(), http.StatusUnauthorized, unknownPhone.Code)
	assert.JSONEq(s.T(), wrongPassword.Body.String(), unknownPhone.Body.String())
}

func (s *AuthHandlerIntegrationTestSuite) TestForgotPasswordUnknownEmail() {
	w := s.postJSON("/api/auth/forgot-password", map[string]string{
		"email": "nobody@example.com",
	})

	assert.Equal(s.T(), http.StatusNotFound, w.Code)

	var response map[string]interface{}
	assert.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(s.T(), "No account found with this email", response["message"])
}

func (s *AuthHandlerIntegrationTestSuite) TestResetPasswordFlow() {
	s.register("Alex Kumar", "555-0100", "alex@example.com")

	w := s.postJSON("/api/auth/forgot-password", map[string]string{"email": "alex@example.com"})
	assert.Equal(s.T(), http.StatusOK, w.Code)
	code := s.mail.LastCode()
	assert.NotEmpty(s.T(), code)

	w = s.postJSON("/api/auth/verify-code", map[string]string{
		"email": "alex@example.com",
		"code":  code,
	})
	assert.Equal(s.T(), http.StatusOK, w.Code)

	w = s.postJSON("/api/auth/reset-password", map[string]string{
		"email":        "alex@example.com",
		"code":         code,
		"new_password": "NewSecret456",
	})
	assert.Equal(s.T(), http.StatusOK, w.Code)

	// The consumed code cannot be replayed
	w = s.postJSON("/api/auth/reset-password", map[string]string{
		"email":        "alex@example.com",
		"code":         code,
		"new_password": "AnotherPass789",
	})
	assert.Equal(s.T(), http.StatusNotFound, w.Code)

	// New password works
	w = s.postJSON("/api/auth/login", map[string]string{
		"phone":    "555-0100",
		"password": "NewSecret456",
	})
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func TestAuthHandlerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerIntegrationTestSuite))
}
