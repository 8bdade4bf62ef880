//go:build e2e

package helper

import (
	"net/http"
	"testing"
	"time"

	"bookhub/internal/domain/user"
	"bookhub/internal/handler/dto/request"
	"bookhub/internal/handler/dto/response"
	"bookhub/internal/pkg/config"
	"bookhub/internal/pkg/jwt"
	"bookhub/tests/common/dbtest"
	"bookhub/tests/common/helper"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

type JWTTestHelper struct {
	pool *pgxpool.Pool
	cfg  config.JWTConfig
}

func NewJWTTestHelper(pool *pgxpool.Pool, cfg config.JWTConfig) *JWTTestHelper {
	return &JWTTestHelper{pool: pool, cfg: cfg}
}

func (h *JWTTestHelper) CreateTestUser(t *testing.T, email, role string) uuid.UUID {
	return dbtest.CreateTestUser(t, h.pool, email, role)
}

func (h *JWTTestHelper) LoginUser(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w := helper.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var loginRes response.LoginResponse
	helper.DecodeResponseBody(t, w.Body, &loginRes)
	require.NotEmpty(t, loginRes.AccessToken, "access token missing from login response")

	return loginRes.AccessToken
}

func (h *JWTTestHelper) CreateAndLogin(t *testing.T, router *gin.Engine, email, role string) string {
	t.Helper()
	dbtest.CreateTestUser(t, h.pool, email, role)
	return h.LoginUser(t, router, email, "password123")
}

func (h *JWTTestHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	duration, _ := time.ParseDuration(h.cfg.Duration)
	service := jwt.NewService(h.cfg.Secret, duration)
	token, err := service.GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

func (h *JWTTestHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, 1*time.Millisecond)
	token, err := service.GenerateToken(userID, role)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
