//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"bookhub/internal/domain/user"
	"bookhub/internal/handler/dto/request"
	"bookhub/internal/handler/dto/response"
	"bookhub/tests/common/dbtest"
	"bookhub/tests/common/helper"
	"bookhub/tests/e2e"
	jwtHelper "bookhub/tests/e2e/common/helper"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	loginURL = "/api/auth/login"
	meURL    = "/api/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
	jwtHelper *jwtHelper.JWTTestHelper
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwtHelper = jwtHelper.NewJWTTestHelper(s.DB, s.Config.JWT)
}

func (s *authSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	dbtest.CreateTestUser(s.T(), s.DB, "member@example.com", string(user.RoleMember))
	dbtest.CreateTestUser(s.T(), s.DB, "librarian@example.com", string(user.RoleLibrarian))
	dbtest.CreateTestUser(s.T(), s.DB, "inactive@example.com", string(user.RoleMember))

	ctx := s.T().Context()
	_, err := s.DB.Exec(ctx, "UPDATE users SET is_active = false WHERE email = 'inactive@example.com'")
	require.NoError(s.T(), err)
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
	}{
		{
			name:           "valid credentials",
			email:          "member@example.com",
			password:       "password123",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown user",
			email:          "nonexistent@example.com",
			password:       "password123",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong password",
			email:          "member@example.com",
			password:       "wrongpassword",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "deactivated account",
			email:          "inactive@example.com",
			password:       "password123",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "empty email",
			email:          "",
			password:       "password123",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty password",
			email:          "member@example.com",
			password:       "",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			reqBody := request.LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			}

			w := helper.PerformRequest(t, s.Router, http.MethodPost, loginURL, reqBody, "")
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			if tt.expectedStatus == http.StatusOK {
				var loginRes response.LoginResponse
				err := helper.DecodeResponseBody(t, w.Body, &loginRes)
				require.NoError(t, err)
				require.NotEmpty(t, loginRes.AccessToken, "access token is empty")
				require.NotEmpty(t, loginRes.UserID, "user id is empty")
			}
		})
	}
}

func (s *authSuite) TestMe() {
	s.Run("returns the caller's profile", func() {
		t := s.T()

		token := s.jwtHelper.LoginUser(t, s.Router, "librarian@example.com", "password123")
		w := helper.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var me response.MeResponse
		require.NoError(t, helper.DecodeResponseBody(t, w.Body, &me))
		require.Equal(t, "librarian@example.com", me.Email)
		require.Equal(t, string(user.RoleLibrarian), me.Role)
		require.True(t, me.IsActive)
		require.NotContains(t, w.Body.String(), "password")
	})

	s.Run("rejects a missing token", func() {
		w := helper.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, "")
		require.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})

	s.Run("rejects a garbage token", func() {
		w := helper.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, "invalid-token")
		require.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})

	s.Run("rejects an expired token", func() {
		t := s.T()

		userID := s.jwtHelper.CreateTestUser(t, "expiry@example.com", string(user.RoleMember))
		expiredToken := s.jwtHelper.CreateExpiredToken(t, userID, user.RoleMember)

		w := helper.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, expiredToken)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func (s *authSuite) TestConcurrentLogin() {
	s.Run("repeated logins issue independent tokens", func() {
		t := s.T()

		token1 := s.jwtHelper.LoginUser(t, s.Router, "member@example.com", "password123")
		token2 := s.jwtHelper.LoginUser(t, s.Router, "member@example.com", "password123")

		w1 := helper.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token1)
		w2 := helper.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token2)

		require.Equal(t, http.StatusOK, w1.Code, "first token rejected")
		require.Equal(t, http.StatusOK, w2.Code, "second token rejected")
	})
}
