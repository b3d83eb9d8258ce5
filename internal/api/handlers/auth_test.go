package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/domain"
	"github.com/GianfrancoNicolasPupialesRovalino/TerapiaInteractiva/internal/testutil"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Register(t *testing.T) {
	ts := testutil.NewTestServer(t)

	tests := []struct {
		name           string
		request        map[string]string
		setup          func()
		expectedStatus int
		checkResponse  func(*testing.T, *http.Response)
	}{
		{
			name: "successful registration",
			request: map[string]string{
				"email":           "nuevo@example.com",
				"password":        "password123",
				"confirmPassword": "password123",
				"name":            "Usuario Nuevo",
				"role":            "instructor",
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp *http.Response) {
				var result testutil.AuthResponse
				testutil.AssertJSONResponse(t, resp, &result)
				assert.Equal(t, "nuevo@example.com", result.User.Email)
				assert.Equal(t, "instructor", result.User.Role)
				assert.NotEmpty(t, result.Token)
			},
		},
		{
			name: "password confirmation mismatch",
			request: map[string]string{
				"email":           "mismatch@example.com",
				"password":        "password123",
				"confirmPassword": "different123",
				"name":            "Usuario",
				"role":            "patient",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "password too short",
			request: map[string]string{
				"email":           "short@example.com",
				"password":        "abc",
				"confirmPassword": "abc",
				"name":            "Usuario",
				"role":            "patient",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "invalid role",
			request: map[string]string{
				"email":           "admin@example.com",
				"password":        "password123",
				"confirmPassword": "password123",
				"name":            "Usuario",
				"role":            "admin",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "duplicate email",
			request: map[string]string{
				"email":           "existing@example.com",
				"password":        "password123",
				"confirmPassword": "password123",
				"name":            "Usuario",
				"role":            "patient",
			},
			setup: func() {
				testutil.NewUserBuilder().
					WithEmail("existing@example.com").
					Build(t, ts.DB.DB)
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup()
			}

			body, err := json.Marshal(tt.request)
			require.NoError(t, err)

			resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
			require.NoError(t, err)
			defer resp.Body.Close()

			testutil.AssertStatusCode(t, resp, tt.expectedStatus)
			if tt.checkResponse != nil {
				tt.checkResponse(t, resp)
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, password := testutil.NewUserBuilder().
		WithEmail("login@example.com").
		WithPassword("correctpassword").
		Build(t, ts.DB.DB)

	tests := []struct {
		name           string
		request        map[string]string
		expectedStatus int
	}{
		{
			name: "successful login",
			request: map[string]string{
				"email":    "login@example.com",
				"password": password,
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "wrong password",
			request: map[string]string{
				"email":    "login@example.com",
				"password": "wrongpassword",
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "unknown email",
			request: map[string]string{
				"email":    "nobody@example.com",
				"password": password,
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := json.Marshal(tt.request)
			require.NoError(t, err)

			resp, err := http.Post(ts.APIURL("/auth/login"), "application/json", bytes.NewBuffer(body))
			require.NoError(t, err)
			defer resp.Body.Close()

			testutil.AssertStatusCode(t, resp, tt.expectedStatus)
		})
	}
}

func TestAuthHandler_Me(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, token := testutil.NewUserBuilder().
		WithRole(domain.RolePatient).
		BuildAndAuthenticate(t, ts)

	t.Run("with valid token", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, ts.APIURL("/auth/me"), token, nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var result struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		}
		testutil.AssertJSONResponse(t, resp, &result)
		assert.Equal(t, user.Email, result.Email)
	})

	t.Run("without token", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, ts.APIURL("/auth/me"), "", nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	})

	t.Run("with garbage token", func(t *testing.T) {
		resp := doRequest(t, http.MethodGet, ts.APIURL("/auth/me"), "not-a-token", nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	})
}

// TestAuthHandler_TokenLifetime checks that expired and tampered tokens are
// rejected even when the claims themselves are well formed.
func TestAuthHandler_TokenLifetime(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, _ := testutil.NewUserBuilder().
		WithRole(domain.RolePatient).
		BuildAndAuthenticate(t, ts)

	mint := func(t *testing.T, secret string, expiresAt time.Time) string {
		t.Helper()
		claims := jwt.MapClaims{
			"sub":   user.ID.String(),
			"email": user.Email,
			"role":  string(user.Role),
			"exp":   expiresAt.Unix(),
			"iat":   time.Now().Add(-2 * time.Hour).Unix(),
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return signed
	}

	t.Run("expired token", func(t *testing.T) {
		token := mint(t, ts.Config.JWTSecret, time.Now().Add(-time.Minute))
		resp := doRequest(t, http.MethodGet, ts.APIURL("/auth/me"), token, nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	})

	t.Run("token signed with wrong secret", func(t *testing.T) {
		token := mint(t, "some-other-secret", time.Now().Add(time.Hour))
		resp := doRequest(t, http.MethodGet, ts.APIURL("/auth/me"), token, nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)
	})

	t.Run("still-valid token passes", func(t *testing.T) {
		token := mint(t, ts.Config.JWTSecret, time.Now().Add(time.Hour))
		resp := doRequest(t, http.MethodGet, ts.APIURL("/auth/me"), token, nil)
		defer resp.Body.Close()

		testutil.AssertStatusCode(t, resp, http.StatusOK)
	})
}
