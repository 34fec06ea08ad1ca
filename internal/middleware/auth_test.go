package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"spendwise/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupAuthRouter() *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware())
	r.GET("/test", func(c *gin.Context) {
		userID, _ := c.Get("userID")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	return result
}

func TestAuthMiddleware(t *testing.T) {
	user := &models.User{ID: "user-1", Email: "test@example.com"}
	token, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "valid_token",
			authHeader: "Bearer " + token,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing_header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong_scheme",
			authHeader: "Basic " + token,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "token_without_scheme",
			authHeader: token,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage_token",
			authHeader: "Bearer not.a.jwt",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupAuthRouter()
			rec := doRequest(router, tt.authHeader)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			body := parseBody(t, rec)
			if tt.wantStatus == http.StatusOK {
				if body["user_id"] != "user-1" {
					t.Errorf("expected user id from claims, got %v", body["user_id"])
				}
			} else {
				if body["success"] != false {
					t.Errorf("expected failure envelope, got %v", body)
				}
			}
		})
	}
}

func TestGenerateToken_CarriesUserClaims(t *testing.T) {
	user := &models.User{ID: "user-42", Email: "claims@example.com"}
	token, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	// Round-trip through the middleware parser shape
	router := setupAuthRouter()
	rec := doRequest(router, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected token to validate, got %d: %s", rec.Code, rec.Body.String())
	}
	body := parseBody(t, rec)
	if body["user_id"] != "user-42" {
		t.Errorf("expected user-42 in claims, got %v", body["user_id"])
	}
}
