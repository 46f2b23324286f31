package middlewares_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nexfest/festhub/internal/auth"
	"github.com/nexfest/festhub/internal/http/middlewares"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeVerifier struct {
	claims *auth.Claims
	err    error
}

func (f *fakeVerifier) VerifyAccessToken(token string) (*auth.Claims, error) {
	return f.claims, f.err
}

func gatedRouter(v middlewares.TokenVerifier, policy auth.AdminPolicy, handlerCalled *bool) *gin.Engine {
	r := gin.New()

	authMW := middlewares.NewAuthMiddleware(v)

	r.POST("/gated", authMW.RequireAdmin(policy), func(c *gin.Context) {
		*handlerCalled = true
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	return r
}

// Every rejection from the admin gate must be the same generic 403, no
// matter whether the session is absent, unparseable, or the wrong identity.
func TestGatedRoute(t *testing.T) {
	policy := auth.NewAdminPolicy("admin@festhub.dev")

	tests := []struct {
		name        string
		authHeader  string
		verifier    *fakeVerifier
		wantStatus  int
		wantError   string
		wantHandler bool
	}{
		{
			name:       "no authorization header",
			verifier:   &fakeVerifier{},
			wantStatus: http.StatusForbidden,
			wantError:  "Unauthorized",
		},
		{
			name:       "malformed header",
			authHeader: "Token abc",
			verifier:   &fakeVerifier{},
			wantStatus: http.StatusForbidden,
			wantError:  "Unauthorized",
		},
		{
			name:       "empty bearer token",
			authHeader: "Bearer ",
			verifier:   &fakeVerifier{},
			wantStatus: http.StatusForbidden,
			wantError:  "Unauthorized",
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad-token",
			verifier:   &fakeVerifier{err: errors.New("signature invalid")},
			wantStatus: http.StatusForbidden,
			wantError:  "Unauthorized",
		},
		{
			name:       "authenticated but not the admin",
			authHeader: "Bearer ok-token",
			verifier:   &fakeVerifier{claims: &auth.Claims{UserID: "u-2", Email: "user@festhub.dev"}},
			wantStatus: http.StatusForbidden,
			wantError:  "Unauthorized",
		},
		{
			name:        "admin passes",
			authHeader:  "Bearer ok-token",
			verifier:    &fakeVerifier{claims: &auth.Claims{UserID: "u-1", Email: "admin@festhub.dev"}},
			wantStatus:  http.StatusOK,
			wantHandler: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handlerCalled := false
			r := gatedRouter(tc.verifier, policy, &handlerCalled)

			req := httptest.NewRequest(http.MethodPost, "/gated", nil)

			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tc.wantStatus, w.Body.String())
			}

			if handlerCalled != tc.wantHandler {
				t.Fatalf("handlerCalled=%v, want %v", handlerCalled, tc.wantHandler)
			}

			if tc.wantError != "" {
				var resp struct {
					Error string `json:"error"`
				}

				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("unmarshal response: %v", err)
				}

				if resp.Error != tc.wantError {
					t.Fatalf("got error %q, want %q", resp.Error, tc.wantError)
				}
			}
		})
	}
}

func TestGateStoresClaimsForHandlers(t *testing.T) {
	policy := auth.NewAdminPolicy("admin@festhub.dev")
	v := &fakeVerifier{claims: &auth.Claims{UserID: "u-1", Email: "admin@festhub.dev", Role: "admin"}}

	r := gin.New()
	authMW := middlewares.NewAuthMiddleware(v)

	var gotEmail string

	r.POST("/gated", authMW.RequireAdmin(policy), func(c *gin.Context) {
		claims, ok := middlewares.ClaimsFromContext(c)
		if ok {
			gotEmail = claims.Email
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/gated", nil)
	req.Header.Set("Authorization", "Bearer ok-token")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}

	if gotEmail != "admin@festhub.dev" {
		t.Fatalf("claims not stored in context, got email %q", gotEmail)
	}
}
