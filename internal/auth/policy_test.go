package auth_test

import (
	"testing"
	"time"

	"github.com/nexfest/festhub/internal/auth"
)

func TestAdminPolicy(t *testing.T) {
	policy := auth.NewAdminPolicy("admin@festhub.dev")

	tests := []struct {
		name   string
		claims *auth.Claims
		want   bool
	}{
		{name: "nil claims", claims: nil, want: false},
		{name: "matching email", claims: &auth.Claims{Email: "admin@festhub.dev"}, want: true},
		{name: "other email", claims: &auth.Claims{Email: "user@festhub.dev"}, want: false},
		{name: "case sensitive", claims: &auth.Claims{Email: "Admin@festhub.dev"}, want: false},
		{name: "empty claims email", claims: &auth.Claims{}, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := policy.IsAuthorized(tc.claims); got != tc.want {
				t.Fatalf("IsAuthorized=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestAdminPolicyEmptyConfigDeniesEveryone(t *testing.T) {
	policy := auth.NewAdminPolicy("")

	if policy.IsAuthorized(&auth.Claims{Email: ""}) {
		t.Fatal("empty policy must not authorize an empty email")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	m := auth.NewManager("test-secret", time.Minute)

	token, err := m.GenerateAccessToken("u-1", "admin@festhub.dev", "admin")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	claims, err := m.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}

	if claims.UserID != "u-1" || claims.Email != "admin@festhub.dev" || claims.Role != "admin" {
		t.Fatalf("claims round trip mismatch: %+v", claims)
	}

	if claims.JTI == "" {
		t.Fatal("expected a jti on every token")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := auth.NewManager("secret-a", time.Minute).GenerateAccessToken("u-1", "a@b.com", "admin")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := auth.NewManager("secret-b", time.Minute).VerifyAccessToken(token); err == nil {
		t.Fatal("token signed with another secret must not verify")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := auth.NewManager("test-secret", -time.Minute)

	token, err := m.GenerateAccessToken("u-1", "a@b.com", "admin")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := m.VerifyAccessToken(token); err == nil {
		t.Fatal("expired token must not verify")
	}
}
