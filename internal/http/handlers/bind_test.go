package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nexfest/festhub/internal/http/handlers"
)

type bindTarget struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required,min=2"`
	Qty   int    `json:"qty" binding:"omitempty,min=1"`
}

func bindRouter() *gin.Engine {
	return setupRouter(http.MethodPost, "/bind", func(ctx *gin.Context) {
		var req bindTarget

		if !handlers.BindJSON(ctx, &req) {
			return
		}

		ctx.JSON(http.StatusOK, gin.H{"success": true})
	})
}

func TestBindJSONMessages(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantError string
	}{
		{
			name:      "missing required field",
			body:      `{"name":"Asha"}`,
			wantError: "email is required",
		},
		{
			name:      "invalid email",
			body:      `{"email":"not-an-email","name":"Asha"}`,
			wantError: "email must be a valid email address",
		},
		{
			name:      "min violation names the json field",
			body:      `{"email":"a@b.com","name":"A"}`,
			wantError: "name must be at least 2",
		},
		{
			name:      "type mismatch",
			body:      `{"email":"a@b.com","name":"Asha","qty":"three"}`,
			wantError: "qty must be of type int",
		},
		{
			name:      "truncated json",
			body:      `{"email":`,
			wantError: "Invalid JSON body",
		},
		{
			name:      "empty body",
			body:      ``,
			wantError: "Invalid JSON body",
		},
		{
			name:      "malformed json",
			body:      `{"email" "x"}`,
			wantError: "Invalid JSON body",
		},
	}

	r := bindRouter()

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/bind", tc.body)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("got status %d, want 400, body=%s", w.Code, w.Body.String())
			}

			var resp struct {
				Error string `json:"error"`
			}

			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal response: %v", err)
			}

			if resp.Error != tc.wantError {
				t.Fatalf("got error %q, want %q", resp.Error, tc.wantError)
			}
		})
	}

	t.Run("valid body passes", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/bind", `{"email":"a@b.com","name":"Asha","qty":2}`)

		if w.Code != http.StatusOK {
			t.Fatalf("got status %d, want 200, body=%s", w.Code, w.Body.String())
		}
	})
}
