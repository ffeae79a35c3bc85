package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	sharedauth "smartdoc-backend/internal/shared/auth"
	"smartdoc-backend/internal/shared/config"
	"smartdoc-backend/internal/shared/server"
	"smartdoc-backend/internal/users"
)

func TestMeReturnsStoredProfile(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := users.NewMemoryRepo()
	userSvc := users.NewService(repo)
	if err := userSvc.UpsertFromAuth(context.Background(), users.User{
		ID:       "google:u1",
		Email:    "stored@example.com",
		FullName: "Stored Name",
	}); err != nil {
		t.Fatalf("UpsertFromAuth: %v", err)
	}

	router := server.NewRouter(server.RouterDeps{
		Config:       config.Config{Env: "dev"},
		UsersService: userSvc,
	})

	token, err := sharedauth.SignJWT(sharedauth.Claims{
		Sub:   "google:u1",
		Email: "claim@example.com",
		Name:  "Claim Name",
	})
	if err != nil {
		t.Fatalf("sign jwt: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		UserID string `json:"userId"`
		Email  string `json:"email"`
		Name   string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.UserID != "google:u1" {
		t.Fatalf("unexpected userId %q", body.UserID)
	}
	if body.Email != "stored@example.com" || body.Name != "Stored Name" {
		t.Fatalf("expected stored profile to win, got email=%q name=%q", body.Email, body.Name)
	}
}

func TestMeFallsBackToClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := server.NewRouter(server.RouterDeps{
		Config:       config.Config{Env: "dev"},
		UsersService: users.NewService(users.NewMemoryRepo()),
	})

	token, err := sharedauth.SignJWT(sharedauth.Claims{
		Sub:   "google:u2",
		Email: "claim@example.com",
	})
	if err != nil {
		t.Fatalf("sign jwt: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Email != "claim@example.com" {
		t.Fatalf("expected claim email fallback, got %q", body.Email)
	}
}
