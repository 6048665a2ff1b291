package controllers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"github.com/rafaelleal24/storefront/internal/core/domain"
	"github.com/rafaelleal24/storefront/internal/core/port/mock"
	"github.com/rafaelleal24/storefront/internal/core/service"
)

func setupAuthController(t *testing.T) (*gin.Engine, *mock.MockCachePort[domain.AdminSession]) {
	ctrl := gomock.NewController(t)
	sessions := mock.NewMockCachePort[domain.AdminSession](ctrl)

	hash, err := service.HashAdminPassword("s3cret")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	controller := NewAuthController(service.NewAuthService(sessions, "admin", hash, time.Hour))

	engine := gin.New()
	engine.POST("/admin/login", controller.Login)
	engine.POST("/admin/logout", controller.Logout)
	return engine, sessions
}

func TestAuthController_Login(t *testing.T) {
	t.Run("valid credentials issue a token", func(t *testing.T) {
		engine, sessions := setupAuthController(t)
		sessions.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), time.Hour).Return(nil)

		w := perform(t, engine, testRequest{
			method: http.MethodPost,
			path:   "/admin/login",
			body:   map[string]string{"username": "admin", "password": "s3cret"},
		})
		assertStatus(t, w, http.StatusOK)

		var response LoginResponse
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if response.Token == "" {
			t.Error("expected a token")
		}
		if !response.ExpiresAt.After(time.Now()) {
			t.Errorf("expires_at = %v, want future", response.ExpiresAt)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		engine, _ := setupAuthController(t)

		w := perform(t, engine, testRequest{
			method: http.MethodPost,
			path:   "/admin/login",
			body:   map[string]string{"username": "admin", "password": "guess"},
		})
		assertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("missing fields", func(t *testing.T) {
		engine, _ := setupAuthController(t)

		w := perform(t, engine, testRequest{
			method: http.MethodPost,
			path:   "/admin/login",
			body:   map[string]string{"username": "admin"},
		})
		assertStatus(t, w, http.StatusBadRequest)
	})
}

func TestAuthController_Logout(t *testing.T) {
	t.Run("active session is revoked", func(t *testing.T) {
		engine, sessions := setupAuthController(t)
		session := domain.NewAdminSession(adminToken, "admin", time.Hour)
		sessions.EXPECT().Get(gomock.Any(), adminToken).Return(session, nil)
		sessions.EXPECT().Del(gomock.Any(), adminToken).Return(nil)

		w := perform(t, engine, testRequest{method: http.MethodPost, path: "/admin/logout", headers: bearer(adminToken)})
		assertStatus(t, w, http.StatusNoContent)
	})

	t.Run("without token", func(t *testing.T) {
		engine, _ := setupAuthController(t)

		w := perform(t, engine, testRequest{method: http.MethodPost, path: "/admin/logout"})
		assertStatus(t, w, http.StatusUnauthorized)
	})
}
