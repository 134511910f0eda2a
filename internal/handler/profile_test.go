package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vision2030/site-server/internal/model"
	"github.com/vision2030/site-server/internal/service"
)

func profileRouter(userRepo *mockUserRepo, guard func(http.Handler) http.Handler) http.Handler {
	return NewProfileHandler(service.NewProfileService(userRepo), guard).Routes()
}

func TestProfileRoutes(t *testing.T) {
	t.Run("all routes require a session", func(t *testing.T) {
		router := profileRouter(&mockUserRepo{}, rejectStub)

		for _, tc := range []struct{ method, path string }{
			{"GET", "/"},
			{"PATCH", "/"},
			{"POST", "/password"},
		} {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(`{}`))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
		}
	})

	t.Run("get returns the profile without the password", func(t *testing.T) {
		userRepo := &mockUserRepo{
			findByIDFunc: func(ctx context.Context, id string) (*model.AdminUser, error) {
				return seededUser(), nil
			},
		}
		router := profileRouter(userRepo, authenticatedStub)

		req := httptest.NewRequest("GET", "/", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "a@b.com")
		assert.NotContains(t, rec.Body.String(), "secret")
	})

	t.Run("patch updates only the provided fields", func(t *testing.T) {
		var got model.UpdateProfileParams
		userRepo := &mockUserRepo{
			updateProfileFunc: func(ctx context.Context, id string, params model.UpdateProfileParams) error {
				got = params
				return nil
			},
		}
		router := profileRouter(userRepo, authenticatedStub)

		req := httptest.NewRequest("PATCH", "/", strings.NewReader(`{"name":"New Name"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, got.Name)
		assert.Equal(t, "New Name", *got.Name)
		assert.Nil(t, got.AvatarURL)
	})

	t.Run("password change with wrong current password returns 400", func(t *testing.T) {
		userRepo := &mockUserRepo{
			findByIDFunc: func(ctx context.Context, id string) (*model.AdminUser, error) {
				return seededUser(), nil
			},
			updatePasswordFunc: func(ctx context.Context, id string, password string) error {
				t.Fatal("password must not be updated")
				return nil
			},
		}
		router := profileRouter(userRepo, authenticatedStub)

		req := httptest.NewRequest("POST", "/password", strings.NewReader(`{"currentPassword":"wrong","newPassword":"longenough"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "error")
	})

	t.Run("password change with short new password returns 400", func(t *testing.T) {
		router := profileRouter(&mockUserRepo{}, authenticatedStub)

		req := httptest.NewRequest("POST", "/password", strings.NewReader(`{"currentPassword":"secret","newPassword":"abc"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "at least 6 characters")
	})

	t.Run("valid password change succeeds", func(t *testing.T) {
		updated := ""
		userRepo := &mockUserRepo{
			findByIDFunc: func(ctx context.Context, id string) (*model.AdminUser, error) {
				return seededUser(), nil
			},
			updatePasswordFunc: func(ctx context.Context, id string, password string) error {
				updated = password
				return nil
			},
		}
		router := profileRouter(userRepo, authenticatedStub)

		req := httptest.NewRequest("POST", "/password", strings.NewReader(`{"currentPassword":"secret","newPassword":"newsecret"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "newsecret", updated)
	})
}
