package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apierrors "profilehub/internal/errors"
	"profilehub/internal/model"
	"profilehub/internal/router"
	"profilehub/internal/service"
)

func TestUpsertProfile(t *testing.T) {
	userID := uuid.New()
	profileID := uuid.New()

	t.Run("creates profile for authenticated user", func(t *testing.T) {
		mockProfile := new(MockProfileService)
		mockProfile.On("Upsert", mock.Anything, userID, "Jane", "Doe", "janedoe").Return(&model.Profile{
			ID:        profileID,
			UserID:    userID,
			FirstName: "Jane",
			LastName:  "Doe",
			Username:  "janedoe",
			User:      model.User{ID: userID, Name: "Jane Doe"},
		}, nil)
		e := newTestServer(new(MockAuthService), mockProfile)

		req := httptest.NewRequest(http.MethodPost, "/api/profile",
			strings.NewReader(`{"firstName":"Jane","lastName":"Doe","username":"janedoe"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(router.TokenHeader, issueToken(userID))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"username":"janedoe"`)
		mockProfile.AssertExpectations(t)
	})

	t.Run("validation lists every failing field", func(t *testing.T) {
		e := newTestServer(new(MockAuthService), new(MockProfileService))

		req := httptest.NewRequest(http.MethodPost, "/api/profile", strings.NewReader(`{}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(router.TokenHeader, issueToken(userID))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp apierrors.ErrorResponse
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Errors, 3)

		params := make([]string, 0, len(resp.Errors))
		for _, fe := range resp.Errors {
			params = append(params, fe.Param)
		}
		assert.ElementsMatch(t, []string{"firstName", "lastName", "username"}, params)
	})

	t.Run("stale token for unregistered user", func(t *testing.T) {
		mockProfile := new(MockProfileService)
		mockProfile.On("Upsert", mock.Anything, userID, "Jane", "Doe", "janedoe").Return(nil, service.ErrUserNotRegistered)
		e := newTestServer(new(MockAuthService), mockProfile)

		req := httptest.NewRequest(http.MethodPost, "/api/profile",
			strings.NewReader(`{"firstName":"Jane","lastName":"Doe","username":"janedoe"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(router.TokenHeader, issueToken(userID))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"msg":"User not registered"`)
	})

	t.Run("username conflict", func(t *testing.T) {
		mockProfile := new(MockProfileService)
		mockProfile.On("Upsert", mock.Anything, userID, "Jane", "Doe", "taken").Return(nil, service.ErrUsernameTaken)
		e := newTestServer(new(MockAuthService), mockProfile)

		req := httptest.NewRequest(http.MethodPost, "/api/profile",
			strings.NewReader(`{"firstName":"Jane","lastName":"Doe","username":"taken"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(router.TokenHeader, issueToken(userID))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), `"msg":"Username already taken"`)
	})

	t.Run("no token", func(t *testing.T) {
		e := newTestServer(new(MockAuthService), new(MockProfileService))

		req := httptest.NewRequest(http.MethodPost, "/api/profile",
			strings.NewReader(`{"firstName":"Jane","lastName":"Doe","username":"janedoe"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGetOwnProfile(t *testing.T) {
	userID := uuid.New()

	t.Run("profile exists", func(t *testing.T) {
		mockProfile := new(MockProfileService)
		mockProfile.On("GetByUserID", mock.Anything, userID).Return(&model.Profile{
			UserID:   userID,
			Username: "janedoe",
			User:     model.User{ID: userID, Name: "Jane Doe"},
		}, nil)
		e := newTestServer(new(MockAuthService), mockProfile)

		req := httptest.NewRequest(http.MethodGet, "/api/profile/me", nil)
		req.Header.Set(router.TokenHeader, issueToken(userID))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"username":"janedoe"`)
	})

	t.Run("no profile yet", func(t *testing.T) {
		mockProfile := new(MockProfileService)
		mockProfile.On("GetByUserID", mock.Anything, userID).Return(nil, service.ErrProfileNotFound)
		e := newTestServer(new(MockAuthService), mockProfile)

		req := httptest.NewRequest(http.MethodGet, "/api/profile/me", nil)
		req.Header.Set(router.TokenHeader, issueToken(userID))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"msg":"There is no profile for this user"`)
	})
}

func TestListProfiles(t *testing.T) {
	mockProfile := new(MockProfileService)
	mockProfile.On("List", mock.Anything).Return([]model.Profile{
		{
			Username: "janedoe",
			User:     model.User{ID: uuid.New(), Name: "Jane Doe", Email: "jane@x.com", PasswordHash: "$2a$10$hash"},
		},
		{
			Username: "johndoe",
			User:     model.User{ID: uuid.New(), Name: "John Doe", Email: "john@x.com", PasswordHash: "$2a$10$hash"},
		},
	}, nil)
	e := newTestServer(new(MockAuthService), mockProfile)

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"janedoe"`)
	assert.Contains(t, rec.Body.String(), `"name":"John Doe"`)
	// Only display fields of the linked user are exposed.
	assert.NotContains(t, rec.Body.String(), "jane@x.com")
	assert.NotContains(t, rec.Body.String(), "$2a$10$hash")
}

func TestGetProfileByUser(t *testing.T) {
	userID := uuid.New()

	t.Run("found", func(t *testing.T) {
		mockProfile := new(MockProfileService)
		mockProfile.On("GetByUserID", mock.Anything, userID).Return(&model.Profile{
			UserID:   userID,
			Username: "janedoe",
			User:     model.User{ID: userID, Name: "Jane Doe"},
		}, nil)
		e := newTestServer(new(MockAuthService), mockProfile)

		req := httptest.NewRequest(http.MethodGet, "/api/profile/user/"+userID.String(), nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"username":"janedoe"`)
	})

	t.Run("not found", func(t *testing.T) {
		mockProfile := new(MockProfileService)
		mockProfile.On("GetByUserID", mock.Anything, userID).Return(nil, service.ErrProfileNotFound)
		e := newTestServer(new(MockAuthService), mockProfile)

		req := httptest.NewRequest(http.MethodGet, "/api/profile/user/"+userID.String(), nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"msg":"Profile not found"`)
	})

	t.Run("malformed id maps to not found, not a server error", func(t *testing.T) {
		mockProfile := new(MockProfileService)
		e := newTestServer(new(MockAuthService), mockProfile)

		req := httptest.NewRequest(http.MethodGet, "/api/profile/user/not-a-uuid", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"msg":"Profile not found"`)
		mockProfile.AssertNotCalled(t, "GetByUserID")
	})
}

func TestDeleteProfile(t *testing.T) {
	userID := uuid.New()

	t.Run("removes profile and account", func(t *testing.T) {
		mockProfile := new(MockProfileService)
		mockProfile.On("Delete", mock.Anything, userID).Return(nil)
		e := newTestServer(new(MockAuthService), mockProfile)

		req := httptest.NewRequest(http.MethodDelete, "/api/profile", nil)
		req.Header.Set(router.TokenHeader, issueToken(userID))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"msg":"User removed"`)
		mockProfile.AssertExpectations(t)
	})

	t.Run("no token", func(t *testing.T) {
		e := newTestServer(new(MockAuthService), new(MockProfileService))

		req := httptest.NewRequest(http.MethodDelete, "/api/profile", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
