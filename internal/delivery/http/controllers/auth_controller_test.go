package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"convomanage/internal/delivery/http/helpers"
	"convomanage/internal/delivery/http/middleware"
	"convomanage/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeUserService implements domain.UserService for handler tests.
type fakeUserService struct {
	signUpErr      error
	signUpResult   *domain.User
	loginErr       error
	loginToken     string
	loginUser      *domain.User
	logoutErr      error
	getByIDErr     error
	getByIDResult  *domain.User
	lastSignUpRole domain.Role
	lastLogoutTok  string
}

func (f *fakeUserService) SignUp(_ context.Context, email, password, fullName string, role domain.Role) (*domain.User, error) {
	f.lastSignUpRole = role
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return f.signUpResult, nil
}

func (f *fakeUserService) Login(_ context.Context, email, password string) (string, *domain.User, error) {
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	return f.loginToken, f.loginUser, nil
}

func (f *fakeUserService) Logout(_ context.Context, token string) error {
	f.lastLogoutTok = token
	return f.logoutErr
}

func (f *fakeUserService) GetByID(_ context.Context, id string) (*domain.User, error) {
	if f.getByIDErr != nil {
		return nil, f.getByIDErr
	}
	return f.getByIDResult, nil
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) helpers.APIResponse {
	t.Helper()
	var resp helpers.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestAuthController_SignUp(t *testing.T) {
	svc := &fakeUserService{signUpResult: &domain.User{ID: "user-1", Email: "ada@example.com", Role: domain.RoleOrganizer}}
	ctrl := NewAuthController(testLogger, svc)

	rec := postJSON(t, ctrl.SignUp, "/api/v1/auth/signup", map[string]string{
		"email":     "ada@example.com",
		"password":  "correcthorse",
		"full_name": "Ada Lovelace",
		"role":      "organizer",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, domain.RoleOrganizer, svc.lastSignUpRole)
	resp := decodeResponse(t, rec)
	assert.Nil(t, resp.Error)
}

func TestAuthController_SignUp_InvalidBody(t *testing.T) {
	ctrl := NewAuthController(testLogger, &fakeUserService{})

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing email", map[string]string{"password": "correcthorse"}},
		{"bad email", map[string]string{"email": "nope", "password": "correcthorse"}},
		{"short password", map[string]string{"email": "a@b.co", "password": "short"}},
		{"unknown role", map[string]string{"email": "a@b.co", "password": "correcthorse", "role": "root"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, ctrl.SignUp, "/api/v1/auth/signup", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeResponse(t, rec)
			require.NotNil(t, resp.Error)
			assert.Equal(t, helpers.ErrCodeBadRequest, resp.Error.Code)
		})
	}
}

func TestAuthController_SignUp_DuplicateEmail(t *testing.T) {
	svc := &fakeUserService{signUpErr: domain.ErrDuplicateEmail}
	ctrl := NewAuthController(testLogger, svc)

	rec := postJSON(t, ctrl.SignUp, "/api/v1/auth/signup", map[string]string{
		"email":    "dup@example.com",
		"password": "correcthorse",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, helpers.ErrCodeConflict, resp.Error.Code)
}

func TestAuthController_Login(t *testing.T) {
	svc := &fakeUserService{
		loginToken: "jwt-token",
		loginUser:  &domain.User{ID: "user-1", Role: domain.RoleSpeaker},
	}
	ctrl := NewAuthController(testLogger, svc)

	rec := postJSON(t, ctrl.Login, "/api/v1/auth/login", map[string]string{
		"email":    "ada@example.com",
		"password": "correcthorse",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "jwt-token", data["token"])
}

func TestAuthController_Login_InvalidCredentials(t *testing.T) {
	svc := &fakeUserService{loginErr: domain.ErrInvalidCredentials}
	ctrl := NewAuthController(testLogger, svc)

	rec := postJSON(t, ctrl.Login, "/api/v1/auth/login", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, helpers.ErrCodeUnauthorized, resp.Error.Code)
}

func TestAuthController_Logout(t *testing.T) {
	svc := &fakeUserService{}
	ctrl := NewAuthController(testLogger, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	ctx := middleware.SetToken(middleware.SetUserID(req.Context(), "user-1"), "raw-token")
	rec := httptest.NewRecorder()
	ctrl.Logout(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "raw-token", svc.lastLogoutTok)
}

func TestAuthController_Session(t *testing.T) {
	svc := &fakeUserService{getByIDResult: &domain.User{ID: "user-1", Role: domain.RoleAttendee}}
	ctrl := NewAuthController(testLogger, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", nil)
	rec := httptest.NewRecorder()
	ctrl.Session(rec, req.WithContext(middleware.SetUserID(req.Context(), "user-1")))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "user-1", data["id"])
}

func TestAuthController_Session_UnknownUser(t *testing.T) {
	svc := &fakeUserService{getByIDErr: domain.ErrUserNotFound}
	ctrl := NewAuthController(testLogger, svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/session", nil)
	rec := httptest.NewRecorder()
	ctrl.Session(rec, req.WithContext(middleware.SetUserID(req.Context(), "ghost")))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
