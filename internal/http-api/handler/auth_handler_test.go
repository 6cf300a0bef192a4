package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"bookshelf/internal/http-api/dto"
	"bookshelf/internal/http-api/models"
	"bookshelf/internal/http-api/service"
	"bookshelf/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func noLimit(c *gin.Context) { c.Next() }

func setupAuthRouter(t *testing.T, user *models.User, svc *MockAuthService) *gin.Engine {
	router := setupRouter(t, user)
	NewAuthHandler(svc, CookieConfig{TTL: time.Hour}).RegisterRoutes(router.Group(""), noLimit)
	return router
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	return nil
}

func TestSignup_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	router := setupAuthRouter(t, nil, mockAuthService)

	form := dto.SignupForm{Username: "alice", Password1: "correct horse", Password2: "correct horse"}
	mockAuthService.On("SignUp", mock.Anything, form).Return(alice, "session-token", nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, postForm("/accounts/signup/", url.Values{
		"username": {"alice"}, "password1": {"correct horse"}, "password2": {"correct horse"},
	}))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Equal(t, "session-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 3600, cookie.MaxAge)
}

func TestSignup_ValidationErrorsRerender(t *testing.T) {
	mockAuthService := new(MockAuthService)
	router := setupAuthRouter(t, nil, mockAuthService)

	mockAuthService.On("SignUp", mock.Anything, mock.Anything).
		Return(nil, "", &service.ValidationError{Fields: map[string]string{"password2": "The two password fields did not match."}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, postForm("/accounts/signup/", url.Values{
		"username": {"alice"}, "password1": {"one password"}, "password2": {"another one"},
	}))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "The two password fields did not match.")
	assert.Contains(t, w.Body.String(), `value="alice"`)
	assert.Nil(t, sessionCookie(w))
}

func TestSignup_UsernameRules(t *testing.T) {
	mockAuthService := new(MockAuthService)
	router := setupAuthRouter(t, nil, mockAuthService)

	mockAuthService.On("SignUp", mock.Anything, mock.Anything).Return(nil, "", service.ErrNameInUse)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, postForm("/accounts/signup/", url.Values{
		"username": {"bad name!"}, "password1": {"pw"}, "password2": {"pw"},
	}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Enter a valid username.")
	mockAuthService.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, postForm("/accounts/signup/", url.Values{
		"username": {"alice"}, "password1": {"pw"}, "password2": {"pw"},
	}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a user with that username already exists")
}

func TestLogin_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	router := setupAuthRouter(t, nil, mockAuthService)

	mockAuthService.On("Login", mock.Anything, "alice", "correct horse").Return(alice, "session-token", nil)

	tests := []struct {
		next     string
		location string
	}{
		{next: "/3/detail/", location: "/3/detail/"},
		{next: "", location: "/"},
		{next: "//evil.example", location: "/"},
		{next: "https://evil.example/", location: "/"},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, postForm("/accounts/login/", url.Values{
			"username": {"alice"}, "password": {"correct horse"}, "next": {tt.next},
		}))

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, tt.location, w.Header().Get("Location"), tt.next)
		require.NotNil(t, sessionCookie(w))
	}
}

func TestLogin_WrongCredentials(t *testing.T) {
	mockAuthService := new(MockAuthService)
	router := setupAuthRouter(t, nil, mockAuthService)

	mockAuthService.On("Login", mock.Anything, "alice", "nope").Return(nil, "", service.ErrInvalidCredentials)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, postForm("/accounts/login/", url.Values{
		"username": {"alice"}, "password": {"nope"}, "next": {"/create/"},
	}))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Please enter a correct username and password.")
	assert.Contains(t, body, `name="next" value="/create/"`)
	assert.Nil(t, sessionCookie(w))
}

func TestLogin_BackendFailure(t *testing.T) {
	mockAuthService := new(MockAuthService)
	router := setupAuthRouter(t, nil, mockAuthService)

	mockAuthService.On("Login", mock.Anything, "alice", "pw").Return(nil, "", errors.New("redis down"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, postForm("/accounts/login/", url.Values{"username": {"alice"}, "password": {"pw"}}))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "redis down")
}

func TestLoginForm_CarriesNext(t *testing.T) {
	mockAuthService := new(MockAuthService)
	router := setupAuthRouter(t, nil, mockAuthService)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/accounts/login/?next=/5/update/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="next" value="/5/update/"`)
	assert.Contains(t, w.Body.String(), testCSRF)
}

func TestLogout(t *testing.T) {
	mockAuthService := new(MockAuthService)
	router := setupAuthRouter(t, alice, mockAuthService)

	mockAuthService.On("Logout", mock.Anything, "session-token").Return(nil)

	req := postForm("/accounts/logout/", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "session-token"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/accounts/login/", w.Header().Get("Location"))
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
	mockAuthService.AssertExpectations(t)
}

func TestLogout_RequiresLogin(t *testing.T) {
	mockAuthService := new(MockAuthService)
	router := setupAuthRouter(t, nil, mockAuthService)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/accounts/logout/", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/accounts/login/?next=/accounts/logout/", w.Header().Get("Location"))
	mockAuthService.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
}

func TestSafeNext(t *testing.T) {
	tests := map[string]string{
		"":                     "/",
		"/":                    "/",
		"/3/detail/?sort=rate": "/3/detail/?sort=rate",
		"//evil.example":       "/",
		`/\evil.example`:       "/",
		"http://evil.example":  "/",
		"relative/path":        "/",
	}
	for next, want := range tests {
		assert.Equal(t, want, SafeNext(next), next)
	}
}
