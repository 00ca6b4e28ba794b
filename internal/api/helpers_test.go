package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/phrazzld/tasks-api/internal/api/middleware"
	"github.com/phrazzld/tasks-api/internal/config"
	"github.com/phrazzld/tasks-api/internal/mocks"
	"github.com/phrazzld/tasks-api/internal/service"
	"github.com/phrazzld/tasks-api/internal/service/auth"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	handler http.Handler
	users   *mocks.MockUserStore
	tasks   *mocks.MockTaskStore
	tokens  auth.JWTService
}

func newTestEnv(t *testing.T, exposeErrors bool) *testEnv {
	t.Helper()

	users := mocks.NewMockUserStore()
	tasks := mocks.NewMockTaskStore()

	tokens, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:     "test-jwt-secret-that-is-32-chars-long",
		TokenLifetime: time.Hour,
		BcryptCost:    4,
	})
	require.NoError(t, err)

	userSvc := service.NewUserService(users, &mocks.MockPasswordHasher{}, tokens, nil)
	taskSvc := service.NewTaskService(tasks, nil)
	guard := auth.NewGuard(tokens, auth.NewIdentityResolver(users, nil), nil)

	return &testEnv{
		handler: NewRouter(RouterDeps{
			AuthHandler:    NewAuthHandler(userSvc, tokens.TokenLifetime(), exposeErrors, nil),
			TaskHandler:    NewTaskHandler(taskSvc, exposeErrors, nil),
			AuthMiddleware: middleware.NewAuthMiddleware(guard, exposeErrors),
		}),
		users:  users,
		tasks:  tasks,
		tokens: tokens,
	}
}

// do sends a request and decodes the JSON envelope. body may be nil, a
// string sent verbatim, or a value encoded as JSON.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	}
	return rec.Code, decoded
}

// register creates an account through the API and returns its token and id.
func (e *testEnv) register(t *testing.T, name, email string) (string, string) {
	t.Helper()

	status, body := e.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, status, body)

	data := body["data"].(map[string]interface{})
	user := data["user"].(map[string]interface{})
	return data["token"].(string), user["id"].(string)
}

// createTask creates a task through the API and returns its id.
func (e *testEnv) createTask(t *testing.T, token, title string) string {
	t.Helper()

	status, body := e.do(t, http.MethodPost, "/api/tasks", token, map[string]string{"title": title})
	require.Equal(t, http.StatusCreated, status, body)
	return taskFrom(t, body)["id"].(string)
}

func taskFrom(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, body)
	task, ok := data["task"].(map[string]interface{})
	require.True(t, ok, body)
	return task
}

func fieldErrors(body map[string]interface{}) map[string]string {
	out := map[string]string{}
	list, _ := body["errors"].([]interface{})
	for _, item := range list {
		fe := item.(map[string]interface{})
		out[fe["field"].(string)] = fe["message"].(string)
	}
	return out
}
