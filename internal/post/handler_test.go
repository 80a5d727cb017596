package post

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkhayef/chirp/pkg/middleware"
	"github.com/fkhayef/chirp/pkg/response"
)

type envelope struct {
	Success bool               `json:"success"`
	Data    json.RawMessage    `json:"data"`
	Error   *response.APIError `json:"error"`
}

func newTestRouter(store *memStore) http.Handler {
	return middleware.ActingUser(NewHandler(NewService(store)).Routes())
}

func do(t *testing.T, h http.Handler, method, target, actor, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if actor != "" {
		req.Header.Set(middleware.UserIDHeader, actor)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestHandlerCreateUsesActingUser(t *testing.T) {
	h := newTestRouter(newMemStore(amy, bob))

	rec, env := do(t, h, http.MethodPost, "/", "2", `{"content":"hello","user_id":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created PostResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, bob.ID, created.UserID)
	assert.Equal(t, "hello", created.Content)
}

func TestHandlerCreateRequiresUser(t *testing.T) {
	h := newTestRouter(newMemStore(amy))

	rec, env := do(t, h, http.MethodPost, "/", "", `{"content":"hello"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
}

func TestHandlerCreateValidation(t *testing.T) {
	h := newTestRouter(newMemStore(amy))

	rec, env := do(t, h, http.MethodPost, "/", "1", `{"content":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []response.FieldError{{Field: "content", Error: "is required"}}, env.Error.Fields)

	long := strings.Repeat("a", 281)
	rec, env = do(t, h, http.MethodPost, "/", "1", `{"content":"`+long+`"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []response.FieldError{{Field: "content", Error: "must not exceed 280 characters"}}, env.Error.Fields)
}

func TestHandlerCreateUnknownAuthor(t *testing.T) {
	h := newTestRouter(newMemStore(amy))

	rec, env := do(t, h, http.MethodPost, "/", "42", `{"content":"hello"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "USER_NOT_FOUND", env.Error.Code)
}

func TestHandlerGetAndList(t *testing.T) {
	h := newTestRouter(newMemStore(amy, bob))

	do(t, h, http.MethodPost, "/", "1", `{"content":"one"}`)
	do(t, h, http.MethodPost, "/", "2", `{"content":"two"}`)

	rec, env := do(t, h, http.MethodGet, "/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got PostResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.NotNil(t, got.User)
	assert.Equal(t, "Amy", got.User.Name)
	assert.NotContains(t, string(env.Data), "password")

	rec, env = do(t, h, http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var posts []PostResponse
	require.NoError(t, json.Unmarshal(env.Data, &posts))
	require.Len(t, posts, 2)
	assert.Equal(t, "two", posts[0].Content)

	rec, _ = do(t, h, http.MethodGet, "/99", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerUpdateAndDelete(t *testing.T) {
	h := newTestRouter(newMemStore(amy, bob))
	do(t, h, http.MethodPost, "/", "1", `{"content":"draft"}`)

	tests := []struct {
		name   string
		method string
		target string
		actor  string
		body   string
		status int
	}{
		{"update by other user", http.MethodPut, "/1", "2", `{"content":"hijack"}`, http.StatusForbidden},
		{"update anonymous", http.MethodPut, "/1", "", `{"content":"x"}`, http.StatusUnauthorized},
		{"update by author", http.MethodPut, "/1", "1", `{"content":"final"}`, http.StatusOK},
		{"update missing", http.MethodPut, "/9", "1", `{"content":"x"}`, http.StatusNotFound},
		{"update bad id", http.MethodPut, "/x", "1", `{"content":"x"}`, http.StatusBadRequest},
		{"delete by other user", http.MethodDelete, "/1", "2", "", http.StatusForbidden},
		{"delete by author", http.MethodDelete, "/1", "1", "", http.StatusOK},
		{"delete again", http.MethodDelete, "/1", "1", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := do(t, h, tt.method, tt.target, tt.actor, tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
