package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

const adminToken = "admin-token"

func init() {
	gin.SetMode(gin.TestMode)
}

type testRequest struct {
	method  string
	path    string
	body    any
	headers map[string]string
}

func perform(t *testing.T, engine *gin.Engine, req testRequest) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	switch b := req.body.(type) {
	case nil:
	case string:
		body.WriteString(b)
	default:
		if err := json.NewEncoder(&body).Encode(b); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	r := httptest.NewRequest(req.method, req.path, &body)
	r.Header.Set("Content-Type", "application/json")
	for key, value := range req.headers {
		r.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, r)
	return w
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body %q: %v", w.Body.String(), err)
	}
	return body.Error
}

func assertStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, want, w.Body.String())
	}
}

