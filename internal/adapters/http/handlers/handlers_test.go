package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/storefront/internal/core/serviceerrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"not found", serviceerrors.NewNotFoundError("product not found"), http.StatusNotFound, "product not found"},
		{"conflict", serviceerrors.NewConflictError("duplicate"), http.StatusConflict, "duplicate"},
		{"unprocessable", serviceerrors.NewUnprocessableEntityError("zero total"), http.StatusUnprocessableEntity, "zero total"},
		{"invalid request", serviceerrors.NewInvalidRequestError("bad input"), http.StatusBadRequest, "bad input"},
		{"unauthorized", serviceerrors.NewUnauthorizedError("unauthorized"), http.StatusUnauthorized, "unauthorized"},
		{"upstream payment", serviceerrors.NewUpstreamPaymentError("Your card was declined."), http.StatusBadGateway, "Your card was declined."},
		{"storage failure is hidden", errors.New("connection refused: mongodb://secret@db"), http.StatusInternalServerError, internalErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleError(c, tt.err)

			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
			var body ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid body: %v", err)
			}
			if body.Error != tt.wantBody {
				t.Errorf("error = %q, want %q", body.Error, tt.wantBody)
			}
			if _, ok := c.Get(ErrorKindKey); !ok {
				t.Error("expected error kind on context")
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc-123", "abc-123"},
		{"bearer abc-123", "abc-123"},
		{"  Bearer   abc-123  ", "abc-123"},
		{"Basic dXNlcjpwYXNz", ""},
		{"Bearer ", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}
			if got := BearerToken(c); got != tt.want {
				t.Errorf("BearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}
