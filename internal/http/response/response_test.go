package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/storefront-backend/internal/services"
)

func TestRespondServiceError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "not found", err: services.ErrNotFound, wantStatus: http.StatusNotFound, wantCode: "not_found"},
		{name: "wrapped not found", err: fmt.Errorf("product x: %w", services.ErrNotFound), wantStatus: http.StatusNotFound, wantCode: "not_found"},
		{name: "forbidden", err: services.ErrForbidden, wantStatus: http.StatusForbidden, wantCode: "forbidden"},
		{name: "email taken", err: services.ErrEmailTaken, wantStatus: http.StatusBadRequest, wantCode: "email_taken"},
		{name: "invalid credentials", err: services.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized, wantCode: "invalid_credentials"},
		{name: "invalid token", err: services.ErrInvalidToken, wantStatus: http.StatusUnauthorized, wantCode: "unauthorized"},
		{name: "empty order", err: services.ErrEmptyOrder, wantStatus: http.StatusBadRequest, wantCode: "empty_order"},
		{name: "out of stock", err: &services.OutOfStockError{ProductName: "Mouse"}, wantStatus: http.StatusBadRequest, wantCode: "out_of_stock"},
		{name: "invalid input", err: fmt.Errorf("%w: bad", services.ErrInvalidInput), wantStatus: http.StatusBadRequest, wantCode: "invalid_request"},
		{name: "unexpected error", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			RespondServiceError(c, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			var envelope ErrorEnvelope
			if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if envelope.Error.Code != tt.wantCode {
				t.Fatalf("expected code %q, got %q", tt.wantCode, envelope.Error.Code)
			}
			if envelope.Error.Message == "" {
				t.Fatalf("expected non-empty message")
			}
		})
	}
}
