// internal/utils/response_test.go
package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/agrohaat/agrohaat-backend/internal/apperrors"
)

func TestAppErrorResponseMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unauthorized", apperrors.ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden},
		{"not found", apperrors.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("%w: listing", apperrors.ErrNotFound), http.StatusNotFound},
		{"validation", apperrors.ErrValidation, http.StatusBadRequest},
		{"duplicate user", apperrors.ErrDuplicateUser, http.StatusBadRequest},
		{"listing not active", apperrors.ErrListingNotActive, http.StatusBadRequest},
		{"bid too low", apperrors.ErrBidTooLow, http.StatusBadRequest},
		{"no bids placed", apperrors.ErrNoBidsPlaced, http.StatusBadRequest},
		{"listing has bids", apperrors.ErrListingHasBids, http.StatusBadRequest},
		{"upstream", apperrors.ErrUpstream, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			AppErrorResponse(c, tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestBusinessRuleViolationsShareCode(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, err := range []error{
		apperrors.ErrListingNotActive,
		apperrors.ErrBidTooLow,
		apperrors.ErrNoBidsPlaced,
		apperrors.ErrListingHasBids,
	} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		AppErrorResponse(c, err)
		assert.Contains(t, w.Body.String(), "BUSINESS_RULE_VIOLATION")
	}
}
