package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuadmd/WHH-SBG/internal/domain/shared"
	"github.com/fuadmd/WHH-SBG/internal/interfaces/http/dto"
)

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var h BaseHandler

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"unauthorized", shared.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", shared.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"validation", shared.NewDomainError("VALIDATION_ERROR", "bad input"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"duplicate email", shared.NewDomainError("EMAIL_TAKEN", "taken"), http.StatusConflict, "EMAIL_TAKEN"},
		{"unknown error hides its message", errors.New("pq: connection refused"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp dto.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			if tt.wantCode == dto.ErrCodeInternal {
				assert.NotContains(t, resp.Error.Message, "pq:")
			}
		})
	}
}

func TestHandleErrorNil(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var h BaseHandler

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	h.HandleError(c, nil)

	assert.Empty(t, w.Body.String())
}
