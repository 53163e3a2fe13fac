package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestSetupValidatorTimeOfDay(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetupValidator()

	type shiftRequest struct {
		ShiftStart string `json:"shift_start" binding:"required,timeofday"`
	}

	engine := gin.New()
	engine.POST("/shifts", func(c *gin.Context) {
		var req shiftRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name         string
		body         string
		expectedCode int
	}{
		{"valid morning", `{"shift_start":"08:30"}`, http.StatusOK},
		{"valid midnight", `{"shift_start":"00:00"}`, http.StatusOK},
		{"valid last minute", `{"shift_start":"23:59"}`, http.StatusOK},
		{"hour out of range", `{"shift_start":"24:00"}`, http.StatusBadRequest},
		{"minute out of range", `{"shift_start":"12:60"}`, http.StatusBadRequest},
		{"missing leading zero", `{"shift_start":"8:30"}`, http.StatusBadRequest},
		{"with seconds", `{"shift_start":"08:30:00"}`, http.StatusBadRequest},
		{"not a time", `{"shift_start":"morning"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/shifts", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestSetupValidatorReportsJSONFieldNames(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetupValidator()

	type namedRequest struct {
		FullName string `json:"full_name" binding:"required"`
	}

	engine := gin.New()
	engine.POST("/named", func(c *gin.Context) {
		var req namedRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/named", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "full_name")
}
