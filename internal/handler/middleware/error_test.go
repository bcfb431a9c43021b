//go:build unit

package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"leadmarket/internal/handler/httperr"
	"leadmarket/internal/handler/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func performRequest(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	engine.ServeHTTP(rec, req)
	return rec
}

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newEngine := func() *gin.Engine {
		engine := gin.New()
		engine.Use(middleware.ErrorHandler())
		return engine
	}

	t.Run("abort renders the envelope and attaches a public error", func(t *testing.T) {
		engine := newEngine()
		var attached []*gin.Error
		engine.GET("/pay", func(c *gin.Context) {
			httperr.AbortWithError(c, http.StatusPaymentRequired, errors.New("balance below price"), "Insufficient credits", nil)
			attached = c.Errors
		})

		rec := performRequest(engine, "/pay")

		assert.Equal(t, http.StatusPaymentRequired, rec.Code)
		var body errorEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Insufficient credits", body.Error.Message)

		require.Len(t, attached, 1)
		assert.True(t, attached[0].IsType(gin.ErrorTypePublic))
		_, ok := attached[0].Meta.(httperr.Response)
		assert.True(t, ok, "Meta carries the response envelope")
	})

	t.Run("public error attached without a write is rendered by the middleware", func(t *testing.T) {
		engine := newEngine()
		engine.GET("/late", func(c *gin.Context) {
			resp := httperr.Response{Status: http.StatusConflict}
			resp.Error.Message = "Lead already purchased"
			_ = c.Error(&gin.Error{
				Err:  errors.New("duplicate purchase"),
				Type: gin.ErrorTypePublic,
				Meta: resp,
			})
		})

		rec := performRequest(engine, "/late")

		assert.Equal(t, http.StatusConflict, rec.Code)
		var body errorEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Lead already purchased", body.Error.Message)
	})

	t.Run("unhandled request with errors falls back to a 500 envelope", func(t *testing.T) {
		engine := newEngine()
		engine.GET("/boom", func(c *gin.Context) {
			_ = c.Error(errors.New("backend unavailable"))
		})

		rec := performRequest(engine, "/boom")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		var body errorEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Internal server error", body.Error.Message)
	})

	t.Run("successful responses pass through untouched", func(t *testing.T) {
		engine := newEngine()
		engine.GET("/ok", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		rec := performRequest(engine, "/ok")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})
}
