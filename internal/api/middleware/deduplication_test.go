package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"recipe-aggregator/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func newDedupRouter(window time.Duration) *gin.Engine {
	router := gin.New()
	router.Use(NewDeduplicator(window).Middleware())
	handler := func(c *gin.Context) { c.Status(http.StatusOK) }
	router.POST("/toggle", handler)
	router.GET("/list", handler)
	return router
}

func TestDeduplicatorBlocksRepeatedWrites(t *testing.T) {
	router := newDedupRouter(time.Minute)

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/toggle", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/toggle", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestDeduplicatorIgnoresReads(t *testing.T) {
	router := newDedupRouter(time.Minute)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/list", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestDeduplicatorDistinguishesBodies(t *testing.T) {
	router := newDedupRouter(time.Minute)

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/toggle", strings.NewReader(`{"id":"1"}`)))
	assert.Equal(t, http.StatusOK, first.Code)

	// 不同請求體不算重複
	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/toggle", strings.NewReader(`{"id":"2"}`)))
	assert.Equal(t, http.StatusOK, second.Code)
}

func TestDeduplicatorAllowsAfterWindow(t *testing.T) {
	router := newDedupRouter(20 * time.Millisecond)

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/toggle", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	time.Sleep(40 * time.Millisecond)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/toggle", nil))
	assert.Equal(t, http.StatusOK, second.Code)
}
