package middlewares

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/logger"
)

// captureLogger 记录日志级别与内容
type captureLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *captureLogger) add(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+" "+fmt.Sprintf(format, args...))
}

func (l *captureLogger) Debugf(_ context.Context, f string, a ...interface{}) { l.add("DEBUG", f, a...) }
func (l *captureLogger) Infof(_ context.Context, f string, a ...interface{}) { l.add("INFO", f, a...) }
func (l *captureLogger) Warnf(_ context.Context, f string, a ...interface{}) { l.add("WARN", f, a...) }
func (l *captureLogger) Errorf(_ context.Context, f string, a ...interface{}) { l.add("ERROR", f, a...) }
func (l *captureLogger) Sync() error { return nil }

var _ logger.Logger = (*captureLogger)(nil)

func serve(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := &captureLogger{}
	r := gin.New()
	r.Use(RequestLogger(log))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	serve(r, "/ok")
	serve(r, "/missing")

	assert.Len(t, log.lines, 2)
	assert.Contains(t, log.lines[0], "INFO GET /ok 200")
	assert.Contains(t, log.lines[1], "WARN GET /missing 404")
}

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := &captureLogger{}
	r := gin.New()
	r.Use(ErrorHandler(log))
	r.GET("/unwritten", func(c *gin.Context) { _ = c.Error(errors.New("boom")) })
	r.GET("/written", func(c *gin.Context) {
		_ = c.Error(errors.New("late"))
		c.String(http.StatusAccepted, "done")
	})

	w := serve(r, "/unwritten")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal Server Error")

	w = serve(r, "/written")
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "done", w.Body.String())

	assert.Equal(t, []string{"ERROR request error: boom", "ERROR request error: late"}, log.lines)
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := &captureLogger{}
	r := gin.New()
	r.Use(Recovery(log))
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })

	w := serve(r, "/panic")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Len(t, log.lines, 1)
	assert.Contains(t, log.lines[0], "panic recovered: kaboom")
}
