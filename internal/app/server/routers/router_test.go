package routers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/entity/etorder"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/infra/mail"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/logger"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/server/handlers/notify"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/server/handlers/webhook"
)

type stubWebhook struct{}

func (stubWebhook) Accept(context.Context, []byte, string) (*etorder.Order, error) {
	return &etorder.Order{ID: 1}, nil
}

func (stubWebhook) Dispatch(context.Context, *etorder.Order) error { return nil }

type stubSender struct{}

func (stubSender) SendTestEmail(context.Context, []string) (*mail.Message, error) {
	return &mail.Message{}, nil
}

func newEngine(withNotify bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.NewNopLogger()
	var nh *notify.NotifyHandler
	if withNotify {
		nh = notify.NewNotifyHandler(stubSender{}, log)
	}
	return SetupRoutes("jarvis", webhook.NewWebhookHandler(stubWebhook{}, log), nh, log)
}

func TestSetupRoutes(t *testing.T) {
	tests := []struct {
		name       string
		withNotify bool
		method     string
		path       string
		wantCode   int
	}{
		{"health", false, http.MethodGet, "/health", http.StatusOK},
		{"webhook", false, http.MethodPost, "/webhooks/orders/create", http.StatusOK},
		{"webhook alias", false, http.MethodPost, "/webhook/orders/create", http.StatusOK},
		{"webhook wrong method", false, http.MethodGet, "/webhooks/orders/create", http.StatusMethodNotAllowed},
		{"alias wrong method", false, http.MethodPut, "/webhook/orders/create", http.StatusMethodNotAllowed},
		{"unknown path", false, http.MethodGet, "/nope", http.StatusNotFound},
		{"test email disabled", false, http.MethodPost, "/api/v1/test-email", http.StatusNotFound},
		{"test email enabled", true, http.MethodPost, "/api/v1/test-email", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(tt.withNotify)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, strings.NewReader("{}")))
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestSetupRoutes_MethodNotAllowedBody(t *testing.T) {
	r := newEngine(false)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/webhooks/orders/create", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), "Method Not Allowed")
}
