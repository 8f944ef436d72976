package svnotify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdullahiqbal07/Inventory-02/internal/app/config"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/modules/mdrouting"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/infra/mail/mailtest"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/infra/render"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/errorx"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/logger"
)

var notifyCfg = config.NotifyConfig{
	InternalRecipients:   []string{"abdullah@behope.ca", "haroon@behope.ca"},
	OperationsRecipients: []string{"ops@behope.ca"},
}

func newService(t *testing.T, outbox *mailtest.Recorder) *NotifyService {
	t.Helper()
	renderer, err := render.NewTemplateRenderer()
	require.NoError(t, err)
	return NewNotifyService(renderer, outbox, mdrouting.NewTable(config.DefaultSuppliers), "Best Buy", notifyCfg, logger.NewNopLogger())
}

func TestSendTestEmail(t *testing.T) {
	outbox := &mailtest.Recorder{}
	msg, err := newService(t, outbox).SendTestEmail(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, notifyCfg.InternalRecipients, msg.To)
	assert.Equal(t, "Order Request for Account #62317 - PO TEST-12345", msg.Subject)
	assert.Contains(t, msg.HTML, "TEST-SKU-123")
	assert.Contains(t, msg.HTML, "$99.99")
	require.Len(t, outbox.Sent(), 1)
}

func TestSendTestEmail_KnownRecipients(t *testing.T) {
	outbox := &mailtest.Recorder{}
	msg, err := newService(t, outbox).SendTestEmail(context.Background(), []string{"OPS@behope.ca", "haroon@behope.ca"})
	require.NoError(t, err)
	assert.Equal(t, []string{"OPS@behope.ca", "haroon@behope.ca"}, msg.To)
	require.Len(t, outbox.Sent(), 1)
}

func TestSendTestEmail_OutsideRecipientRejected(t *testing.T) {
	tests := []struct {
		name       string
		recipients []string
	}{
		{"outside only", []string{"someone@example.com"}},
		{"mixed with internal", []string{"abdullah@behope.ca", "someone@example.com"}},
		{"supplier contact", []string{"orders@bestbuymedical.ca"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outbox := &mailtest.Recorder{}
			_, err := newService(t, outbox).SendTestEmail(context.Background(), tt.recipients)
			assert.ErrorIs(t, err, ErrRecipientNotAllowed)
			assert.Empty(t, outbox.Sent())
		})
	}
}

func TestSendTestEmail_Failure(t *testing.T) {
	outbox := &mailtest.Recorder{Err: errorx.ErrSend}
	_, err := newService(t, outbox).SendTestEmail(context.Background(), nil)
	assert.ErrorIs(t, err, errorx.ErrSend)
}
