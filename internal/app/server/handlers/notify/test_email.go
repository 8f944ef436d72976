package notify

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/apimodel/request"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/apimodel/response"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/domains/services/svnotify"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/ginx"
)

// TestEmail 发送一封样例下单邮件
// POST /api/v1/test-email
func (h *NotifyHandler) TestEmail(c *gin.Context) {
	var req request.TestEmailRequest
	// 请求体可以为空
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	msg, err := h.notifyService.SendTestEmail(c.Request.Context(), req.Recipients)
	if err != nil {
		if errors.Is(err, svnotify.ErrRecipientNotAllowed) {
			h.logger.Warnf(c.Request.Context(), "test email rejected: %v", err)
			ginx.BadRequest(c, "Recipient is not allowed")
			return
		}
		_ = c.Error(err)
		ginx.InternalError(c, "Failed to send test email")
		return
	}

	ginx.Success(c, &response.TestEmailResponse{
		Sent:       true,
		Subject:    msg.Subject,
		Recipients: msg.To,
	})
}
