package request

// TestEmailRequest 测试邮件请求，收件人为空时发给内部列表，非空时只能是内部或运营名单中的地址
type TestEmailRequest struct {
	Recipients []string `json:"recipients" binding:"omitempty,max=10,dive,email"`
}
