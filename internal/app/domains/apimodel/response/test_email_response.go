package response

// TestEmailResponse 测试邮件结果
type TestEmailResponse struct {
	Sent       bool     `json:"sent"`
	Subject    string   `json:"subject"`
	Recipients []string `json:"recipients"`
}
