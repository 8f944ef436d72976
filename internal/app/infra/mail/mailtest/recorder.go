// Package mailtest 记录发送内容的 Notifier，供测试使用
package mailtest

import (
	"context"
	"sync"

	"github.com/abdullahiqbal07/Inventory-02/internal/app/infra/mail"
)

// Recorder 记录所有 Send 调用，Err 非空时返回该错误
type Recorder struct {
	mu   sync.Mutex
	sent []mail.Message
	Err  error
}

var _ mail.Notifier = (*Recorder)(nil)

func (r *Recorder) Send(_ context.Context, msg mail.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.sent = append(r.sent, msg)
	return nil
}

// Sent 已发送的邮件副本
func (r *Recorder) Sent() []mail.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]mail.Message(nil), r.sent...)
}
