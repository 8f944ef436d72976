package mail

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"mime/quotedprintable"
	"net"
	netmail "net/mail"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdullahiqbal07/Inventory-02/internal/app/config"
	"github.com/abdullahiqbal07/Inventory-02/internal/app/pkg/errorx"
)

// fakeSMTP 只实现 EHLO/MAIL/RCPT/DATA/QUIT 的最小服务端
type fakeSMTP struct {
	ln   net.Listener
	mu   sync.Mutex
	from string
	rcpt []string
	data string
	done chan struct{}
}

func startFakeSMTP(t *testing.T) *fakeSMTP {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	s := &fakeSMTP{ln: ln, done: make(chan struct{})}
	t.Cleanup(func() { ln.Close() })
	go s.serve()
	return s
}

func (s *fakeSMTP) port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

func (s *fakeSMTP) serve() {
	defer close(s.done)
	conn, err := s.ln.Accept()
	if err != nil {
		return
	}
	defer conn.Close()

	r := bufio.NewReader(conn)
	reply := func(line string) { _, _ = io.WriteString(conn, line+"\r\n") }
	reply("220 localhost ESMTP")

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimRight(line, "\r\n")
		cmd := strings.ToUpper(line)
		switch {
		case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
			reply("250-localhost")
			reply("250 8BITMIME")
		case strings.HasPrefix(cmd, "MAIL FROM:"):
			s.mu.Lock()
			s.from = strings.Trim(line[len("MAIL FROM:"):], "<> ")
			s.mu.Unlock()
			reply("250 OK")
		case strings.HasPrefix(cmd, "RCPT TO:"):
			s.mu.Lock()
			s.rcpt = append(s.rcpt, strings.Trim(line[len("RCPT TO:"):], "<> "))
			s.mu.Unlock()
			reply("250 OK")
		case cmd == "DATA":
			reply("354 End data with <CR><LF>.<CR><LF>")
			var data strings.Builder
			for {
				l, err := r.ReadString('\n')
				if err != nil {
					return
				}
				if l == ".\r\n" {
					break
				}
				data.WriteString(l)
			}
			s.mu.Lock()
			s.data = data.String()
			s.mu.Unlock()
			reply("250 OK queued")
		case cmd == "QUIT":
			reply("221 Bye")
			return
		default:
			reply("250 OK")
		}
	}
}

func testConfig(port int) config.SMTPConfig {
	return config.SMTPConfig{
		Host:     "127.0.0.1",
		Port:     port,
		From:     "orders@behope.ca",
		FromName: "BeHope",
		Timeout:  2 * time.Second,
	}
}

func TestSMTPNotifier_Send(t *testing.T) {
	srv := startFakeSMTP(t)
	n := NewSMTPNotifier(testConfig(srv.port()))

	err := n.Send(context.Background(), Message{
		To:      []string{"abdullah@behope.ca", "orders@bestbuymedical.ca"},
		Subject: "Order Request for Account #62317 - PO 1042",
		HTML:    "<p>Dear Team Best Buy,</p>",
	})
	require.NoError(t, err)
	<-srv.done

	srv.mu.Lock()
	defer srv.mu.Unlock()
	assert.Equal(t, "orders@behope.ca", srv.from)
	assert.Equal(t, []string{"abdullah@behope.ca", "orders@bestbuymedical.ca"}, srv.rcpt)

	parsed, err := netmail.ReadMessage(strings.NewReader(srv.data))
	require.NoError(t, err)
	assert.Equal(t, "Order Request for Account #62317 - PO 1042", parsed.Header.Get("Subject"))
	assert.Equal(t, `"BeHope" <orders@behope.ca>`, parsed.Header.Get("From"))
	assert.Contains(t, parsed.Header.Get("Content-Type"), "text/html")

	body, err := io.ReadAll(quotedprintable.NewReader(parsed.Body))
	require.NoError(t, err)
	assert.Equal(t, "<p>Dear Team Best Buy,</p>", strings.TrimSpace(string(body)))
}

func TestSMTPNotifier_NoRecipients(t *testing.T) {
	n := NewSMTPNotifier(testConfig(25))
	err := n.Send(context.Background(), Message{Subject: "x"})
	assert.ErrorIs(t, err, errorx.ErrSend)
}

func TestSMTPNotifier_DialFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	n := NewSMTPNotifier(testConfig(port))
	err = n.Send(context.Background(), Message{To: []string{"a@behope.ca"}, Subject: "x", HTML: "y"})
	assert.ErrorIs(t, err, errorx.ErrSend)
}

func TestBuildMessage_LongHTML(t *testing.T) {
	n := NewSMTPNotifier(testConfig(25))
	n.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }

	html := strings.Repeat("<td>Walker - Large é</td>", 20)
	raw, err := n.buildMessage(Message{To: []string{"a@behope.ca"}, Subject: "Ünïcode", HTML: html})
	require.NoError(t, err)

	for _, line := range bytes.Split(raw, []byte("\r\n")) {
		assert.LessOrEqual(t, len(line), 998)
	}

	parsed, err := netmail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "Wed, 01 May 2024 10:00:00 +0000", parsed.Header.Get("Date"))
	body, err := io.ReadAll(quotedprintable.NewReader(parsed.Body))
	require.NoError(t, err)
	assert.Equal(t, html, string(body))
	assert.Equal(t, "=?utf-8?q?=C3=9Cn=C3=AFcode?=", parsed.Header.Get("Subject"))
}
