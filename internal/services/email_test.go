package services

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/config"
)

func emailConfig() *config.EmailConfig {
	return &config.EmailConfig{
		Provider:  config.ProviderConsole,
		FromEmail: "hello@example.com",
		FromName:  "Portfolio",
		Timeout:   5 * time.Second,
	}
}

func TestEmailSendDisabledLogsToConsole(t *testing.T) {
	svc := NewEmailService(emailConfig())
	assert.False(t, svc.IsEnabled())

	d, err := svc.Send(context.Background(), &EmailMessage{To: "jane@example.com", Subject: "Hi", Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, config.ProviderConsole, d.Provider)
	assert.True(t, strings.HasPrefix(d.ID, "console-"))
}

func TestEmailSendRejectsInvalidRecipient(t *testing.T) {
	svc := NewEmailService(emailConfig())

	_, err := svc.Send(context.Background(), &EmailMessage{To: "+256700000000", Subject: "Hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid recipient address")
}

func TestEmailSendUnsupportedProvider(t *testing.T) {
	cfg := emailConfig()
	cfg.Enabled = true
	cfg.Provider = "pigeon"

	_, err := NewEmailService(cfg).Send(context.Background(), &EmailMessage{To: "jane@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported email provider")
}

func TestEmailSendResend(t *testing.T) {
	var got resendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"49a3999c-0ce1-4ea6-ab68-afcd6dc2e794"}`))
	}))
	defer srv.Close()

	cfg := emailConfig()
	cfg.Enabled = true
	cfg.Provider = config.ProviderResend
	cfg.ResendAPIKey = "re_test"
	cfg.ResendURL = srv.URL

	d, err := NewEmailService(cfg).Send(context.Background(), &EmailMessage{
		To:      "jane@example.com",
		Subject: "We received your inquiry",
		HTML:    "<p>hi</p>",
		Text:    "hi",
		ReplyTo: "studio@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "49a3999c-0ce1-4ea6-ab68-afcd6dc2e794", d.ID)
	assert.Equal(t, config.ProviderResend, d.Provider)

	assert.Equal(t, `"Portfolio" <hello@example.com>`, got.From)
	assert.Equal(t, []string{"jane@example.com"}, got.To)
	assert.Equal(t, "studio@example.com", got.ReplyTo)
	assert.Equal(t, "<p>hi</p>", got.HTML)
}

func TestEmailSendResendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"name":"validation_error","message":"Invalid to field"}`))
	}))
	defer srv.Close()

	cfg := emailConfig()
	cfg.Enabled = true
	cfg.Provider = config.ProviderResend
	cfg.ResendAPIKey = "re_test"
	cfg.ResendURL = srv.URL

	_, err := NewEmailService(cfg).Send(context.Background(), &EmailMessage{To: "jane@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 422")
	assert.Contains(t, err.Error(), "Invalid to field")
}

func TestBuildMIMEMessage(t *testing.T) {
	raw, err := buildMIMEMessage(&EmailMessage{
		From:    "Portfolio <hello@example.com>",
		To:      "jane@example.com",
		Subject: "Réservation reçue",
		HTML:    "<p>Thanks</p>",
		Text:    "Thanks",
		ReplyTo: "studio@example.com",
	}, "<abc@example.com>", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, err)

	out := string(raw)
	assert.Contains(t, out, "To: jane@example.com\r\n")
	assert.Contains(t, out, "Reply-To: studio@example.com\r\n")
	assert.Contains(t, out, "Message-ID: <abc@example.com>\r\n")
	assert.Contains(t, out, "Subject: =?utf-8?q?")
	assert.Contains(t, out, "Content-Type: multipart/alternative; boundary=")
	assert.Contains(t, out, "Content-Type: text/plain; charset=UTF-8")
	assert.Contains(t, out, "Content-Type: text/html; charset=UTF-8")
}

func TestSMTPRequiresCredentials(t *testing.T) {
	cfg := emailConfig()
	cfg.Enabled = true
	cfg.Provider = config.ProviderSMTP

	_, err := NewEmailService(cfg).Send(context.Background(), &EmailMessage{To: "jane@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not properly configured")
}

func TestSenderDomain(t *testing.T) {
	assert.Equal(t, "example.com", senderDomain("hello@example.com"))
	assert.Equal(t, "localhost", senderDomain("nobody"))
}

const injectedContact = "jane@example.com (x\r\nBcc: victim@example.org\r\nX-Injected: yes)"

// smtpSession records the commands and message seen by fakeSMTPServer
type smtpSession struct {
	mu       sync.Mutex
	conns    int
	commands []string
	data     string
}

func (s *smtpSession) snapshot() (int, []string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conns, append([]string(nil), s.commands...), s.data
}

// fakeSMTPServer accepts plain connections on loopback, advertises AUTH PLAIN
// and accepts every message.
func fakeSMTPServer(t *testing.T) (host string, port int, session *smtpSession) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	session = &smtpSession{}
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go serveSMTP(conn, session)
		}
	}()

	addr := ln.Addr().(*net.TCPAddr)
	return "127.0.0.1", addr.Port, session
}

func serveSMTP(conn net.Conn, session *smtpSession) {
	defer conn.Close()
	session.mu.Lock()
	session.conns++
	session.mu.Unlock()

	tp := textproto.NewConn(conn)
	reply := func(lines ...string) {
		for _, l := range lines {
			_ = tp.PrintfLine("%s", l)
		}
	}
	reply("220 localhost ESMTP")

	for {
		line, err := tp.ReadLine()
		if err != nil {
			return
		}
		session.mu.Lock()
		session.commands = append(session.commands, line)
		session.mu.Unlock()

		verb := strings.ToUpper(strings.SplitN(line, " ", 2)[0])
		switch verb {
		case "EHLO", "HELO":
			reply("250-localhost", "250 AUTH PLAIN")
		case "AUTH":
			reply("235 2.7.0 Authentication successful")
		case "MAIL", "RCPT", "RSET", "NOOP":
			reply("250 2.1.0 OK")
		case "DATA":
			reply("354 End data with <CR><LF>.<CR><LF>")
			body, err := tp.ReadDotBytes()
			if err != nil {
				return
			}
			session.mu.Lock()
			session.data = string(body)
			session.mu.Unlock()
			reply("250 2.0.0 queued")
		case "QUIT":
			reply("221 2.0.0 bye")
			return
		default:
			reply("502 5.5.2 command not recognized")
		}
	}
}

func smtpConfig(host string, port int) *config.EmailConfig {
	cfg := emailConfig()
	cfg.Enabled = true
	cfg.Provider = config.ProviderSMTP
	cfg.SMTPHost = host
	cfg.SMTPPort = port
	cfg.Username = "mailer"
	cfg.Password = "secret"
	return cfg
}

func TestEmailSendSMTP(t *testing.T) {
	host, port, session := fakeSMTPServer(t)

	d, err := NewEmailService(smtpConfig(host, port)).Send(context.Background(), &EmailMessage{
		To:      "Jane Doe <jane@example.com>",
		Subject: "We received your inquiry",
		HTML:    "<p>Thanks</p>",
		Text:    "Thanks",
		ReplyTo: "studio@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, config.ProviderSMTP, d.Provider)
	assert.True(t, strings.HasPrefix(d.ID, "<"))
	assert.True(t, strings.HasSuffix(d.ID, "@example.com>"))

	_, commands, data := session.snapshot()
	assert.Contains(t, commands, "MAIL FROM:<hello@example.com>")
	assert.Contains(t, commands, "RCPT TO:<jane@example.com>")
	assert.True(t, hasPrefix(commands, "AUTH PLAIN "), "commands: %v", commands)

	headers := readHeaders(t, data)
	assert.Equal(t, `"Jane Doe" <jane@example.com>`, headers.Get("To"))
	assert.Equal(t, `"Portfolio" <hello@example.com>`, headers.Get("From"))
	assert.Equal(t, "studio@example.com", headers.Get("Reply-To"))
	assert.Equal(t, d.ID, headers.Get("Message-ID"))
	assert.Contains(t, headers.Get("Content-Type"), "multipart/alternative")
}

func TestEmailSendRejectsHeaderInjection(t *testing.T) {
	host, port, session := fakeSMTPServer(t)
	svc := NewEmailService(smtpConfig(host, port))

	cases := map[string]*EmailMessage{
		"recipient": {To: injectedContact, Subject: "Hi", Text: "hello"},
		"reply-to":  {To: "studio@example.com", ReplyTo: injectedContact, Subject: "Hi", Text: "hello"},
		"subject":   {To: "studio@example.com", Subject: "Hi\r\nBcc: victim@example.org", Text: "hello"},
	}
	for name, msg := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Send(context.Background(), msg)
			require.Error(t, err)
		})
	}

	conns, _, _ := session.snapshot()
	assert.Zero(t, conns)
}

func TestParseHeaderAddress(t *testing.T) {
	addr, err := ParseHeaderAddress("Jane <jane@example.com>")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", addr.Address)

	for _, raw := range []string{injectedContact, "jane@example.com\n", "+256700000000"} {
		_, err := ParseHeaderAddress(raw)
		assert.Error(t, err, strconv.Quote(raw))
	}
}

func TestBuildMIMEMessageRejectsLineBreaks(t *testing.T) {
	for _, msg := range []*EmailMessage{
		{From: "hello@example.com", To: injectedContact, Text: "hi"},
		{From: "hello@example.com", To: "jane@example.com", ReplyTo: injectedContact, Text: "hi"},
	} {
		raw, err := buildMIMEMessage(msg, "<abc@example.com>", time.Now())
		require.Error(t, err)
		assert.Nil(t, raw)
	}
}

func hasPrefix(lines []string, prefix string) bool {
	for _, l := range lines {
		if strings.HasPrefix(l, prefix) {
			return true
		}
	}
	return false
}

func readHeaders(t *testing.T, data string) textproto.MIMEHeader {
	t.Helper()
	h, err := textproto.NewReader(bufio.NewReader(strings.NewReader(data))).ReadMIMEHeader()
	require.NoError(t, err)
	return h
}
