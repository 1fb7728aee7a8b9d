package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net"
	"net/http"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"portfolio/internal/config"
)

// EmailMessage is a single outbound email
type EmailMessage struct {
	From    string
	To      string
	Subject string
	HTML    string
	Text    string
	ReplyTo string
}

// Delivery identifies an accepted email
type Delivery struct {
	ID       string
	Provider string
}

// Mailer sends transactional email
type Mailer interface {
	Send(ctx context.Context, msg *EmailMessage) (*Delivery, error)
}

// EmailService handles sending emails
type EmailService struct {
	cfg        *config.EmailConfig
	httpClient *http.Client
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// IsEnabled returns whether email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.cfg.Enabled
}

// Send delivers msg through the configured provider. Addresses are parsed
// and re-rendered before use; values containing line breaks are rejected.
func (s *EmailService) Send(ctx context.Context, msg *EmailMessage) (*Delivery, error) {
	msg, err := s.normalize(msg)
	if err != nil {
		return nil, err
	}

	if !s.cfg.Enabled {
		return s.sendConsole(msg), nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	switch s.cfg.Provider {
	case config.ProviderSMTP:
		return s.sendSMTP(ctx, msg)
	case config.ProviderResend:
		return s.sendResend(ctx, msg)
	case config.ProviderConsole:
		return s.sendConsole(msg), nil
	default:
		return nil, fmt.Errorf("unsupported email provider: %s", s.cfg.Provider)
	}
}

// normalize returns a copy of msg whose header values are safe to write
func (s *EmailService) normalize(msg *EmailMessage) (*EmailMessage, error) {
	out := *msg
	if out.From == "" {
		out.From = s.cfg.SenderAddress()
	}

	to, err := ParseHeaderAddress(out.To)
	if err != nil {
		return nil, fmt.Errorf("invalid recipient address %q: %w", out.To, err)
	}
	out.To = formatAddress(to)

	from, err := ParseHeaderAddress(out.From)
	if err != nil {
		return nil, fmt.Errorf("invalid sender address %q: %w", out.From, err)
	}
	out.From = formatAddress(from)

	if out.ReplyTo != "" {
		replyTo, err := ParseHeaderAddress(out.ReplyTo)
		if err != nil {
			return nil, fmt.Errorf("invalid reply-to address %q: %w", out.ReplyTo, err)
		}
		out.ReplyTo = formatAddress(replyTo)
	}

	if strings.ContainsAny(out.Subject, "\r\n") {
		return nil, errLineBreak
	}
	return &out, nil
}

var errLineBreak = errors.New("header value contains a line break")

// ParseHeaderAddress parses a single RFC 5322 address, refusing any input
// with CR or LF even where the grammar would allow it inside a comment.
func ParseHeaderAddress(raw string) (*mail.Address, error) {
	if strings.ContainsAny(raw, "\r\n") {
		return nil, errLineBreak
	}
	return mail.ParseAddress(raw)
}

// formatAddress renders a bare address when there is no display name
func formatAddress(a *mail.Address) string {
	if a.Name == "" {
		return a.Address
	}
	return a.String()
}

func (s *EmailService) sendConsole(msg *EmailMessage) *Delivery {
	log.Printf("[EMAIL] Would send to %s: %s", msg.To, msg.Subject)
	return &Delivery{ID: "console-" + uuid.NewString(), Provider: config.ProviderConsole}
}

// sendSMTP sends a multipart text/html message over SMTP
func (s *EmailService) sendSMTP(ctx context.Context, msg *EmailMessage) (*Delivery, error) {
	if s.cfg.SMTPHost == "" || s.cfg.Username == "" || s.cfg.Password == "" {
		return nil, fmt.Errorf("email service not properly configured")
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), senderDomain(s.cfg.FromEmail))
	raw, err := buildMIMEMessage(msg, messageID, time.Now())
	if err != nil {
		return nil, err
	}

	addr := net.JoinHostPort(s.cfg.SMTPHost, strconv.Itoa(s.cfg.SMTPPort))
	var conn net.Conn
	if s.cfg.SMTPPort == 465 {
		d := &tls.Dialer{Config: &tls.Config{ServerName: s.cfg.SMTPHost}}
		conn, err = d.DialContext(ctx, "tcp", addr)
	} else {
		d := &net.Dialer{}
		conn, err = d.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, s.cfg.SMTPHost)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to start SMTP session: %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: s.cfg.SMTPHost}); err != nil {
			return nil, fmt.Errorf("failed to start TLS: %w", err)
		}
	}
	if ok, _ := c.Extension("AUTH"); ok {
		auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)
		if err := c.Auth(auth); err != nil {
			return nil, fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	to, err := ParseHeaderAddress(msg.To)
	if err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	if err := c.Mail(s.cfg.FromEmail); err != nil {
		return nil, fmt.Errorf("SMTP MAIL FROM rejected: %w", err)
	}
	if err := c.Rcpt(to.Address); err != nil {
		return nil, fmt.Errorf("SMTP RCPT TO rejected: %w", err)
	}
	w, err := c.Data()
	if err != nil {
		return nil, fmt.Errorf("SMTP DATA rejected: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return nil, fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to send email: %w", err)
	}
	_ = c.Quit()

	return &Delivery{ID: messageID, Provider: config.ProviderSMTP}, nil
}

// buildMIMEMessage renders headers plus a multipart/alternative body
func buildMIMEMessage(msg *EmailMessage, messageID string, date time.Time) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	parts := []struct {
		contentType string
		content     string
	}{
		{"text/plain; charset=UTF-8", msg.Text},
		{"text/html; charset=UTF-8", msg.HTML},
	}
	for _, p := range parts {
		if p.content == "" {
			continue
		}
		pw, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {p.contentType},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create MIME part: %w", err)
		}
		qp := quotedprintable.NewWriter(pw)
		if _, err := io.WriteString(qp, p.content); err != nil {
			return nil, fmt.Errorf("failed to encode MIME part: %w", err)
		}
		if err := qp.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode MIME part: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close MIME message: %w", err)
	}

	var (
		out       bytes.Buffer
		headerErr error
	)
	header := func(k, v string) {
		if strings.ContainsAny(v, "\r\n") {
			if headerErr == nil {
				headerErr = fmt.Errorf("%s: %w", k, errLineBreak)
			}
			return
		}
		fmt.Fprintf(&out, "%s: %s\r\n", k, v)
	}
	header("From", msg.From)
	header("To", msg.To)
	if msg.ReplyTo != "" {
		header("Reply-To", msg.ReplyTo)
	}
	header("Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	header("Date", date.Format(time.RFC1123Z))
	header("Message-ID", messageID)
	header("MIME-Version", "1.0")
	header("Content-Type", fmt.Sprintf("multipart/alternative; boundary=%q", mw.Boundary()))
	if headerErr != nil {
		return nil, headerErr
	}
	out.WriteString("\r\n")
	out.Write(body.Bytes())

	return out.Bytes(), nil
}

func senderDomain(addr string) string {
	if _, domain, ok := strings.Cut(addr, "@"); ok && domain != "" {
		return domain
	}
	return "localhost"
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

type resendResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// sendResend sends email via the Resend HTTP API
func (s *EmailService) sendResend(ctx context.Context, msg *EmailMessage) (*Delivery, error) {
	if s.cfg.ResendAPIKey == "" {
		return nil, fmt.Errorf("Resend not properly configured")
	}

	jsonData, err := json.Marshal(resendRequest{
		From:    msg.From,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request data: %w", err)
	}

	url := strings.TrimRight(s.cfg.ResendURL, "/") + "/emails"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.ResendAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send email request: %w", err)
	}
	defer resp.Body.Close()

	var out resendResponse
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&out)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("Resend API error (status %d): %s %s", resp.StatusCode, out.Name, out.Message)
	}
	if out.ID == "" {
		return nil, fmt.Errorf("Resend API returned no message id")
	}

	return &Delivery{ID: out.ID, Provider: config.ProviderResend}, nil
}
