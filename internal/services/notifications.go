package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"log"
	"strings"
	texttemplate "text/template"
	"time"

	"golang.org/x/sync/errgroup"

	"portfolio/internal/config"
	"portfolio/internal/domain"
	"portfolio/internal/metrics"
	apperrors "portfolio/pkg/errors"
)

// Notification purposes
const (
	PurposeSubmitter = "submitter"
	PurposeOperator  = "operator"
)

//go:embed templates/*.html templates/*.txt
var templateFS embed.FS

var (
	htmlTemplates = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/*.html"))
	textTemplates = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/*.txt"))
)

// notificationData is the view model shared by all email templates
type notificationData struct {
	SiteName       string
	ResponseWindow string
	RecordID       string
	SubmittedAt    string
	Year           int

	Name           string
	ContactMethod  string
	ContactInfo    string
	PhotoshootType string
	Location       string
	NeedServices   string
	Budget         string
	Message        string
}

// NotificationDispatcher sends the submitter acknowledgment and the operator alert
type NotificationDispatcher struct {
	mailer Mailer
	notify *config.NotifyConfig
}

// NewNotificationDispatcher creates a new notification dispatcher
func NewNotificationDispatcher(mailer Mailer, notify *config.NotifyConfig) *NotificationDispatcher {
	return &NotificationDispatcher{mailer: mailer, notify: notify}
}

// Dispatch sends both notifications concurrently and waits for them.
// Failures are logged and counted but never returned; the sends are detached
// from cancellation of ctx.
func (d *NotificationDispatcher) Dispatch(ctx context.Context, rec *domain.InquiryRecord) {
	ctx = context.WithoutCancel(ctx)
	data := d.viewModel(rec)

	var g errgroup.Group
	g.Go(func() error {
		d.send(ctx, PurposeSubmitter, rec, d.submitterMessage(rec, data))
		return nil
	})
	g.Go(func() error {
		d.send(ctx, PurposeOperator, rec, d.operatorMessage(rec, data))
		return nil
	})
	_ = g.Wait()
}

func (d *NotificationDispatcher) send(ctx context.Context, purpose string, rec *domain.InquiryRecord, build func() (*EmailMessage, error)) {
	msg, err := build()
	if err == nil {
		var delivery *Delivery
		delivery, err = d.mailer.Send(ctx, msg)
		if err == nil {
			log.Printf("[INQUIRY] %s notification sent to %s for inquiry id=%s (provider=%s, id=%s)",
				purpose, msg.To, rec.ID, delivery.Provider, delivery.ID)
		}
	}
	metrics.RecordNotification(purpose, err)
	if err != nil {
		err = apperrors.Wrap(apperrors.ErrCodeNotification, purpose+" notification failed", err)
		log.Printf("[INQUIRY] Warning: failed to send %s notification to %s for inquiry id=%s: %v",
			purpose, d.recipient(purpose, rec), rec.ID, err)
	}
}

func (d *NotificationDispatcher) recipient(purpose string, rec *domain.InquiryRecord) string {
	if purpose == PurposeOperator {
		return d.notify.OperatorEmail
	}
	return rec.Inquiry.ContactInfo
}

func (d *NotificationDispatcher) submitterMessage(rec *domain.InquiryRecord, data *notificationData) func() (*EmailMessage, error) {
	return func() (*EmailMessage, error) {
		html, text, err := render("submitter", data)
		if err != nil {
			return nil, err
		}
		return &EmailMessage{
			To:      rec.Inquiry.ContactInfo,
			Subject: fmt.Sprintf("We received your inquiry - %s", d.notify.SiteName),
			HTML:    html,
			Text:    text,
			ReplyTo: d.notify.OperatorEmail,
		}, nil
	}
}

func (d *NotificationDispatcher) operatorMessage(rec *domain.InquiryRecord, data *notificationData) func() (*EmailMessage, error) {
	return func() (*EmailMessage, error) {
		if d.notify.OperatorEmail == "" {
			return nil, fmt.Errorf("operator email not configured")
		}
		html, text, err := render("operator", data)
		if err != nil {
			return nil, err
		}
		msg := &EmailMessage{
			To:      d.notify.OperatorEmail,
			Subject: fmt.Sprintf("New Inquiry: %s (%s)", singleLine(rec.Inquiry.Name), singleLine(rec.Inquiry.PhotoshootType.Label())),
			HTML:    html,
			Text:    text,
		}
		if rec.Inquiry.ContactMethod == domain.ContactEmail {
			if addr, err := ParseHeaderAddress(rec.Inquiry.ContactInfo); err == nil {
				msg.ReplyTo = formatAddress(addr)
			}
		}
		return msg, nil
	}
}

func (d *NotificationDispatcher) viewModel(rec *domain.InquiryRecord) *notificationData {
	inq := rec.Inquiry
	return &notificationData{
		SiteName:       d.notify.SiteName,
		ResponseWindow: d.notify.ResponseWindow,
		RecordID:       rec.ID,
		SubmittedAt:    domain.FormatTimestamp(rec.SubmittedAt),
		Year:           time.Now().Year(),
		Name:           inq.Name,
		ContactMethod:  inq.ContactMethod.Label(),
		ContactInfo:    inq.ContactInfo,
		PhotoshootType: inq.PhotoshootType.Label(),
		Location:       inq.Location,
		NeedServices:   inq.NeedServices.Label(),
		Budget:         inq.Budget,
		Message:        inq.Message,
	}
}

// singleLine collapses runs of whitespace, line breaks included, to one space
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// render executes the html and text templates named after purpose
func render(purpose string, data *notificationData) (string, string, error) {
	var html, text bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&html, purpose+".html", data); err != nil {
		return "", "", fmt.Errorf("failed to render %s html: %w", purpose, err)
	}
	if err := textTemplates.ExecuteTemplate(&text, purpose+".txt", data); err != nil {
		return "", "", fmt.Errorf("failed to render %s text: %w", purpose, err)
	}
	return html.String(), text.String(), nil
}
