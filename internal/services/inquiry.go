package services

import (
	"context"
	"log"

	"portfolio/gen/inquiry"
	"portfolio/internal/config"
	"portfolio/internal/metrics"
)

// InquiryService implements the inquiry service
type InquiryService struct {
	recorder   *InquiryRecorder
	dispatcher *NotificationDispatcher
}

// NewInquiryService creates a new inquiry service
func NewInquiryService(repo DocumentCreator, mailer Mailer, notify *config.NotifyConfig) *InquiryService {
	return &InquiryService{
		recorder:   NewInquiryRecorder(repo),
		dispatcher: NewNotificationDispatcher(mailer, notify),
	}
}

// Submit implements the submit inquiry method
func (s *InquiryService) Submit(ctx context.Context, p *inquiry.InquirySubmitPayload) (*inquiry.Inquirysubmitresult, error) {
	inq, err := ValidateInquiry(p)
	if err != nil {
		log.Printf("[INQUIRY] Submit rejected: %v", err)
		metrics.RecordSubmission(metrics.OutcomeInvalid)
		return nil, InquiryError(err)
	}
	log.Printf("[INQUIRY] Submit request: name=%s, contactMethod=%s", inq.Name, inq.ContactMethod)

	if unknown := inq.UnknownEnums(); len(unknown) > 0 {
		log.Printf("[INQUIRY] Warning: unrecognised values for %v, storing as submitted", unknown)
	}

	rec, err := s.recorder.Record(ctx, inq)
	if err != nil {
		log.Printf("[INQUIRY] Submit failed: %v", err)
		metrics.RecordSubmission(metrics.OutcomeFailed)
		return nil, InquiryError(err)
	}
	log.Printf("[INQUIRY] Submit successful: id=%s, name=%s", rec.ID, inq.Name)
	metrics.RecordSubmission(metrics.OutcomeAccepted)

	s.dispatcher.Dispatch(ctx, rec)

	return &inquiry.Inquirysubmitresult{
		Success: true,
		Message: MsgSubmitted,
		ID:      rec.ID,
	}, nil
}
