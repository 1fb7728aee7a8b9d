package services

import (
	"context"
	"time"

	"portfolio/internal/content"
	"portfolio/internal/domain"
	apperrors "portfolio/pkg/errors"
)

// DocumentCreator creates documents in the content repository
type DocumentCreator interface {
	Create(ctx context.Context, doc content.Document) (*content.Record, error)
}

// InquiryRecorder persists validated inquiries as new repository documents
type InquiryRecorder struct {
	repo DocumentCreator
	now  func() time.Time
}

// NewInquiryRecorder creates a new inquiry recorder
func NewInquiryRecorder(repo DocumentCreator) *InquiryRecorder {
	return &InquiryRecorder{repo: repo, now: time.Now}
}

// Record creates exactly one repository document for inq. The call is not
// retried; any failure is returned as a persistence error.
func (r *InquiryRecorder) Record(ctx context.Context, inq *domain.Inquiry) (*domain.InquiryRecord, error) {
	rec := &domain.InquiryRecord{
		Inquiry:     *inq,
		Status:      domain.StatusNew,
		SubmittedAt: ceilMillisecond(r.now().UTC()),
	}

	created, err := r.repo.Create(ctx, content.Document{
		Type:   domain.InquiryRecordType,
		Fields: rec.Fields(),
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodePersistence, "failed to create inquiry record", err)
	}

	rec.ID = created.ID
	return rec, nil
}

// ceilMillisecond rounds t up to the millisecond precision of stored timestamps
func ceilMillisecond(t time.Time) time.Time {
	c := t.Truncate(time.Millisecond)
	if c.Before(t) {
		c = c.Add(time.Millisecond)
	}
	return c
}
