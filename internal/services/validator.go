package services

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"portfolio/gen/inquiry"
	"portfolio/internal/domain"
	apperrors "portfolio/pkg/errors"
)

var validate = validator.New()

// inquiryForm holds the eight caller-supplied fields. Presence is the only rule:
// no formats, no lengths, no trimming.
type inquiryForm struct {
	Name           string `validate:"required"`
	ContactMethod  string `validate:"required"`
	ContactInfo    string `validate:"required"`
	PhotoshootType string `validate:"required"`
	Location       string `validate:"required"`
	NeedServices   string `validate:"required"`
	Budget         string `validate:"required"`
	Message        string `validate:"required"`
}

// ValidateInquiry checks that every field of the submission is present and
// returns the typed inquiry. The returned error carries the list of missing
// fields for logging; callers must not echo it.
func ValidateInquiry(p *inquiry.InquirySubmitPayload) (*domain.Inquiry, error) {
	if p == nil {
		return nil, apperrors.New(apperrors.ErrCodeValidation, MsgFieldsRequired)
	}

	form := inquiryForm{
		Name:           deref(p.Name),
		ContactMethod:  deref(p.ContactMethod),
		ContactInfo:    deref(p.ContactInfo),
		PhotoshootType: deref(p.PhotoshootType),
		Location:       deref(p.Location),
		NeedServices:   deref(p.NeedServices),
		Budget:         deref(p.Budget),
		Message:        deref(p.Message),
	}

	if err := validate.Struct(form); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeValidation, MsgFieldsRequired, missingFields(err))
	}

	return &domain.Inquiry{
		Name:           form.Name,
		ContactMethod:  domain.ContactMethod(form.ContactMethod),
		ContactInfo:    form.ContactInfo,
		PhotoshootType: domain.ShootCategory(form.PhotoshootType),
		Location:       form.Location,
		NeedServices:   domain.ServicesAnswer(form.NeedServices),
		Budget:         form.Budget,
		Message:        form.Message,
	}, nil
}

type missingFieldsError []string

func (m missingFieldsError) Error() string {
	out := "missing fields:"
	for _, f := range m {
		out += " " + f
	}
	return out
}

func missingFields(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(missingFieldsError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
