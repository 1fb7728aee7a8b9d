package services

import (
	"errors"

	goa "goa.design/goa/v3/pkg"

	"portfolio/gen/inquiry"
	apperrors "portfolio/pkg/errors"
)

// User-facing inquiry messages
const (
	MsgFieldsRequired = "All fields are required"
	MsgSubmitFailed   = "Failed to submit inquiry. Please try again."
	MsgSubmitted      = "Your inquiry has been submitted successfully!"
	MsgInvalidBody    = "Invalid request body"
	MsgInternal       = "Internal server error"
)

// ============================================================
// Inquiry Service Error Helpers
// ============================================================

// InquiryBadRequest creates a properly formatted bad request error for inquiry service
func InquiryBadRequest(message string) *goa.ServiceError {
	return inquiry.MakeBadRequest(errors.New(message))
}

// InquirySubmissionFailed creates a properly formatted submission failure for inquiry service
func InquirySubmissionFailed(message string) *goa.ServiceError {
	return inquiry.MakeSubmissionFailed(errors.New(message))
}

// InquiryError maps a pipeline error to the goa error returned to the caller.
// Only fixed messages cross the boundary; causes stay in the server log.
func InquiryError(err error) *goa.ServiceError {
	if apperrors.IsValidation(err) {
		return InquiryBadRequest(MsgFieldsRequired)
	}
	return InquirySubmissionFailed(MsgSubmitFailed)
}
